package export

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/lorenz/internal/trajectory"
	"github.com/san-kum/lorenz/internal/viz"
	"gonum.org/v1/gonum/floats"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := int(float64(canvas.Width) * scale * 2)
	height := int(float64(canvas.Height) * scale * 4)

	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, width, height, width, height)
	sb.WriteString(`<rect width="100%" height="100%" fill="#0a0a0a"/>` + "\n")

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 || r > 0x28ff {
				continue
			}
			pattern := int(r - 0x2800)
			fill := canvas.Ink[row][col].Hex()

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", cx, cy, dotRadius, fill)
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

type box struct{ X, Y, W, H float64 }

// fit maps data coordinates into b, keeping a 10% margin around the
// bounds of xs and ys.
func fit(xs, ys []float64, b box) func(x, y float64) (float64, float64) {
	minX, maxX := floats.Min(xs), floats.Max(xs)
	minY, maxY := floats.Min(ys), floats.Max(ys)

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	return func(x, y float64) (float64, float64) {
		return b.X + (x-minX)/rangeX*b.W, b.Y + b.H - (y-minY)/rangeY*b.H
	}
}

func pathData(xs, ys []float64, to func(x, y float64) (float64, float64)) string {
	var sb strings.Builder
	for i := range xs {
		x, y := to(xs[i], ys[i])
		if i == 0 {
			fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	return sb.String()
}

// TrajectoryToSVG creates an SVG of a planar curve.
func TrajectoryToSVG(xs, ys []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, width, height, width, height)
	sb.WriteString(`<rect width="100%" height="100%" fill="#0a0a0a"/>` + "\n")
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>`+"\n",
		strokeColor, pathData(xs, ys, fit(xs, ys, box{0, 0, float64(width), float64(height)})))
	sb.WriteString("</svg>")
	return sb.String()
}

// FigureOptions sizes the static figure. The left column holds the three
// time series, the right column the projected phase portrait; their widths
// are in the ratio 1:1.5.
type FigureOptions struct {
	Width, Height int
	Phi, Theta    float64
	Series        [3]string
	Curve, Marker string
}

func DefaultFigureOptions() FigureOptions {
	return FigureOptions{
		Width:  1200,
		Height: 800,
		Phi:    60,
		Theta:  -60,
		Series: [3]string{"red", "green", "blue"},
		Curve:  "blue",
		Marker: "red",
	}
}

var axisNames = [3]string{"X", "Y", "Z"}

// FigureSVG renders the static figure of a three dimensional trajectory.
func FigureSVG(tr *trajectory.Trajectory, opts FigureOptions) (string, error) {
	if tr == nil || tr.Len() < 2 {
		return "", errors.New("figure needs at least two samples")
	}
	if len(tr.First()) < 3 {
		return "", errors.New("figure needs three coordinates")
	}

	const pad, titleH = 40.0, 24.0
	w, h := float64(opts.Width), float64(opts.Height)
	leftW := w / 2.5
	rowH := h / 3

	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, opts.Width, opts.Height, opts.Width, opts.Height)
	sb.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>` + "\n")
	sb.WriteString(`<g font-family="sans-serif" font-size="14" text-anchor="middle">` + "\n")

	for i := 0; i < 3; i++ {
		b := box{pad, float64(i)*rowH + titleH, leftW - 2*pad, rowH - titleH - pad}
		series := tr.Axis(i)
		writeFrame(&sb, b, axisNames[i]+" vs Time")
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f">Time</text>`+"\n", b.X+b.W/2, b.Y+b.H+pad*0.6)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f">%s</text>`+"\n", b.X-pad*0.5, b.Y+b.H/2, axisNames[i])
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1" d="%s"/>`+"\n",
			opts.Series[i], pathData(tr.Times, series, fit(tr.Times, series, b)))
	}

	cam := viz.PortraitCamera(tr, opts.Phi, opts.Theta)
	xs := make([]float64, tr.Len())
	ys := make([]float64, tr.Len())
	for i, s := range tr.States {
		p := cam.RotatePoint(viz.FromState(s))
		xs[i], ys[i] = p.X, p.Y
	}
	portrait := box{leftW + pad, titleH, w - leftW - 2*pad, h - titleH - pad}
	to := fit(xs, ys, portrait)
	writeFrame(&sb, portrait, "Lorenz Attractor")
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="0.5" d="%s"/>`+"\n",
		opts.Curve, pathData(xs, ys, to))

	sx, sy := to(xs[0], ys[0])
	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>`+"\n", sx, sy, opts.Marker)
	fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" text-anchor="start">Start</text>`+"\n", sx+8, sy-8)

	sb.WriteString("</g>\n</svg>")
	return sb.String(), nil
}

func writeFrame(sb *strings.Builder, b box, title string) {
	fmt.Fprintf(sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#444444"/>`+"\n", b.X, b.Y, b.W, b.H)
	fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" font-weight="bold">%s</text>`+"\n", b.X+b.W/2, b.Y-8, title)
}

// SaveFigure writes FigureSVG to path.
func SaveFigure(path string, tr *trajectory.Trajectory, opts FigureOptions) error {
	svg, err := FigureSVG(tr, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
