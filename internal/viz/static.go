package viz

import (
	"errors"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lorenz/internal/trajectory"
	"gonum.org/v1/gonum/floats"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	panelStyle = lipgloss.NewStyle().Padding(0, 2)
)

// StaticOptions lays out the static figure: three time series stacked on
// the left and the phase portrait on the right.
type StaticOptions struct {
	GraphWidth, GraphHeight       int
	PortraitWidth, PortraitHeight int
	Phi, Theta                    float64
	Series                        [3]Color
	Curve, Marker                 Color
}

func DefaultStaticOptions() StaticOptions {
	return StaticOptions{
		GraphWidth:     60,
		GraphHeight:    6,
		PortraitWidth:  90,
		PortraitHeight: 30,
		Phi:            60,
		Theta:          -60,
		Series:         [3]Color{Red, Green, Blue},
		Curve:          Blue,
		Marker:         Red,
	}
}

var seriesTitles = [3]string{"X vs Time", "Y vs Time", "Z vs Time"}

// TimeSeries plots one coordinate of tr against its sample index.
func TimeSeries(tr *trajectory.Trajectory, axis int, title string, ink Color, w, h int) string {
	return asciigraph.Plot(tr.Axis(axis),
		asciigraph.Height(h),
		asciigraph.Width(w),
		asciigraph.Caption(title),
		asciigraph.SeriesColors(ink.graph()),
	)
}

// PortraitCamera frames the bounding box of tr.
func PortraitCamera(tr *trajectory.Trajectory, phi, theta float64) Camera {
	var center Vec3
	extent := 0.0
	for i := 0; i < 3; i++ {
		axis := tr.Axis(i)
		lo, hi := floats.Min(axis), floats.Max(axis)
		mid := (lo + hi) / 2
		switch i {
		case 0:
			center.X = mid
		case 1:
			center.Y = mid
		case 2:
			center.Z = mid
		}
		extent = math.Max(extent, (hi-lo)/2)
	}
	if extent == 0 {
		extent = 1
	}
	// any rotation of the bounding box stays inside its half diagonal
	return CameraFromDegrees(phi, theta, 0, center, extent*math.Sqrt(3))
}

// PhasePortrait draws the full curve of tr with its start point marked.
func PhasePortrait(tr *trajectory.Trajectory, opts StaticOptions) *Canvas {
	c := NewCanvas(opts.PortraitWidth, opts.PortraitHeight)
	cam := PortraitCamera(tr, opts.Phi, opts.Theta)

	wf := NewWireframe()
	wf.AddPolyline(FromStates(tr.States), opts.Curve)
	Render3D(c, wf, &cam)

	cw, ch := c.PixelSize()
	x, y, _, ok := cam.Project(FromState(tr.First()), cw, ch)
	if ok {
		c.SetPen(opts.Marker)
		c.Dot(x, y, 1)
		c.Label(x/2+2, y/4, "Start")
		c.SetPen(Default)
	}
	return c
}

// StaticPlot renders the complete static figure of a three dimensional
// trajectory.
func StaticPlot(tr *trajectory.Trajectory, opts StaticOptions) (string, error) {
	if tr == nil || tr.Len() < 2 {
		return "", errors.New("static plot needs at least two samples")
	}
	if len(tr.First()) < 3 {
		return "", errors.New("static plot needs three coordinates")
	}

	graphs := make([]string, 3)
	for i := range graphs {
		graphs[i] = TimeSeries(tr, i, seriesTitles[i], opts.Series[i], opts.GraphWidth, opts.GraphHeight)
	}
	left := lipgloss.JoinVertical(lipgloss.Left, graphs...)

	portrait := PhasePortrait(tr, opts)
	right := lipgloss.JoinVertical(lipgloss.Center, titleStyle.Render("Lorenz Attractor"), portrait.Render())

	return lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(left), panelStyle.Render(right)), nil
}
