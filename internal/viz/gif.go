package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"
	"os"
)

// GIFOptions sizes a headless recording. Width and Height are in canvas
// cells; every cell becomes CellW x CellH pixels.
type GIFOptions struct {
	Width, Height int
	CellW, CellH  int
	FPS           int
}

func DefaultGIFOptions() GIFOptions {
	return GIFOptions{Width: sceneWidth, Height: sceneHeight, CellW: 8, CellH: 16, FPS: 10}
}

// RenderGIF records the scene as it would play in the terminal. The intro
// wait is a single held frame; the creation phase is sampled at FPS.
func RenderGIF(w io.Writer, scene *Scene, tl Timeline, opts GIFOptions) error {
	if opts.FPS <= 0 || opts.Width <= 0 || opts.Height <= 0 || opts.CellW < 2 || opts.CellH < 4 {
		return fmt.Errorf("invalid gif options %+v", opts)
	}
	canvas := NewCanvas(opts.Width, opts.Height)
	cam := scene.Camera
	pal, index := scenePalette(scene)
	delay := int(math.Round(100 / float64(opts.FPS)))
	if delay < 1 {
		delay = 1
	}

	anim := gif.GIF{LoopCount: 0}
	add := func(progress float64, d int) {
		scene.Draw(canvas, &cam, progress)
		anim.Image = append(anim.Image, rasterize(canvas, opts, pal, index))
		anim.Delay = append(anim.Delay, d)
	}

	if tl.Wait > 0 {
		add(0, int(math.Round(tl.Wait.Seconds()*100)))
	}
	frames := int(math.Ceil(tl.RunTime.Seconds() * float64(opts.FPS)))
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		add(float64(i)/float64(frames), delay)
	}
	return gif.EncodeAll(w, &anim)
}

func SaveGIF(path string, scene *Scene, tl Timeline, opts GIFOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderGIF(f, scene, tl, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func scenePalette(scene *Scene) (color.Palette, map[Color]uint8) {
	pal := color.Palette{color.Black, White.RGBA()}
	index := map[Color]uint8{Default: 1, White: 1}
	inks := []Color{scene.Axes.Ink}
	for _, c := range scene.Curves {
		inks = append(inks, c.Ink)
	}
	for _, ink := range inks {
		if _, ok := index[ink]; ok {
			continue
		}
		index[ink] = uint8(len(pal))
		pal = append(pal, ink.RGBA())
	}
	return pal, index
}

func rasterize(c *Canvas, opts GIFOptions, pal color.Palette, index map[Color]uint8) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*opts.CellW, c.Height*opts.CellH), pal)
	dotW, dotH := opts.CellW/2, opts.CellH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			if !isBraille(r) || r == blank {
				continue
			}
			ink := index[c.Ink[row][col]]
			pattern := int(r - blank)
			baseX, baseY := col*opts.CellW, row*opts.CellH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, ink)
						}
					}
				}
			}
		}
	}
	return img
}
