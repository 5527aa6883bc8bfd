package viz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	w, h := c.PixelSize()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)

	c.Set(0, 0)
	c.Set(1, 3)
	assert.Equal(t, rune(0x2800|0x1|0x80), c.Grid[0][0])
	assert.True(t, c.IsSet(0, 0))
	assert.True(t, c.IsSet(1, 3))
	assert.False(t, c.IsSet(1, 0))

	// out of range writes are dropped
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	assert.Equal(t, rune(blank), c.Grid[0][1])
}

func TestCanvasInk(t *testing.T) {
	c := NewCanvas(3, 1)
	c.SetPen(Red)
	c.Set(0, 0)
	c.SetPen(Blue)
	c.Set(4, 0)

	assert.Equal(t, Red, c.Ink[0][0])
	assert.Equal(t, Default, c.Ink[0][1])
	assert.Equal(t, Blue, c.Ink[0][2])

	c.Clear()
	assert.Equal(t, Default, c.Ink[0][0])
	assert.False(t, c.IsSet(0, 0))
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 3)
	c.DrawLine(0, 0, 19, 0)
	for x := 0; x < 20; x++ {
		assert.True(t, c.IsSet(x, 0), "pixel %d", x)
	}

	c.Clear()
	c.DrawLine(0, 0, 11, 11)
	for i := 0; i < 12; i++ {
		assert.True(t, c.IsSet(i, i), "pixel %d", i)
	}
}

func TestCanvasLabel(t *testing.T) {
	c := NewCanvas(6, 2)
	c.Label(1, 1, "xyz")
	c.Set(2, 4)

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "⠀xyz⠀⠀", lines[1])
	// a pixel under a label stays hidden
	assert.False(t, c.IsSet(2, 4))

	c.Label(4, 0, "overflow")
	assert.Equal(t, 'o', c.Grid[0][4])
	assert.Equal(t, 'v', c.Grid[0][5])
}

func TestCanvasRenderKeepsText(t *testing.T) {
	c := NewCanvas(4, 1)
	c.SetPen(Green)
	c.Label(0, 0, "ab")
	out := c.Render()
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "⠀⠀")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestColors(t *testing.T) {
	for _, name := range []string{"red", "BLUE", " green ", "White"} {
		_, err := ParseColor(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseColor("mauve")
	assert.Error(t, err)

	assert.Equal(t, "#fc6255", Red.Hex())
	assert.Equal(t, "#ffffff", Default.Hex())
	assert.Equal(t, White.RGBA(), Default.RGBA())
}

func TestThemes(t *testing.T) {
	assert.Equal(t, []string{"cyberpunk", "minimal", "ocean"}, ThemeNames())
	assert.Equal(t, ThemeOcean, GetTheme("ocean"))
	assert.Equal(t, ThemeCyberpunk, GetTheme("missing"))
	assert.Equal(t, ThemeMinimal, nextTheme(ThemeCyberpunk))
	assert.Equal(t, ThemeCyberpunk, nextTheme(ThemeOcean))
}
