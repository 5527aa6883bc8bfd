package viz

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Color names a curve color. The zero value draws in the terminal default.
type Color string

const (
	Default Color = ""
	Red     Color = "red"
	Green   Color = "green"
	Blue    Color = "blue"
	White   Color = "white"
)

type swatch struct {
	term  lipgloss.Color
	rgb   color.RGBA
	graph asciigraph.AnsiColor
}

var palette = map[Color]swatch{
	Red:   {lipgloss.Color("#fc6255"), color.RGBA{0xfc, 0x62, 0x55, 0xff}, asciigraph.Red},
	Green: {lipgloss.Color("#83c167"), color.RGBA{0x83, 0xc1, 0x67, 0xff}, asciigraph.Green},
	Blue:  {lipgloss.Color("#58c4dd"), color.RGBA{0x58, 0xc4, 0xdd, 0xff}, asciigraph.Blue},
	White: {lipgloss.Color("#ffffff"), color.RGBA{0xff, 0xff, 0xff, 0xff}, asciigraph.White},
}

// ParseColor accepts the palette names in any case.
func ParseColor(name string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := palette[c]; !ok {
		return Default, fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}

func (c Color) Style() lipgloss.Style {
	if s, ok := palette[c]; ok {
		return lipgloss.NewStyle().Foreground(s.term)
	}
	return lipgloss.NewStyle()
}

// RGBA returns the raster color, white for Default.
func (c Color) RGBA() color.RGBA {
	if s, ok := palette[c]; ok {
		return s.rgb
	}
	return palette[White].rgb
}

func (c Color) Hex() string {
	rgb := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

func (c Color) graph() asciigraph.AnsiColor {
	if s, ok := palette[c]; ok {
		return s.graph
	}
	return asciigraph.Default
}

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#ff00ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ff8800"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#0077be"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	Themes = []Theme{ThemeCyberpunk, ThemeMinimal, ThemeOcean}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// nextTheme returns the theme after t, wrapping around.
func nextTheme(t Theme) Theme {
	names := ThemeNames()
	for i, name := range names {
		if name == t.Name {
			return GetTheme(names[(i+1)%len(names)])
		}
	}
	return Themes[0]
}
