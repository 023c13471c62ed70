package renderer

import "github.com/dshills/stormview/internal/renderer/core"

// Cell, Style and Color are re-exported from the core package.
type (
	Cell  = core.Cell
	Style = core.Style
	Color = core.Color
)

// DefaultStyle returns the terminal's default style.
func DefaultStyle() Style {
	return core.DefaultStyle()
}

// StatusStyle builds the status bar style from hex colour strings.
func StatusStyle(foreground, background string) (Style, error) {
	fg, err := core.ColorFromHex(foreground)
	if err != nil {
		return Style{}, err
	}
	bg, err := core.ColorFromHex(background)
	if err != nil {
		return Style{}, err
	}
	return core.DefaultStyle().WithForeground(fg).WithBackground(bg), nil
}
