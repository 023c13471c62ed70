// Package statusline provides the status bar and message line UI components.
package statusline

import (
	"strings"

	"github.com/dshills/stormview/internal/cursor"
	"github.com/dshills/stormview/internal/renderer/backend"
	"github.com/dshills/stormview/internal/renderer/core"
)

// NoName is shown in place of a missing filename.
const NoName = "[No Name]"

// Default status bar colours.
var (
	DefaultForeground = core.ColorFromRGB(0x3f, 0x3f, 0x3f)
	DefaultBackground = core.ColorFromRGB(0xef, 0xef, 0xef)
)

// DefaultStyle returns the default status bar style.
func DefaultStyle() core.Style {
	return core.DefaultStyle().WithForeground(DefaultForeground).WithBackground(DefaultBackground)
}

// StatusLine renders the bar showing the mode, filename and cursor position.
type StatusLine struct {
	mode     string // Mode display name (e.g., "NORMAL", "INSERT")
	filename string // Empty for no file
	position cursor.Position
	style    core.Style
	width    int
}

// New creates a status line with the default style.
func New() *StatusLine {
	return &StatusLine{
		mode:  "NORMAL",
		style: DefaultStyle(),
	}
}

// SetMode updates the displayed mode.
func (s *StatusLine) SetMode(mode string) {
	s.mode = mode
}

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetPosition updates the displayed cursor position (zero-indexed).
func (s *StatusLine) SetPosition(p cursor.Position) {
	s.position = p
}

// SetStyle changes the bar colours and attributes.
func (s *StatusLine) SetStyle(style core.Style) {
	s.style = style
}

// Style returns the bar style.
func (s *StatusLine) Style() core.Style {
	return s.style
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Text returns the bar content padded to exactly the status line width.
// The position stays right-aligned; the left part is cut when space runs out.
func (s *StatusLine) Text() string {
	if s.width <= 0 {
		return ""
	}

	name := s.filename
	if name == "" {
		name = NoName
	}
	left := "[" + s.mode + "] " + name
	right := s.position.String()
	rightWidth := core.StringWidth(right)

	if rightWidth+1 > s.width {
		return pad(core.Truncate(left, s.width), s.width)
	}

	left = core.Truncate(left, s.width-rightWidth-1)
	return pad(left, s.width-rightWidth) + right
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	drawText(b, row, s.Text(), s.width, s.style)
}

// RenderMessage draws a message on the given row, truncated to width and
// padded with blanks in the given style.
func RenderMessage(b backend.Backend, row, width int, text string, style core.Style) {
	drawText(b, row, pad(core.Truncate(text, width), width), width, style)
}

// drawText writes text's cells left to right, stopping at width.
func drawText(b backend.Backend, row int, text string, width int, style core.Style) {
	x := 0
	for _, cell := range core.CellsFromString(text, style) {
		if x+cell.Width > width {
			break
		}
		b.SetCell(x, row, cell)
		x += cell.Width
	}
	for ; x < width; x++ {
		b.SetCell(x, row, core.NewStyledCell(' ', style))
	}
}

// pad appends spaces until s is width cells wide.
func pad(s string, width int) string {
	if n := width - core.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
