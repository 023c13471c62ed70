// Package cursor provides the logical cursor and its line-bounded movement.
//
// Movement wraps at line edges: moving left from column 0 lands at the end
// of the previous line and moving right past the end of a line lands at the
// start of the next one. The cursor may rest on the empty row one past the
// last line and one column past the last character.
package cursor

import (
	"fmt"

	"github.com/dshills/stormview/internal/renderer/backend"
)

// Position is a zero-indexed row/column pair.
type Position struct {
	Row int
	Col int
}

// String returns "row:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Shape is the visual appearance of the cursor.
type Shape uint8

const (
	// ShapeBlock is a filled block cursor (normal mode).
	ShapeBlock Shape = iota
	// ShapeBar is a vertical line cursor (insert mode).
	ShapeBar
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeBlock:
		return "block"
	case ShapeBar:
		return "bar"
	default:
		return "unknown"
	}
}

// CursorStyle maps the shape to the terminal cursor style.
func (s Shape) CursorStyle() backend.CursorStyle {
	if s == ShapeBar {
		return backend.CursorBar
	}
	return backend.CursorBlock
}

// Bounds reports the extent of the text the cursor moves over.
// *document.Document satisfies it.
type Bounds interface {
	LineCount() int
	Width(row int) int
}

// Cursor is the logical cursor.
// The zero value is a block cursor at the origin.
type Cursor struct {
	pos   Position
	shape Shape

	// desired is the column last chosen by a horizontal move.
	// Vertical moves land on min(desired, Width(row)).
	desired int
}

// New returns a block cursor at the origin.
func New() *Cursor {
	return &Cursor{}
}

// Position returns the current position.
func (c *Cursor) Position() Position {
	return c.pos
}

// Shape returns the current shape.
func (c *Cursor) Shape() Shape {
	return c.shape
}

// SetShape changes the shape.
func (c *Cursor) SetShape(s Shape) {
	c.shape = s
}

// Reset moves the cursor back to the origin, keeping its shape.
func (c *Cursor) Reset() {
	c.pos = Position{}
	c.desired = 0
}

// MoveUp moves one row up, saturating at row 0.
func (c *Cursor) MoveUp(b Bounds) {
	if c.pos.Row > 0 {
		c.pos.Row--
	}
	c.pos.Col = min(c.desired, b.Width(c.pos.Row))
}

// MoveDown moves one row down, saturating at the append row LineCount().
func (c *Cursor) MoveDown(b Bounds) {
	if c.pos.Row < b.LineCount() {
		c.pos.Row++
	}
	c.pos.Col = min(c.desired, b.Width(c.pos.Row))
}

// MoveLeft moves one column left, wrapping to the end of the previous line.
func (c *Cursor) MoveLeft(b Bounds) {
	switch {
	case c.pos.Col > 0:
		c.pos.Col--
	case c.pos.Row > 0:
		c.pos.Row--
		c.pos.Col = b.Width(c.pos.Row)
	}
	c.desired = c.pos.Col
}

// MoveRight moves one column right, wrapping to the start of the next line.
func (c *Cursor) MoveRight(b Bounds) {
	switch {
	case c.pos.Col < b.Width(c.pos.Row):
		c.pos.Col++
	case c.pos.Row < b.LineCount():
		c.pos.Row++
		c.pos.Col = 0
	}
	c.desired = c.pos.Col
}

// Terminal is the part of a terminal backend that displays the hardware
// cursor. backend.Backend satisfies it.
type Terminal interface {
	ShowCursor(x, y int)
	HideCursor()
	SetCursorStyle(style backend.CursorStyle)
}

// Apply shows the hardware cursor at screen cell p with the cursor's shape,
// or hides it when visible is false.
func (c *Cursor) Apply(t Terminal, p Position, visible bool) {
	if t == nil {
		return
	}
	if !visible {
		t.HideCursor()
		return
	}
	t.SetCursorStyle(c.shape.CursorStyle())
	t.ShowCursor(p.Col, p.Row)
}
