// Package viewport tracks the visible window over the document and scrolls
// it minimally to keep the cursor on screen.
package viewport

import (
	"github.com/dshills/stormview/internal/cursor"
	"github.com/dshills/stormview/internal/renderer/core"
)

// ReservedRows is the number of terminal rows taken by the status and
// message bars.
const ReservedRows = 2

// Viewport represents the visible portion of the document.
// It is owned by a single goroutine and is not safe for concurrent use.
type Viewport struct {
	// offset is the document position shown in the top-left cell.
	offset cursor.Position

	// Terminal size in cells.
	cols int
	rows int
}

// New creates a viewport for a terminal of the given size.
func New(cols, rows int) *Viewport {
	return &Viewport{cols: cols, rows: rows}
}

// Resize updates the terminal size. The offset is left alone; call Scroll
// afterwards to bring the cursor back into view.
func (v *Viewport) Resize(cols, rows int) {
	v.cols = cols
	v.rows = rows
}

// Size returns the terminal size in cells.
func (v *Viewport) Size() (cols, rows int) {
	return v.cols, v.rows
}

// VisibleRows returns the number of document rows on screen.
// Terminals too short for the bars still show one row.
func (v *Viewport) VisibleRows() int {
	return max(v.rows-ReservedRows, 1)
}

// VisibleCols returns the number of document columns on screen.
func (v *Viewport) VisibleCols() int {
	return max(v.cols, 1)
}

// Offset returns the document position of the top-left visible cell.
func (v *Viewport) Offset() cursor.Position {
	return v.offset
}

// Reset scrolls back to the origin.
func (v *Viewport) Reset() {
	v.offset = cursor.Position{}
}

// Scroll moves the offset the least amount needed for p to be visible,
// counting one cell per column. It returns true if the offset changed.
func (v *Viewport) Scroll(p cursor.Position) bool {
	return v.scroll(p, nil)
}

// ScrollLine is Scroll for a cursor on line. Columns still count characters
// but the window is measured in terminal cells, so a wide character needs
// two of them. Columns past the end of line take one cell.
func (v *Viewport) ScrollLine(p cursor.Position, line string) bool {
	cells := core.CellsFromString(line, core.DefaultStyle())
	widths := make([]int, len(cells))
	for i, c := range cells {
		widths[i] = c.Width
	}
	return v.scroll(p, widths)
}

func (v *Viewport) scroll(p cursor.Position, widths []int) bool {
	before := v.offset
	v.offset.Row = reveal(v.offset.Row, p.Row, v.VisibleRows())
	v.offset.Col = revealCells(v.offset.Col, p.Col, v.VisibleCols(), widths)
	return v.offset != before
}

// reveal returns the new start of a window of size n so that it covers x.
func reveal(start, x, n int) int {
	switch {
	case x < start:
		return x
	case x >= start+n:
		return x - n + 1
	default:
		return start
	}
}

// revealCells returns the smallest start >= the current one such that the
// characters from start through x fit in n cells. A character wider than the
// whole window is shown from its own column.
func revealCells(start, x, n int, widths []int) int {
	if x < start {
		return x
	}
	width := func(i int) int {
		if i < len(widths) {
			return widths[i]
		}
		return 1
	}

	used := 0
	for i := start; i <= x; i++ {
		used += width(i)
	}
	for used > n && start < x {
		used -= width(start)
		start++
	}
	return start
}

// Contains reports whether p is inside the visible window, counting one cell
// per column.
func (v *Viewport) Contains(p cursor.Position) bool {
	return p.Row >= v.offset.Row && p.Row < v.offset.Row+v.VisibleRows() &&
		p.Col >= v.offset.Col && p.Col < v.offset.Col+v.VisibleCols()
}

// ToScreen converts a document position to a screen cell relative to the
// top-left of the terminal.
func (v *Viewport) ToScreen(p cursor.Position) cursor.Position {
	return cursor.Position{Row: p.Row - v.offset.Row, Col: p.Col - v.offset.Col}
}
