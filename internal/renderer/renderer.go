package renderer

import (
	"fmt"

	"github.com/dshills/stormview/internal/cursor"
	"github.com/dshills/stormview/internal/document"
	"github.com/dshills/stormview/internal/input/mode"
	"github.com/dshills/stormview/internal/renderer/backend"
	"github.com/dshills/stormview/internal/renderer/core"
	"github.com/dshills/stormview/internal/renderer/statusline"
)

// DefaultFiller is drawn on screen rows past the end of the document.
const DefaultFiller = "~"

// View is the read-only state a frame is drawn from.
// *state.State satisfies it.
type View interface {
	Document() *document.Document
	Offset() cursor.Position
	VisibleRows() int
	Mode() mode.Mode
	CursorPosition() cursor.Position
	CursorShape() cursor.Shape
	CursorVisible() bool
	ScreenCursor() cursor.Position
	VisibleMessage() (string, bool)
	ShouldQuit() bool
}

// Options configures the renderer.
type Options struct {
	// Filename is shown in the status bar. Empty shows [No Name].
	Filename string

	// Filler is drawn on rows past the last line.
	Filler string

	// StatusStyle colours the status bar.
	StatusStyle Style

	// MessageStyle colours the message line.
	MessageStyle Style
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		Filler:       DefaultFiller,
		StatusStyle:  statusline.DefaultStyle(),
		MessageStyle: core.DefaultStyle(),
	}
}

// Renderer draws frames to a backend.
// It is used from the loop goroutine only.
type Renderer struct {
	backend backend.Backend
	opts    Options
	status  *statusline.StatusLine

	frameCount uint64
}

// New creates a new renderer with the given backend and options.
func New(b backend.Backend, opts Options) *Renderer {
	r := &Renderer{
		backend: b,
		status:  statusline.New(),
	}
	r.SetOptions(opts)
	return r
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	return r.opts
}

// SetOptions replaces the options. An empty filler falls back to the default.
func (r *Renderer) SetOptions(opts Options) {
	if opts.Filler == "" {
		opts.Filler = DefaultFiller
	}
	r.opts = opts
	r.status.SetFilename(opts.Filename)
	r.status.SetStyle(opts.StatusStyle)
}

// FrameCount returns the number of frames shown.
func (r *Renderer) FrameCount() uint64 {
	return r.frameCount
}

// Render draws one frame.
//
// The cursor is hidden while drawing and shown again at the end. Once the
// view is quitting the frame is left blank so the terminal is clean on exit.
// Any error from the backend is fatal to the caller's loop.
func (r *Renderer) Render(v View) error {
	b := r.backend
	width, height := b.Size()

	b.HideCursor()
	b.Clear()

	if v.ShouldQuit() {
		return r.show()
	}

	visibleRows := v.VisibleRows()
	r.renderRows(v, width, min(visibleRows, height))

	if statusRow := visibleRows; statusRow < height {
		r.status.SetMode(v.Mode().DisplayName())
		r.status.SetPosition(v.CursorPosition())
		r.status.Resize(width)
		r.status.Render(b, statusRow)
	}

	if msgRow := visibleRows + 1; msgRow < height {
		if text, ok := v.VisibleMessage(); ok {
			statusline.RenderMessage(b, msgRow, width, text, r.opts.MessageStyle)
		}
	}

	if v.CursorVisible() {
		x, y := r.cellFor(v, v.ScreenCursor(), width)
		b.SetCursorStyle(v.CursorShape().CursorStyle())
		b.ShowCursor(x, y)
	}

	return r.show()
}

func (r *Renderer) show() error {
	if err := r.backend.Show(); err != nil {
		return fmt.Errorf("show frame: %w", err)
	}
	r.frameCount++
	return nil
}

// renderRows draws document rows starting at the viewport offset.
func (r *Renderer) renderRows(v View, width, rows int) {
	doc := v.Document()
	off := v.Offset()
	filler := core.CellsFromString(r.opts.Filler, core.DefaultStyle())

	for y := 0; y < rows; y++ {
		line, ok := doc.LineAt(off.Row + y)
		if !ok {
			r.drawCells(filler, y, width)
			continue
		}
		cells := core.CellsFromString(line, core.DefaultStyle())
		if off.Col >= len(cells) {
			continue
		}
		r.drawCells(cells[off.Col:], y, width)
	}
}

func (r *Renderer) drawCells(cells []Cell, y, width int) {
	x := 0
	for _, cell := range cells {
		if x+cell.Width > width {
			break
		}
		r.backend.SetCell(x, y, cell)
		x += cell.Width
	}
}

// cellFor converts a screen position counted in characters into a terminal
// cell, accounting for wide characters on the row it falls on.
func (r *Renderer) cellFor(v View, p cursor.Position, width int) (x, y int) {
	x = p.Col
	if p.Row < v.VisibleRows() {
		off := v.Offset()
		if line, ok := v.Document().LineAt(off.Row + p.Row); ok {
			cells := core.CellsFromString(line, core.DefaultStyle())
			x = 0
			for i := off.Col; i < off.Col+p.Col; i++ {
				if i < len(cells) {
					x += cells[i].Width
				} else {
					x++
				}
			}
		}
	}
	return min(x, max(width-1, 0)), p.Row
}
