// Package state holds the viewer's mutable state and applies mode actions
// to it.
//
// State owns the document, the cursor, the active mode, the viewport offset
// and the transient message. All mutation goes through Keypress, Dispatch
// and Scroll; everything else is read-only access for the renderer.
// A State belongs to one goroutine.
package state

import (
	"time"

	"github.com/dshills/stormview/internal/cursor"
	"github.com/dshills/stormview/internal/document"
	"github.com/dshills/stormview/internal/input/key"
	"github.com/dshills/stormview/internal/input/mode"
	"github.com/dshills/stormview/internal/viewport"
)

// Message is a transient status line text.
type Message struct {
	Text string
	Time time.Time
}

// Visible reports whether the message should still be shown at now.
func (m Message) Visible(now time.Time, ttl time.Duration) bool {
	return m.Text != "" && now.Sub(m.Time) < ttl
}

// ModeChangeCallback is called when the mode changes.
type ModeChangeCallback func(from, to mode.Mode)

// State is the viewer state coordinator.
type State struct {
	doc  *document.Document
	cur  *cursor.Cursor
	mode mode.Mode
	view *viewport.Viewport
	msg  Message
	quit bool

	cursorVisible bool
	// screenCursor overrides the derived hardware cursor cell until the
	// next key press.
	screenCursor *cursor.Position

	term           cursor.Terminal
	now            func() time.Time
	messageTimeout time.Duration
	callbacks      []ModeChangeCallback
}

// New creates a state in Normal mode with the cursor at the origin.
func New(opts ...Option) *State {
	s := &State{
		doc:            document.Empty(),
		cur:            cursor.New(),
		mode:           mode.Normal,
		view:           viewport.New(DefaultCols, DefaultRows),
		cursorVisible:  true,
		now:            time.Now,
		messageTimeout: DefaultMessageTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.cur.SetShape(s.mode.CursorShape())
	return s
}

// Keypress interprets ev with the active mode, applies the resulting action
// and rescrolls. The applied action is returned.
func (s *State) Keypress(ev key.Event) mode.Action {
	s.screenCursor = nil

	action := s.mode.Interpret(ev)
	s.Dispatch(action)
	s.Scroll()
	return action
}

// Dispatch applies a single action.
func (s *State) Dispatch(a mode.Action) {
	switch a.Kind {
	case mode.ActionNone:
	case mode.ActionMoveUp:
		s.cur.MoveUp(s.doc)
	case mode.ActionMoveDown:
		s.cur.MoveDown(s.doc)
	case mode.ActionMoveLeft:
		s.cur.MoveLeft(s.doc)
	case mode.ActionMoveRight:
		s.cur.MoveRight(s.doc)
	case mode.ActionShowCursor:
		s.cursorVisible = true
		s.cur.Apply(s.term, s.ScreenCursor(), true)
	case mode.ActionHideCursor:
		s.cursorVisible = false
		s.cur.Apply(s.term, s.ScreenCursor(), false)
	case mode.ActionSetCursorPosition:
		p := a.Position
		s.screenCursor = &p
		s.cur.Apply(s.term, p, s.cursorVisible)
	case mode.ActionSetMode:
		s.setMode(a.Mode)
	case mode.ActionMessage:
		s.msg = Message{Text: a.Text, Time: s.now()}
	case mode.ActionQuit:
		s.quit = true
	}
}

func (s *State) setMode(m mode.Mode) {
	from := s.mode
	s.mode = m
	s.cur.SetShape(m.CursorShape())
	if from == m {
		return
	}
	for _, cb := range s.callbacks {
		cb(from, m)
	}
}

// Scroll moves the viewport the minimum needed to show the cursor.
// It returns true if the offset changed.
func (s *State) Scroll() bool {
	p := s.cur.Position()
	line, _ := s.doc.LineAt(p.Row)
	return s.view.ScrollLine(p, line)
}

// OnModeChange registers a callback for mode changes.
func (s *State) OnModeChange(cb ModeChangeCallback) {
	s.callbacks = append(s.callbacks, cb)
}

// SetDocument replaces the document and returns the cursor and viewport to
// the origin.
func (s *State) SetDocument(doc *document.Document) {
	if doc == nil {
		doc = document.Empty()
	}
	s.doc = doc
	s.cur.Reset()
	s.view.Reset()
	s.screenCursor = nil
}

// Resize records new terminal dimensions and rescrolls.
func (s *State) Resize(cols, rows int) {
	s.view.Resize(cols, rows)
	s.Scroll()
}

// SetMessageTimeout changes how long messages stay visible.
// Non-positive durations are ignored.
func (s *State) SetMessageTimeout(d time.Duration) {
	if d > 0 {
		s.messageTimeout = d
	}
}

// ShouldQuit reports whether a Quit action has been dispatched.
func (s *State) ShouldQuit() bool { return s.quit }

// CursorPosition returns the logical cursor position.
func (s *State) CursorPosition() cursor.Position { return s.cur.Position() }

// CursorShape returns the cursor shape of the active mode.
func (s *State) CursorShape() cursor.Shape { return s.cur.Shape() }

// CursorVisible reports whether the hardware cursor should be shown.
func (s *State) CursorVisible() bool { return s.cursorVisible }

// ScreenCursor returns the terminal cell for the hardware cursor.
func (s *State) ScreenCursor() cursor.Position {
	if s.screenCursor != nil {
		return *s.screenCursor
	}
	return s.view.ToScreen(s.cur.Position())
}

// Offset returns the document position of the top-left visible cell.
func (s *State) Offset() cursor.Position { return s.view.Offset() }

// Mode returns the active mode.
func (s *State) Mode() mode.Mode { return s.mode }

// Message returns the last message, visible or not.
func (s *State) Message() Message { return s.msg }

// MessageTimeout returns how long messages stay visible.
func (s *State) MessageTimeout() time.Duration { return s.messageTimeout }

// VisibleMessage returns the message text if it is still inside its
// display window.
func (s *State) VisibleMessage() (string, bool) {
	if !s.msg.Visible(s.now(), s.messageTimeout) {
		return "", false
	}
	return s.msg.Text, true
}

// Document returns the document being viewed.
func (s *State) Document() *document.Document { return s.doc }

// VisibleRows returns the number of document rows on screen.
func (s *State) VisibleRows() int { return s.view.VisibleRows() }

// VisibleCols returns the number of document columns on screen.
func (s *State) VisibleCols() int { return s.view.VisibleCols() }

// Size returns the terminal size in cells.
func (s *State) Size() (cols, rows int) { return s.view.Size() }
