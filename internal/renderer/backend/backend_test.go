package backend

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/stormview/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := core.NewStyledCell('X', core.DefaultStyle().WithForeground(core.ColorFromRGB(255, 0, 0)))
	b.SetCell(10, 5, cell)

	got := b.GetCell(10, 5)
	if !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)

	empty := b.GetCell(-1, 0)
	if !empty.Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendLine(t *testing.T) {
	b := NewNullBackend(5, 2)
	b.Init()

	for i, c := range core.CellsFromString("hi", core.DefaultStyle()) {
		b.SetCell(i, 1, c)
	}

	if got := b.Line(1); got != "hi   " {
		t.Errorf("Line(1) = %q, want %q", got, "hi   ")
	}
	if got := b.Line(9); got != "" {
		t.Errorf("Line(9) = %q, want empty", got)
	}
}

func TestNullBackendClear(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.SetCell(10, 10, core.NewStyledCell('X', core.DefaultStyle()))
	b.SetCell(20, 20, core.NewStyledCell('Y', core.DefaultStyle()))

	b.Clear()

	got := b.GetCell(10, 10)
	if !got.Equals(core.EmptyCell()) {
		t.Error("clear should reset all cells")
	}
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.ShowCursor(15, 10)
	x, y, visible := b.CursorPosition()
	if x != 15 || y != 10 || !visible {
		t.Errorf("cursor position: expected (15, 10, true), got (%d, %d, %v)", x, y, visible)
	}

	b.HideCursor()
	_, _, visible = b.CursorPosition()
	if visible {
		t.Error("cursor should be hidden")
	}
}

func TestNullBackendCursorStyle(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.SetCursorStyle(CursorBar)
	if b.CursorStyleValue() != CursorBar {
		t.Error("cursor style should be bar")
	}

	b.SetCursorStyle(CursorBlock)
	if b.CursorStyleValue() != CursorBlock {
		t.Error("cursor style should be block")
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.Resize(100, 40)

	w, h := b.Size()
	if w != 100 || h != 40 {
		t.Errorf("expected size (100, 40), got (%d, %d)", w, h)
	}

	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 100 || ev.Height != 40 {
		t.Errorf("expected resize event (100, 40), got %+v", ev)
	}
}

func TestNullBackendPostEvent(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyEnter})

	got := b.PollEvent()
	if got.Type != EventKey || got.Key != KeyEnter {
		t.Errorf("expected enter key event, got %+v", got)
	}
}

func TestNullBackendShutdown(t *testing.T) {
	b := NewNullBackend(10, 5)
	b.Init()

	if err := b.Show(); err != nil {
		t.Fatalf("Show() before shutdown: %v", err)
	}

	b.Shutdown()
	b.Shutdown() // second call is a no-op

	if ev := b.PollEvent(); ev.Type != EventClosed {
		t.Errorf("PollEvent after shutdown = %+v, want EventClosed", ev)
	}
	if err := b.Show(); !errors.Is(err, ErrClosed) {
		t.Errorf("Show() after shutdown = %v, want ErrClosed", err)
	}
	if b.Shows() != 1 {
		t.Errorf("Shows() = %d, want 1", b.Shows())
	}

	// Posting to a closed backend must not panic.
	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'x'})
}

func TestNullBackendShowErr(t *testing.T) {
	b := NewNullBackend(10, 5)
	b.Init()

	want := errors.New("broken pipe")
	b.ShowErr = want

	if err := b.Show(); !errors.Is(err, want) {
		t.Errorf("Show() = %v, want %v", err, want)
	}
}

func TestModMaskHas(t *testing.T) {
	mod := ModShift | ModCtrl

	if !mod.Has(ModShift) {
		t.Error("should have shift")
	}
	if !mod.Has(ModCtrl) {
		t.Error("should have ctrl")
	}
	if mod.Has(ModAlt) {
		t.Error("should not have alt")
	}
}

func TestCursorStyleString(t *testing.T) {
	tests := []struct {
		style CursorStyle
		want  string
	}{
		{CursorBlock, "block"},
		{CursorUnderline, "underline"},
		{CursorBar, "bar"},
		{CursorHidden, "hidden"},
		{CursorStyle(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.style.String(); got != tt.want {
			t.Errorf("CursorStyle(%d).String() = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestTerminalSimulation(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := newTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	screen.SetSize(20, 4)

	term.SetCell(2, 1, core.NewStyledCell('Z', core.DefaultStyle().Bold()))
	if err := term.Show(); err != nil {
		t.Fatalf("Show() error = %v", err)
	}

	mainc, _, style, _ := screen.GetContent(2, 1) //nolint:staticcheck // GetContent is the correct API
	if mainc != 'Z' {
		t.Errorf("GetContent rune = %q, want 'Z'", mainc)
	}
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrBold == 0 {
		t.Error("expected bold attribute on simulated cell")
	}

	term.Shutdown()
	term.Shutdown()

	if err := term.Show(); !errors.Is(err, ErrClosed) {
		t.Errorf("Show() after shutdown = %v, want ErrClosed", err)
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   tcell.Key
		want Key
	}{
		{tcell.KeyRune, KeyRune},
		{tcell.KeyEscape, KeyEscape},
		{tcell.KeyUp, KeyUp},
		{tcell.KeyDown, KeyDown},
		{tcell.KeyLeft, KeyLeft},
		{tcell.KeyRight, KeyRight},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyF5, KeyNone},
	}

	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
