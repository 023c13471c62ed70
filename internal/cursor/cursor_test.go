package cursor

import (
	"math/rand"
	"testing"

	"github.com/dshills/stormview/internal/document"
	"github.com/dshills/stormview/internal/renderer/backend"
)

func at(row, col int) *Cursor {
	c := New()
	c.pos = Position{Row: row, Col: col}
	c.desired = col
	return c
}

func TestMoveLeftWrapsToPreviousLineEnd(t *testing.T) {
	doc := document.Load("abc\nde")
	c := at(1, 0)

	c.MoveLeft(doc)

	if got, want := c.Position(), (Position{Row: 0, Col: 3}); got != want {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestMoveLeftAtOrigin(t *testing.T) {
	doc := document.Load("abc\nde")
	c := New()

	c.MoveLeft(doc)

	if got := c.Position(); got != (Position{}) {
		t.Errorf("Position() = %v, want origin", got)
	}
}

func TestMoveRightWrapsToNextLine(t *testing.T) {
	doc := document.Load("abc\nde\n\n")
	c := at(0, 3)

	c.MoveRight(doc)

	if got, want := c.Position(), (Position{Row: 1, Col: 0}); got != want {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestMoveRightOntoAppendRow(t *testing.T) {
	doc := document.Load("ab")
	c := at(0, 2)

	c.MoveRight(doc)
	if got, want := c.Position(), (Position{Row: 1, Col: 0}); got != want {
		t.Fatalf("Position() = %v, want %v", got, want)
	}

	// The append row has no characters and nothing follows it.
	c.MoveRight(doc)
	if got, want := c.Position(), (Position{Row: 1, Col: 0}); got != want {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestMoveDownSaturates(t *testing.T) {
	doc := document.Load("one\ntwo\nthree")
	c := New()

	for i := 0; i < 10; i++ {
		c.MoveDown(doc)
	}

	if got := c.Position().Row; got != doc.LineCount() {
		t.Errorf("Row = %d, want %d", got, doc.LineCount())
	}
}

func TestMoveUpSaturates(t *testing.T) {
	doc := document.Load("one\ntwo")
	c := at(0, 2)

	c.MoveUp(doc)

	if got, want := c.Position(), (Position{Row: 0, Col: 2}); got != want {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestVerticalMovesKeepDesiredColumn(t *testing.T) {
	doc := document.Load("abcdef\nab\nabcdefgh")
	c := at(0, 5)

	tests := []struct {
		move func(Bounds)
		want Position
	}{
		{c.MoveDown, Position{Row: 1, Col: 2}},
		{c.MoveDown, Position{Row: 2, Col: 5}},
		{c.MoveUp, Position{Row: 1, Col: 2}},
		{c.MoveLeft, Position{Row: 1, Col: 1}},
		{c.MoveDown, Position{Row: 2, Col: 1}},
	}

	for i, tt := range tests {
		tt.move(doc)
		if got := c.Position(); got != tt.want {
			t.Errorf("step %d: Position() = %v, want %v", i, got, tt.want)
		}
	}
}

func TestBoundsHoldForRandomMoves(t *testing.T) {
	docs := []*document.Document{
		document.Empty(),
		document.Load("x"),
		document.Load("abc\n\nlonger line here\nde\n\n"),
		document.Load("世界\n🇩🇪🇫🇷\nplain"),
	}
	rng := rand.New(rand.NewSource(42))

	for _, doc := range docs {
		c := New()
		moves := []func(Bounds){c.MoveUp, c.MoveDown, c.MoveLeft, c.MoveRight}

		for i := 0; i < 2000; i++ {
			moves[rng.Intn(len(moves))](doc)

			p := c.Position()
			if p.Row < 0 || p.Row > doc.LineCount() {
				t.Fatalf("row %d out of [0, %d]", p.Row, doc.LineCount())
			}
			if p.Col < 0 || p.Col > doc.Width(p.Row) {
				t.Fatalf("col %d out of [0, %d] on row %d", p.Col, doc.Width(p.Row), p.Row)
			}
		}
	}
}

func TestEmptyDocument(t *testing.T) {
	doc := document.Empty()
	c := New()

	c.MoveDown(doc)
	c.MoveRight(doc)
	c.MoveLeft(doc)
	c.MoveUp(doc)

	if got := c.Position(); got != (Position{}) {
		t.Errorf("Position() = %v, want origin", got)
	}
}

func TestReset(t *testing.T) {
	c := at(3, 4)
	c.SetShape(ShapeBar)

	c.Reset()

	if c.Position() != (Position{}) {
		t.Errorf("Position() = %v, want origin", c.Position())
	}
	if c.Shape() != ShapeBar {
		t.Error("Reset should keep the shape")
	}
}

func TestShape(t *testing.T) {
	tests := []struct {
		shape Shape
		name  string
		style backend.CursorStyle
	}{
		{ShapeBlock, "block", backend.CursorBlock},
		{ShapeBar, "bar", backend.CursorBar},
	}

	for _, tt := range tests {
		if got := tt.shape.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.shape.CursorStyle(); got != tt.style {
			t.Errorf("CursorStyle() = %v, want %v", got, tt.style)
		}
	}
}

func TestApply(t *testing.T) {
	term := backend.NewNullBackend(20, 10)
	term.Init()

	c := New()
	c.SetShape(ShapeBar)
	c.Apply(term, Position{Row: 2, Col: 7}, true)

	x, y, visible := term.CursorPosition()
	if x != 7 || y != 2 || !visible {
		t.Errorf("cursor at (%d, %d, %v), want (7, 2, true)", x, y, visible)
	}
	if term.CursorStyleValue() != backend.CursorBar {
		t.Errorf("cursor style = %v, want bar", term.CursorStyleValue())
	}

	c.Apply(term, Position{}, false)
	if _, _, visible := term.CursorPosition(); visible {
		t.Error("cursor should be hidden")
	}

	// A nil terminal is ignored.
	c.Apply(nil, Position{}, true)
}

func TestPositionString(t *testing.T) {
	if got := (Position{Row: 3, Col: 14}).String(); got != "3:14" {
		t.Errorf("String() = %q, want %q", got, "3:14")
	}
}
