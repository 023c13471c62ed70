package mode

import (
	"fmt"
	"strings"

	"github.com/dshills/stormview/internal/cursor"
	"github.com/dshills/stormview/internal/input/key"
)

// Mode names.
const (
	ModeNormal = "normal"
	ModeInsert = "insert"
)

// Mode is the active key interpretation strategy.
// The zero value is Normal.
type Mode uint8

const (
	// Normal is the initial navigation mode.
	Normal Mode = iota
	// Insert is a navigation submode with a bar cursor.
	Insert
)

// Name returns the mode identifier ("normal", "insert").
func (m Mode) Name() string {
	switch m {
	case Normal:
		return ModeNormal
	case Insert:
		return ModeInsert
	default:
		return fmt.Sprintf("mode(%d)", m)
	}
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return m.Name()
}

// DisplayName returns the name shown in the status line.
func (m Mode) DisplayName() string {
	return strings.ToUpper(m.Name())
}

// CursorShape returns the cursor shape for the mode.
func (m Mode) CursorShape() cursor.Shape {
	if m == Insert {
		return cursor.ShapeBar
	}
	return cursor.ShapeBlock
}

// Parse returns the mode with the given name (case-insensitive).
func Parse(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ModeNormal:
		return Normal, nil
	case ModeInsert:
		return Insert, nil
	default:
		return Normal, fmt.Errorf("unknown mode: %q", name)
	}
}

// Interpret maps a key event to the action it requests in this mode.
func (m Mode) Interpret(ev key.Event) Action {
	switch m {
	case Normal:
		return interpretNormal(ev)
	case Insert:
		return interpretInsert(ev)
	default:
		return None()
	}
}

func interpretNormal(ev key.Event) Action {
	if !ev.IsRune() || ev.IsModified() {
		return None()
	}

	switch ev.Rune {
	case 'q':
		return Quit()
	case 'i':
		return SetMode(Insert)
	case 'h':
		return MoveLeft()
	case 'j':
		return MoveDown()
	case 'k':
		return MoveUp()
	case 'l':
		return MoveRight()
	default:
		return None()
	}
}

func interpretInsert(ev key.Event) Action {
	if ev.IsModified() {
		return None()
	}

	switch ev.Key {
	case key.KeyEscape:
		return SetMode(Normal)
	case key.KeyUp:
		return MoveUp()
	case key.KeyDown:
		return MoveDown()
	case key.KeyLeft:
		return MoveLeft()
	case key.KeyRight:
		return MoveRight()
	default:
		return None()
	}
}
