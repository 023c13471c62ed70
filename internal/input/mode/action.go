package mode

import (
	"fmt"

	"github.com/dshills/stormview/internal/cursor"
)

// ActionKind enumerates the closed set of intents a mode can produce.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionShowCursor
	ActionHideCursor
	ActionSetCursorPosition
	ActionSetMode
	ActionMessage
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:              "none",
	ActionMoveUp:            "moveUp",
	ActionMoveDown:          "moveDown",
	ActionMoveLeft:          "moveLeft",
	ActionMoveRight:         "moveRight",
	ActionShowCursor:        "showCursor",
	ActionHideCursor:        "hideCursor",
	ActionSetCursorPosition: "setCursorPosition",
	ActionSetMode:           "setMode",
	ActionMessage:           "message",
	ActionQuit:              "quit",
}

// String returns the action kind name.
func (k ActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return fmt.Sprintf("action(%d)", k)
}

// Action is a single intent produced by a Mode and applied by State.
// Only the field matching Kind carries meaning.
type Action struct {
	Kind ActionKind

	// Position is the screen cell for ActionSetCursorPosition.
	Position cursor.Position

	// Mode is the target of ActionSetMode.
	Mode Mode

	// Text is the body of ActionMessage.
	Text string
}

// None returns the explicit no-op action.
func None() Action { return Action{Kind: ActionNone} }

// MoveUp moves the cursor one line up.
func MoveUp() Action { return Action{Kind: ActionMoveUp} }

// MoveDown moves the cursor one line down, stopping at the append row.
func MoveDown() Action { return Action{Kind: ActionMoveDown} }

// MoveLeft moves the cursor one character left, wrapping to the end of the
// previous line.
func MoveLeft() Action { return Action{Kind: ActionMoveLeft} }

// MoveRight moves the cursor one character right, wrapping to the start of
// the next line.
func MoveRight() Action { return Action{Kind: ActionMoveRight} }

// ShowCursor makes the hardware cursor visible.
func ShowCursor() Action { return Action{Kind: ActionShowCursor} }

// HideCursor hides the hardware cursor.
func HideCursor() Action { return Action{Kind: ActionHideCursor} }

// SetCursorPosition places the hardware cursor at screen cell p.
func SetCursorPosition(p cursor.Position) Action {
	return Action{Kind: ActionSetCursorPosition, Position: p}
}

// SetMode switches the active mode.
func SetMode(m Mode) Action {
	return Action{Kind: ActionSetMode, Mode: m}
}

// Message replaces the transient status message.
func Message(text string) Action {
	return Action{Kind: ActionMessage, Text: text}
}

// Quit asks the loop to stop after drawing one more frame.
func Quit() Action { return Action{Kind: ActionQuit} }

// String returns a readable form used in debug logs.
func (a Action) String() string {
	switch a.Kind {
	case ActionSetCursorPosition:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Position)
	case ActionSetMode:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Mode)
	case ActionMessage:
		return fmt.Sprintf("%s(%q)", a.Kind, a.Text)
	default:
		return a.Kind.String()
	}
}
