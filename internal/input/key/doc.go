// Package key provides key event types and parsing for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (special keys or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press with modifiers and timestamp
//
// # Key Specifications
//
// Key specifications can be written in two formats:
//
//   - Simple keys and modifiers: "a", "Enter", "Ctrl+S"
//   - Vim-style: "<C-s>", "<CR>", "<Esc>", "<Down>"
//
// ParseSequence reads a run of such keys ("jj<Esc>") into a slice of events,
// which is how scripts replay input.
package key
