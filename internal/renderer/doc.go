// Package renderer provides the display layer for stormview.
//
// The renderer is responsible for:
//   - Drawing the visible document rows, with a filler glyph past the end
//   - Drawing the status bar and the transient message line
//   - Placing and shaping the hardware cursor
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (one pass)           │
//	├─────────────────────────────────────────┤
//	│  rows  │  statusline  │  message line   │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend (tests) │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	err := r.Render(st)
package renderer
