// Package mode provides the modal input system for stormview.
//
// A Mode is a closed variant, Normal or Insert, that interprets one key
// event into exactly one Action:
//
//	Normal:  q quit, i insert, h/j/k/l move
//	Insert:  Esc normal, arrows move
//
// Interpretation is a pure function of the mode and the event. Applying the
// resulting Action is the job of the state package; nothing here mutates
// shared state.
//
// # Mode Lifecycle
//
//	┌─────────┐   i    ┌─────────┐
//	│ Normal  │ ─────▶ │ Insert  │
//	└─────────┘        └─────────┘
//	     ▲       Esc        │
//	     └──────────────────┘
//
// Keys a mode does not recognise produce ActionNone rather than an error.
package mode
