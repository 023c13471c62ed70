package state

import (
	"time"

	"github.com/dshills/stormview/internal/cursor"
	"github.com/dshills/stormview/internal/document"
)

// Default configuration values.
const (
	DefaultMessageTimeout = 5 * time.Second
	DefaultCols           = 80
	DefaultRows           = 24
)

// Option configures a State during creation.
type Option func(*State)

// WithDocument sets the document to view.
func WithDocument(doc *document.Document) Option {
	return func(s *State) {
		if doc != nil {
			s.doc = doc
		}
	}
}

// WithTerminal attaches the terminal used by the cursor visibility and
// positioning actions.
func WithTerminal(t cursor.Terminal) Option {
	return func(s *State) {
		s.term = t
	}
}

// WithClock replaces time.Now as the source of message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMessageTimeout sets how long a message stays visible.
func WithMessageTimeout(d time.Duration) Option {
	return func(s *State) {
		if d > 0 {
			s.messageTimeout = d
		}
	}
}

// WithSize sets the initial terminal size.
func WithSize(cols, rows int) Option {
	return func(s *State) {
		s.view.Resize(cols, rows)
	}
}
