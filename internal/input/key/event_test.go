package key

import "testing"

func TestEventIsModified(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{"plain rune", NewRuneEvent('q', ModNone), false},
		{"shifted rune", NewRuneEvent('Q', ModShift), false},
		{"ctrl rune", NewRuneEvent('q', ModCtrl), true},
		{"alt rune", NewRuneEvent('q', ModAlt), true},
		{"plain special", NewSpecialEvent(KeyEscape, ModNone), false},
		{"shift special", NewSpecialEvent(KeyDown, ModShift), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.IsModified(); got != tt.want {
				t.Errorf("IsModified() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventIsRune(t *testing.T) {
	if !NewRuneEvent('x', ModNone).IsRune() {
		t.Error("rune event should be a rune")
	}
	if (Event{Key: KeyRune}).IsRune() {
		t.Error("rune event without a character should not be a rune")
	}
	if NewSpecialEvent(KeyEnter, ModNone).IsRune() {
		t.Error("special event should not be a rune")
	}
}

func TestEventIsEscape(t *testing.T) {
	if !NewSpecialEvent(KeyEscape, ModNone).IsEscape() {
		t.Error("Esc should be escape")
	}
	if NewSpecialEvent(KeyEscape, ModCtrl).IsEscape() {
		t.Error("Ctrl+Esc should not be escape")
	}
}

func TestEventEqualsIgnoresTimestamp(t *testing.T) {
	a := NewRuneEvent('j', ModNone)
	b := Event{Key: KeyRune, Rune: 'j'}

	if !a.Equals(b) {
		t.Error("events differing only in timestamp should be equal")
	}
	if a.Equals(NewRuneEvent('k', ModNone)) {
		t.Error("different runes should not be equal")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewRuneEvent('a', ModNone), "a"},
		{NewRuneEvent('A', ModShift), "A"},
		{NewRuneEvent(' ', ModNone), "<Space>"},
		{NewRuneEvent('s', ModCtrl), "<C-s>"},
		{NewSpecialEvent(KeyEscape, ModNone), "<Esc>"},
		{NewSpecialEvent(KeyEnter, ModNone), "<CR>"},
		{NewSpecialEvent(KeyDown, ModNone), "<Down>"},
		{NewSpecialEvent(KeyUp, ModShift), "<S-Up>"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
