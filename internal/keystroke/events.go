// Package keystroke defines the input event model for typing analysis.
//
// IMPORTANT: this package models events that were already captured by an
// external collaborator (an IME, editor hook, or form widget). It never
// reads device input itself. Events carry a single inserted grapheme (or
// the deletion sentinel) and monotonic timing; no surrounding text is
// ever reconstructed here.
package keystroke

// DeleteSentinel is the character recorded for a backspace/deletion
// action. It is exempt from redaction on export: it reveals editing
// behavior, not content.
const DeleteSentinel = "[DELETE]"

// KeystrokeEvent is one captured keystroke.
type KeystrokeEvent struct {
	// Timestamp is monotonic time in seconds. Timestamps are strictly
	// non-decreasing within a session.
	Timestamp float64

	// Character is the inserted grapheme, or DeleteSentinel for a
	// deletion.
	Character string

	// IntervalSincePrevious is the elapsed seconds since the prior
	// event in the same session. Nil for the first event.
	IntervalSincePrevious *float64
}

// IsDeletion reports whether the event records a deletion action.
func (e KeystrokeEvent) IsDeletion() bool {
	return e.Character == DeleteSentinel
}

// PasteEvent is one captured paste action. Zero-character pastes are
// never recorded.
type PasteEvent struct {
	// Timestamp is monotonic time in seconds.
	Timestamp float64

	// CharacterCount is the number of characters the paste introduced.
	CharacterCount int
}

// Log is an immutable snapshot of one session's captured events,
// ordered by increasing timestamp. Downstream analysis assumes the
// ordering and does not sort.
type Log struct {
	// Keystrokes are the captured keystroke events, deletions included.
	Keystrokes []KeystrokeEvent

	// Pastes are the captured paste events.
	Pastes []PasteEvent

	// SessionStart is the monotonic timestamp of the first event in
	// the session. Nil when no session has started.
	SessionStart *float64
}

// Empty reports whether the log contains no events at all.
func (l Log) Empty() bool {
	return len(l.Keystrokes) == 0 && len(l.Pastes) == 0
}

// LastTimestamp returns the monotonic timestamp of the latest event,
// or false when the log is empty. Events are ordered, so only the
// slice tails need checking.
func (l Log) LastTimestamp() (float64, bool) {
	if l.Empty() {
		return 0, false
	}
	last := -1.0
	found := false
	if n := len(l.Keystrokes); n > 0 {
		last = l.Keystrokes[n-1].Timestamp
		found = true
	}
	if n := len(l.Pastes); n > 0 {
		if ts := l.Pastes[n-1].Timestamp; !found || ts > last {
			last = ts
		}
		found = true
	}
	return last, found
}

// floatPtr is a small helper for optional seconds values.
func floatPtr(v float64) *float64 {
	return &v
}
