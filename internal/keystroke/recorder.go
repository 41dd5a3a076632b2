package keystroke

import (
	"sync"
	"time"
)

// processStart anchors the package monotonic clock. time.Since reads
// the monotonic component of the captured instant.
var processStart = time.Now()

// Monotonic returns the seconds elapsed on the process monotonic clock.
// Capture code that has no better clock can use this for timestamps.
func Monotonic() float64 {
	return time.Since(processStart).Seconds()
}

// Recorder accumulates one session's events on behalf of a capture
// collaborator. It is the only mutable state in the system: a single
// writer appends, and analysis consumes immutable snapshots.
//
// The recorder derives IntervalSincePrevious and the session start
// timestamp so capture code only has to hand over raw timestamped
// actions.
type Recorder struct {
	mu sync.Mutex

	keystrokes   []KeystrokeEvent
	pastes       []PasteEvent
	sessionStart *float64
	lastEventAt  *float64
}

// NewRecorder creates an empty session recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordKeystroke appends a keystroke event. The timestamp must come
// from the same monotonic clock as every other event in the session
// and must not decrease.
func (r *Recorder) RecordKeystroke(timestamp float64, character string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev := KeystrokeEvent{
		Timestamp: timestamp,
		Character: character,
	}
	if r.lastEventAt != nil {
		ev.IntervalSincePrevious = floatPtr(timestamp - *r.lastEventAt)
	}
	r.noteEvent(timestamp)
	r.keystrokes = append(r.keystrokes, ev)
}

// RecordDeletion appends a deletion event.
func (r *Recorder) RecordDeletion(timestamp float64) {
	r.RecordKeystroke(timestamp, DeleteSentinel)
}

// RecordPaste appends a paste event. Pastes that introduce no
// characters are not recorded.
func (r *Recorder) RecordPaste(timestamp float64, characterCount int) {
	if characterCount <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.noteEvent(timestamp)
	r.pastes = append(r.pastes, PasteEvent{
		Timestamp:      timestamp,
		CharacterCount: characterCount,
	})
}

// noteEvent updates session start and last-event bookkeeping.
// Caller holds the lock.
func (r *Recorder) noteEvent(timestamp float64) {
	if r.sessionStart == nil {
		r.sessionStart = floatPtr(timestamp)
	}
	r.lastEventAt = floatPtr(timestamp)
}

// Reset clears all events and the session start, beginning a new,
// independent session. There is no cross-session memory.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.keystrokes = nil
	r.pastes = nil
	r.sessionStart = nil
	r.lastEventAt = nil
}

// SessionStart returns the session start timestamp, or false when no
// session has started.
func (r *Recorder) SessionStart() (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sessionStart == nil {
		return 0, false
	}
	return *r.sessionStart, true
}

// Snapshot returns an immutable copy of the current session log.
// Later appends never mutate a returned snapshot, so analysis can run
// concurrently with capture.
func (r *Recorder) Snapshot() Log {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := Log{
		Keystrokes: make([]KeystrokeEvent, len(r.keystrokes)),
		Pastes:     make([]PasteEvent, len(r.pastes)),
	}
	copy(log.Keystrokes, r.keystrokes)
	copy(log.Pastes, r.pastes)
	if r.sessionStart != nil {
		log.SessionStart = floatPtr(*r.sessionStart)
	}
	return log
}
