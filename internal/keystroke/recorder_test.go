package keystroke

import (
	"testing"
)

func TestRecorderDerivesIntervalsAndSessionStart(t *testing.T) {
	rec := NewRecorder()

	if _, ok := rec.SessionStart(); ok {
		t.Error("session start must be absent before the first event")
	}

	rec.RecordKeystroke(1.0, "h")
	rec.RecordKeystroke(1.2, "i")
	rec.RecordDeletion(1.5)

	start, ok := rec.SessionStart()
	if !ok || start != 1.0 {
		t.Errorf("session start = %v (%v), want 1.0", start, ok)
	}

	log := rec.Snapshot()
	if len(log.Keystrokes) != 3 {
		t.Fatalf("expected 3 keystrokes, got %d", len(log.Keystrokes))
	}
	if log.Keystrokes[0].IntervalSincePrevious != nil {
		t.Error("first event must carry no interval")
	}
	if iv := log.Keystrokes[1].IntervalSincePrevious; iv == nil || *iv < 0.199 || *iv > 0.201 {
		t.Errorf("second interval = %v, want 0.2", iv)
	}
	if iv := log.Keystrokes[2].IntervalSincePrevious; iv == nil || *iv < 0.299 || *iv > 0.301 {
		t.Errorf("third interval = %v, want 0.3", iv)
	}
	if !log.Keystrokes[2].IsDeletion() {
		t.Error("third event must be a deletion")
	}
}

func TestRecorderIntervalSpansPaste(t *testing.T) {
	rec := NewRecorder()
	rec.RecordKeystroke(1.0, "a")
	rec.RecordPaste(2.0, 40)
	rec.RecordKeystroke(2.5, "b")

	log := rec.Snapshot()
	// The interval is measured from the prior event of either kind.
	if iv := log.Keystrokes[1].IntervalSincePrevious; iv == nil || *iv != 0.5 {
		t.Errorf("interval after paste = %v, want 0.5", iv)
	}
	if log.SessionStart == nil || *log.SessionStart != 1.0 {
		t.Errorf("session start = %v, want 1.0", log.SessionStart)
	}
}

func TestRecorderIgnoresEmptyPaste(t *testing.T) {
	rec := NewRecorder()
	rec.RecordPaste(1.0, 0)
	rec.RecordPaste(1.1, -3)

	log := rec.Snapshot()
	if len(log.Pastes) != 0 {
		t.Errorf("expected no pastes, got %d", len(log.Pastes))
	}
	if log.SessionStart != nil {
		t.Error("ignored pastes must not start a session")
	}
}

func TestRecorderPasteStartsSession(t *testing.T) {
	rec := NewRecorder()
	rec.RecordPaste(3.0, 25)

	log := rec.Snapshot()
	if log.SessionStart == nil || *log.SessionStart != 3.0 {
		t.Errorf("session start = %v, want 3.0", log.SessionStart)
	}
}

func TestRecorderReset(t *testing.T) {
	rec := NewRecorder()
	rec.RecordKeystroke(1.0, "a")
	rec.RecordPaste(1.5, 10)
	rec.Reset()

	log := rec.Snapshot()
	if !log.Empty() {
		t.Error("log must be empty after reset")
	}
	if log.SessionStart != nil {
		t.Error("session start must be cleared by reset")
	}

	// A new session derives intervals from scratch.
	rec.RecordKeystroke(5.0, "b")
	log = rec.Snapshot()
	if log.Keystrokes[0].IntervalSincePrevious != nil {
		t.Error("first event of a new session must carry no interval")
	}
	if log.SessionStart == nil || *log.SessionStart != 5.0 {
		t.Errorf("new session start = %v, want 5.0", log.SessionStart)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	rec := NewRecorder()
	rec.RecordKeystroke(1.0, "a")

	snap := rec.Snapshot()
	rec.RecordKeystroke(1.2, "b")
	rec.RecordPaste(1.4, 12)

	if len(snap.Keystrokes) != 1 || len(snap.Pastes) != 0 {
		t.Error("snapshot must not observe later appends")
	}
}

func TestLogLastTimestamp(t *testing.T) {
	var log Log
	if _, ok := log.LastTimestamp(); ok {
		t.Error("empty log must report no last timestamp")
	}

	log.Keystrokes = []KeystrokeEvent{{Timestamp: 1.0, Character: "a"}}
	if ts, ok := log.LastTimestamp(); !ok || ts != 1.0 {
		t.Errorf("last timestamp = %v (%v), want 1.0", ts, ok)
	}

	log.Pastes = []PasteEvent{{Timestamp: 2.5, CharacterCount: 3}}
	if ts, _ := log.LastTimestamp(); ts != 2.5 {
		t.Errorf("last timestamp = %v, want 2.5", ts)
	}
}

func TestMonotonicAdvances(t *testing.T) {
	a := Monotonic()
	b := Monotonic()
	if b < a {
		t.Errorf("monotonic clock went backward: %v then %v", a, b)
	}
}
