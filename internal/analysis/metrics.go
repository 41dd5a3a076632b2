// Package analysis reduces captured typing events into session metrics
// and scores how plausibly the input was typed by a human in real time.
package analysis

import (
	"math"

	"typewitness/internal/keystroke"
)

// Metrics are session-level statistics derived from one event log
// snapshot. A Metrics value is immutable and fully determined by its
// inputs; recomputing on a larger log simply produces a new value.
type Metrics struct {
	// TotalKeystrokes counts keystroke events, deletions included.
	TotalKeystrokes int

	// DeletionCount counts keystroke events carrying the deletion
	// sentinel.
	DeletionCount int

	// CorrectionRate is DeletionCount / TotalKeystrokes, 0 for an
	// empty log.
	CorrectionRate float64

	// AverageInterval is the arithmetic mean of all defined
	// inter-event intervals in seconds. Nil when no intervals exist.
	AverageInterval *float64

	// TimingStddev is the population standard deviation of the same
	// intervals. Population (divide by N) rather than sample: small
	// sessions must produce stable confidence outputs. Nil when no
	// intervals exist.
	TimingStddev *float64

	// SessionDuration is last event timestamp minus session start, in
	// seconds. Nil unless both exist; absence must propagate to the
	// scorer as "insufficient data", never default to 0.
	SessionDuration *float64

	// PasteCount and PastedCharacterCount sum over paste events.
	PasteCount           int
	PastedCharacterCount int

	// Keystrokes and Pastes reference the analyzed snapshot read-only;
	// burst detection needs the raw intervals.
	Keystrokes []keystroke.KeystrokeEvent
	Pastes     []keystroke.PasteEvent
}

// Intervals returns all defined inter-event intervals in seconds, in
// event order.
func (m Metrics) Intervals() []float64 {
	var intervals []float64
	for _, ev := range m.Keystrokes {
		if ev.IntervalSincePrevious != nil {
			intervals = append(intervals, *ev.IntervalSincePrevious)
		}
	}
	return intervals
}

// Aggregate reduces an ordered event log snapshot into Metrics.
// All paths are total: every division is guarded and every optional
// statistic is absent rather than defaulted.
func Aggregate(log keystroke.Log) Metrics {
	m := Metrics{
		Keystrokes: log.Keystrokes,
		Pastes:     log.Pastes,
	}

	var intervals []float64
	for _, ev := range log.Keystrokes {
		m.TotalKeystrokes++
		if ev.IsDeletion() {
			m.DeletionCount++
		}
		if ev.IntervalSincePrevious != nil {
			intervals = append(intervals, *ev.IntervalSincePrevious)
		}
	}

	if m.TotalKeystrokes > 0 {
		m.CorrectionRate = float64(m.DeletionCount) / float64(m.TotalKeystrokes)
	}

	if len(intervals) > 0 {
		mean := meanOf(intervals)
		stddev := populationStddev(intervals, mean)
		m.AverageInterval = &mean
		m.TimingStddev = &stddev
	}

	for _, p := range log.Pastes {
		m.PasteCount++
		m.PastedCharacterCount += p.CharacterCount
	}

	if log.SessionStart != nil {
		if last, ok := log.LastTimestamp(); ok {
			duration := last - *log.SessionStart
			m.SessionDuration = &duration
		}
	}

	return m
}

// meanOf computes the arithmetic mean of a non-empty slice.
func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStddev computes the population standard deviation
// (divide by N, not N-1) around the given mean.
func populationStddev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSquares := 0.0
	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}
