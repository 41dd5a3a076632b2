package proof

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"runtime"
	"time"
	"unicode/utf8"

	"typewitness/internal/analysis"
	"typewitness/internal/keystroke"
)

// SDKVersion identifies the analysis library release recorded in
// exported proofs.
const SDKVersion = "1.0.0"

// timestampFormat is ISO-8601 with fractional seconds and UTC offset.
const timestampFormat = "2006-01-02T15:04:05.000000Z07:00"

// Exporter assembles proofs from event log snapshots. The zero-cost
// construction options exist so tests can pin both clocks.
type Exporter struct {
	opts       Options
	wallClock  func() time.Time
	monoClock  func() float64
	sdkVersion string
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithWallClock overrides the wall-clock source.
func WithWallClock(clock func() time.Time) ExporterOption {
	return func(e *Exporter) { e.wallClock = clock }
}

// WithMonotonicClock overrides the monotonic clock source. It must be
// the same clock the event timestamps were captured on.
func WithMonotonicClock(clock func() float64) ExporterOption {
	return func(e *Exporter) { e.monoClock = clock }
}

// WithSDKVersion overrides the recorded SDK version.
func WithSDKVersion(version string) ExporterOption {
	return func(e *Exporter) { e.sdkVersion = version }
}

// NewExporter creates an exporter with the given export options.
func NewExporter(opts Options, eopts ...ExporterOption) *Exporter {
	e := &Exporter{
		opts:       opts,
		wallClock:  time.Now,
		monoClock:  keystroke.Monotonic,
		sdkVersion: SDKVersion,
	}
	for _, opt := range eopts {
		opt(e)
	}
	return e
}

// Export runs the full pipeline over one event log snapshot:
// aggregation, scoring, and proof assembly. finalText is only
// consulted when content verification is enabled; pass "" otherwise.
// Export itself is total; only encoding can fail.
func (e *Exporter) Export(log keystroke.Log, finalText string) *Proof {
	metrics := analysis.Aggregate(log)
	score := analysis.Score(metrics)
	return e.Assemble(log, metrics, score, finalText)
}

// Assemble builds a proof from already-computed metrics and score.
func (e *Exporter) Assemble(log keystroke.Log, metrics analysis.Metrics, score analysis.ConfidenceScore, finalText string) *Proof {
	p := &Proof{
		Version:    Version,
		Metadata:   e.buildMetadata(log, metrics),
		Metrics:    buildMetrics(metrics),
		Confidence: buildConfidence(score),
	}

	if e.opts.IncludeRawEvents {
		p.Events = e.buildEvents(log)
	}

	if e.opts.IncludeContentVerification {
		digest := sha256.Sum256([]byte(finalText))
		p.Content = &ContentVerification{
			Length: utf8.RuneCountInString(finalText),
			SHA256: hex.EncodeToString(digest[:]),
		}
	}

	return p
}

// buildMetadata materializes wall-clock fields. The session start is
// reconstructed by subtracting the monotonic elapsed time from the
// current wall clock, so no absolute capture time ever exists before
// export.
func (e *Exporter) buildMetadata(log keystroke.Log, metrics analysis.Metrics) Metadata {
	now := e.wallClock()
	md := Metadata{
		ExportedAt:      now.Format(timestampFormat),
		SDKVersion:      e.sdkVersion,
		Platform:        runtime.GOOS,
		PlatformVersion: runtime.Version(),
	}

	if log.SessionStart != nil {
		elapsed := e.monoClock() - *log.SessionStart
		started := now.Add(-time.Duration(elapsed * float64(time.Second))).Format(timestampFormat)
		md.SessionStartedAt = &started
	}

	if metrics.SessionDuration != nil {
		ms := int64(math.Round(*metrics.SessionDuration * 1000))
		md.SessionDurationMs = &ms
	}

	return md
}

// buildMetrics converts second-based statistics to milliseconds and
// recomputes WPM. Optional fields stay absent rather than zeroed.
func buildMetrics(m analysis.Metrics) Metrics {
	out := Metrics{
		TotalKeystrokes: m.TotalKeystrokes,
		DeletionCount:   m.DeletionCount,
		CorrectionRate:  m.CorrectionRate,
	}
	if m.AverageInterval != nil {
		avgMs := *m.AverageInterval * 1000
		out.AverageIntervalMs = &avgMs
		if *m.AverageInterval > 0 {
			wpm := analysis.EstimateWPM(*m.AverageInterval)
			out.EstimatedWPM = &wpm
		}
	}
	if m.TimingStddev != nil {
		sdMs := *m.TimingStddev * 1000
		out.TimingVarianceMs = &sdMs
	}
	return out
}

// buildConfidence pairs each factor with its fixed weight.
func buildConfidence(score analysis.ConfidenceScore) Confidence {
	out := Confidence{
		Score:          score.Score,
		Interpretation: score.Interpretation,
		Factors:        make([]FactorRecord, 0, len(score.Factors)),
	}
	for _, f := range score.Factors {
		weight, _ := analysis.FactorWeight(f.Name)
		out.Factors = append(out.Factors, FactorRecord{
			Name:        f.Name,
			Score:       f.Score,
			Weight:      weight,
			Explanation: f.Explanation,
		})
	}
	return out
}

// buildEvents normalizes keystroke timestamps relative to session
// start. Without a session start the events export as empty.
func (e *Exporter) buildEvents(log keystroke.Log) []EventRecord {
	records := make([]EventRecord, 0, len(log.Keystrokes))
	if log.SessionStart == nil {
		return records
	}

	start := *log.SessionStart
	for i, ev := range log.Keystrokes {
		rec := EventRecord{
			Index:       i,
			TimestampMs: int64(math.Round((ev.Timestamp - start) * 1000)),
			Character:   e.exportCharacter(ev.Character),
		}
		if ev.IntervalSincePrevious != nil {
			ms := int64(math.Round(*ev.IntervalSincePrevious * 1000))
			rec.IntervalMs = &ms
		}
		records = append(records, rec)
	}
	return records
}

// exportCharacter applies redaction. The deletion sentinel is never
// redacted.
func (e *Exporter) exportCharacter(ch string) string {
	if e.opts.RedactCharacters && ch != keystroke.DeleteSentinel {
		return "*"
	}
	return ch
}
