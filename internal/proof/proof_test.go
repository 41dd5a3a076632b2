package proof

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typewitness/internal/keystroke"
)

// Test helpers

func fixedWallClock() func() time.Time {
	at := time.Date(2026, 8, 29, 10, 15, 42, 123456000, time.UTC)
	return func() time.Time { return at }
}

func fixedMonoClock(at float64) func() float64 {
	return func() float64 { return at }
}

// testLog builds a natural-looking session: 35 keystrokes with 3
// deletions at alternating 113ms/257ms intervals.
func testLog(t *testing.T) keystroke.Log {
	t.Helper()
	rec := keystroke.NewRecorder()
	ts := 40.0
	for i := 0; i < 35; i++ {
		switch i {
		case 5, 14, 28:
			rec.RecordDeletion(ts)
		default:
			rec.RecordKeystroke(ts, "a")
		}
		if i%2 == 0 {
			ts += 0.113
		} else {
			ts += 0.257
		}
	}
	return rec.Snapshot()
}

func newTestExporter(opts Options) *Exporter {
	return NewExporter(opts,
		WithWallClock(fixedWallClock()),
		WithMonotonicClock(fixedMonoClock(100.0)),
		WithSDKVersion("1.0.0"),
	)
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		name     string
		expected Options
	}{
		{PresetStandard, Options{IncludeRawEvents: true}},
		{PresetMinimal, Options{}},
		{PresetRedacted, Options{IncludeRawEvents: true, RedactCharacters: true}},
		{PresetFull, Options{IncludeRawEvents: true, IncludeContentVerification: true}},
	}
	for _, tt := range tests {
		opts, err := ParsePreset(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, opts, tt.name)
	}

	_, err := ParsePreset("bogus")
	assert.Error(t, err)
}

func TestExportRoundTrip(t *testing.T) {
	exporter := newTestExporter(StandardOptions())
	p := exporter.Export(testLog(t), "")

	data, err := p.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestEncodeDeterministic(t *testing.T) {
	log := testLog(t)

	first, err := newTestExporter(StandardOptions()).Export(log, "").Encode()
	require.NoError(t, err)
	second, err := newTestExporter(StandardOptions()).Export(log, "").Encode()
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "identical inputs must encode byte-identically")
}

func TestExportMetadata(t *testing.T) {
	p := newTestExporter(StandardOptions()).Export(testLog(t), "")

	assert.Equal(t, "1.0", p.Version)
	assert.Equal(t, "2026-08-29T10:15:42.123456Z", p.Metadata.ExportedAt)
	assert.Equal(t, "1.0.0", p.Metadata.SDKVersion)

	// Session started 60 monotonic seconds before export (mono now
	// 100, session start 40): wall clock minus 60s.
	require.NotNil(t, p.Metadata.SessionStartedAt)
	assert.Equal(t, "2026-08-29T10:14:42.123456Z", *p.Metadata.SessionStartedAt)

	// 34 intervals, 17 each of 113ms and 257ms: 6290ms total.
	require.NotNil(t, p.Metadata.SessionDurationMs)
	assert.Equal(t, int64(6290), *p.Metadata.SessionDurationMs)
}

func TestExportMetadataWithoutSession(t *testing.T) {
	p := newTestExporter(StandardOptions()).Export(keystroke.Log{}, "")

	assert.Nil(t, p.Metadata.SessionStartedAt)
	assert.Nil(t, p.Metadata.SessionDurationMs)
	// Events requested but no session started: empty, not null.
	require.NotNil(t, p.Events)
	assert.Empty(t, p.Events)
}

func TestExportMetricsMilliseconds(t *testing.T) {
	p := newTestExporter(MinimalOptions()).Export(testLog(t), "")

	assert.Equal(t, 35, p.Metrics.TotalKeystrokes)
	assert.Equal(t, 3, p.Metrics.DeletionCount)
	assert.InDelta(t, 3.0/35.0, p.Metrics.CorrectionRate, 1e-9)

	require.NotNil(t, p.Metrics.AverageIntervalMs)
	assert.InDelta(t, 185.0, *p.Metrics.AverageIntervalMs, 1e-6)
	require.NotNil(t, p.Metrics.TimingVarianceMs)
	assert.InDelta(t, 72.0, *p.Metrics.TimingVarianceMs, 1e-6)
	require.NotNil(t, p.Metrics.EstimatedWPM)
	assert.InDelta(t, 64.8648648, *p.Metrics.EstimatedWPM, 1e-6)
}

func TestExportConfidenceFactors(t *testing.T) {
	p := newTestExporter(MinimalOptions()).Export(testLog(t), "")

	require.Len(t, p.Confidence.Factors, 6)
	names := []string{
		"Sample Volume", "Timing Variance", "Typing Speed",
		"Correction Rate", "Burst Detection", "Paste Detection",
	}
	weights := []float64{0.10, 0.20, 0.15, 0.15, 0.20, 0.20}
	for i, f := range p.Confidence.Factors {
		assert.Equal(t, names[i], f.Name)
		assert.Equal(t, weights[i], f.Weight)
	}
	assert.Equal(t, 100, p.Confidence.Score)
	assert.Equal(t, "High confidence: likely human typed", p.Confidence.Interpretation)
}

func TestExportEvents(t *testing.T) {
	p := newTestExporter(StandardOptions()).Export(testLog(t), "")

	require.Len(t, p.Events, 35)
	assert.Equal(t, 0, p.Events[0].Index)
	assert.Equal(t, int64(0), p.Events[0].TimestampMs)
	assert.Nil(t, p.Events[0].IntervalMs)

	assert.Equal(t, 1, p.Events[1].Index)
	assert.Equal(t, int64(113), p.Events[1].TimestampMs)
	require.NotNil(t, p.Events[1].IntervalMs)
	assert.Equal(t, int64(113), *p.Events[1].IntervalMs)

	assert.Equal(t, keystroke.DeleteSentinel, p.Events[5].Character)
}

func TestExportMinimalOmitsEvents(t *testing.T) {
	p := newTestExporter(MinimalOptions()).Export(testLog(t), "")

	assert.Nil(t, p.Events)
	assert.Nil(t, p.Content)

	data, err := p.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"events": null`)
	assert.Contains(t, string(data), `"content": null`)
}

func TestExportRedaction(t *testing.T) {
	p := newTestExporter(RedactedOptions()).Export(testLog(t), "")

	require.Len(t, p.Events, 35)
	for i, ev := range p.Events {
		switch i {
		case 5, 14, 28:
			assert.Equal(t, keystroke.DeleteSentinel, ev.Character, "deletion sentinel must not be redacted")
		default:
			assert.Equal(t, "*", ev.Character)
		}
	}
}

func TestExportContentVerification(t *testing.T) {
	text := "The quick brown fox — 寿司"
	p := newTestExporter(FullOptions()).Export(testLog(t), text)

	require.NotNil(t, p.Content)
	assert.Equal(t, 24, p.Content.Length, "length counts characters, not bytes")

	digest := sha256.Sum256([]byte(text))
	assert.Equal(t, hex.EncodeToString(digest[:]), p.Content.SHA256)
}

func TestEncodeRejectsInvalidUTF8(t *testing.T) {
	p := newTestExporter(StandardOptions()).Export(testLog(t), "")
	p.Events[3].Character = string([]byte{0xff, 0xfe})

	_, err := p.Encode()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEncodingFailed))
}

func TestVerifyExportedProof(t *testing.T) {
	text := "final draft"
	p := newTestExporter(FullOptions()).Export(testLog(t), text)
	data, err := p.Encode()
	require.NoError(t, err)

	result := Verify(data, &text)
	for _, c := range result.Checks {
		assert.True(t, c.Passed, "check %s: %s", c.Name, c.Detail)
	}
	assert.True(t, result.Valid)
}

func TestVerifyMinimalProof(t *testing.T) {
	data, err := newTestExporter(MinimalOptions()).Export(testLog(t), "").Encode()
	require.NoError(t, err)

	result := Verify(data, nil)
	assert.True(t, result.Valid)
}

func TestVerifyDetectsTampering(t *testing.T) {
	p := newTestExporter(StandardOptions()).Export(testLog(t), "")

	// Lower the score without recomputing the weighted sum.
	p.Confidence.Score = 42
	p.Confidence.Interpretation = "Low confidence: suspicious pattern"
	data, err := json.MarshalIndent(p, "", "  ")
	require.NoError(t, err)

	result := Verify(data, nil)
	assert.False(t, result.Valid)

	failed := map[string]bool{}
	for _, c := range result.Checks {
		if !c.Passed {
			failed[c.Name] = true
		}
	}
	assert.True(t, failed["score"], "score tampering must be detected")
}

func TestVerifyDetectsContentMismatch(t *testing.T) {
	text := "original"
	data, err := newTestExporter(FullOptions()).Export(testLog(t), text).Encode()
	require.NoError(t, err)

	other := "tampered"
	result := Verify(data, &other)
	assert.False(t, result.Valid)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	result := Verify([]byte(`{"version":"2.0"}`), nil)
	assert.False(t, result.Valid)
}
