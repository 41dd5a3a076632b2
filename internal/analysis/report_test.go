package analysis

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintReport(t *testing.T) {
	m := Aggregate(scenarioLog())
	score := Score(m)

	var buf bytes.Buffer
	PrintReport(&buf, m, score)
	out := buf.String()

	for _, want := range []string{
		"TYPING CONFIDENCE ANALYSIS",
		"Keystrokes:     35",
		"Sample Volume:",
		"Paste Detection:",
		"SCORE: 100/100",
		"High confidence: likely human typed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestFormatScoreBar(t *testing.T) {
	tests := []struct {
		score    int
		width    int
		expected string
	}{
		{0, 4, "[----]"},
		{100, 4, "[####]"},
		{50, 4, "[##--]"},
		{150, 4, "[####]"},
		{-5, 4, "[----]"},
		{50, 0, ""},
	}
	for _, tt := range tests {
		if got := FormatScoreBar(tt.score, tt.width); got != tt.expected {
			t.Errorf("FormatScoreBar(%d, %d) = %q, want %q", tt.score, tt.width, got, tt.expected)
		}
	}
}
