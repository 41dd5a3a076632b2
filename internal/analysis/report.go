package analysis

import (
	"fmt"
	"io"
	"strings"
)

// PrintReport writes a formatted typing analysis to w.
func PrintReport(w io.Writer, m Metrics, score ConfidenceScore) {
	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintln(w, "                      TYPING CONFIDENCE ANALYSIS")
	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Keystrokes:     %d\n", m.TotalKeystrokes)
	fmt.Fprintf(w, "Deletions:      %d (%.1f%%)\n", m.DeletionCount, m.CorrectionRate*100)
	fmt.Fprintf(w, "Pastes:         %d (%d characters)\n", m.PasteCount, m.PastedCharacterCount)
	if m.AverageInterval != nil {
		fmt.Fprintf(w, "Mean Interval:  %.0f ms\n", *m.AverageInterval*1000)
	}
	if m.TimingStddev != nil {
		fmt.Fprintf(w, "Interval SD:    %.0f ms\n", *m.TimingStddev*1000)
	}
	if m.AverageInterval != nil && *m.AverageInterval > 0 {
		fmt.Fprintf(w, "Est. Speed:     %.0f WPM\n", EstimateWPM(*m.AverageInterval))
	}
	if m.SessionDuration != nil {
		fmt.Fprintf(w, "Duration:       %.1f sec\n", *m.SessionDuration)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, strings.Repeat("-", 72))
	fmt.Fprintln(w, "SCORING FACTORS")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	fmt.Fprintln(w)

	for _, f := range score.Factors {
		weight, _ := FactorWeight(f.Name)
		fmt.Fprintf(w, "%-18s %3d  %s  (weight %.2f)\n",
			f.Name+":", f.Score, FormatScoreBar(f.Score, 20), weight)
		fmt.Fprintf(w, "  -> %s\n\n", f.Explanation)
	}

	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintf(w, "SCORE: %d/100 - %s\n", score.Score, score.Interpretation)
	fmt.Fprintln(w, strings.Repeat("=", 72))
}

// FormatScoreBar produces an ASCII bar for a 0-100 score.
func FormatScoreBar(score, width int) string {
	if width <= 0 {
		return ""
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
