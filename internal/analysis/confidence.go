package analysis

import (
	"fmt"
	"math"
)

// Factor names, in the fixed output order.
const (
	FactorSampleVolume   = "Sample Volume"
	FactorTimingVariance = "Timing Variance"
	FactorTypingSpeed    = "Typing Speed"
	FactorCorrectionRate = "Correction Rate"
	FactorBurstDetection = "Burst Detection"
	FactorPasteDetection = "Paste Detection"
)

// Scoring thresholds.
const (
	// BurstIntervalSec is the inter-keystroke interval below which a
	// keystroke is treated as a burst, implausible for unaided human
	// typing.
	BurstIntervalSec = 0.020

	// MinIntervalsForBurst is the minimum interval count needed for a
	// conclusive burst analysis.
	MinIntervalsForBurst = 5

	// VolumeGateThreshold gates the final score: below this sample
	// volume score, insufficient data overrides every other signal.
	VolumeGateThreshold = 30

	// VolumeGateCap caps the final score when the volume gate fires.
	VolumeGateCap = 25

	// PasteGateCap caps the final score when repeated paste evidence
	// is present.
	PasteGateCap = 20
)

// Factor is one heuristic's contribution to the confidence score.
type Factor struct {
	Name        string
	Score       int // 0-100
	Explanation string
}

// ConfidenceScore is the combined multi-factor verdict.
type ConfidenceScore struct {
	// Score is the gated, weighted combination in [0,100].
	Score int

	// Factors holds exactly six factors in fixed order: Sample
	// Volume, Timing Variance, Typing Speed, Correction Rate, Burst
	// Detection, Paste Detection.
	Factors []Factor

	// Interpretation is derived purely from Score.
	Interpretation string
}

// weightedFactor binds a weight to its factor by identity rather than
// by array position, so reordering or adding factors cannot silently
// misalign the weight vector.
type weightedFactor struct {
	name   string
	weight float64
	score  func(Metrics) Factor
}

// factorPipeline is the six-factor scoring variant with paste
// detection. Weights sum to 1.0.
var factorPipeline = []weightedFactor{
	{FactorSampleVolume, 0.10, scoreSampleVolume},
	{FactorTimingVariance, 0.20, scoreTimingVariance},
	{FactorTypingSpeed, 0.15, scoreTypingSpeed},
	{FactorCorrectionRate, 0.15, scoreCorrectionRate},
	{FactorBurstDetection, 0.20, scoreBurstDetection},
	{FactorPasteDetection, 0.20, scorePasteDetection},
}

// FactorWeight returns the fixed weight bound to the named factor,
// or false for an unknown name.
func FactorWeight(name string) (float64, bool) {
	for _, wf := range factorPipeline {
		if wf.name == name {
			return wf.weight, true
		}
	}
	return 0, false
}

// Score evaluates all six factors against the metrics and combines
// them into a confidence score. The computation is pure and total:
// every metric combination yields a defined output.
func Score(m Metrics) ConfidenceScore {
	factors := make([]Factor, 0, len(factorPipeline))
	weighted := 0.0
	var volumeScore, pasteScore int
	for _, wf := range factorPipeline {
		f := wf.score(m)
		factors = append(factors, f)
		weighted += float64(f.Score) * wf.weight
		switch wf.name {
		case FactorSampleVolume:
			volumeScore = f.Score
		case FactorPasteDetection:
			pasteScore = f.Score
		}
	}

	final := int(math.Round(weighted))
	switch {
	case volumeScore < VolumeGateThreshold:
		// Insufficient data overrides every other signal.
		final = min(volumeScore, VolumeGateCap)
	case pasteScore == 0:
		// Repeated paste evidence is near-conclusive.
		final = min(final, PasteGateCap)
	}

	return ConfidenceScore{
		Score:          final,
		Factors:        factors,
		Interpretation: Interpret(final),
	}
}

// Interpret maps a final score to its confidence bucket.
func Interpret(score int) string {
	switch {
	case score >= 80:
		return "High confidence: likely human typed"
	case score >= 50:
		return "Medium confidence: possibly human typed"
	case score >= 20:
		return "Low confidence: suspicious pattern"
	default:
		return "Very low confidence: likely pasted or automated"
	}
}

// scoreSampleVolume scores the amount of evidence available.
func scoreSampleVolume(m Metrics) Factor {
	n := m.TotalKeystrokes
	var score int
	var expl string
	switch {
	case n == 0:
		score, expl = 0, "No keystrokes recorded"
	case n <= 5:
		score, expl = 20, fmt.Sprintf("Only %d keystrokes: far too few for reliable analysis", n)
	case n <= 15:
		score, expl = 50, fmt.Sprintf("%d keystrokes: a small sample", n)
	case n <= 30:
		score, expl = 75, fmt.Sprintf("%d keystrokes: a moderate sample", n)
	default:
		score, expl = 100, fmt.Sprintf("%d keystrokes: a strong sample", n)
	}
	return Factor{Name: FactorSampleVolume, Score: score, Explanation: expl}
}

// scoreTimingVariance scores the coefficient of variation of
// inter-key intervals. Human typing is irregular; both metronomic and
// wildly erratic timing are suspicious.
func scoreTimingVariance(m Metrics) Factor {
	if m.AverageInterval == nil || m.TimingStddev == nil || *m.AverageInterval <= 0 {
		return Factor{
			Name:        FactorTimingVariance,
			Score:       0,
			Explanation: "No interval data to assess timing variance",
		}
	}

	cv := *m.TimingStddev / *m.AverageInterval
	var score int
	var expl string
	switch {
	case cv < 0.1:
		score, expl = 15, fmt.Sprintf("Timing is machine-regular (CV %.2f)", cv)
	case cv < 0.3:
		score, expl = 60, fmt.Sprintf("Timing is somewhat regular (CV %.2f)", cv)
	case cv < 0.8:
		score, expl = 100, fmt.Sprintf("Natural timing variation (CV %.2f)", cv)
	case cv < 1.5:
		score, expl = 75, fmt.Sprintf("High timing variation (CV %.2f)", cv)
	default:
		score, expl = 40, fmt.Sprintf("Erratic timing variation (CV %.2f)", cv)
	}
	return Factor{Name: FactorTimingVariance, Score: score, Explanation: expl}
}

// scoreTypingSpeed scores the estimated words per minute derived from
// the average inter-key interval (5 characters per word).
func scoreTypingSpeed(m Metrics) Factor {
	if m.AverageInterval == nil || *m.AverageInterval <= 0 {
		return Factor{
			Name:        FactorTypingSpeed,
			Score:       0,
			Explanation: "No interval data to estimate typing speed",
		}
	}

	wpm := EstimateWPM(*m.AverageInterval)
	var score int
	var expl string
	switch {
	case wpm < 10:
		score, expl = 50, fmt.Sprintf("Very slow typing (%.0f WPM)", wpm)
	case wpm < 30:
		score, expl = 80, fmt.Sprintf("Slow but plausible typing (%.0f WPM)", wpm)
	case wpm < 80:
		score, expl = 100, fmt.Sprintf("Typical human typing speed (%.0f WPM)", wpm)
	case wpm < 120:
		score, expl = 75, fmt.Sprintf("Fast typing (%.0f WPM)", wpm)
	case wpm < 200:
		score, expl = 40, fmt.Sprintf("Implausibly fast typing (%.0f WPM)", wpm)
	default:
		score, expl = 10, fmt.Sprintf("Machine-speed input (%.0f WPM)", wpm)
	}
	return Factor{Name: FactorTypingSpeed, Score: score, Explanation: expl}
}

// EstimateWPM converts an average inter-key interval in seconds to
// words per minute at 5 characters per word.
func EstimateWPM(avgIntervalSec float64) float64 {
	return (60.0 / avgIntervalSec) / 5.0
}

// scoreCorrectionRate scores the deletion ratio. Humans make and fix
// mistakes; a total absence of corrections is itself a weak signal of
// injection.
func scoreCorrectionRate(m Metrics) Factor {
	r := m.CorrectionRate
	var score int
	var expl string
	switch {
	case r == 0:
		score, expl = 40, "No corrections at all, which is unusual for human typing"
	case r <= 0.05:
		score, expl = 80, fmt.Sprintf("Few corrections (%.1f%%)", r*100)
	case r <= 0.20:
		score, expl = 100, fmt.Sprintf("Natural correction rate (%.1f%%)", r*100)
	case r <= 0.40:
		score, expl = 70, fmt.Sprintf("High correction rate (%.1f%%)", r*100)
	default:
		score, expl = 30, fmt.Sprintf("Excessive correction rate (%.1f%%)", r*100)
	}
	return Factor{Name: FactorCorrectionRate, Score: score, Explanation: expl}
}

// scoreBurstDetection scores the fraction of inter-key intervals below
// the burst threshold. Sub-20ms intervals are implausible for unaided
// human typing.
func scoreBurstDetection(m Metrics) Factor {
	intervals := m.Intervals()
	if len(intervals) < MinIntervalsForBurst {
		return Factor{
			Name:        FactorBurstDetection,
			Score:       50,
			Explanation: "Too few intervals for conclusive burst analysis",
		}
	}

	bursts := 0
	for _, iv := range intervals {
		if iv < BurstIntervalSec {
			bursts++
		}
	}
	frac := float64(bursts) / float64(len(intervals))

	var score int
	var expl string
	switch {
	case bursts == 0:
		score, expl = 100, "No burst intervals detected"
	case frac < 0.05:
		score, expl = 70, fmt.Sprintf("Occasional burst intervals (%.1f%%)", frac*100)
	case frac < 0.20:
		score, expl = 40, fmt.Sprintf("Frequent burst intervals (%.1f%%)", frac*100)
	default:
		score, expl = 10, fmt.Sprintf("Burst intervals dominate (%.1f%%)", frac*100)
	}
	return Factor{Name: FactorBurstDetection, Score: score, Explanation: expl}
}

// scorePasteDetection scores direct paste evidence.
func scorePasteDetection(m Metrics) Factor {
	var score int
	var expl string
	switch {
	case m.PasteCount == 0:
		score, expl = 100, "No paste events detected"
	case m.PasteCount == 1 && m.PastedCharacterCount < 10:
		score, expl = 60, fmt.Sprintf("One small paste (%d characters)", m.PastedCharacterCount)
	case m.PasteCount == 1:
		score, expl = 20, fmt.Sprintf("One large paste (%d characters)", m.PastedCharacterCount)
	default:
		score, expl = 0, fmt.Sprintf("%d paste events (%d characters total)", m.PasteCount, m.PastedCharacterCount)
	}
	return Factor{Name: FactorPasteDetection, Score: score, Explanation: expl}
}
