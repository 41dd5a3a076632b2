package proof

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"unicode/utf8"

	"typewitness/internal/analysis"
	"typewitness/internal/schemavalidation"
)

// Check is one verification step's outcome.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// VerifyResult is the outcome of offline proof verification.
type VerifyResult struct {
	Valid  bool    `json:"valid"`
	Checks []Check `json:"checks"`
}

// expectedFactorOrder is the fixed factor order every v1 proof must
// carry.
var expectedFactorOrder = []string{
	analysis.FactorSampleVolume,
	analysis.FactorTimingVariance,
	analysis.FactorTypingSpeed,
	analysis.FactorCorrectionRate,
	analysis.FactorBurstDetection,
	analysis.FactorPasteDetection,
}

// Verify checks a serialized proof for internal consistency without
// needing the original event log: schema conformance, factor/weight
// binding, score arithmetic including gating, interpretation bucket,
// event ordering, and (when the final text is supplied) the content
// digest.
func Verify(data []byte, finalText *string) VerifyResult {
	var result VerifyResult

	check := func(name string, err error) bool {
		c := Check{Name: name, Passed: err == nil}
		if err != nil {
			c.Detail = err.Error()
		}
		result.Checks = append(result.Checks, c)
		return c.Passed
	}

	if !check("schema", schemavalidation.ValidateProof(data)) {
		result.Valid = false
		return result
	}

	p, err := Decode(data)
	if !check("decode", err) {
		result.Valid = false
		return result
	}

	check("version", checkVersion(p))
	check("factors", checkFactors(p))
	check("score", checkScore(p))
	check("interpretation", checkInterpretation(p))
	check("events", checkEvents(p))
	if finalText != nil {
		check("content", checkContent(p, *finalText))
	}

	result.Valid = true
	for _, c := range result.Checks {
		if !c.Passed {
			result.Valid = false
			break
		}
	}
	return result
}

func checkVersion(p *Proof) error {
	if p.Version != Version {
		return fmt.Errorf("unsupported version %q, want %q", p.Version, Version)
	}
	return nil
}

// checkFactors verifies the fixed factor order and the weight bound to
// each factor name.
func checkFactors(p *Proof) error {
	if len(p.Confidence.Factors) != len(expectedFactorOrder) {
		return fmt.Errorf("expected %d factors, got %d", len(expectedFactorOrder), len(p.Confidence.Factors))
	}
	for i, f := range p.Confidence.Factors {
		if f.Name != expectedFactorOrder[i] {
			return fmt.Errorf("factor %d is %q, want %q", i, f.Name, expectedFactorOrder[i])
		}
		weight, ok := analysis.FactorWeight(f.Name)
		if !ok || math.Abs(f.Weight-weight) > 1e-9 {
			return fmt.Errorf("factor %q carries weight %v, want %v", f.Name, f.Weight, weight)
		}
		if f.Score < 0 || f.Score > 100 {
			return fmt.Errorf("factor %q score %d out of range", f.Name, f.Score)
		}
	}
	return nil
}

// checkScore recomputes the gated weighted sum from the exported
// factor scores.
func checkScore(p *Proof) error {
	weighted := 0.0
	var volumeScore, pasteScore int
	for _, f := range p.Confidence.Factors {
		weighted += float64(f.Score) * f.Weight
		switch f.Name {
		case analysis.FactorSampleVolume:
			volumeScore = f.Score
		case analysis.FactorPasteDetection:
			pasteScore = f.Score
		}
	}

	expected := int(math.Round(weighted))
	switch {
	case volumeScore < analysis.VolumeGateThreshold:
		expected = min(volumeScore, analysis.VolumeGateCap)
	case pasteScore == 0:
		expected = min(expected, analysis.PasteGateCap)
	}

	if p.Confidence.Score != expected {
		return fmt.Errorf("score %d does not match recomputed %d", p.Confidence.Score, expected)
	}
	return nil
}

func checkInterpretation(p *Proof) error {
	want := analysis.Interpret(p.Confidence.Score)
	if p.Confidence.Interpretation != want {
		return fmt.Errorf("interpretation %q does not match score bucket %q", p.Confidence.Interpretation, want)
	}
	return nil
}

// checkEvents verifies index contiguity and timestamp ordering.
func checkEvents(p *Proof) error {
	var prev int64
	for i, ev := range p.Events {
		if ev.Index != i {
			return fmt.Errorf("event %d carries index %d", i, ev.Index)
		}
		if ev.TimestampMs < prev {
			return fmt.Errorf("event %d timestamp %dms precedes previous %dms", i, ev.TimestampMs, prev)
		}
		if !utf8.ValidString(ev.Character) {
			return fmt.Errorf("event %d character is not valid UTF-8", i)
		}
		prev = ev.TimestampMs
	}
	return nil
}

// checkContent recomputes the content digest from the supplied final
// text.
func checkContent(p *Proof, finalText string) error {
	if p.Content == nil {
		return fmt.Errorf("proof carries no content verification")
	}
	digest := sha256.Sum256([]byte(finalText))
	if got := hex.EncodeToString(digest[:]); got != p.Content.SHA256 {
		return fmt.Errorf("sha256 mismatch: text digest %s, proof carries %s", got, p.Content.SHA256)
	}
	if length := utf8.RuneCountInString(finalText); length != p.Content.Length {
		return fmt.Errorf("length mismatch: text has %d characters, proof carries %d", length, p.Content.Length)
	}
	return nil
}
