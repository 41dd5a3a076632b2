// Package proof assembles typing metrics and confidence analysis into
// a versioned, deterministic, exportable proof document.
package proof

import "fmt"

// Options control what an exported proof contains. The three toggles
// are independent; the named presets cover the common combinations.
type Options struct {
	// IncludeRawEvents exports the per-keystroke timing records.
	IncludeRawEvents bool

	// IncludeContentVerification exports the length and SHA-256 of
	// the final text. The text itself is never exported.
	IncludeContentVerification bool

	// RedactCharacters replaces every exported character with "*".
	// The deletion sentinel is exempt: it reveals editing behavior,
	// not content.
	RedactCharacters bool
}

// Preset names accepted by ParsePreset.
const (
	PresetStandard = "standard"
	PresetMinimal  = "minimal"
	PresetRedacted = "redacted"
	PresetFull     = "full"
)

// StandardOptions exports events without redaction or content
// verification.
func StandardOptions() Options {
	return Options{IncludeRawEvents: true}
}

// MinimalOptions exports metrics and confidence only.
func MinimalOptions() Options {
	return Options{}
}

// RedactedOptions exports events with every character replaced by "*".
func RedactedOptions() Options {
	return Options{IncludeRawEvents: true, RedactCharacters: true}
}

// FullOptions exports events and content verification, unredacted.
func FullOptions() Options {
	return Options{IncludeRawEvents: true, IncludeContentVerification: true}
}

// ParsePreset maps a preset name to its options.
func ParsePreset(name string) (Options, error) {
	switch name {
	case PresetStandard:
		return StandardOptions(), nil
	case PresetMinimal:
		return MinimalOptions(), nil
	case PresetRedacted:
		return RedactedOptions(), nil
	case PresetFull:
		return FullOptions(), nil
	default:
		return Options{}, fmt.Errorf("unknown export preset: %s (use standard, minimal, redacted, or full)", name)
	}
}
