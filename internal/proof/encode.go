package proof

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrEncodingFailed is the single error kind the proof pipeline can
// produce. It indicates a defect in the assembled value (for example
// invalid UTF-8 in an event character), not a transient condition.
var ErrEncodingFailed = errors.New("proof encoding failed")

// Encode serializes the proof to indented JSON with stable key
// ordering: identical proofs always produce byte-identical output,
// which any signature scheme layered on top depends on.
func (p *Proof) Encode() ([]byte, error) {
	if err := p.checkEncodable(); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}
	return data, nil
}

// Decode parses a serialized proof.
func Decode(data []byte) (*Proof, error) {
	var p Proof
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode proof: %w", err)
	}
	return &p, nil
}

// checkEncodable rejects string fields that would not survive a UTF-8
// round trip. encoding/json silently substitutes the replacement rune
// for invalid bytes, which would break byte-level determinism between
// the exported proof and a re-encoded copy.
func (p *Proof) checkEncodable() error {
	for _, ev := range p.Events {
		if !utf8.ValidString(ev.Character) {
			return fmt.Errorf("%w: event %d character is not valid UTF-8", ErrEncodingFailed, ev.Index)
		}
	}
	for _, f := range p.Confidence.Factors {
		if !utf8.ValidString(f.Explanation) {
			return fmt.Errorf("%w: factor %q explanation is not valid UTF-8", ErrEncodingFailed, f.Name)
		}
	}
	return nil
}
