package keystroke

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Stream line types.
const (
	streamTypeKeystroke = "keystroke"
	streamTypePaste     = "paste"
)

// streamLine is one JSONL line of a captured event stream, as written
// by an external capture tool.
type streamLine struct {
	Type           string  `json:"type"`
	Timestamp      float64 `json:"timestamp"`
	Character      string  `json:"character,omitempty"`
	CharacterCount int     `json:"characterCount,omitempty"`
}

// ReadStream decodes a JSONL event stream into a session Log.
//
// Each line is a JSON object with a "type" of "keystroke" or "paste"
// and a monotonic "timestamp" in seconds. Keystroke lines carry
// "character" (the deletion sentinel included); paste lines carry
// "characterCount". Blank lines are skipped. Intervals and session
// start are derived here, so streams only need raw timestamps.
func ReadStream(r io.Reader) (Log, error) {
	rec := NewRecorder()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	lastTs := 0.0
	seen := false
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var line streamLine
		if err := json.Unmarshal([]byte(text), &line); err != nil {
			return Log{}, fmt.Errorf("line %d: decode event: %w", lineNo, err)
		}

		if seen && line.Timestamp < lastTs {
			return Log{}, fmt.Errorf("line %d: timestamp %.6f precedes previous event %.6f", lineNo, line.Timestamp, lastTs)
		}
		lastTs = line.Timestamp
		seen = true

		switch line.Type {
		case streamTypeKeystroke:
			if line.Character == "" {
				return Log{}, fmt.Errorf("line %d: keystroke without a character", lineNo)
			}
			rec.RecordKeystroke(line.Timestamp, line.Character)
		case streamTypePaste:
			if line.CharacterCount <= 0 {
				return Log{}, fmt.Errorf("line %d: paste with character count %d", lineNo, line.CharacterCount)
			}
			rec.RecordPaste(line.Timestamp, line.CharacterCount)
		default:
			return Log{}, fmt.Errorf("line %d: unknown event type %q", lineNo, line.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return Log{}, fmt.Errorf("read stream: %w", err)
	}

	return rec.Snapshot(), nil
}
