package proof

// Version is the proof schema version.
const Version = "1.0"

// Proof is a self-contained, versioned export of one session's typing
// analysis. All fields are by value; nothing references the mutable
// capture source. Field order here fixes the serialized key order, so
// identical inputs produce byte-identical output.
type Proof struct {
	Version    string     `json:"version"`
	Metadata   Metadata   `json:"metadata"`
	Metrics    Metrics    `json:"metrics"`
	Confidence Confidence `json:"confidence"`

	// Events is null when raw events are not exported, and an empty
	// array when exported with no session started.
	Events []EventRecord `json:"events"`

	// Content is null unless content verification was requested.
	Content *ContentVerification `json:"content"`
}

// Metadata describes when and where the proof was produced.
type Metadata struct {
	// ExportedAt is the wall-clock export time, ISO-8601 with
	// fractional seconds and UTC offset.
	ExportedAt string `json:"exportedAt"`

	// SessionStartedAt is the session start reconstructed from the
	// monotonic clock at export time. Wall-clock time is never
	// captured during the session itself. Best-effort: monotonic
	// clocks can pause across system sleep.
	SessionStartedAt *string `json:"sessionStartedAt,omitempty"`

	// SessionDurationMs is the session duration in rounded
	// milliseconds, when known.
	SessionDurationMs *int64 `json:"sessionDurationMs,omitempty"`

	SDKVersion      string `json:"sdkVersion"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platformVersion"`
}

// Metrics is the exported form of the session statistics, with
// intervals expressed in milliseconds.
type Metrics struct {
	TotalKeystrokes int     `json:"totalKeystrokes"`
	DeletionCount   int     `json:"deletionCount"`
	CorrectionRate  float64 `json:"correctionRate"`

	AverageIntervalMs *float64 `json:"averageIntervalMs,omitempty"`
	TimingVarianceMs  *float64 `json:"timingVarianceMs,omitempty"`
	EstimatedWPM      *float64 `json:"estimatedWPM,omitempty"`
}

// Confidence is the exported scoring result: the six factors in fixed
// order, each paired with its fixed weight.
type Confidence struct {
	Score          int            `json:"score"`
	Interpretation string         `json:"interpretation"`
	Factors        []FactorRecord `json:"factors"`
}

// FactorRecord is one scoring factor with its weight.
type FactorRecord struct {
	Name        string  `json:"name"`
	Score       int     `json:"score"`
	Weight      float64 `json:"weight"`
	Explanation string  `json:"explanation"`
}

// EventRecord is one exported keystroke, timed relative to session
// start.
type EventRecord struct {
	Index       int    `json:"index"`
	TimestampMs int64  `json:"timestampMs"`
	Character   string `json:"character"`
	IntervalMs  *int64 `json:"intervalMs,omitempty"`
}

// ContentVerification binds the proof to the final text without
// exposing it: character count plus SHA-256 of the UTF-8 bytes.
type ContentVerification struct {
	Length int    `json:"length"`
	SHA256 string `json:"sha256"`
}
