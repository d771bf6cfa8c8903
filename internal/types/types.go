package types

import "encoding/json"

// Moment is a laughter event detected in the source media, with timestamps
// in seconds relative to the start of the media.
type Moment struct {
	Start float64
	End   float64
	Text  string
}

// Window is the span of the source media that becomes one clip.
type Window struct {
	Start    float64
	Duration float64
}

// GeneratedClip references one extracted clip on transient storage.
type GeneratedClip struct {
	Ordinal int
	Name    string
	Path    string
}

// Result is the outcome of one processing run. Transcript carries the raw
// speech-to-text payload for diagnostics.
type Result struct {
	Clips          []GeneratedClip
	FailedOrdinals []int
	Transcript     json.RawMessage
}
