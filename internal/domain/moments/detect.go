// Package moments turns a raw speech-to-text payload into laughter moments
// and computes the clip window for each one.
package moments

import (
	"encoding/json"
	"strings"

	"github.com/forPelevin/momento/internal/types"
)

// event is the common shape of a transcript item regardless of which list it
// came from. Unknown fields are ignored.
type event struct {
	Type  string  `json:"type"`
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// transcript is a variant view over the payload: providers put audio events
// either in a dedicated top-level list or interleaved with the words.
type transcript struct {
	AudioEvents []event `json:"audio_events"`
	Words       []event `json:"words"`
}

// Detect extracts laughter moments from a raw transcript payload, in the
// order they appear in the source list. A payload with neither an
// "audio_events" nor a "words" list yields an empty result; that is not an
// error, it means no funny moments were found.
//
// When "audio_events" is present it wins, even if empty; "words" is only
// consulted as a fallback.
func Detect(payload []byte) []types.Moment {
	var tr transcript
	if err := json.Unmarshal(payload, &tr); err != nil {
		return nil
	}

	list := tr.Words
	if tr.AudioEvents != nil {
		list = tr.AudioEvents
	}

	var out []types.Moment
	for _, e := range list {
		if isLaughter(e) {
			out = append(out, types.Moment{Start: e.Start, End: e.End, Text: e.Text})
		}
	}
	return out
}

// isLaughter classifies an item either by an explicit laughter tag or by a
// generic audio-event tag whose text mentions laughing (e.g. "[LAUGHTER]",
// "(laughs)").
func isLaughter(e event) bool {
	switch e.Type {
	case "laughter":
		return true
	case "audio_event", "event":
		return strings.Contains(strings.ToLower(e.Text), "laugh")
	}
	return false
}
