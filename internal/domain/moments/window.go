package moments

import "github.com/forPelevin/momento/internal/types"

// Clip window policy: enough lead-in to capture the setup of the bit, plus a
// short buffer after the laughter ends.
const (
	leadInSec      = 45.0
	trailBufferSec = 2.0
)

// ComputeWindow converts a laughter moment into a clip window. The start is
// clamped at zero for laughter inside the first 45 seconds; the duration
// grows accordingly. No upper bound is applied against the media length; the
// transcoding engine clamps to the actual duration.
//
// A malformed moment with end < start can produce a non-positive duration.
// Callers must skip such windows instead of invoking the engine.
func ComputeWindow(m types.Moment) types.Window {
	start := m.Start - leadInSec
	if start < 0 {
		start = 0
	}
	return types.Window{
		Start:    start,
		Duration: (m.End - start) + trailBufferSec,
	}
}
