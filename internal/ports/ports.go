package ports

import (
	"context"
	"encoding/json"
)

// VideoTool is the transcoding engine boundary. Both operations are blocking
// external invocations that resolve to success or error.
type VideoTool interface {
	ExtractAudioMP3(ctx context.Context, inPath, outMP3 string) error
	TrimClip(ctx context.Context, inPath string, startSec, durationSec float64, outPath string) error
}

// Transcriber submits an audio file to the speech-to-text collaborator and
// returns the raw response payload. The payload shape varies by provider, so
// interpretation is left to the moments package.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (json.RawMessage, error)
}
