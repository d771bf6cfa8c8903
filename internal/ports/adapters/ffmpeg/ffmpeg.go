package ffmpeg

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/forPelevin/momento/internal/types"
)

type Adapter struct {
	ffmpeg string
}

// New wraps a resolved ffmpeg binary path. Resolution happens once at
// startup (see config.ResolveFFmpeg); the adapter never guesses.
func New(ffmpegPath string) *Adapter {
	return &Adapter{ffmpeg: ffmpegPath}
}

// ExtractAudioMP3 pulls the audio track out of the source media as MP3, the
// format the transcription collaborator expects.
func (a *Adapter) ExtractAudioMP3(ctx context.Context, inPath, outMP3 string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inPath,
		"-vn",
		"-codec:a", "libmp3lame",
		"-q:a", "4",
		outMP3,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return engineError("extract_audio", err, b)
	}
	return nil
}

// TrimClip cuts durationSec seconds of the source starting at startSec.
// ffmpeg clamps the range to the actual media length, so windows that run
// past the end are fine.
func (a *Adapter) TrimClip(ctx context.Context, inPath string, startSec, durationSec float64, outPath string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, trimArgs(inPath, startSec, durationSec, outPath)...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return engineError("trim_clip", err, b)
	}
	return nil
}

// engineError classifies a failed ffmpeg invocation as an upstream failure,
// carrying the exit error plus the engine's own output for diagnosis.
func engineError(stage string, err error, output []byte) *types.UpstreamError {
	body := err.Error()
	if out := strings.TrimSpace(string(output)); out != "" {
		body += ": " + out
	}
	return &types.UpstreamError{Stage: stage, Body: truncate(body, 400)}
}

func trimArgs(inPath string, startSec, durationSec float64, outPath string) []string {
	return []string{
		"-y",
		"-ss", fmtSeconds(startSec),
		"-t", fmtSeconds(durationSec),
		"-i", inPath,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
		outPath,
	}
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
