package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/forPelevin/momento/internal/domain/moments"
	"github.com/forPelevin/momento/internal/ports"
	"github.com/forPelevin/momento/internal/types"
)

type Deps struct {
	Video  ports.VideoTool
	STT    ports.Transcriber
	Logger *slog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Usecase{d: d}
}

type Input struct {
	// MediaPath is the uploaded video on transient storage.
	MediaPath string
	// RequestID discriminates artifact names across concurrent requests.
	RequestID string
	// WorkDir receives the extracted audio and the generated clips.
	WorkDir string
}

// Run drives the pipeline: extract audio, transcribe, detect laughter,
// compute windows, cut clips. Stages are strictly sequential; a failure in
// any of the first three aborts the run. Per-clip failures do not abort, they
// are reported in the result. Zero laughter moments is a valid outcome with
// an empty clip list.
func (u Usecase) Run(ctx context.Context, in Input) (types.Result, error) {
	if in.MediaPath == "" {
		return types.Result{}, types.ErrNoInput
	}
	log := u.d.Logger.With("request_id", in.RequestID)

	audioPath := filepath.Join(in.WorkDir, "audio_"+in.RequestID+".mp3")
	log.Info("extracting audio", "media", filepath.Base(in.MediaPath))
	if err := u.d.Video.ExtractAudioMP3(ctx, in.MediaPath, audioPath); err != nil {
		return types.Result{}, fmt.Errorf("extract audio: %w", err)
	}

	log.Info("transcribing audio")
	payload, err := u.d.STT.Transcribe(ctx, audioPath)
	if err != nil {
		return types.Result{}, fmt.Errorf("transcribe: %w", err)
	}

	ms := moments.Detect(payload)
	log.Info("laughter moments detected", "count", len(ms))

	windows := make([]types.Window, len(ms))
	for i, m := range ms {
		windows[i] = moments.ComputeWindow(m)
	}

	clips, failed := u.extractClips(ctx, in.MediaPath, in.RequestID, in.WorkDir, windows, log)
	log.Info("clip extraction finished", "clips", len(clips), "failed", len(failed))

	return types.Result{Clips: clips, FailedOrdinals: failed, Transcript: payload}, nil
}
