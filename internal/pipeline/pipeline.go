// Package pipeline wires the adapters to the usecase and owns per-request
// artifact bookkeeping on the transient store.
package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/forPelevin/momento/internal/ports"
	"github.com/forPelevin/momento/internal/ports/adapters/elevenlabs"
	"github.com/forPelevin/momento/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/momento/internal/store"
	"github.com/forPelevin/momento/internal/types"
	"github.com/forPelevin/momento/internal/usecase"
)

type Config struct {
	FFmpegPath string
	APIKey     string
	ModelID    string
	BaseURL    string
	Store      *store.Store
	Logger     *slog.Logger
}

type Pipeline struct {
	uc     usecase.Usecase
	store  *store.Store
	logger *slog.Logger
}

func New(cfg Config) *Pipeline {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	v := ffmpeg.New(cfg.FFmpegPath)
	stt := elevenlabs.New(cfg.APIKey, cfg.ModelID, cfg.BaseURL)

	uc := usecase.New(usecase.Deps{
		Video:  v,
		STT:    stt,
		Logger: cfg.Logger,
	})
	return &Pipeline{uc: uc, store: cfg.Store, logger: cfg.Logger}
}

// Process runs the full pipeline for one uploaded media file and drops a
// transcript artifact beside the clips for diagnostics. The artifact write is
// best-effort; a failure there never fails the request.
func (p *Pipeline) Process(ctx context.Context, mediaPath, requestID string) (types.Result, error) {
	res, err := p.uc.Run(ctx, usecase.Input{
		MediaPath: mediaPath,
		RequestID: requestID,
		WorkDir:   p.store.Root(),
	})
	if err != nil {
		return types.Result{}, err
	}

	if len(res.Transcript) > 0 {
		if _, werr := p.store.WriteFile("transcript_"+requestID+".json", res.Transcript); werr != nil {
			p.logger.Warn("failed to write transcript artifact", "request_id", requestID, "error", werr)
		}
	}
	return res, nil
}

// NewRequestID allocates the unique discriminator embedded in every artifact
// name for one request.
func NewRequestID() string {
	return uuid.NewString()[:8]
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.Transcriber = (*elevenlabs.Adapter)(nil)
