package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/forPelevin/momento/internal/types"
)

// extractWorkers bounds concurrent ffmpeg invocations per request.
const extractWorkers = 2

// extractClips cuts one clip per window. Extractions run on a small worker
// pool, but results are placed by ordinal slot so the returned order always
// matches the window order regardless of completion order. A window that
// fails, or carries a non-positive duration, is skipped and its ordinal
// reported; the remaining windows still run.
func (u Usecase) extractClips(
	ctx context.Context,
	mediaPath, requestID, outDir string,
	windows []types.Window,
	log *slog.Logger,
) ([]types.GeneratedClip, []int) {
	results := make([]*types.GeneratedClip, len(windows))
	errored := make([]bool, len(windows))

	sem := make(chan struct{}, extractWorkers)
	var wg sync.WaitGroup
	for i, w := range windows {
		if w.Duration <= 0 {
			log.Warn("skipping malformed window", "ordinal", i, "start", w.Start, "duration", w.Duration)
			errored[i] = true
			continue
		}

		wg.Add(1)
		go func(i int, w types.Window) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			name := fmt.Sprintf("clip_%s_%d.mp4", requestID, i)
			outPath := filepath.Join(outDir, name)
			if err := u.d.Video.TrimClip(ctx, mediaPath, w.Start, w.Duration, outPath); err != nil {
				log.Error("clip extraction failed", "ordinal", i, "error", err)
				errored[i] = true
				return
			}
			results[i] = &types.GeneratedClip{Ordinal: i, Name: name, Path: outPath}
		}(i, w)
	}
	wg.Wait()

	var clips []types.GeneratedClip
	var failed []int
	for i := range windows {
		if errored[i] || results[i] == nil {
			failed = append(failed, i)
			continue
		}
		clips = append(clips, *results[i])
	}
	return clips, failed
}
