package batch

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/spritebatch/internal/engine/sprite"
	"github.com/Faultbox/spritebatch/internal/logger"
)

// SubmitBatches packs several batches at once, transforming them on up to
// workers goroutines (GOMAXPROCS when workers <= 0).
//
// Ranges are reserved up front in submission order, so the returned draw
// calls are laid out exactly as sequential SubmitBatch calls would lay them
// out. Each worker writes only its own range. Nothing is returned until
// every worker has finished. On any error the arena is rewound to where it
// was before the call.
func (p *Packer) SubmitBatches(ctx context.Context, batches []Batch, workers int) ([]DrawCall, error) {
	total := 0
	for i := range batches {
		if p.config.ValidateBatches {
			if err := validate(batches[i].Texture, batches[i].Sprites); err != nil {
				return nil, fmt.Errorf("batch %d: %w", i, err)
			}
		}
		total += len(batches[i].Sprites) * sprite.VerticesPerSprite
	}

	base, err := p.reserve(total)
	if err != nil {
		return nil, err
	}

	calls := make([]DrawCall, len(batches))
	offset := base
	for i := range batches {
		n := len(batches[i].Sprites) * sprite.VerticesPerSprite
		calls[i] = DrawCall{Texture: batches[i].Texture, Offset: offset, Count: n}
		offset = calls[i].End()
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range batches {
		dc := calls[i]
		sprites := batches[i].Sprites
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fill(p.arena.Slice(dc.Offset, dc.Count), sprites)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		p.arena.rewind(base)
		return nil, err
	}

	p.record(total/sprite.VerticesPerSprite, total, len(batches))
	logger.Debug("batches packed",
		zap.Int("batches", len(batches)),
		zap.Int("offset", base),
		zap.Int("count", total),
		zap.Int("workers", workers),
	)
	return calls, nil
}
