// Package pipeline runs one sprite frame: it packs a scene and hands the
// draw calls to a rendering backend. It has no window or input
// dependencies, so headless tools and tests use it directly.
package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/spritebatch/internal/engine/batch"
	"github.com/Faultbox/spritebatch/internal/engine/render"
	"github.com/Faultbox/spritebatch/internal/engine/sprite"
	"github.com/Faultbox/spritebatch/internal/logger"
	"github.com/Faultbox/spritebatch/internal/scene"
)

// Result summarizes one rendered frame.
type Result struct {
	Batches  int
	Sprites  int
	Vertices int
}

// Frame runs the per-frame pipeline: build sprites, group them by
// texture, pack every batch, draw, then rewind the arena.
type Frame struct {
	packer  *batch.Packer
	backend render.Backend
	workers int

	grouper scene.Grouper
	sprites []sprite.Instance
	calls   []batch.DrawCall
}

// NewFrame creates a frame driver. workers > 1 packs batches in parallel.
func NewFrame(p *batch.Packer, b render.Backend, workers int) *Frame {
	return &Frame{
		packer:  p,
		backend: b,
		workers: workers,
		sprites: make([]sprite.Instance, 0, p.Capacity()/sprite.VerticesPerSprite),
	}
}

// Packer returns the frame's packer.
func (f *Frame) Packer() *batch.Packer {
	return f.packer
}

// Run renders one frame of sc. Every batch is packed before any draw call
// reaches the backend, and the arena is rewound before Run returns, also
// on error.
func (f *Frame) Run(ctx context.Context, sc scene.Scene, r scene.Resolver, tick int) (Result, error) {
	if err := f.packer.BeginFrame(); err != nil {
		return Result{}, err
	}
	defer f.packer.EndFrame()

	f.sprites = sc.Build(r, tick, f.sprites[:0])
	batches := f.grouper.Group(f.sprites)

	if err := f.pack(ctx, batches); err != nil {
		var capErr *batch.CapacityError
		if errors.As(err, &capErr) {
			logger.Error("sprite arena too small for frame",
				zap.String("scene", sc.Name),
				zap.Int("capacity", capErr.Capacity),
				zap.Int("cursor", capErr.Cursor),
				zap.Int("requested", capErr.Requested),
				zap.Int("sprites", len(f.sprites)),
			)
		}
		return Result{}, err
	}

	res := Result{Batches: len(f.calls)}
	for _, dc := range f.calls {
		if err := f.backend.Draw(dc, f.packer.Vertices(dc)); err != nil {
			return Result{}, err
		}
		res.Sprites += dc.Sprites()
		res.Vertices += dc.Count
	}
	if err := f.backend.Flush(); err != nil {
		return Result{}, err
	}

	return res, nil
}

// pack fills f.calls with one draw call per batch, in batch order.
func (f *Frame) pack(ctx context.Context, batches []batch.Batch) error {
	f.calls = f.calls[:0]

	if f.workers > 1 {
		calls, err := f.packer.SubmitBatches(ctx, batches, f.workers)
		if err != nil {
			return err
		}
		f.calls = append(f.calls, calls...)
		return nil
	}

	for _, b := range batches {
		dc, err := f.packer.SubmitBatch(b.Texture, b.Sprites)
		if err != nil {
			return err
		}
		f.calls = append(f.calls, dc)
	}
	return nil
}
