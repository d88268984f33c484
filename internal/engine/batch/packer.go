// Package batch packs sprite batches into a bounded per-frame vertex arena
// and describes one draw call per batch.
//
// A frame runs BeginFrame, any number of SubmitBatch (or SubmitBatches)
// calls, hands the returned draw calls to a rendering backend, then
// EndFrame. Draw calls and the vertex views returned by Vertices are only
// valid until EndFrame.
package batch

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/spritebatch/internal/engine/sprite"
	"github.com/Faultbox/spritebatch/internal/logger"
)

// DefaultCapacity is the arena size used when none is configured
// (1706 sprites per frame).
const DefaultCapacity = 1024 * 10

// Config holds packer configuration.
type Config struct {
	// Capacity is the arena size in vertices.
	Capacity int

	// ValidateBatches checks that every sprite in a batch is bound to the
	// batch texture. Grouping is the caller's job, so this is a debug aid.
	ValidateBatches bool
}

// Batch is a run of sprites that share one bound texture.
type Batch struct {
	Texture sprite.TextureID
	Sprites []sprite.Instance
}

// DrawCall describes one draw: Count vertices starting at Offset in the
// arena, drawn with Texture bound.
type DrawCall struct {
	Texture sprite.TextureID
	Offset  int
	Count   int
}

// End returns the offset one past the last vertex of the call.
func (dc DrawCall) End() int {
	return dc.Offset + dc.Count
}

// Sprites returns the number of sprites drawn by the call.
func (dc DrawCall) Sprites() int {
	return dc.Count / sprite.VerticesPerSprite
}

// Stats holds packer counters. Per-frame fields reset at EndFrame.
type Stats struct {
	Batches  int // batches submitted this frame
	Sprites  int // sprites packed this frame
	Vertices int // vertices written this frame

	Frames       int // frames ended since creation
	PeakVertices int // largest frame so far
}

// Packer owns a vertex arena and fills it from sprite batches.
// It is not safe for concurrent use; SubmitBatches parallelizes internally.
type Packer struct {
	config Config
	arena  *Arena
	stats  Stats
}

// New creates a packer with a preallocated arena.
func New(cfg Config) *Packer {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	return &Packer{
		config: cfg,
		arena:  NewArena(cfg.Capacity),
	}
}

// Capacity returns the arena size in vertices.
func (p *Packer) Capacity() int {
	return p.arena.Cap()
}

// Cursor returns the number of vertices written this frame.
func (p *Packer) Cursor() int {
	return p.arena.Len()
}

// Stats returns a snapshot of the packer counters.
func (p *Packer) Stats() Stats {
	return p.stats
}

// BeginFrame checks that the arena is empty. A non-empty arena means the
// previous frame skipped EndFrame.
func (p *Packer) BeginFrame() error {
	if cur := p.arena.Len(); cur != 0 {
		logger.Error("frame begun before previous frame ended",
			zap.Int("cursor", cur),
			zap.Int("capacity", p.arena.Cap()),
		)
		return fmt.Errorf("%w: cursor at %d", ErrFrameInProgress, cur)
	}
	return nil
}

// SubmitBatch packs sprites, in order, after everything already submitted
// this frame and returns the draw call covering them. On error nothing is
// written.
func (p *Packer) SubmitBatch(tex sprite.TextureID, sprites []sprite.Instance) (DrawCall, error) {
	if p.config.ValidateBatches {
		if err := validate(tex, sprites); err != nil {
			return DrawCall{}, err
		}
	}

	n := len(sprites) * sprite.VerticesPerSprite
	offset, err := p.reserve(n)
	if err != nil {
		return DrawCall{}, err
	}

	fill(p.arena.Slice(offset, n), sprites)

	dc := DrawCall{Texture: tex, Offset: offset, Count: n}
	p.record(len(sprites), n, 1)

	if ce := logger.Log.Check(zapcore.DebugLevel, "batch packed"); ce != nil {
		ce.Write(
			zap.Uint64("texture", uint64(tex)),
			zap.Int("offset", dc.Offset),
			zap.Int("count", dc.Count),
		)
	}
	return dc, nil
}

// EndFrame rewinds the arena. Every draw call produced this frame must
// already be consumed by the backend.
func (p *Packer) EndFrame() {
	used := p.arena.Len()
	if used > p.stats.PeakVertices {
		p.stats.PeakVertices = used
	}
	p.stats.Frames++
	p.stats.Batches = 0
	p.stats.Sprites = 0
	p.stats.Vertices = 0
	p.arena.Reset()
}

// Vertices returns the arena range of dc. The slice aliases the arena and
// must not be retained past EndFrame.
func (p *Packer) Vertices(dc DrawCall) []sprite.Vertex {
	return p.arena.Slice(dc.Offset, dc.Count)
}

// reserve claims n vertices or reports the overrun.
func (p *Packer) reserve(n int) (int, error) {
	offset, ok := p.arena.Reserve(n)
	if !ok {
		return 0, &CapacityError{
			Capacity:  p.arena.Cap(),
			Cursor:    p.arena.Len(),
			Requested: n,
		}
	}
	return offset, nil
}

func (p *Packer) record(sprites, verts, batches int) {
	p.stats.Batches += batches
	p.stats.Sprites += sprites
	p.stats.Vertices += verts
}

// fill transforms sprites into dst, six vertices each.
func fill(dst []sprite.Vertex, sprites []sprite.Instance) {
	for i := range sprites {
		j := i * sprite.VerticesPerSprite
		sprite.TransformInto(dst[j:j+sprite.VerticesPerSprite], sprites[i])
	}
}

// validate reports the first sprite not bound to tex.
func validate(tex sprite.TextureID, sprites []sprite.Instance) error {
	for i := range sprites {
		if sprites[i].Texture != tex {
			return fmt.Errorf("%w: sprite %d uses texture %d, batch texture %d",
				ErrMixedTextures, i, sprites[i].Texture, tex)
		}
	}
	return nil
}
