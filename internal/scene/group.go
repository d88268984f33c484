package scene

import (
	"cmp"
	"slices"

	"github.com/Faultbox/spritebatch/internal/engine/batch"
	"github.com/Faultbox/spritebatch/internal/engine/sprite"
)

// Grouper splits a frame's sprites into per-texture batches, ordered by
// depth and then texture. Sprites with equal keys keep their input order.
//
// Returned batches alias the grouper's buffers and are valid until the
// next Group call.
type Grouper struct {
	sorted  []sprite.Instance
	batches []batch.Batch
}

// Group sorts a copy of sprites and returns one batch per run of equal
// (depth, texture).
func (g *Grouper) Group(sprites []sprite.Instance) []batch.Batch {
	g.sorted = append(g.sorted[:0], sprites...)
	slices.SortStableFunc(g.sorted, func(a, b sprite.Instance) int {
		if c := cmp.Compare(a.Depth, b.Depth); c != 0 {
			return c
		}
		return cmp.Compare(a.Texture, b.Texture)
	})

	g.batches = g.batches[:0]
	start := 0
	for i := 1; i <= len(g.sorted); i++ {
		if i < len(g.sorted) && sameBatch(g.sorted[i], g.sorted[start]) {
			continue
		}
		if i > start {
			g.batches = append(g.batches, batch.Batch{
				Texture: g.sorted[start].Texture,
				Sprites: g.sorted[start:i:i],
			})
		}
		start = i
	}
	return g.batches
}

func sameBatch(a, b sprite.Instance) bool {
	return a.Depth == b.Depth && a.Texture == b.Texture
}
