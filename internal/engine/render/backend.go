// Package render consumes packed sprite draw calls.
//
// A Backend receives each draw call together with a view of its vertices,
// then Flush issues everything queued for the frame. Vertex views alias the
// packer arena, so a backend may keep them only until Flush returns.
package render

import (
	"github.com/Faultbox/spritebatch/internal/engine/batch"
	"github.com/Faultbox/spritebatch/internal/engine/sprite"
)

// Backend draws packed sprite batches.
type Backend interface {
	// Draw queues one draw call. verts holds exactly dc.Count vertices.
	Draw(dc batch.DrawCall, verts []sprite.Vertex) error

	// Flush issues every queued call. It must run before the packer's
	// EndFrame.
	Flush() error
}
