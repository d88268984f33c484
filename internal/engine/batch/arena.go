package batch

import (
	"fmt"
	"sync/atomic"

	"github.com/Faultbox/spritebatch/internal/engine/sprite"
)

// Arena is a fixed-capacity vertex buffer with a single write cursor.
// Ranges are handed out by Reserve, which is safe for concurrent use;
// Reset is not and must only run once every reserved range is consumed.
type Arena struct {
	verts  []sprite.Vertex
	cursor atomic.Int64
}

// NewArena preallocates an arena holding capacity vertices.
func NewArena(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{verts: make([]sprite.Vertex, capacity)}
}

// Cap returns the arena capacity in vertices.
func (a *Arena) Cap() int {
	return len(a.verts)
}

// Len returns the number of vertices reserved since the last Reset.
func (a *Arena) Len() int {
	return int(a.cursor.Load())
}

// Reserve claims n vertices and returns the offset of the claimed range.
// It returns false, claiming nothing, when the range would pass capacity.
func (a *Arena) Reserve(n int) (int, bool) {
	if n < 0 {
		return 0, false
	}
	limit := int64(len(a.verts))
	for {
		cur := a.cursor.Load()
		next := cur + int64(n)
		if next > limit {
			return 0, false
		}
		if a.cursor.CompareAndSwap(cur, next) {
			return int(cur), true
		}
	}
}

// Slice returns the vertices in [offset, offset+count). The returned slice
// has no spare capacity, so appending to it never touches its neighbours.
func (a *Arena) Slice(offset, count int) []sprite.Vertex {
	if offset < 0 || count < 0 || offset+count > len(a.verts) {
		panic(fmt.Sprintf("batch: range [%d, %d) outside arena of %d vertices", offset, offset+count, len(a.verts)))
	}
	return a.verts[offset : offset+count : offset+count]
}

// Reset rewinds the cursor to zero.
func (a *Arena) Reset() {
	a.cursor.Store(0)
}

// rewind moves the cursor back to offset, releasing everything after it.
func (a *Arena) rewind(offset int) {
	a.cursor.Store(int64(offset))
}
