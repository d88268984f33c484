package batch

import (
	"errors"
	"fmt"
)

// Sentinel errors for the batch package.
var (
	// ErrCapacityExceeded is matched by every *CapacityError.
	ErrCapacityExceeded = errors.New("batch: vertex arena capacity exceeded")

	// ErrFrameInProgress is returned by BeginFrame when the previous frame
	// was never ended.
	ErrFrameInProgress = errors.New("batch: frame begun with non-empty arena")

	// ErrMixedTextures is returned when batch validation finds a sprite
	// bound to a different texture than its batch.
	ErrMixedTextures = errors.New("batch: sprite texture does not match batch texture")
)

// CapacityError reports a write that would overrun the vertex arena.
// The arena is left untouched when it is returned.
type CapacityError struct {
	Capacity  int // configured arena size in vertices
	Cursor    int // vertices already written this frame
	Requested int // vertices the failed write needed
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("batch: vertex arena capacity exceeded: %d vertices requested at cursor %d, capacity %d (%d sprites per frame)",
		e.Requested, e.Cursor, e.Capacity, e.Capacity/6)
}

// Is reports whether target is ErrCapacityExceeded.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
