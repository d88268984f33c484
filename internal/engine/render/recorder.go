package render

import (
	"go.uber.org/zap"

	"github.com/Faultbox/spritebatch/internal/engine/batch"
	"github.com/Faultbox/spritebatch/internal/engine/sprite"
	"github.com/Faultbox/spritebatch/internal/logger"
)

// Call is a recorded draw call with a private copy of its vertices.
type Call struct {
	batch.DrawCall
	Vertices []sprite.Vertex
}

// Recorder is an in-memory Backend. It copies every call so recordings
// stay valid after the packer rewinds.
type Recorder struct {
	// Report logs each call as it is flushed.
	Report bool

	pending []Call
	frames  [][]Call
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Draw implements Backend.
func (r *Recorder) Draw(dc batch.DrawCall, verts []sprite.Vertex) error {
	r.pending = append(r.pending, Call{
		DrawCall: dc,
		Vertices: append([]sprite.Vertex(nil), verts...),
	})
	return nil
}

// Flush implements Backend. Every flush closes one recorded frame.
func (r *Recorder) Flush() error {
	if r.Report {
		for _, c := range r.pending {
			logger.Info("batch",
				zap.Uint64("texture", uint64(c.Texture)),
				zap.Int("sprites", c.Sprites()),
				zap.Int("offset", c.Offset),
				zap.Int("count", c.Count),
			)
		}
	}
	r.frames = append(r.frames, r.pending)
	r.pending = nil
	return nil
}

// Frames returns every flushed frame in order.
func (r *Recorder) Frames() [][]Call {
	return r.frames
}

// Last returns the calls of the most recent flushed frame.
func (r *Recorder) Last() []Call {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}
