package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/spritebatch/internal/engine/batch"
	"github.com/Faultbox/spritebatch/internal/engine/shader"
	"github.com/Faultbox/spritebatch/internal/engine/sprite"
	"github.com/Faultbox/spritebatch/internal/logger"
	"github.com/Faultbox/spritebatch/pkg/math"
)

// GLBackend draws sprite batches with OpenGL 4.1.
// It must be created and used on the thread owning the GL context.
type GLBackend struct {
	program uint32
	locMVP  int32
	locTex  int32

	vao uint32
	vbo uint32

	// GPU buffer size in vertices; grown on demand.
	vboCap int

	// projection maps the fixed world region; width and height are the
	// viewport in framebuffer pixels.
	projection    math.Mat4
	width, height int

	pending []queuedCall

	// DrawCalls counts calls issued by the last Flush.
	DrawCalls int
}

type queuedCall struct {
	dc    batch.DrawCall
	verts []sprite.Vertex
}

// NewGL creates the sprite program and vertex buffers. The backend shows
// a worldWidth x worldHeight region centered on the origin regardless of
// the viewport size. Call SetViewport before the first frame.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func NewGL(worldWidth, worldHeight int) (*GLBackend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	program, err := shader.CompileProgram(shader.SpriteVertex, shader.SpriteFragment)
	if err != nil {
		return nil, fmt.Errorf("sprite shader: %w", err)
	}

	b := &GLBackend{
		program: program,
		locMVP:  shader.MustGetUniform(program, "uMVP"),
		locTex:  shader.MustGetUniform(program, "uTexture"),

		projection: worldProjection(worldWidth, worldHeight),
	}
	b.createBuffers()

	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	return b, nil
}

// createBuffers creates the VAO/VBO for pos(2) + uv(2) vertices.
func (b *GLBackend) createBuffers() {
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	stride := int32(sprite.VertexStride)

	// Position attribute (location = 0): 2 floats
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// TexCoord attribute (location = 1): 2 floats
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// worldProjection maps a width x height world region centered on the
// origin to clip space, +Y up.
func worldProjection(width, height int) math.Mat4 {
	return math.Ortho2D(float32(width), float32(height), 0, 0)
}

// SetViewport sets the framebuffer area the world is stretched over, in
// pixels. On high-DPI displays this is larger than the window size.
func (b *GLBackend) SetViewport(width, height int) {
	b.width, b.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("sprite viewport set",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Clear clears the color buffer.
func (b *GLBackend) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Draw implements Backend. verts is retained until Flush.
func (b *GLBackend) Draw(dc batch.DrawCall, verts []sprite.Vertex) error {
	if len(verts) != dc.Count {
		return fmt.Errorf("draw call expects %d vertices, got %d", dc.Count, len(verts))
	}
	if dc.Count == 0 {
		return nil
	}
	b.pending = append(b.pending, queuedCall{dc: dc, verts: verts})
	return nil
}

// Flush implements Backend: it uploads every queued range into one
// streaming buffer and issues one DrawArrays per call.
func (b *GLBackend) Flush() error {
	b.DrawCalls = 0
	if len(b.pending) == 0 {
		return nil
	}

	total := 0
	for _, c := range b.pending {
		total += len(c.verts)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	gl.UseProgram(b.program)
	gl.UniformMatrix4fv(b.locMVP, 1, false, b.projection.Ptr())
	gl.Uniform1i(b.locTex, 0)
	gl.ActiveTexture(gl.TEXTURE0)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	// Orphan the previous frame's storage.
	if total > b.vboCap {
		b.vboCap = total
	}
	gl.BufferData(gl.ARRAY_BUFFER, b.vboCap*sprite.VertexStride, nil, gl.STREAM_DRAW)

	first := 0
	for _, c := range b.pending {
		gl.BufferSubData(gl.ARRAY_BUFFER, first*sprite.VertexStride, len(c.verts)*sprite.VertexStride, unsafe.Pointer(&c.verts[0]))
		gl.BindTexture(gl.TEXTURE_2D, uint32(c.dc.Texture))
		gl.DrawArrays(gl.TRIANGLES, int32(first), int32(len(c.verts)))
		first += len(c.verts)
		b.DrawCalls++
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	clear(b.pending)
	b.pending = b.pending[:0]

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("sprite flush: GL error 0x%x", code)
	}
	return nil
}

// ReadPixels reads the default framebuffer as bottom-up RGBA rows.
func (b *GLBackend) ReadPixels() ([]byte, int, int) {
	pixels := make([]byte, b.width*b.height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(b.width), int32(b.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, b.width, b.height
}

// Close releases GPU resources.
func (b *GLBackend) Close() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.program != 0 {
		gl.DeleteProgram(b.program)
		b.program = 0
	}
}
