// Package app is the interactive sprite demo: SDL window, GL backend and
// the main loop around a pipeline.Frame.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/spritebatch/internal/config"
	"github.com/Faultbox/spritebatch/internal/engine/batch"
	"github.com/Faultbox/spritebatch/internal/engine/debug"
	"github.com/Faultbox/spritebatch/internal/engine/input"
	"github.com/Faultbox/spritebatch/internal/engine/render"
	"github.com/Faultbox/spritebatch/internal/engine/sprite"
	"github.com/Faultbox/spritebatch/internal/engine/texture"
	"github.com/Faultbox/spritebatch/internal/engine/window"
	"github.com/Faultbox/spritebatch/internal/logger"
	"github.com/Faultbox/spritebatch/internal/pipeline"
	"github.com/Faultbox/spritebatch/internal/scene"
)

// App is the interactive sprite demo.
type App struct {
	config *config.Config

	window   *window.Window
	input    *input.Input
	backend  *render.GLBackend
	provider *texture.GLProvider
	store    *texture.Store
	handles  map[uint64]uint64

	frame *pipeline.Frame
	table scene.Table
	scene int
	tick  int

	shots   *debug.Screenshots
	capture bool
}

// New opens the window, uploads the catalog images and prepares the packer.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
	}
	if cfg.Scene.Start > 0 {
		a.scene = cfg.Scene.Start % len(scene.All)
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      "spritebatch demo",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// GL backend only after the context exists. The world keeps the
	// configured size; the viewport follows the framebuffer.
	a.backend, err = render.NewGL(cfg.Graphics.Width, cfg.Graphics.Height)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create sprite backend: %w", err)
	}
	a.backend.SetViewport(a.window.GetDrawableSize())

	if err := a.loadTextures(); err != nil {
		a.Close()
		return nil, err
	}

	a.input = input.New()
	a.shots = debug.NewScreenshots(cfg.Graphics.ScreenshotDir, "spritebatch")
	packer := batch.New(batch.Config{
		Capacity:        cfg.Batch.Capacity,
		ValidateBatches: cfg.Batch.ValidateBatches,
	})
	a.frame = pipeline.NewFrame(packer, a.backend, cfg.Batch.Workers)

	logger.Info("demo initialized",
		zap.Int("capacity", packer.Capacity()),
		zap.Int("maxSprites", packer.Capacity()/sprite.VerticesPerSprite),
		zap.Int("images", a.store.Len()),
		zap.String("scene", scene.All[a.scene].Name),
	)
	return a, nil
}

// loadTextures decodes the catalog and gives every image its own texture.
func (a *App) loadTextures() error {
	a.store = texture.NewStore(a.config.Assets.ImageDir)
	for _, img := range scene.Catalog {
		if _, err := a.store.Load(img.Name, img.Width, img.Height); err != nil {
			return err
		}
	}

	a.provider = texture.NewGLProvider(a.store)
	handles, err := texture.UploadAll(a.provider, a.store.IDs())
	if err != nil {
		return fmt.Errorf("uploading textures: %w", err)
	}
	a.handles = handles

	a.table = make(scene.Table, a.store.Len())
	for _, id := range a.store.IDs() {
		img, _ := a.store.Image(id)
		a.table[id] = scene.Entry{
			Texture: sprite.TextureID(handles[id]),
			Width:   img.Width,
			Height:  img.Height,
		}
	}
	return nil
}

// Run runs the main loop until the window is closed or escape is pressed.
func (a *App) Run() error {
	ctx := context.Background()

	var frameTime time.Duration
	if a.config.Graphics.FPSLimit > 0 {
		frameTime = time.Second / time.Duration(a.config.Graphics.FPSLimit)
	}

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting main loop")

	for {
		start := time.Now()

		if a.input.Update() {
			return nil
		}
		for _, event := range a.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				a.backend.SetViewport(a.window.GetDrawableSize())
				logger.Debug("window resized",
					zap.Int("width", event.Width),
					zap.Int("height", event.Height),
				)
			case input.EventKeyDown:
				switch event.Key {
				case sdl.SCANCODE_ESCAPE:
					return nil
				case sdl.SCANCODE_SPACE:
					a.scene = (a.scene + 1) % len(scene.All)
					logger.Info("swap scene", zap.String("scene", scene.All[a.scene].Name))
				case sdl.SCANCODE_F12:
					a.capture = true
				}
			}
		}

		a.backend.Clear()
		res, err := a.frame.Run(ctx, scene.All[a.scene], a.table, a.tick)
		if err != nil {
			return fmt.Errorf("frame %d: %w", a.tick, err)
		}
		a.tick++

		if a.capture {
			a.capture = false
			a.screenshot()
		}

		if a.config.Logging.Report {
			logger.Info("frame",
				zap.Int("tick", a.tick),
				zap.Int("batches", res.Batches),
				zap.Int("sprites", res.Sprites),
				zap.Int("vertices", res.Vertices),
			)
		}

		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("batches", res.Batches),
				zap.Int("drawCalls", a.backend.DrawCalls),
				zap.Int("sprites", res.Sprites),
				zap.Int("peakVertices", a.frame.Packer().Stats().PeakVertices),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if elapsed := time.Since(start); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
}

// screenshot saves the back buffer before it is swapped.
func (a *App) screenshot() {
	pixels, w, h := a.backend.ReadPixels()
	name, err := a.shots.SaveGL(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("file", name))
}

// Close releases textures, the backend and the window.
func (a *App) Close() {
	logger.Info("closing demo")

	if a.provider != nil && a.handles != nil {
		texture.Release(a.provider, a.handles)
	}
	if a.backend != nil {
		a.backend.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
