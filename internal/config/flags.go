package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and batch validation")
	flagReport     = flag.Bool("report", false, "Log every batch each frame")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagCapacity   = flag.Int("capacity", 0, "Vertex arena capacity")
	flagWorkers    = flag.Int("workers", 0, "Parallel batch packing workers")
	flagScene      = flag.Int("scene", -1, "Starting scene index")
	flagAssets     = flag.String("assets", "", "Sprite image directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Batch.ValidateBatches = true
	}
	if *flagReport {
		cfg.Logging.Report = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagCapacity > 0 {
		cfg.Batch.Capacity = *flagCapacity
	}
	if *flagWorkers > 0 {
		cfg.Batch.Workers = *flagWorkers
	}
	if *flagScene >= 0 {
		cfg.Scene.Start = *flagScene
	}
	if *flagAssets != "" {
		cfg.Assets.ImageDir = *flagAssets
	}
}
