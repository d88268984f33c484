// Package config handles sprite demo configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Batch    BatchConfig    `yaml:"batch"`
	Assets   AssetsConfig   `yaml:"assets"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"` // 0 = unlimited

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// BatchConfig sizes the per-frame vertex arena.
type BatchConfig struct {
	Capacity        int  `yaml:"capacity"` // vertices; 6 per sprite
	ValidateBatches bool `yaml:"validate_batches"`
	Workers         int  `yaml:"workers"` // >1 packs batches in parallel
}

// AssetsConfig holds sprite image locations.
type AssetsConfig struct {
	ImageDir string `yaml:"image_dir"`
}

// SceneConfig selects the demo content.
type SceneConfig struct {
	Start int `yaml:"start"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Report  bool   `yaml:"report"` // log every batch each frame
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      640,
			Height:     480,
			Fullscreen: false,
			VSync:      false,
			FPSLimit:   60,

			ScreenshotDir: "screenshots",
		},
		Batch: BatchConfig{
			Capacity:        1024 * 10,
			ValidateBatches: false,
			Workers:         1,
		},
		Assets: AssetsConfig{
			ImageDir: "assets",
		},
		Scene: SceneConfig{
			Start: 3,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
