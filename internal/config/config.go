// Package config handles gltftool configuration loading and management.
package config

import "github.com/jordan4ibanez/minetest-gltf/pkg/animation"

// Config holds all tool settings.
type Config struct {
	Loader  LoaderConfig  `yaml:"loader"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoaderConfig holds asset loading settings.
type LoaderConfig struct {
	Materials bool `yaml:"materials"`  // Extract material factors
	Animation bool `yaml:"animation"`  // Resample the first animation clip
	MaxFrames int  `yaml:"max_frames"` // Upper bound on resampled frames
	Scene     int  `yaml:"scene"`      // Scene index, -1 for the document default
}

// BatchConfig holds settings for loading many assets at once.
type BatchConfig struct {
	Extensions []string `yaml:"extensions"` // File extensions picked up from directories
	Progress   bool     `yaml:"progress"`   // Show a progress bar
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Loader: LoaderConfig{
			Materials: false,
			Animation: true,
			MaxFrames: animation.DefaultMaxFrames,
			Scene:     -1,
		},
		Batch: BatchConfig{
			Extensions: []string{".gltf", ".glb"},
			Progress:   true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
