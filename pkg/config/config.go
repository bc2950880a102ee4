// Package config provides configuration loading and management.
package config

import (
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/scenemix/pkg/compositor"
)

// Config represents the full configuration for scenemix.
type Config struct {
	// Surface
	CanvasWidth  int     `yaml:"canvas_width"`
	CanvasHeight int     `yaml:"canvas_height"`
	FPS          float64 `yaml:"fps"`
	TransitionMs int     `yaml:"transition_ms"`

	// Persistence
	ScenesPath string `yaml:"scenes"`

	// Sources declared up front. More can be added at runtime.
	Sources []SourceConfig `yaml:"sources"`

	// Screen capture
	ChromePath string `yaml:"chrome_path"`
	Headless   bool   `yaml:"headless"`
	Quality    int    `yaml:"quality"`

	// Frame sink
	SinkDir   string `yaml:"sink_dir"`
	SinkEvery int    `yaml:"sink_every"`

	// Debug
	Debug bool `yaml:"debug"`
}

// SourceConfig declares one source to register at startup.
type SourceConfig struct {
	// Type is "screen", "camera", or "video".
	Type  string `yaml:"type"`
	Label string `yaml:"label"`

	// Screen sources.
	URL string `yaml:"url"`

	// File sources.
	Path   string   `yaml:"path"`
	Loop   *bool    `yaml:"loop"`
	Volume *float64 `yaml:"volume"`
	Muted  *bool    `yaml:"muted"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		CanvasWidth:  compositor.CanvasWidth,
		CanvasHeight: compositor.CanvasHeight,
		FPS:          30.0,
		TransitionMs: int(compositor.TransitionDuration / time.Millisecond),

		ScenesPath: "./scenes.json",

		Headless: true,
		Quality:  80,

		SinkEvery: 30,
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToCompositorOptions converts Config to compositor.Options.
func (c Config) ToCompositorOptions() compositor.Options {
	return compositor.Options{
		Width:              c.CanvasWidth,
		Height:             c.CanvasHeight,
		FPS:                c.FPS,
		TransitionDuration: time.Duration(c.TransitionMs) * time.Millisecond,
	}
}

// FileVariant converts a file SourceConfig to its variant, applying the
// playback defaults for absent flags.
func (s SourceConfig) FileVariant() compositor.FileVariant {
	v := compositor.NewFileVariant(s.Path)
	if s.Loop != nil {
		v.Loop = *s.Loop
	}
	if s.Volume != nil {
		v.Volume = *s.Volume
	}
	if s.Muted != nil {
		v.Muted = *s.Muted
	}
	return v
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	var r, g, b uint8
	for i, c := range []byte{hex[0], hex[1]} {
		v := hexValue(c)
		if i == 0 {
			r = v << 4
		} else {
			r |= v
		}
	}
	for i, c := range []byte{hex[2], hex[3]} {
		v := hexValue(c)
		if i == 0 {
			g = v << 4
		} else {
			g |= v
		}
	}
	for i, c := range []byte{hex[4], hex[5]} {
		v := hexValue(c)
		if i == 0 {
			b = v << 4
		} else {
			b |= v
		}
	}

	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
