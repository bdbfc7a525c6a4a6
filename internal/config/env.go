package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// envOverrides mirrors the per-invocation knobs that may be supplied through
// the environment. Zero values mean "not set" and leave the file/default
// value untouched; command-line flags still win over these.
type envOverrides struct {
	FrameRate int    `env:"TIMELAPSE_FRAME_RATE"`
	FontPath  string `env:"TIMELAPSE_FONT"`
	Preset    string `env:"TIMELAPSE_PRESET"`
	Binary    string `env:"TIMELAPSE_FFMPEG"`
}

func (c *Config) applyEnv(ctx context.Context) error {
	var overrides envOverrides
	if err := envconfig.Process(ctx, &overrides); err != nil {
		return fmt.Errorf("process environment: %w", err)
	}

	if overrides.FrameRate != 0 {
		c.Encoder.FrameRate = overrides.FrameRate
	}
	if strings.TrimSpace(overrides.FontPath) != "" {
		c.Encoder.FontPath = overrides.FontPath
	}
	if strings.TrimSpace(overrides.Preset) != "" {
		c.Encoder.Preset = overrides.Preset
	}
	if strings.TrimSpace(overrides.Binary) != "" {
		c.Encoder.Binary = overrides.Binary
	}
	return nil
}
