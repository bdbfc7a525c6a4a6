package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Encoder preset values are
// deliberately not checked; unknown presets are passed through to ffmpeg,
// which rejects them itself.
func (c *Config) Validate() error {
	if err := c.validateCapture(); err != nil {
		return err
	}
	if err := c.validateEncoder(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCapture() error {
	if strings.TrimSpace(c.Capture.DirPrefix) == "" {
		return fmt.Errorf("capture.dir_prefix must not be empty")
	}
	if strings.ContainsAny(c.Capture.DirPrefix, "/\\") {
		return fmt.Errorf("capture.dir_prefix must not contain path separators: %q", c.Capture.DirPrefix)
	}
	return nil
}

func (c *Config) validateEncoder() error {
	if c.Encoder.FrameRate <= 0 {
		return fmt.Errorf("encoder.frame_rate must be a positive integer, got %d", c.Encoder.FrameRate)
	}
	if !strings.HasPrefix(c.Encoder.VideoExt, ".") {
		return fmt.Errorf("encoder.video_ext must start with a dot, got %q", c.Encoder.VideoExt)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
