package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCapture()
	c.normalizeEncoder()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CaptureRoot) == "" {
		c.Paths.CaptureRoot = defaultCaptureRoot
	}
	if c.Paths.CaptureRoot, err = expandPath(c.Paths.CaptureRoot); err != nil {
		return fmt.Errorf("paths.capture_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = c.Paths.CaptureRoot
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCapture() {
	c.Capture.DirPrefix = strings.TrimSpace(c.Capture.DirPrefix)
	if c.Capture.DirPrefix == "" {
		c.Capture.DirPrefix = defaultDirPrefix
	}
	c.Capture.FrameGlob = strings.TrimSpace(c.Capture.FrameGlob)
	if c.Capture.FrameGlob == "" {
		c.Capture.FrameGlob = defaultFrameGlob
	}
}

func (c *Config) normalizeEncoder() {
	c.Encoder.Binary = strings.TrimSpace(c.Encoder.Binary)
	if c.Encoder.Binary == "" {
		c.Encoder.Binary = defaultBinary
	}
	c.Encoder.FFprobeBinary = strings.TrimSpace(c.Encoder.FFprobeBinary)
	if c.Encoder.FFprobeBinary == "" {
		c.Encoder.FFprobeBinary = defaultFFprobe
	}
	c.Encoder.Preset = strings.TrimSpace(c.Encoder.Preset)
	if c.Encoder.Preset == "" {
		c.Encoder.Preset = defaultPreset
	}
	c.Encoder.FontPath = strings.TrimSpace(c.Encoder.FontPath)
	c.Encoder.VideoExt = strings.TrimSpace(c.Encoder.VideoExt)
	if c.Encoder.VideoExt == "" {
		c.Encoder.VideoExt = defaultVideoExt
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
