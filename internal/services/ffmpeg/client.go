package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

var commandContext = exec.CommandContext

// Request describes one encode: a directory of frames in, a video file out.
type Request struct {
	SourceDir  string
	FrameGlob  string
	OutputPath string
	FrameRate  int
	FontPath   string
	Preset     string
}

// Client defines encoder behaviour. Tests swap in fakes to avoid executing
// the real binary.
type Client interface {
	Encode(ctx context.Context, req Request) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithOutput redirects the encoder's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *CLI) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// CLI wraps the ffmpeg command-line encoder.
type CLI struct {
	binary string
	stdout io.Writer
	stderr io.Writer
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg", stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Args constructs the full ffmpeg argument list for a request. Exposed so
// tests can assert that overridden parameters appear literally.
func Args(req Request) []string {
	glob := req.FrameGlob
	if glob == "" {
		glob = "*.jpg"
	}
	args := []string{
		"-framerate", strconv.Itoa(req.FrameRate),
		"-pattern_type", "glob",
		"-i", filepath.Join(req.SourceDir, glob),
	}
	if req.FontPath != "" {
		args = append(args, "-vf", overlayFilter(req.FontPath))
	}
	args = append(args,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-preset", req.Preset,
		"-y", req.OutputPath,
	)
	return args
}

// overlayFilter burns a running frame counter into the top-left corner:
// white 24pt text on a semi-transparent black box. The %{frame_num} expansion
// is evaluated by ffmpeg per output frame.
func overlayFilter(fontPath string) string {
	return fmt.Sprintf("drawtext=fontfile=%s:text='Frame %%{frame_num}':fontcolor=white:fontsize=24:box=1:boxcolor=black@0.25:boxborderw=5:x=10:y=10", fontPath)
}

// Encode launches ffmpeg synchronously and waits for it to exit. Encoder
// diagnostics are forwarded verbatim to the configured streams; a non-zero
// exit surfaces as an error with no retry.
func (c *CLI) Encode(ctx context.Context, req Request) error {
	if req.SourceDir == "" {
		return errors.New("source directory required")
	}
	if req.OutputPath == "" {
		return errors.New("output path required")
	}
	if req.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", req.FrameRate)
	}

	cmd := commandContext(ctx, c.binary, Args(req)...) //nolint:gosec
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg encode failed: %w", err)
	}
	return nil
}

var _ Client = (*CLI)(nil)
