package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"timelapse/internal/capture"
	"timelapse/internal/config"
	"timelapse/internal/history"
	"timelapse/internal/media/ffprobe"
	"timelapse/internal/services"
	"timelapse/internal/services/ffmpeg"
)

// Engine maps a requested output video name to its capture directory,
// validates preconditions, and produces the output by delegating to the
// external encoder.
type Engine struct {
	cfg     *config.Config
	encoder ffmpeg.Client
	store   *history.Store
	logger  *slog.Logger
	verify  bool
}

// Option configures the engine.
type Option func(*Engine)

// WithVerification enables an ffprobe check of the produced file after a
// successful encode. Off by default: the base guarantee is the encoder's own.
func WithVerification() Option {
	return func(e *Engine) {
		e.verify = true
	}
}

// New constructs a build engine. The history store may be nil, in which case
// attempts are not recorded.
func New(cfg *config.Config, encoder ffmpeg.Client, store *history.Store, logger *slog.Logger, opts ...Option) *Engine {
	engine := &Engine{cfg: cfg, encoder: encoder, store: store, logger: logger}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Result summarizes a completed build.
type Result struct {
	OutputPath string
	SourceDir  string
	FrameCount int
	Elapsed    time.Duration
}

// Build produces the video for outputName. The source directory is derived
// textually from the name: same stem, video extension stripped. A bare stem
// without the extension is accepted and the extension appended.
//
// Each failure is terminal for the invocation: no retry, no cleanup of
// whatever partial file the encoder may have left behind.
func (e *Engine) Build(ctx context.Context, outputName string) (*Result, error) {
	stem := capture.Stem(outputName, e.cfg.Encoder.VideoExt)
	if stem == "" {
		return nil, services.Wrap(services.ErrValidation, "build", "output name is empty", nil)
	}
	outputPath := filepath.Join(e.cfg.Paths.OutputDir, stem+e.cfg.Encoder.VideoExt)
	sourceDir := filepath.Join(e.cfg.Paths.CaptureRoot, stem)

	started := time.Now().UTC()

	info, err := os.Stat(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, e.fail(ctx, started, stem, outputPath, 0,
				services.Wrap(services.ErrNotFound, "build", fmt.Sprintf("source directory %s missing", sourceDir), nil))
		}
		return nil, e.fail(ctx, started, stem, outputPath, 0,
			services.Wrap(services.ErrNotFound, "build", fmt.Sprintf("stat source directory %s", sourceDir), err))
	}
	if !info.IsDir() {
		return nil, e.fail(ctx, started, stem, outputPath, 0,
			services.Wrap(services.ErrNotFound, "build", fmt.Sprintf("%s is not a directory", sourceDir), nil))
	}

	frames, err := capture.Frames(sourceDir, e.cfg.Capture.FrameGlob)
	if err != nil {
		return nil, e.fail(ctx, started, stem, outputPath, 0,
			services.Wrap(services.ErrValidation, "build", "list frames", err))
	}
	if len(frames) == 0 {
		return nil, e.fail(ctx, started, stem, outputPath, 0,
			services.Wrap(services.ErrValidation, "build", fmt.Sprintf("no frames matching %s in %s", e.cfg.Capture.FrameGlob, sourceDir), nil))
	}

	e.logger.Info("building timelapse",
		"source", sourceDir,
		"output", outputPath,
		"frames", len(frames),
		"frame_rate", e.cfg.Encoder.FrameRate,
		"preset", e.cfg.Encoder.Preset,
	)

	req := ffmpeg.Request{
		SourceDir:  sourceDir,
		FrameGlob:  e.cfg.Capture.FrameGlob,
		OutputPath: outputPath,
		FrameRate:  e.cfg.Encoder.FrameRate,
		FontPath:   e.cfg.Encoder.FontPath,
		Preset:     e.cfg.Encoder.Preset,
	}
	if err := e.encoder.Encode(ctx, req); err != nil {
		return nil, e.fail(ctx, started, stem, outputPath, len(frames),
			services.Wrap(services.ErrExternalTool, "build", "encode "+outputPath, err))
	}

	if e.verify {
		if err := e.verifyOutput(ctx, outputPath); err != nil {
			return nil, e.fail(ctx, started, stem, outputPath, len(frames), err)
		}
	}

	elapsed := time.Since(started)
	e.record(ctx, history.Record{
		Output:     filepath.Base(outputPath),
		SourceDir:  sourceDir,
		FrameCount: len(frames),
		FrameRate:  e.cfg.Encoder.FrameRate,
		Preset:     e.cfg.Encoder.Preset,
		Status:     history.StatusCompleted,
		StartedAt:  started,
		FinishedAt: started.Add(elapsed),
	})

	e.logger.Info("timelapse complete", "output", outputPath, "elapsed", elapsed.Round(time.Millisecond))
	return &Result{
		OutputPath: outputPath,
		SourceDir:  sourceDir,
		FrameCount: len(frames),
		Elapsed:    elapsed,
	}, nil
}

func (e *Engine) verifyOutput(ctx context.Context, outputPath string) error {
	result, err := ffprobe.Inspect(ctx, e.cfg.FFprobeBinary(), outputPath)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "verify", "inspect "+outputPath, err)
	}
	if result.VideoStreamCount() == 0 {
		return services.Wrap(services.ErrValidation, "verify", outputPath+" has no video stream", nil)
	}
	if !(result.DurationSeconds() > 0) {
		return services.Wrap(services.ErrValidation, "verify", outputPath+" has zero duration", nil)
	}
	return nil
}

// fail records the attempt and returns the error unchanged.
func (e *Engine) fail(ctx context.Context, started time.Time, stem, outputPath string, frameCount int, cause error) error {
	e.record(ctx, history.Record{
		Output:       filepath.Base(outputPath),
		SourceDir:    filepath.Join(e.cfg.Paths.CaptureRoot, stem),
		FrameCount:   frameCount,
		FrameRate:    e.cfg.Encoder.FrameRate,
		Preset:       e.cfg.Encoder.Preset,
		Status:       history.StatusFailed,
		ErrorKind:    services.Kind(cause),
		ErrorMessage: cause.Error(),
		StartedAt:    started,
		FinishedAt:   time.Now().UTC(),
	})
	return cause
}

func (e *Engine) record(ctx context.Context, rec history.Record) {
	if e.store == nil {
		return
	}
	if _, err := e.store.Add(ctx, rec); err != nil {
		e.logger.Warn("record build attempt", "error", err)
	}
}
