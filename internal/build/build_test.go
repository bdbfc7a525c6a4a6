package build

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"timelapse/internal/history"
	"timelapse/internal/services"
	"timelapse/internal/services/ffmpeg"
	"timelapse/internal/testsupport"
)

// fakeEncoder records requests and simulates the encoder by writing the
// output file, the way ffmpeg -y would.
type fakeEncoder struct {
	requests []ffmpeg.Request
	err      error
}

func (f *fakeEncoder) Encode(_ context.Context, req ffmpeg.Request) error {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(req.OutputPath, []byte("video"), 0o644)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildMissingSourceDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	enc := &fakeEncoder{}
	engine := New(cfg, enc, nil, testLogger())

	_, err := engine.Build(context.Background(), "capture-nope.mp4")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(enc.requests) != 0 {
		t.Fatal("expected encoder not to be invoked")
	}
	if _, statErr := os.Stat(filepath.Join(cfg.Paths.OutputDir, "capture-nope.mp4")); !os.IsNotExist(statErr) {
		t.Fatal("expected no output file to be created")
	}
}

func TestBuildNoFramesFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFrames(t, cfg.Paths.CaptureRoot, "capture-empty", 0)
	enc := &fakeEncoder{}
	engine := New(cfg, enc, nil, testLogger())

	_, err := engine.Build(context.Background(), "capture-empty.mp4")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(enc.requests) != 0 {
		t.Fatal("expected encoder not to be invoked")
	}
	if _, statErr := os.Stat(filepath.Join(cfg.Paths.OutputDir, "capture-empty.mp4")); !os.IsNotExist(statErr) {
		t.Fatal("expected no output file to be created")
	}
}

func TestBuildSuccess(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFrames(t, cfg.Paths.CaptureRoot, "capture-ok", 3)
	enc := &fakeEncoder{}
	engine := New(cfg, enc, nil, testLogger())

	result, err := engine.Build(context.Background(), "capture-ok.mp4")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.FrameCount != 3 {
		t.Fatalf("expected 3 frames, got %d", result.FrameCount)
	}
	if _, err := os.Stat(result.OutputPath); err != nil {
		t.Fatalf("expected output file, got %v", err)
	}
	if len(enc.requests) != 1 {
		t.Fatalf("expected exactly one encoder invocation, got %d", len(enc.requests))
	}
	req := enc.requests[0]
	if req.SourceDir != filepath.Join(cfg.Paths.CaptureRoot, "capture-ok") {
		t.Fatalf("unexpected source dir %q", req.SourceDir)
	}
	if req.OutputPath != filepath.Join(cfg.Paths.OutputDir, "capture-ok.mp4") {
		t.Fatalf("unexpected output path %q", req.OutputPath)
	}
}

func TestBuildAcceptsBareStem(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFrames(t, cfg.Paths.CaptureRoot, "capture-ok", 1)
	enc := &fakeEncoder{}
	engine := New(cfg, enc, nil, testLogger())

	result, err := engine.Build(context.Background(), "capture-ok")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if filepath.Base(result.OutputPath) != "capture-ok.mp4" {
		t.Fatalf("expected derived output name, got %q", result.OutputPath)
	}
}

func TestBuildParameterOverridesReachEncoder(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithFrameRate(15), testsupport.WithPreset("ultrafast"))
	cfg.Encoder.FontPath = "/fonts/custom.ttf"
	testsupport.WriteFrames(t, cfg.Paths.CaptureRoot, "capture-ok", 2)
	enc := &fakeEncoder{}
	engine := New(cfg, enc, nil, testLogger())

	if _, err := engine.Build(context.Background(), "capture-ok.mp4"); err != nil {
		t.Fatalf("build: %v", err)
	}
	req := enc.requests[0]
	if req.FrameRate != 15 {
		t.Fatalf("expected frame rate 15, got %d", req.FrameRate)
	}
	if req.Preset != "ultrafast" {
		t.Fatalf("expected preset ultrafast, got %q", req.Preset)
	}
	if req.FontPath != "/fonts/custom.ttf" {
		t.Fatalf("expected font path override, got %q", req.FontPath)
	}
}

func TestBuildRebuildOverwrites(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFrames(t, cfg.Paths.CaptureRoot, "capture-ok", 2)
	enc := &fakeEncoder{}
	engine := New(cfg, enc, nil, testLogger())

	for i := 0; i < 2; i++ {
		if _, err := engine.Build(context.Background(), "capture-ok.mp4"); err != nil {
			t.Fatalf("build %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	outputs := 0
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".mp4" {
			outputs++
		}
	}
	if outputs != 1 {
		t.Fatalf("expected exactly one output after rebuild, got %d", outputs)
	}
}

func TestBuildEncoderFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFrames(t, cfg.Paths.CaptureRoot, "capture-ok", 2)
	enc := &fakeEncoder{err: errors.New("exit status 1")}
	engine := New(cfg, enc, nil, testLogger())

	_, err := engine.Build(context.Background(), "capture-ok.mp4")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestBuildRecordsHistory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	testsupport.WriteFrames(t, cfg.Paths.CaptureRoot, "capture-ok", 2)
	enc := &fakeEncoder{}
	engine := New(cfg, enc, store, testLogger())

	if _, err := engine.Build(context.Background(), "capture-ok.mp4"); err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := engine.Build(context.Background(), "capture-missing.mp4"); err == nil {
		t.Fatal("expected failure for missing source")
	}

	records, err := store.Recent(context.Background(), 10, false)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 recorded attempts, got %d", len(records))
	}
	// Newest first: the failed attempt.
	if records[0].Status != history.StatusFailed || records[0].ErrorKind != "not_found" {
		t.Fatalf("unexpected failed record: %+v", records[0])
	}
	if records[1].Status != history.StatusCompleted || records[1].FrameCount != 2 {
		t.Fatalf("unexpected completed record: %+v", records[1])
	}
}
