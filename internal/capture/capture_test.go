package capture

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestListSessionsMatchesPrefixOnly(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"capture-20260101-080000", "capture-later", "other", "captureless"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	// A plain file with a matching name must be skipped.
	if err := os.WriteFile(filepath.Join(root, "capture-file"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	sessions, err := ListSessions(root, "capture-")
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}

	names := make([]string, 0, len(sessions))
	for _, s := range sessions {
		names = append(names, s.Name)
	}
	want := []string{"capture-20260101-080000", "capture-later"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected sessions %v, got %v", want, names)
	}
}

func TestListSessionsEmpty(t *testing.T) {
	sessions, err := ListSessions(t.TempDir(), "capture-")
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %v", sessions)
	}
}

func TestFramesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	// Written out of order on purpose.
	for _, name := range []string{"frame_000002.jpg", "frame_000000.jpg", "frame_000001.jpg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	frames, err := Frames(dir, "*.jpg")
	if err != nil {
		t.Fatalf("frames: %v", err)
	}
	want := []string{"frame_000000.jpg", "frame_000001.jpg", "frame_000002.jpg"}
	if !reflect.DeepEqual(frames, want) {
		t.Fatalf("expected frames %v, got %v", want, frames)
	}
}

func TestFramesMissingDirectory(t *testing.T) {
	if _, err := Frames(filepath.Join(t.TempDir(), "absent"), "*.jpg"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestStem(t *testing.T) {
	if got := Stem("capture-x.mp4", ".mp4"); got != "capture-x" {
		t.Fatalf("expected stem capture-x, got %q", got)
	}
	if got := Stem("capture-x", ".mp4"); got != "capture-x" {
		t.Fatalf("expected bare name unchanged, got %q", got)
	}
}

func TestOutputName(t *testing.T) {
	s := Session{Name: "capture-20260101-080000"}
	if got := s.OutputName(".mp4"); got != "capture-20260101-080000.mp4" {
		t.Fatalf("unexpected output name %q", got)
	}
}
