package fileutil

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"timelapse/internal/testsupport"
)

func TestRemoveMatching(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"capture-a.mp4", "capture-b.mp4", "frame.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "dir.mp4"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	removed, err := RemoveMatching(dir, "*.mp4")
	if err != nil {
		t.Fatalf("remove matching: %v", err)
	}
	want := []string{"capture-a.mp4", "capture-b.mp4"}
	if !reflect.DeepEqual(removed, want) {
		t.Fatalf("expected removed %v, got %v", want, removed)
	}

	if _, err := os.Stat(filepath.Join(dir, "frame.jpg")); err != nil {
		t.Fatalf("expected non-matching file untouched: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "dir.mp4")); err != nil {
		t.Fatalf("expected matching directory untouched: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "capture-a.mp4")); !os.IsNotExist(err) {
		t.Fatal("expected matching file removed")
	}
}

func TestRemoveMatchingNoMatches(t *testing.T) {
	removed, err := RemoveMatching(t.TempDir(), "*.mp4")
	if err != nil {
		t.Fatalf("remove matching: %v", err)
	}
	if len(removed) != 0 {
		t.Fatalf("expected no removals, got %v", removed)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("copy file: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected copy contents %q", data)
	}
}

func TestCopyFileLargeContents(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	const size = 100 * 1024
	testsupport.WriteFile(t, src, size)

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("copy file: %v", err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat dst: %v", err)
	}
	if info.Size() != size {
		t.Fatalf("expected %d bytes copied, got %d", size, info.Size())
	}
}
