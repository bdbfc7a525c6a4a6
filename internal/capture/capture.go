package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Session identifies one capture directory: a directory of sequentially
// captured still frames forming a single timelapse.
type Session struct {
	// Name is the directory name, e.g. "capture-20260829-093000".
	Name string
	// Path is the absolute or root-relative path to the directory.
	Path string
}

// OutputName derives the video file name for this session. The mapping is
// purely textual: same stem, video extension appended.
func (s Session) OutputName(videoExt string) string {
	return s.Name + videoExt
}

// Stem strips the video extension from an output name. Names without the
// extension are returned unchanged and treated as a bare stem.
func Stem(outputName, videoExt string) string {
	return strings.TrimSuffix(outputName, videoExt)
}

// ListSessions scans root for directories whose name starts with prefix. The
// suffix (typically a timestamp) is not validated. Results are sorted by name
// so output is stable regardless of directory listing order.
func ListSessions(root, prefix string) ([]Session, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read capture root %q: %w", root, err)
	}

	sessions := make([]Session, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		sessions = append(sessions, Session{Name: name, Path: filepath.Join(root, name)})
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Name < sessions[j].Name })
	return sessions, nil
}

// Frames returns the frame file names in dir matching glob, sorted
// lexicographically. The capture tool emits zero-padded names
// (frame_000000.jpg), so lexicographic order is capture order. Subdirectories
// are ignored.
func Frames(dir, glob string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read capture directory %q: %w", dir, err)
	}

	frames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := filepath.Match(glob, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("match frame glob %q: %w", glob, err)
		}
		if matched {
			frames = append(frames, entry.Name())
		}
	}
	sort.Strings(frames)
	return frames, nil
}
