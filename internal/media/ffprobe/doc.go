// Package ffprobe shells out to ffprobe to inspect produced videos.
//
// It powers the inspect command and the optional post-build verification:
// stream counts, counted frames, duration, and container size, decoded from
// ffprobe's JSON output.
package ffprobe
