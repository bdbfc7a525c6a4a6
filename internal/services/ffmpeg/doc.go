// Package ffmpeg wraps the external ffmpeg binary so the build engine can
// stitch frame sequences into H.264 videos.
//
// It exposes a Client interface and a CLI implementation that constructs the
// glob-input invocation (framerate, drawtext frame-counter overlay, libx264,
// yuv420p, preset, unconditional overwrite) and runs it synchronously,
// forwarding diagnostics to the caller's streams. Tests can swap in fakes to
// avoid executing the real encoder while still exercising build behaviour.
package ffmpeg
