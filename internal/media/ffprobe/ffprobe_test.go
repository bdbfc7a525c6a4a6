package ffprobe

import (
	"context"
	"math"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", CodecName: "h264", NBFrames: "120", Width: 1920, Height: 1080},
		},
		Format: Format{
			Duration: "4.0",
			Size:     "1000",
		},
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.DurationSeconds() != 4.0 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.FrameCount() != 120 {
		t.Fatalf("unexpected frame count: %d", result.FrameCount())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	if stream := result.VideoStream(); stream == nil || stream.CodecName != "h264" {
		t.Fatalf("unexpected video stream: %+v", stream)
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "video", NBFrames: "bad"}},
		Format:  Format{Duration: "bad", Size: "-1"},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.FrameCount() != 0 {
		t.Fatalf("expected frame count 0, got %d", result.FrameCount())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
}

func TestResultHelpersNoVideoStream(t *testing.T) {
	result := Result{Streams: []Stream{{CodecType: "audio"}}}
	if result.VideoStream() != nil {
		t.Fatal("expected nil video stream")
	}
	if result.FrameCount() != 0 {
		t.Fatalf("expected frame count 0, got %d", result.FrameCount())
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
