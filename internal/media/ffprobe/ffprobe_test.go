package ffprobe

import (
	"math"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "audio"},
			{CodecType: "video", Width: 1280, Height: 720, AvgFrameRate: "30000/1001", NBFrames: "450"},
			{CodecType: "video"},
		},
		Format: Format{Duration: "15.015"},
	}
	if result.VideoStreamCount() != 2 {
		t.Fatalf("expected 2 video streams, got %d", result.VideoStreamCount())
	}
	stream, ok := result.FirstVideoStream()
	if !ok {
		t.Fatal("expected a video stream")
	}
	if stream.Width != 1280 || stream.Height != 720 {
		t.Fatalf("unexpected dimensions: %dx%d", stream.Width, stream.Height)
	}
	if rate := stream.FrameRate(); math.Abs(rate-29.97) > 0.001 {
		t.Fatalf("unexpected frame rate: %v", rate)
	}
	if stream.FrameCount() != 450 {
		t.Fatalf("unexpected frame count: %d", stream.FrameCount())
	}
	if result.DurationSeconds() != 15.015 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
}

func TestStreamHelpersHandleMalformedValues(t *testing.T) {
	stream := Stream{AvgFrameRate: "0/0", NBFrames: "nope"}
	if rate := stream.FrameRate(); rate != 0 {
		t.Fatalf("expected rate 0, got %v", rate)
	}
	if count := stream.FrameCount(); count != 0 {
		t.Fatalf("expected count 0, got %d", count)
	}

	stream = Stream{AvgFrameRate: "24"}
	if rate := stream.FrameRate(); rate != 24 {
		t.Fatalf("expected rate 24, got %v", rate)
	}

	if _, ok := (Result{}).FirstVideoStream(); ok {
		t.Fatal("empty result should have no video stream")
	}
}
