package media_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"segue/internal/frame"
	"segue/internal/media"
	"segue/internal/services"
)

func TestSampleIndex(t *testing.T) {
	cases := []struct {
		length   int
		progress float64
		want     int
	}{
		{1, 0.0, 0},
		{1, 1.0, 0},
		{10, 0.0, 0},
		{10, 1.0, 9},
		{10, 0.5, 5},
		{10, -0.3, 0},
		{10, 1.7, 9},
		{5, 0.26, 1},
	}
	for _, tc := range cases {
		if got := media.SampleIndex(tc.length, tc.progress); got != tc.want {
			t.Fatalf("SampleIndex(%d, %v) = %d, want %d", tc.length, tc.progress, got, tc.want)
		}
	}
}

func TestSliceSourceServesFrames(t *testing.T) {
	frames := []*frame.Image{
		frame.Solid(8, 8, frame.Color{R: 255}),
		frame.Solid(8, 8, frame.Color{G: 255}),
		frame.Solid(8, 8, frame.Color{B: 255}),
	}
	src := media.NewSliceSource(frames)
	if src.Len() != 3 {
		t.Fatalf("Len = %d, want 3", src.Len())
	}

	got, err := src.At(context.Background(), 1)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if got.Pix[1] != 255 {
		t.Fatalf("frame 1 should be green, got %v", got.Pix[:3])
	}

	// Out-of-range indexes clamp to the final frame.
	got, err = src.At(context.Background(), 99)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if got.Pix[2] != 255 {
		t.Fatalf("clamped frame should be blue, got %v", got.Pix[:3])
	}
}

func TestSliceSourceHonorsCancellation(t *testing.T) {
	src := media.NewSliceSource([]*frame.Image{frame.Solid(4, 4, frame.Color{})})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.At(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestSampleEndpointsOfSequence(t *testing.T) {
	frames := []*frame.Image{
		frame.Solid(4, 4, frame.Color{R: 10}),
		frame.Solid(4, 4, frame.Color{R: 20}),
		frame.Solid(4, 4, frame.Color{R: 30}),
	}
	src := media.NewSliceSource(frames)

	first, err := media.Sample(context.Background(), src, 0)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if first.Pix[0] != 10 {
		t.Fatalf("progress 0 should sample the first frame, got %v", first.Pix[0])
	}

	last, err := media.Sample(context.Background(), src, 1)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if last.Pix[0] != 30 {
		t.Fatalf("progress 1 should sample the last frame, got %v", last.Pix[0])
	}
}

func TestOpenImageDecodesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "still.png")
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	src, err := media.OpenImage(path)
	if err != nil {
		t.Fatalf("OpenImage: %v", err)
	}
	if src.Len() != 1 {
		t.Fatalf("still image should be a single-frame source, got %d", src.Len())
	}
	got, err := src.At(context.Background(), 0)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if got.W != 6 || got.H != 4 || got.C != 3 {
		t.Fatalf("unexpected geometry %dx%dx%d", got.W, got.H, got.C)
	}
	if got.Pix[0] != 200 || got.Pix[1] != 100 || got.Pix[2] != 50 {
		t.Fatalf("unexpected pixel %v", got.Pix[:3])
	}
}

func TestOpenImageFailsWithMediaLoadError(t *testing.T) {
	if _, err := media.OpenImage(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, services.ErrMediaLoad) {
		t.Fatalf("expected media load error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := media.OpenImage(path); !errors.Is(err, services.ErrMediaLoad) {
		t.Fatalf("expected media load error, got %v", err)
	}
}
