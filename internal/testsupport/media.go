package testsupport

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"segue/internal/frame"
	"segue/internal/media"
)

// WritePNG renders a solid-color PNG at path for tests that load real image
// sources.
func WritePNG(t testing.TB, path string, w, h int, c color.RGBA) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// SolidSource builds a single-frame in-memory source of one color.
func SolidSource(w, h int, c frame.Color) *media.SliceSource {
	return media.NewSliceSource([]*frame.Image{frame.Solid(w, h, c)})
}
