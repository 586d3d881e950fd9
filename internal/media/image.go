package media

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"segue/internal/frame"
	"segue/internal/services"
)

// OpenImage decodes a still image into a single-frame source. PNG and JPEG
// are supported; anything else fails with the media-load sentinel.
func OpenImage(path string) (*SliceSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrMediaLoad, "media", "open image", path, err)
	}
	defer f.Close()

	decoded, _, err := image.Decode(f)
	if err != nil {
		return nil, services.Wrap(services.ErrMediaLoad, "media", "decode image",
			fmt.Sprintf("%s: unreadable or unsupported format", path), err)
	}
	return NewSliceSource([]*frame.Image{frame.FromImage(decoded)}), nil
}
