package effects

import (
	"fmt"

	"segue/internal/frame"
	"segue/internal/services"
)

func ensureSameGeometry(f1, f2 *frame.Image) error {
	if !f1.SameGeometry(f2) {
		return services.Wrap(services.ErrFrameDimension, "effects", "apply",
			fmt.Sprintf("source geometry mismatch %dx%dx%d vs %dx%dx%d", f1.W, f1.H, f1.C, f2.W, f2.H, f2.C), nil)
	}
	return nil
}

// solidLike builds a solid-color frame matching ref's geometry and channel
// count so blends against it never trip the dimension check.
func solidLike(ref *frame.Image, c frame.Color) *frame.Image {
	out := frame.New(ref.W, ref.H, ref.C)
	for i := 0; i < len(out.Pix); i += ref.C {
		out.Pix[i] = float32(c.R)
		out.Pix[i+1] = float32(c.G)
		out.Pix[i+2] = float32(c.B)
		if ref.C == 4 {
			out.Pix[i+3] = 255
		}
	}
	return out
}

// sourceForHalf picks the outgoing source for the first half of the
// transition and the incoming one afterwards, the selection rule shared by
// shake and blink style cut effects.
func sourceForHalf(f1, f2 *frame.Image, progress float64) *frame.Image {
	if progress < 0.5 {
		return f1
	}
	return f2
}
