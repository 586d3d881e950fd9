package effects

import (
	"math"

	"segue/internal/frame"
	"segue/internal/services"
	"segue/internal/transition"
)

// Blink closes a pair of curved eyelids over the frame and opens them onto
// the incoming source, switching at the midpoint frame. Closure drives a
// proportional blur, the lids have feathered edges, and the fully covered
// region shows a solid mask-color backdrop.
type Blink struct{}

// NewBlink constructs the effect.
func NewBlink() transition.Transition { return &Blink{} }

func (b *Blink) Params() transition.Schema {
	return transition.Schema{
		"blink_speed": {
			Type:        transition.TypeFloat,
			Default:     1.0,
			Min:         0.3,
			Max:         3.0,
			Description: "exponent shaping the close/open curve",
		},
		"blur_intensity": {
			Type:        transition.TypeFloat,
			Default:     0.8,
			Min:         0.0,
			Max:         2.0,
			Description: "blur strength at full closure",
		},
		"eyelid_curve": {
			Type:        transition.TypeFloat,
			Default:     0.3,
			Min:         0.0,
			Max:         1.0,
			Description: "arc of the eyelid edge",
		},
		"edge_feather": {
			Type:        transition.TypeFloat,
			Default:     0.2,
			Min:         0.0,
			Max:         1.0,
			Description: "softness of the lid boundary",
		},
		"mask_color": {
			Type:        transition.TypeEnum,
			Default:     "black",
			Choices:     []string{"black", "white", "gray"},
			Description: "backdrop behind the closed lids",
		},
	}
}

func (b *Blink) Apply(f1, f2 *frame.Image, frameIndex, totalFrames, fps int, params transition.Params) (*frame.Image, error) {
	resolved, err := b.Params().Resolve(params)
	if err != nil {
		return nil, err
	}
	if err := ensureSameGeometry(f1, f2); err != nil {
		return nil, err
	}

	midpoint := totalFrames / 2
	if midpoint < 1 {
		midpoint = 1
	}
	speed := resolved.Float("blink_speed")

	// Closure follows a 0..1..0 arc peaking at the midpoint where the
	// sources swap.
	var closure float64
	if frameIndex < midpoint {
		closure = math.Pow(float64(frameIndex)/float64(midpoint), speed)
	} else {
		closure = math.Pow(float64(totalFrames-frameIndex)/float64(midpoint), speed)
	}
	closure = math.Min(1, math.Max(0, closure))

	src := f1
	if frameIndex >= midpoint {
		src = f2
	}

	maskColor, err := frame.ParseColor(resolved.String("mask_color"))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "blink", "mask_color", err.Error(), nil)
	}

	blurred := src
	if closure > 0.1 {
		size := int(5 + resolved.Float("blur_intensity")*closure*15)
		blurred = src.GaussianBlur(size | 1)
	}

	lidMask := eyelidMask(src.W, src.H, closure, resolved.Float("eyelid_curve"), resolved.Float("edge_feather"))
	backdrop := solidLike(src, maskColor)

	out := frame.New(src.W, src.H, src.C)
	for y := 0; y < src.H; y++ {
		alphaRow := lidMask[y]
		for x := 0; x < src.W; x++ {
			a := alphaRow[x]
			off := out.Offset(x, y)
			for c := 0; c < src.C; c++ {
				out.Pix[off+c] = backdrop.Pix[off+c]*(1-a) + blurred.Pix[off+c]*a
			}
		}
	}
	return out, nil
}

// eyelidMask returns per-pixel visibility: 1 where the scene shows through,
// descending to 0 under the lids. Both lids close symmetrically from the top
// and bottom edges; the lid boundary bows inward by the curve factor and the
// feather band ramps alpha instead of cutting hard.
func eyelidMask(w, h int, closure, curve, feather float64) [][]float32 {
	mask := make([][]float32, h)
	for y := range mask {
		row := make([]float32, w)
		for x := range row {
			row[x] = 1
		}
		mask[y] = row
	}

	maxClosure := h / 2
	current := int(float64(maxClosure) * closure)
	if current == 0 {
		return mask
	}

	featherBand := feather * float64(current)
	for i := 0; i < current; i++ {
		normalized := float64(i) / float64(current)
		curveOffset := 0
		if curve > 0 {
			curveOffset = int((1.0 - math.Pow(normalized, curve)) * float64(w) * 0.1)
		}
		// Fully covered deep under the lid, ramping back to visible across
		// the feather band at the lid's inner edge.
		visibility := float32(0)
		if featherBand > 0 {
			if distFromInner := float64(current - i); distFromInner < featherBand {
				visibility = float32(1 - distFromInner/featherBand)
			}
		}
		// Upper lid row i and lower lid row h-1-i, leaving the curved
		// margins uncovered.
		for x := curveOffset; x < w-curveOffset; x++ {
			mask[i][x] = visibility
			mask[h-1-i][x] = visibility
		}
	}
	return mask
}
