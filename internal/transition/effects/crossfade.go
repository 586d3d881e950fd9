package effects

import (
	"segue/internal/frame"
	"segue/internal/services"
	"segue/internal/transition"
)

// Crossfade dissolves between the two sources. Besides the plain linear
// blend it supports fading through a solid color, additive dissolve, and a
// chromatic dissolve that shifts each channel of the incoming frame
// horizontally before blending.
type Crossfade struct{}

// NewCrossfade constructs the effect.
func NewCrossfade() transition.Transition { return &Crossfade{} }

func (c *Crossfade) Params() transition.Schema {
	return transition.Schema{
		"transition_mode": {
			Type:    transition.TypeEnum,
			Default: "crossfade",
			Choices: []string{
				"crossfade",
				"fade_to_black",
				"fade_to_white",
				"fade_to_custom",
				"additive_dissolve",
				"chromatic_dissolve",
			},
			Description: "dissolve variant",
		},
		"background_color": {
			Type:        transition.TypeString,
			Default:     "#000000",
			Description: "fade color for the fade_to_custom mode",
		},
	}
}

func (c *Crossfade) Apply(f1, f2 *frame.Image, frameIndex, totalFrames, fps int, params transition.Params) (*frame.Image, error) {
	resolved, err := c.Params().Resolve(params)
	if err != nil {
		return nil, err
	}
	if err := ensureSameGeometry(f1, f2); err != nil {
		return nil, err
	}
	p := transition.Progress(frameIndex, totalFrames)

	switch resolved.String("transition_mode") {
	case "fade_to_black":
		return fadeThroughColor(f1, f2, p, frame.Color{})
	case "fade_to_white":
		return fadeThroughColor(f1, f2, p, frame.Color{R: 255, G: 255, B: 255})
	case "fade_to_custom":
		fill, err := frame.ParseColor(resolved.String("background_color"))
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "crossfade", "background_color", err.Error(), nil)
		}
		return fadeThroughColor(f1, f2, p, fill)
	case "additive_dissolve":
		return frame.AddScaled(f1, f2, p)
	case "chromatic_dissolve":
		return chromaticBlend(f1, f2, p), nil
	default:
		return frame.Mix(f1, f2, 1-p, p)
	}
}

// fadeThroughColor runs source1 down into the solid color over the first
// half, then the color up into source2 over the second half.
func fadeThroughColor(f1, f2 *frame.Image, progress float64, fill frame.Color) (*frame.Image, error) {
	colorFrame := solidLike(f1, fill)
	if progress < 0.5 {
		alpha := progress * 2
		return frame.Mix(f1, colorFrame, 1-alpha, alpha)
	}
	alpha := (progress - 0.5) * 2
	return frame.Mix(colorFrame, f2, 1-alpha, alpha)
}

// chromaticBlend blends with a per-channel horizontal shift of the incoming
// frame proportional to progress, imitating chromatic aberration. Channel 0
// leans left, channel 2 leans right, the middle stays put.
func chromaticBlend(f1, f2 *frame.Image, progress float64) *frame.Image {
	out := frame.New(f1.W, f1.H, f1.C)
	w1 := float32(1 - progress)
	w2 := float32(progress)
	for y := 0; y < f1.H; y++ {
		for x := 0; x < f1.W; x++ {
			dst := out.Pix[out.Offset(x, y) : out.Offset(x, y)+out.C]
			src1 := f1.At(x, y)
			for ch := 0; ch < f1.C; ch++ {
				offset := 0
				if ch < 3 {
					offset = int(float64(ch-1) * progress * 10)
				}
				src2 := f2.At(x-offset, y)
				dst[ch] = src1[ch]*w1 + src2[ch]*w2
			}
		}
	}
	return out
}
