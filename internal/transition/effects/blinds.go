package effects

import (
	"segue/internal/frame"
	"segue/internal/transition"
)

// Blinds partitions the frame into N oriented strips and flips each one to
// the incoming source once the scaled progress passes the strip's index, so
// the reveal sweeps across the slats. At progress 1 every strip has flipped.
type Blinds struct{}

// NewBlinds constructs the effect.
func NewBlinds() transition.Transition { return &Blinds{} }

func (b *Blinds) Params() transition.Schema {
	return transition.Schema{
		"direction": {
			Type:        transition.TypeEnum,
			Default:     "horizontal",
			Choices:     []string{"horizontal", "vertical", "diagonal"},
			Description: "slat orientation",
		},
		"slat_count": {
			Type:        transition.TypeInt,
			Default:     10,
			Min:         5,
			Max:         20,
			Description: "number of slats",
		},
	}
}

func (b *Blinds) Apply(f1, f2 *frame.Image, frameIndex, totalFrames, fps int, params transition.Params) (*frame.Image, error) {
	resolved, err := b.Params().Resolve(params)
	if err != nil {
		return nil, err
	}
	if err := ensureSameGeometry(f1, f2); err != nil {
		return nil, err
	}
	progress := transition.Progress(frameIndex, totalFrames)
	slats := resolved.Int("slat_count")
	direction := resolved.String("direction")

	out := f1.Clone()
	scaled := progress * float64(slats)
	for y := 0; y < f1.H; y++ {
		for x := 0; x < f1.W; x++ {
			var index int
			switch direction {
			case "vertical":
				index = x * slats / f1.W
			case "diagonal":
				index = (x + y) * slats / (f1.W + f1.H)
			default: // horizontal
				index = y * slats / f1.H
			}
			if scaled > float64(index) {
				off := out.Offset(x, y)
				copy(out.Pix[off:off+out.C], f2.Pix[off:off+out.C])
			}
		}
	}
	return out, nil
}
