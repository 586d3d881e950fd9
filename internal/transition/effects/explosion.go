package effects

import (
	"math/rand"

	"segue/internal/frame"
	"segue/internal/transition"
)

// Explosion scatters the outgoing frame into randomly displaced fragments
// during the first half of the transition, then gathers the incoming frame
// from fragments back into place during the second half. Displacements are
// drawn per frame from a normal distribution; set a non-zero seed for
// reproducible renders.
type Explosion struct{}

// NewExplosion constructs the effect.
func NewExplosion() transition.Transition { return &Explosion{} }

func (e *Explosion) Params() transition.Schema {
	return transition.Schema{
		"explosion_strength": {
			Type:        transition.TypeFloat,
			Default:     1.0,
			Min:         0.5,
			Max:         2.0,
			Description: "scatter distance multiplier",
		},
		"seed": {
			Type:        transition.TypeInt,
			Default:     0,
			Description: "random seed; 0 draws a fresh sequence every render",
		},
	}
}

func (e *Explosion) Apply(f1, f2 *frame.Image, frameIndex, totalFrames, fps int, params transition.Params) (*frame.Image, error) {
	resolved, err := e.Params().Resolve(params)
	if err != nil {
		return nil, err
	}
	if err := ensureSameGeometry(f1, f2); err != nil {
		return nil, err
	}
	progress := transition.Progress(frameIndex, totalFrames)
	strength := resolved.Float("explosion_strength")
	rng := frameRand(resolved.Int("seed"), frameIndex)

	// Scatter amplitude rises through the first half, falls through the
	// second as the incoming frame reassembles.
	var src *frame.Image
	var amplitude float64
	if progress < 0.5 {
		src = f1
		amplitude = progress * 2 * strength * 20
	} else {
		src = f2
		amplitude = (1 - (progress-0.5)*2) * strength * 20
	}
	if amplitude == 0 {
		return src.Clone(), nil
	}
	return scatter(src, amplitude, rng), nil
}

func scatter(img *frame.Image, amplitude float64, rng *rand.Rand) *frame.Image {
	// Precompute the displacement field so Remap's row-major traversal
	// consumes the random stream deterministically.
	n := img.W * img.H
	offsets := make([]float64, n*2)
	for i := range offsets {
		offsets[i] = rng.NormFloat64() * amplitude
	}
	return img.Remap(func(x, y int) (float64, float64) {
		idx := (y*img.W + x) * 2
		return float64(x) + offsets[idx], float64(y) + offsets[idx+1]
	})
}
