package frame

import "fmt"

// Mix computes the weighted sum w1*a + w2*b per channel. Both images must
// share geometry. Weights are not constrained to sum to one; callers that
// need artifact-free composites (the warp family) pass smoothstep-normalized
// weights.
func Mix(a, b *Image, w1, w2 float64) (*Image, error) {
	if !a.SameGeometry(b) {
		return nil, fmt.Errorf("mix: geometry mismatch %dx%dx%d vs %dx%dx%d", a.W, a.H, a.C, b.W, b.H, b.C)
	}
	f1 := float32(w1)
	f2 := float32(w2)
	out := New(a.W, a.H, a.C)
	for i := range a.Pix {
		out.Pix[i] = a.Pix[i]*f1 + b.Pix[i]*f2
	}
	return out, nil
}

// AddScaled computes a + b*weight per channel, clipped to the pixel range.
// This is the additive-dissolve primitive.
func AddScaled(a, b *Image, weight float64) (*Image, error) {
	if !a.SameGeometry(b) {
		return nil, fmt.Errorf("add: geometry mismatch %dx%dx%d vs %dx%dx%d", a.W, a.H, a.C, b.W, b.H, b.C)
	}
	w := float32(weight)
	out := New(a.W, a.H, a.C)
	for i := range a.Pix {
		v := a.Pix[i] + b.Pix[i]*w
		if v > 255 {
			v = 255
		}
		out.Pix[i] = v
	}
	return out, nil
}

// Smoothstep is the cubic ease 3t^2 - 2t^3 clamped to [0, 1].
func Smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// BlendWeights derives the two composite weights for a given progress. The
// incoming weight is smoothstep-eased and the pair is normalized so the sum
// is exactly 1, which keeps composites free of dark borders.
func BlendWeights(progress float64) (alpha1, alpha2 float64) {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	alpha2 = Smoothstep(progress)
	alpha1 = 1 - alpha2
	total := alpha1 + alpha2
	if total > 0 {
		alpha1 /= total
		alpha2 /= total
	}
	return alpha1, alpha2
}
