package transition

import (
	"segue/internal/frame"
)

// Transition turns two per-progress source frames into one output frame.
// Implementations must be stateless: every Apply call depends only on its
// arguments, except where a parameter explicitly requests randomness (the
// shake and explosion effects document a seed parameter for that).
type Transition interface {
	// Params describes the effect-specific parameter schema. It must be
	// side-effect free.
	Params() Schema

	// Apply renders the output frame for frameIndex out of totalFrames.
	// Both inputs arrive pre-resized to the request geometry; the output
	// must match that geometry and channel count exactly. All arithmetic
	// is clamped to the valid pixel range.
	Apply(f1, f2 *frame.Image, frameIndex, totalFrames, fps int, params Params) (*frame.Image, error)
}

// Constructor builds a fresh transition instance.
type Constructor func() Transition

// Progress maps a frame index to the normalized transition position:
// 0 is fully source1, 1 is fully source2. A single-frame render sits at 0.
func Progress(frameIndex, totalFrames int) float64 {
	if totalFrames <= 1 {
		return 0
	}
	return float64(frameIndex) / float64(totalFrames-1)
}
