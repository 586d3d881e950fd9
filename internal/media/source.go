package media

import (
	"context"
	"math"

	"segue/internal/frame"
)

// Source is a finite ordered sequence of frames. Implementations are
// restartable: any index may be requested any number of times, in any order,
// which is what allows frames of a transition to render in parallel.
//
// Returned frames are shared and must be treated as read-only; transition
// algorithms never mutate their inputs.
type Source interface {
	// Len reports the number of frames. Always at least 1.
	Len() int
	// At returns the frame at index, which must be in [0, Len()).
	At(ctx context.Context, index int) (*frame.Image, error)
}

// SampleIndex maps a normalized progress value onto a frame index, clamping
// progress to [0, 1] and rounding to the nearest frame. A single-frame source
// always samples to 0.
func SampleIndex(length int, progress float64) int {
	if length <= 1 {
		return 0
	}
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	return int(math.Round(progress * float64(length-1)))
}

// Sample returns the frame at the given normalized progress.
func Sample(ctx context.Context, src Source, progress float64) (*frame.Image, error) {
	return src.At(ctx, SampleIndex(src.Len(), progress))
}

// SliceSource serves frames from memory. It backs decoded videos and is the
// way tests feed synthetic sequences into the processor.
type SliceSource struct {
	frames []*frame.Image
}

// NewSliceSource wraps the given frames. It panics on an empty slice; a
// source with nothing to show is a programming error.
func NewSliceSource(frames []*frame.Image) *SliceSource {
	if len(frames) == 0 {
		panic("media: slice source needs at least one frame")
	}
	return &SliceSource{frames: frames}
}

func (s *SliceSource) Len() int { return len(s.frames) }

func (s *SliceSource) At(ctx context.Context, index int) (*frame.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(s.frames) {
		index = len(s.frames) - 1
	}
	return s.frames[index], nil
}
