package effects

import (
	"math"

	"segue/internal/frame"
	"segue/internal/transition"
)

// Flip3D mimics a card flip: the visible extent of the active source narrows
// along the flip axis as the card rotates toward 90 degrees, then the
// incoming source widens back out. The source switches exactly at the 90
// degree angle and the final frames snap to identity so the transition lands
// cleanly.
type Flip3D struct{}

// NewFlip3D constructs the effect.
func NewFlip3D() transition.Transition { return &Flip3D{} }

func (f *Flip3D) Params() transition.Schema {
	return transition.Schema{
		"flip_direction": {
			Type:        transition.TypeEnum,
			Default:     "horizontal",
			Choices:     []string{"horizontal", "vertical", "diagonal"},
			Description: "flip axis",
		},
		"perspective_strength": {
			Type:        transition.TypeFloat,
			Default:     1.0,
			Min:         0.5,
			Max:         2.0,
			Description: "how far the card narrows at the 90 degree point",
		},
	}
}

func (f *Flip3D) Apply(f1, f2 *frame.Image, frameIndex, totalFrames, fps int, params transition.Params) (*frame.Image, error) {
	resolved, err := f.Params().Resolve(params)
	if err != nil {
		return nil, err
	}
	if err := ensureSameGeometry(f1, f2); err != nil {
		return nil, err
	}
	progress := transition.Progress(frameIndex, totalFrames)
	flipAngle := progress * 180

	// Narrowing depth at 90 degrees, modulated by perspective strength and
	// capped so the card never collapses to a line.
	depth := 0.8 * resolved.Float("perspective_strength")
	if depth > 0.95 {
		depth = 0.95
	}

	var current *frame.Image
	var extent float64
	if flipAngle <= 90 {
		current = f1
		extent = 1 - (flipAngle/90)*depth
	} else {
		current = f2
		extent = ((flipAngle - 90) / 90) * depth
	}
	// Let the tail of the transition settle on the unwarped incoming frame.
	if progress >= 0.95 {
		return f2.Clone(), nil
	}
	if extent < 0.2 {
		extent = 0.2
	}

	w := float64(current.W)
	h := float64(current.H)
	full := [4]frame.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}

	var dst [4]frame.Point
	switch resolved.String("flip_direction") {
	case "vertical":
		top := h * (1 - extent) / 2
		bottom := h * (1 + extent) / 2
		dst = [4]frame.Point{{X: 0, Y: top}, {X: w, Y: top}, {X: w, Y: bottom}, {X: 0, Y: bottom}}
	case "diagonal":
		scale := math.Abs(math.Cos(flipAngle*math.Pi/180))*0.7 + 0.3
		if scale < 0.3 {
			scale = 0.3
		}
		left := w * (1 - scale) / 2
		right := w * (1 + scale) / 2
		top := h * (1 - scale) / 2
		bottom := h * (1 + scale) / 2
		dst = [4]frame.Point{{X: left, Y: top}, {X: right, Y: top}, {X: right, Y: bottom}, {X: left, Y: bottom}}
	default: // horizontal
		left := w * (1 - extent) / 2
		right := w * (1 + extent) / 2
		dst = [4]frame.Point{{X: left, Y: 0}, {X: right, Y: 0}, {X: right, Y: h}, {X: left, Y: h}}
	}

	homography, err := frame.PerspectiveTransform(full, dst)
	if err != nil {
		return nil, err
	}
	return current.WarpPerspective(homography), nil
}
