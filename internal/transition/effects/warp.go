package effects

import (
	"math"

	"segue/internal/frame"
	"segue/internal/transition"
)

// Warp distorts both sources with a progress-driven displacement field and
// composites them with smoothstep-eased weights that always sum to one, so
// the dissolve never shows dark borders. The outgoing frame's distortion
// ramps up with progress while the incoming frame's ramps down; the incoming
// frame can additionally recover from a magnified view back to 1x.
type Warp struct{}

// NewWarp constructs the effect.
func NewWarp() transition.Transition { return &Warp{} }

func (w *Warp) Params() transition.Schema {
	return transition.Schema{
		"warp_type": {
			Type:        transition.TypeEnum,
			Default:     "swirl",
			Choices:     []string{"swirl", "squeeze_h", "squeeze_v", "liquid", "wave"},
			Description: "displacement field",
		},
		"warp_intensity": {
			Type:        transition.TypeFloat,
			Default:     0.5,
			Min:         0.1,
			Max:         2.0,
			Description: "displacement magnitude",
		},
		"warp_speed": {
			Type:        transition.TypeFloat,
			Default:     1.0,
			Min:         0.1,
			Max:         3.0,
			Description: "oscillation speed of the time-varying fields",
		},
		"max_scale": {
			Type:        transition.TypeFloat,
			Default:     1.3,
			Min:         1.0,
			Max:         3.0,
			Description: "initial zoom of the incoming frame",
		},
		"scale_recovery": {
			Type:        transition.TypeBool,
			Default:     true,
			Description: "zoom the incoming frame back to 1x as progress advances",
		},
	}
}

func (w *Warp) Apply(f1, f2 *frame.Image, frameIndex, totalFrames, fps int, params transition.Params) (*frame.Image, error) {
	resolved, err := w.Params().Resolve(params)
	if err != nil {
		return nil, err
	}
	if err := ensureSameGeometry(f1, f2); err != nil {
		return nil, err
	}
	progress := transition.Progress(frameIndex, totalFrames)

	warpType := resolved.String("warp_type")
	intensity := resolved.Float("warp_intensity")
	timeFactor := progress * resolved.Float("warp_speed") * math.Pi * 2

	// Outgoing frame distorts harder as it leaves, incoming frame settles.
	warped1 := applyField(f1, warpType, intensity, timeFactor, progress, true)
	warped2 := applyField(f2, warpType, intensity, timeFactor, progress, false)

	if resolved.Bool("scale_recovery") {
		maxScale := resolved.Float("max_scale")
		zoom := maxScale - progress*(maxScale-1.0)
		if zoom > 1.01 {
			warped2 = warped2.CropResize(zoom)
		}
	}

	alpha1, alpha2 := frame.BlendWeights(progress)
	return frame.Mix(warped1, warped2, alpha1, alpha2)
}

func applyField(img *frame.Image, warpType string, intensity, timeFactor, progress float64, outgoing bool) *frame.Image {
	switch warpType {
	case "squeeze_h":
		return squeezeField(img, intensity, progress, outgoing, true)
	case "squeeze_v":
		return squeezeField(img, intensity, progress, outgoing, false)
	case "liquid":
		return liquidField(img, intensity, timeFactor, progress, outgoing)
	case "wave":
		return waveField(img, intensity, timeFactor, progress, outgoing)
	default:
		return swirlField(img, intensity, progress, outgoing)
	}
}

// rampFactor scales field strength: up with progress for the outgoing frame,
// down for the incoming one.
func rampFactor(progress float64, outgoing bool) float64 {
	if outgoing {
		return progress
	}
	return 1.0 - progress
}

// swirlField rotates pixels tangentially around the center; the twist decays
// smoothly with radius and reverses direction for the incoming frame.
func swirlField(img *frame.Image, intensity, progress float64, outgoing bool) *frame.Image {
	centerX := float64(img.W) / 2
	centerY := float64(img.H) / 2
	maxRadius := math.Hypot(centerX, centerY)
	swirlIntensity := intensity * 2

	rotation := rampFactor(progress, outgoing)
	direction := 1.0
	if !outgoing {
		direction = -1.0
	}

	return img.Remap(func(x, y int) (float64, float64) {
		dx := float64(x) - centerX
		dy := float64(y) - centerY
		distance := math.Hypot(dx, dy)
		influence := frame.Smoothstep(1.0 - distance/maxRadius)
		twist := (distance / maxRadius) * swirlIntensity * math.Pi * influence * rotation * direction
		sin, cos := math.Sincos(twist)
		return centerX + dx*cos - dy*sin, centerY + dx*sin + dy*cos
	})
}

// squeezeField compresses one axis with a sinusoid across the frame.
func squeezeField(img *frame.Image, intensity, progress float64, outgoing, horizontal bool) *frame.Image {
	amount := intensity * rampFactor(progress, outgoing) * 58
	if horizontal {
		centerX := float64(img.W) / 2
		width := float64(img.W)
		return img.Remap(func(x, y int) (float64, float64) {
			squeeze := math.Sin((float64(x)-centerX)/width*math.Pi*3) * amount
			return float64(x) + squeeze, float64(y)
		})
	}
	centerY := float64(img.H) / 2
	height := float64(img.H)
	return img.Remap(func(x, y int) (float64, float64) {
		squeeze := math.Sin((float64(y)-centerY)/height*math.Pi*3) * amount
		return float64(x), float64(y) + squeeze
	})
}

// liquidField layers several out-of-phase sinusoidal waves on both axes.
func liquidField(img *frame.Image, intensity, timeFactor, progress float64, outgoing bool) *frame.Image {
	amount := intensity * rampFactor(progress, outgoing) * 30
	return img.Remap(func(x, y int) (float64, float64) {
		fx := float64(x)
		fy := float64(y)
		wave1 := math.Sin(fx*0.02+timeFactor) * amount
		wave2 := math.Cos(fy*0.02+timeFactor*0.7) * amount * 0.8
		wave3 := math.Sin(fx*0.03+timeFactor*1.3) * amount * 0.4
		wave4 := math.Cos(fy*0.03+timeFactor*0.5) * amount * 0.3
		return fx + wave1 + wave3, fy + wave2 + wave4
	})
}

// waveField ripples the frame directionally: horizontal position drives the
// vertical offset and vice versa.
func waveField(img *frame.Image, intensity, timeFactor, progress float64, outgoing bool) *frame.Image {
	amount := intensity * rampFactor(progress, outgoing) * 40
	return img.Remap(func(x, y int) (float64, float64) {
		fx := float64(x)
		fy := float64(y)
		wave1 := math.Sin(fx*0.03+timeFactor) * amount
		wave2 := math.Sin(fx*0.05+timeFactor*1.5) * amount * 0.6
		wave3 := math.Sin(fy*0.02+timeFactor*0.8) * amount * 0.4
		return fx + wave3, fy + wave1 + wave2
	})
}
