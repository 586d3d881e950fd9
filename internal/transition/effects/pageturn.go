package effects

import (
	"math"

	"segue/internal/frame"
	"segue/internal/transition"
)

// PageTurn peels the outgoing frame away like a book page: a fold line moves
// across the frame, the page beyond the fold is perspective-warped with a
// curl proportional to the sine of the flip angle, a directional shadow
// darkens the paper near the fold, and the incoming frame shows through the
// revealed region. Four directions are supported with mirrored math.
type PageTurn struct{}

// NewPageTurn constructs the effect.
func NewPageTurn() transition.Transition { return &PageTurn{} }

func (p *PageTurn) Params() transition.Schema {
	return transition.Schema{
		"direction": {
			Type:        transition.TypeEnum,
			Default:     "right",
			Choices:     []string{"right", "left", "up", "down"},
			Description: "edge the page lifts from",
		},
		"curl_strength": {
			Type:        transition.TypeFloat,
			Default:     1.0,
			Min:         0.5,
			Max:         2.0,
			Description: "how far the lifted page corner curls",
		},
		"shadow_intensity": {
			Type:        transition.TypeFloat,
			Default:     0.6,
			Min:         0.0,
			Max:         1.0,
			Description: "darkness of the fold shadow",
		},
	}
}

func (p *PageTurn) Apply(f1, f2 *frame.Image, frameIndex, totalFrames, fps int, params transition.Params) (*frame.Image, error) {
	resolved, err := p.Params().Resolve(params)
	if err != nil {
		return nil, err
	}
	if err := ensureSameGeometry(f1, f2); err != nil {
		return nil, err
	}
	progress := transition.Progress(frameIndex, totalFrames)
	flipAngle := progress * 180
	curl := resolved.Float("curl_strength")
	shadow := resolved.Float("shadow_intensity")

	switch resolved.String("direction") {
	case "left":
		return horizontalPageTurn(f1, f2, flipAngle, curl, shadow, false), nil
	case "up":
		return verticalPageTurn(f1, f2, flipAngle, curl, shadow, true), nil
	case "down":
		return verticalPageTurn(f1, f2, flipAngle, curl, shadow, false), nil
	default: // right
		return horizontalPageTurn(f1, f2, flipAngle, curl, shadow, true), nil
	}
}

// foldPositionX locates the fold line for horizontal turns. For a right turn
// the fold sweeps from the right edge to the left as progress advances.
func foldPositionX(width int, progress float64, rightToLeft bool) int {
	var fold int
	if rightToLeft {
		fold = int(float64(width) * (1 - progress))
	} else {
		fold = int(float64(width) * progress)
	}
	if fold < 0 {
		fold = 0
	} else if fold > width {
		fold = width
	}
	return fold
}

// foldPositionY locates the fold line for vertical turns.
func foldPositionY(height int, progress float64, topToBottom bool) int {
	var fold int
	if topToBottom {
		fold = int(float64(height) * progress)
	} else {
		fold = int(float64(height) * (1 - progress))
	}
	if fold < 0 {
		fold = 0
	} else if fold > height {
		fold = height
	}
	return fold
}

func horizontalPageTurn(f1, f2 *frame.Image, flipAngle, curl, shadowIntensity float64, rightToLeft bool) *frame.Image {
	w := f1.W
	h := f1.H
	progress := flipAngle / 180
	result := f2.Clone()

	foldX := foldPositionX(w, progress, rightToLeft)
	if foldX <= 0 || foldX >= w {
		if progress < 0.5 {
			return f1.Clone()
		}
		return result
	}

	curlAmount := math.Sin(flipAngle*math.Pi/180) * curl * 50
	fw := float64(w)
	fh := float64(h)
	fx := float64(foldX)

	var src, dst [4]frame.Point
	if rightToLeft {
		src = [4]frame.Point{{X: fx, Y: 0}, {X: fw, Y: 0}, {X: fw, Y: fh}, {X: fx, Y: fh}}
		dst = [4]frame.Point{{X: fx, Y: 0}, {X: fw + curlAmount, Y: curlAmount}, {X: fw + curlAmount, Y: fh - curlAmount}, {X: fx, Y: fh}}
	} else {
		src = [4]frame.Point{{X: 0, Y: 0}, {X: fx, Y: 0}, {X: fx, Y: fh}, {X: 0, Y: fh}}
		dst = [4]frame.Point{{X: -curlAmount, Y: curlAmount}, {X: fx, Y: 0}, {X: fx, Y: fh}, {X: -curlAmount, Y: fh - curlAmount}}
	}

	page := f1
	if homography, err := frame.PerspectiveTransform(src, dst); err == nil {
		page = f1.WarpPerspective(homography)
	}
	if shadowIntensity > 0 {
		page = shadeColumns(page, foldX, flipAngle, shadowIntensity, rightToLeft)
	}

	// Turning page over the revealed side of the fold, untouched original on
	// the other side.
	if rightToLeft {
		copyColumns(result, page, foldX, w)
		copyColumns(result, f1, 0, foldX)
	} else {
		copyColumns(result, page, 0, foldX)
		copyColumns(result, f1, foldX, w)
	}
	return result
}

func verticalPageTurn(f1, f2 *frame.Image, flipAngle, curl, shadowIntensity float64, topToBottom bool) *frame.Image {
	w := f1.W
	h := f1.H
	progress := flipAngle / 180
	result := f2.Clone()

	foldY := foldPositionY(h, progress, topToBottom)
	if foldY <= 0 || foldY >= h {
		if progress < 0.5 {
			return f1.Clone()
		}
		return result
	}

	curlAmount := math.Sin(flipAngle*math.Pi/180) * curl * 50
	fw := float64(w)
	fh := float64(h)
	fy := float64(foldY)

	var src, dst [4]frame.Point
	if topToBottom {
		src = [4]frame.Point{{X: 0, Y: 0}, {X: fw, Y: 0}, {X: fw, Y: fy}, {X: 0, Y: fy}}
		dst = [4]frame.Point{{X: curlAmount, Y: -curlAmount}, {X: fw - curlAmount, Y: -curlAmount}, {X: fw, Y: fy}, {X: 0, Y: fy}}
	} else {
		src = [4]frame.Point{{X: 0, Y: fy}, {X: fw, Y: fy}, {X: fw, Y: fh}, {X: 0, Y: fh}}
		dst = [4]frame.Point{{X: 0, Y: fy}, {X: fw, Y: fy}, {X: fw - curlAmount, Y: fh + curlAmount}, {X: curlAmount, Y: fh + curlAmount}}
	}

	page := f1
	if homography, err := frame.PerspectiveTransform(src, dst); err == nil {
		page = f1.WarpPerspective(homography)
	}
	if shadowIntensity > 0 {
		page = shadeRows(page, foldY, flipAngle, shadowIntensity, topToBottom)
	}

	if topToBottom {
		copyRows(result, page, 0, foldY)
		copyRows(result, f1, foldY, h)
	} else {
		copyRows(result, page, foldY, h)
		copyRows(result, f1, 0, foldY)
	}
	return result
}

// shadowExtent narrows the shadow band as the page approaches flat.
func shadowExtent(flipAngle float64) int {
	extent := int(30*(1-flipAngle/180) + 5)
	if extent < 5 {
		extent = 5
	} else if extent > 50 {
		extent = 50
	}
	return extent
}

const shadowFloor = 50 // darkened pixels settle toward this value, not pure black

// shadeColumns darkens a gradient band of columns on the turning-page side
// of the fold, strongest at the fold line and fading outward. The band sits
// on the side the page is composited to so the shadow actually lands in the
// output.
func shadeColumns(img *frame.Image, foldX int, flipAngle, intensity float64, rightToLeft bool) *frame.Image {
	extent := shadowExtent(flipAngle)
	out := img.Clone()
	for i := 0; i < extent; i++ {
		var x int
		if rightToLeft {
			x = foldX + i
		} else {
			x = foldX - 1 - i
		}
		if x < 0 || x >= out.W {
			continue
		}
		alpha := float32((1 - float64(i)/float64(extent)) * intensity)
		for y := 0; y < out.H; y++ {
			off := out.Offset(x, y)
			for c := 0; c < out.C; c++ {
				out.Pix[off+c] = out.Pix[off+c]*(1-alpha) + shadowFloor*alpha
			}
		}
	}
	return out
}

// shadeRows is the vertical counterpart of shadeColumns.
func shadeRows(img *frame.Image, foldY int, flipAngle, intensity float64, topToBottom bool) *frame.Image {
	extent := shadowExtent(flipAngle)
	out := img.Clone()
	for i := 0; i < extent; i++ {
		var y int
		if topToBottom {
			y = foldY - 1 - i
		} else {
			y = foldY + i
		}
		if y < 0 || y >= out.H {
			continue
		}
		alpha := float32((1 - float64(i)/float64(extent)) * intensity)
		off := out.Offset(0, y)
		for c := 0; c < out.W*out.C; c++ {
			out.Pix[off+c] = out.Pix[off+c]*(1-alpha) + shadowFloor*alpha
		}
	}
	return out
}

func copyColumns(dst, src *frame.Image, from, to int) {
	for y := 0; y < dst.H; y++ {
		dstOff := dst.Offset(from, y)
		srcOff := src.Offset(from, y)
		count := (to - from) * dst.C
		copy(dst.Pix[dstOff:dstOff+count], src.Pix[srcOff:srcOff+count])
	}
}

func copyRows(dst, src *frame.Image, from, to int) {
	dstOff := dst.Offset(0, from)
	srcOff := src.Offset(0, from)
	count := (to - from) * dst.W * dst.C
	copy(dst.Pix[dstOff:dstOff+count], src.Pix[srcOff:srcOff+count])
}
