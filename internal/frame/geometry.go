package frame

import (
	"fmt"
	"math"
)

// Affine is a 2x3 row-major transform matrix mapping source coordinates to
// destination coordinates.
type Affine [6]float64

// RotationScale builds the transform that rotates by angle degrees
// (counter-clockwise) and scales about the given center, matching the usual
// rotation-matrix-about-a-point construction.
func RotationScale(centerX, centerY, angleDeg, scale float64) Affine {
	rad := angleDeg * math.Pi / 180
	alpha := scale * math.Cos(rad)
	beta := scale * math.Sin(rad)
	return Affine{
		alpha, beta, (1-alpha)*centerX - beta*centerY,
		-beta, alpha, beta*centerX + (1-alpha)*centerY,
	}
}

// Translate shifts the transform's output by (dx, dy).
func (a Affine) Translate(dx, dy float64) Affine {
	a[2] += dx
	a[5] += dy
	return a
}

func (a Affine) invert() (Affine, bool) {
	det := a[0]*a[4] - a[1]*a[3]
	if math.Abs(det) < 1e-12 {
		return Affine{}, false
	}
	inv := Affine{}
	inv[0] = a[4] / det
	inv[1] = -a[1] / det
	inv[3] = -a[3] / det
	inv[4] = a[0] / det
	inv[2] = -(inv[0]*a[2] + inv[1]*a[5])
	inv[5] = -(inv[3]*a[2] + inv[4]*a[5])
	return inv, true
}

// WarpAffine applies the transform with inverse mapping and bilinear
// resampling. Pixels that map outside the source replicate the nearest edge.
// A degenerate (non-invertible) transform returns an unmodified copy.
func (m *Image) WarpAffine(a Affine) *Image {
	inv, ok := a.invert()
	if !ok {
		return m.Clone()
	}
	out := New(m.W, m.H, m.C)
	px := make([]float32, m.C)
	for y := 0; y < m.H; y++ {
		fy := float64(y)
		for x := 0; x < m.W; x++ {
			fx := float64(x)
			srcX := inv[0]*fx + inv[1]*fy + inv[2]
			srcY := inv[3]*fx + inv[4]*fy + inv[5]
			m.Sample(srcX, srcY, px)
			copy(out.Pix[out.Offset(x, y):], px)
		}
	}
	return out
}

// Homography is a 3x3 row-major projective transform.
type Homography [9]float64

// Point is a 2D coordinate used for quad correspondences.
type Point struct {
	X, Y float64
}

// PerspectiveTransform solves for the homography mapping the four src corners
// onto the four dst corners. The quads must be non-degenerate.
func PerspectiveTransform(src, dst [4]Point) (Homography, error) {
	// Eight unknowns (h22 fixed at 1), two equations per correspondence.
	var a [8][9]float64
	for i := 0; i < 4; i++ {
		sx, sy := src[i].X, src[i].Y
		dx, dy := dst[i].X, dst[i].Y
		a[i*2] = [9]float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx, dx}
		a[i*2+1] = [9]float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy, dy}
	}

	// Gaussian elimination with partial pivoting.
	for col := 0; col < 8; col++ {
		pivot := col
		for row := col + 1; row < 8; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-10 {
			return Homography{}, fmt.Errorf("perspective transform: degenerate quad")
		}
		a[col], a[pivot] = a[pivot], a[col]
		for row := col + 1; row < 8; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < 9; k++ {
				a[row][k] -= factor * a[col][k]
			}
		}
	}
	var h [8]float64
	for col := 7; col >= 0; col-- {
		sum := a[col][8]
		for k := col + 1; k < 8; k++ {
			sum -= a[col][k] * h[k]
		}
		h[col] = sum / a[col][col]
	}
	return Homography{h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], 1}, nil
}

func (h Homography) invert() (Homography, bool) {
	det := h[0]*(h[4]*h[8]-h[5]*h[7]) - h[1]*(h[3]*h[8]-h[5]*h[6]) + h[2]*(h[3]*h[7]-h[4]*h[6])
	if math.Abs(det) < 1e-12 {
		return Homography{}, false
	}
	inv := Homography{
		h[4]*h[8] - h[5]*h[7], h[2]*h[7] - h[1]*h[8], h[1]*h[5] - h[2]*h[4],
		h[5]*h[6] - h[3]*h[8], h[0]*h[8] - h[2]*h[6], h[2]*h[3] - h[0]*h[5],
		h[3]*h[7] - h[4]*h[6], h[1]*h[6] - h[0]*h[7], h[0]*h[4] - h[1]*h[3],
	}
	for i := range inv {
		inv[i] /= det
	}
	return inv, true
}

// WarpPerspective applies the homography with inverse mapping, bilinear
// resampling, and replicated borders, keeping the source geometry.
func (m *Image) WarpPerspective(h Homography) *Image {
	inv, ok := h.invert()
	if !ok {
		return m.Clone()
	}
	out := New(m.W, m.H, m.C)
	px := make([]float32, m.C)
	for y := 0; y < m.H; y++ {
		fy := float64(y)
		for x := 0; x < m.W; x++ {
			fx := float64(x)
			w := inv[6]*fx + inv[7]*fy + inv[8]
			if math.Abs(w) < 1e-12 {
				continue
			}
			srcX := (inv[0]*fx + inv[1]*fy + inv[2]) / w
			srcY := (inv[3]*fx + inv[4]*fy + inv[5]) / w
			m.Sample(srcX, srcY, px)
			copy(out.Pix[out.Offset(x, y):], px)
		}
	}
	return out
}

// Remap resamples the image through a per-pixel source-coordinate function:
// out(x, y) = src(fn(x, y)). Coordinates outside the frame replicate edges.
// This is the workhorse behind the displacement-field warps.
func (m *Image) Remap(fn func(x, y int) (srcX, srcY float64)) *Image {
	out := New(m.W, m.H, m.C)
	px := make([]float32, m.C)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			srcX, srcY := fn(x, y)
			m.Sample(srcX, srcY, px)
			copy(out.Pix[out.Offset(x, y):], px)
		}
	}
	return out
}
