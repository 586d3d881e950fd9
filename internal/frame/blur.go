package frame

import "math"

// GaussianBlur applies a separable Gaussian with the given odd kernel size.
// Sizes below 3 return an unmodified copy. Sigma follows the usual
// size-derived heuristic so callers only choose a kernel width.
func (m *Image) GaussianBlur(size int) *Image {
	if size < 3 {
		return m.Clone()
	}
	if size%2 == 0 {
		size++
	}
	kernel := gaussianKernel(size)
	radius := size / 2

	// Horizontal pass.
	tmp := New(m.W, m.H, m.C)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			dst := tmp.Pix[tmp.Offset(x, y) : tmp.Offset(x, y)+m.C]
			for k := -radius; k <= radius; k++ {
				src := m.At(x+k, y)
				w := kernel[k+radius]
				for c := 0; c < m.C; c++ {
					dst[c] += src[c] * w
				}
			}
		}
	}

	// Vertical pass.
	out := New(m.W, m.H, m.C)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			dst := out.Pix[out.Offset(x, y) : out.Offset(x, y)+m.C]
			for k := -radius; k <= radius; k++ {
				src := tmp.At(x, y+k)
				w := kernel[k+radius]
				for c := 0; c < m.C; c++ {
					dst[c] += src[c] * w
				}
			}
		}
	}
	return out
}

func gaussianKernel(size int) []float32 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	radius := size / 2
	kernel := make([]float32, size)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = float32(v)
		sum += v
	}
	for i := range kernel {
		kernel[i] = float32(float64(kernel[i]) / sum)
	}
	return kernel
}
