package frame

// Resize scales the image to w by h with bilinear interpolation. The original
// is returned unchanged when the geometry already matches.
func (m *Image) Resize(w, h int) *Image {
	if m.W == w && m.H == h {
		return m
	}
	out := New(w, h, m.C)
	scaleX := float64(m.W) / float64(w)
	scaleY := float64(m.H) / float64(h)
	px := make([]float32, m.C)
	for y := 0; y < h; y++ {
		srcY := (float64(y)+0.5)*scaleY - 0.5
		for x := 0; x < w; x++ {
			srcX := (float64(x)+0.5)*scaleX - 0.5
			m.Sample(srcX, srcY, px)
			copy(out.Pix[out.Offset(x, y):], px)
		}
	}
	return out
}

// CropResize cuts a centered window whose size is the full frame divided by
// zoom, then scales it back up to the original geometry. Transitions use it
// for the scale-recovery effect where the incoming frame settles from a
// magnified view down to 1x.
func (m *Image) CropResize(zoom float64) *Image {
	if zoom <= 1.0 {
		return m.Clone()
	}
	cropW := int(float64(m.W) / zoom)
	cropH := int(float64(m.H) / zoom)
	if cropW < 1 {
		cropW = 1
	}
	if cropH < 1 {
		cropH = 1
	}
	startX := (m.W - cropW) / 2
	startY := (m.H - cropH) / 2

	cropped := New(cropW, cropH, m.C)
	for y := 0; y < cropH; y++ {
		srcOff := m.Offset(startX, startY+y)
		dstOff := cropped.Offset(0, y)
		copy(cropped.Pix[dstOff:dstOff+cropW*m.C], m.Pix[srcOff:srcOff+cropW*m.C])
	}
	return cropped.Resize(m.W, m.H)
}
