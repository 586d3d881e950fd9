package frame

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Image is a single frame of video: a W by H grid of C-channel pixels.
// Channel count is 3 (RGB) or 4 (RGBA). Values live in the 0..255 range but
// are stored as float32 so intermediate math keeps fractional precision.
type Image struct {
	W, H, C int
	Pix     []float32
}

// New allocates a zeroed image with the given geometry.
func New(w, h, c int) *Image {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("frame: invalid geometry %dx%d", w, h))
	}
	if c != 3 && c != 4 {
		panic(fmt.Sprintf("frame: unsupported channel count %d", c))
	}
	return &Image{W: w, H: h, C: c, Pix: make([]float32, w*h*c)}
}

// Solid returns an image filled with the provided color.
func Solid(w, h int, fill Color) *Image {
	img := New(w, h, 3)
	for i := 0; i < len(img.Pix); i += 3 {
		img.Pix[i] = float32(fill.R)
		img.Pix[i+1] = float32(fill.G)
		img.Pix[i+2] = float32(fill.B)
	}
	return img
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	out := &Image{W: m.W, H: m.H, C: m.C, Pix: make([]float32, len(m.Pix))}
	copy(out.Pix, m.Pix)
	return out
}

// SameGeometry reports whether other matches this image's width, height, and
// channel count.
func (m *Image) SameGeometry(other *Image) bool {
	return other != nil && m.W == other.W && m.H == other.H && m.C == other.C
}

// Offset returns the index of pixel (x, y) channel 0 in Pix.
func (m *Image) Offset(x, y int) int {
	return (y*m.W + x) * m.C
}

// At returns the channel values of pixel (x, y). Out-of-range coordinates are
// clamped to the nearest edge, which gives warp resampling its replicate
// border behavior.
func (m *Image) At(x, y int) []float32 {
	if x < 0 {
		x = 0
	} else if x >= m.W {
		x = m.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= m.H {
		y = m.H - 1
	}
	idx := m.Offset(x, y)
	return m.Pix[idx : idx+m.C]
}

// Sample performs bilinear interpolation at the continuous coordinate (x, y)
// with edge replication, writing the result into dst (len >= C).
func (m *Image) Sample(x, y float64, dst []float32) {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := float32(x - float64(x0))
	fy := float32(y - float64(y0))

	p00 := m.At(x0, y0)
	p10 := m.At(x0+1, y0)
	p01 := m.At(x0, y0+1)
	p11 := m.At(x0+1, y0+1)

	for c := 0; c < m.C; c++ {
		top := p00[c] + (p10[c]-p00[c])*fx
		bot := p01[c] + (p11[c]-p01[c])*fx
		dst[c] = top + (bot-top)*fy
	}
}

// Bytes flattens the image to 8-bit channel bytes in row-major order,
// clamping every value into 0..255. This is the layout ffmpeg's rawvideo
// demuxer expects for rgb24/rgba input.
func (m *Image) Bytes() []byte {
	out := make([]byte, len(m.Pix))
	for i, v := range m.Pix {
		out[i] = clampByte(v)
	}
	return out
}

// FromBytes builds an image from packed 8-bit channel data.
func FromBytes(w, h, c int, data []byte) (*Image, error) {
	if len(data) != w*h*c {
		return nil, fmt.Errorf("frame: byte length %d does not match %dx%dx%d", len(data), w, h, c)
	}
	img := New(w, h, c)
	for i, b := range data {
		img.Pix[i] = float32(b)
	}
	return img, nil
}

// FromImage converts a decoded standard-library image into an RGB frame.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	img := New(bounds.Dx(), bounds.Dy(), 3)
	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			img.Pix[idx] = float32(r >> 8)
			img.Pix[idx+1] = float32(g >> 8)
			img.Pix[idx+2] = float32(b >> 8)
			idx += 3
		}
	}
	return img
}

// ToImage converts the frame into a standard-library RGBA image, clamping
// channel values on the way out.
func (m *Image) ToImage() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			px := m.At(x, y)
			a := uint8(255)
			if m.C == 4 {
				a = clampByte(px[3])
			}
			out.SetRGBA(x, y, color.RGBA{
				R: clampByte(px[0]),
				G: clampByte(px[1]),
				B: clampByte(px[2]),
				A: a,
			})
		}
	}
	return out
}

func clampByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v + 0.5)
}
