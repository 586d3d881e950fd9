package frame_test

import (
	"math"
	"testing"

	"segue/internal/frame"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want frame.Color
	}{
		{"#000000", frame.Color{0, 0, 0}},
		{"#ff8000", frame.Color{255, 128, 0}},
		{"white", frame.Color{255, 255, 255}},
		{"Gray", frame.Color{128, 128, 128}},
		{"  blue ", frame.Color{0, 0, 255}},
	}
	for _, tc := range cases {
		got, err := frame.ParseColor(tc.in)
		if err != nil {
			t.Fatalf("ParseColor(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseColorRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "#12345", "#gggggg", "chartreuse"} {
		if _, err := frame.ParseColor(in); err == nil {
			t.Fatalf("ParseColor(%q) should fail", in)
		}
	}
}

func TestSolidBytesClamp(t *testing.T) {
	img := frame.Solid(4, 2, frame.Color{R: 200, G: 10, B: 0})
	img.Pix[0] = 300
	img.Pix[1] = -40
	data := img.Bytes()
	if len(data) != 4*2*3 {
		t.Fatalf("unexpected byte length %d", len(data))
	}
	if data[0] != 255 {
		t.Fatalf("overflow should clamp to 255, got %d", data[0])
	}
	if data[1] != 0 {
		t.Fatalf("underflow should clamp to 0, got %d", data[1])
	}
	if data[3] != 200 || data[4] != 10 || data[5] != 0 {
		t.Fatalf("unexpected second pixel %v", data[3:6])
	}
}

func TestResizeSolidStaysSolid(t *testing.T) {
	img := frame.Solid(64, 48, frame.Color{R: 90, G: 120, B: 30})
	resized := img.Resize(33, 17)
	if resized.W != 33 || resized.H != 17 || resized.C != 3 {
		t.Fatalf("unexpected geometry %dx%dx%d", resized.W, resized.H, resized.C)
	}
	for i, v := range resized.Pix {
		want := []float32{90, 120, 30}[i%3]
		if math.Abs(float64(v-want)) > 0.5 {
			t.Fatalf("pixel %d drifted: got %f want %f", i, v, want)
		}
	}
}

func TestResizeNoopReturnsSameBuffer(t *testing.T) {
	img := frame.Solid(10, 10, frame.Color{})
	if img.Resize(10, 10) != img {
		t.Fatal("matching geometry should not reallocate")
	}
}

func TestMixEndpoints(t *testing.T) {
	red := frame.Solid(8, 8, frame.Color{R: 255})
	blue := frame.Solid(8, 8, frame.Color{B: 255})

	start, err := frame.Mix(red, blue, 1, 0)
	if err != nil {
		t.Fatalf("Mix: %v", err)
	}
	if start.Pix[0] != 255 || start.Pix[2] != 0 {
		t.Fatalf("weight (1,0) should reproduce first image, got %v", start.Pix[:3])
	}

	mid, err := frame.Mix(red, blue, 0.5, 0.5)
	if err != nil {
		t.Fatalf("Mix: %v", err)
	}
	if math.Abs(float64(mid.Pix[0]-127.5)) > 0.01 || math.Abs(float64(mid.Pix[2]-127.5)) > 0.01 {
		t.Fatalf("midpoint should be half red half blue, got %v", mid.Pix[:3])
	}
}

func TestMixGeometryMismatch(t *testing.T) {
	a := frame.Solid(8, 8, frame.Color{})
	b := frame.Solid(9, 8, frame.Color{})
	if _, err := frame.Mix(a, b, 0.5, 0.5); err == nil {
		t.Fatal("expected geometry mismatch error")
	}
}

func TestAddScaledClips(t *testing.T) {
	a := frame.Solid(4, 4, frame.Color{R: 200, G: 200, B: 200})
	b := frame.Solid(4, 4, frame.Color{R: 200, G: 200, B: 200})
	out, err := frame.AddScaled(a, b, 1.0)
	if err != nil {
		t.Fatalf("AddScaled: %v", err)
	}
	for _, v := range out.Pix {
		if v > 255 {
			t.Fatalf("additive blend overflowed: %f", v)
		}
	}
}

func TestBlendWeightsSumToOne(t *testing.T) {
	for p := 0.0; p <= 1.0; p += 0.05 {
		a1, a2 := frame.BlendWeights(p)
		if sum := a1 + a2; math.Abs(sum-1) > 1e-9 {
			t.Fatalf("weights at p=%f sum to %f", p, sum)
		}
	}
	a1, a2 := frame.BlendWeights(0)
	if a1 != 1 || a2 != 0 {
		t.Fatalf("p=0 should be fully source1: %f %f", a1, a2)
	}
	a1, a2 = frame.BlendWeights(1)
	if a1 != 0 || a2 != 1 {
		t.Fatalf("p=1 should be fully source2: %f %f", a1, a2)
	}
}

func TestCropResizeKeepsGeometry(t *testing.T) {
	img := frame.Solid(40, 30, frame.Color{R: 17, G: 34, B: 51})
	zoomed := img.CropResize(1.5)
	if zoomed.W != 40 || zoomed.H != 30 {
		t.Fatalf("unexpected geometry %dx%d", zoomed.W, zoomed.H)
	}
	for i, v := range zoomed.Pix {
		want := []float32{17, 34, 51}[i%3]
		if math.Abs(float64(v-want)) > 0.5 {
			t.Fatalf("solid frame should survive crop-resize, pixel %d = %f", i, v)
		}
	}
	if identity := img.CropResize(1.0); identity == img {
		t.Fatal("CropResize must not return the input buffer")
	}
}

func TestPerspectiveIdentity(t *testing.T) {
	quad := [4]frame.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	h, err := frame.PerspectiveTransform(quad, quad)
	if err != nil {
		t.Fatalf("PerspectiveTransform: %v", err)
	}
	// Identity correspondence must yield (numerically) the identity matrix.
	want := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	for i := range h {
		if math.Abs(h[i]-want[i]) > 1e-8 {
			t.Fatalf("homography[%d] = %f, want %f", i, h[i], want[i])
		}
	}
}

func TestPerspectiveDegenerateQuad(t *testing.T) {
	line := [4]frame.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	if _, err := frame.PerspectiveTransform(line, line); err == nil {
		t.Fatal("collinear quad should be rejected")
	}
}

func TestWarpAffineIdentity(t *testing.T) {
	img := frame.Solid(16, 16, frame.Color{R: 10, G: 20, B: 30})
	img.Pix[img.Offset(5, 7)] = 250
	out := img.WarpAffine(frame.RotationScale(8, 8, 0, 1))
	for i := range img.Pix {
		if math.Abs(float64(out.Pix[i]-img.Pix[i])) > 0.01 {
			t.Fatalf("identity warp changed pixel %d: %f vs %f", i, out.Pix[i], img.Pix[i])
		}
	}
}

func TestRemapShift(t *testing.T) {
	img := frame.New(8, 1, 3)
	for x := 0; x < 8; x++ {
		img.Pix[img.Offset(x, 0)] = float32(x * 10)
	}
	shifted := img.Remap(func(x, y int) (float64, float64) {
		return float64(x - 1), float64(y)
	})
	if got := shifted.Pix[shifted.Offset(3, 0)]; got != 20 {
		t.Fatalf("shift remap: got %f want 20", got)
	}
	// Left edge replicates.
	if got := shifted.Pix[shifted.Offset(0, 0)]; got != 0 {
		t.Fatalf("edge replicate: got %f want 0", got)
	}
}

func TestGaussianBlurPreservesSolid(t *testing.T) {
	img := frame.Solid(20, 20, frame.Color{R: 100, G: 150, B: 200})
	blurred := img.GaussianBlur(7)
	for i, v := range blurred.Pix {
		want := []float32{100, 150, 200}[i%3]
		if math.Abs(float64(v-want)) > 0.5 {
			t.Fatalf("blur drifted on solid frame at %d: %f", i, v)
		}
	}
}
