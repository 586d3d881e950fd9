package render_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"segue/internal/config"
	"segue/internal/frame"
	"segue/internal/media"
	"segue/internal/render"
	"segue/internal/services"
	"segue/internal/services/ffmpeg"
	"segue/internal/transition"
	"segue/internal/transition/effects"
)

// captureEncoder records the frame sequence and writes a stub output file so
// the processor's publish step has something to move.
type captureEncoder struct {
	frames []*frame.Image
	opts   ffmpeg.EncodeOptions
}

func (e *captureEncoder) Encode(ctx context.Context, frames []*frame.Image, opts ffmpeg.EncodeOptions) error {
	e.frames = frames
	e.opts = opts
	return os.WriteFile(opts.OutputPath, []byte("stub video"), 0o644)
}

func newFactory(t *testing.T) *transition.Factory {
	t.Helper()
	reg := transition.NewRegistry()
	if err := effects.RegisterAll(reg); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	return transition.NewFactory(reg)
}

func newProcessor(t *testing.T, encoder ffmpeg.Encoder) (*render.Processor, string) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(root, "out")
	cfg.Paths.TempDir = filepath.Join(root, "tmp")
	cfg.Paths.LogDir = filepath.Join(root, "logs")
	cfg.Paths.QueueDB = filepath.Join(root, "queue.db")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	return render.NewProcessor(&cfg, newFactory(t), encoder, nil), root
}

func baseRequest() render.Request {
	return render.Request{
		Effect:      "crossfade",
		Source1:     "a.png",
		Source2:     "b.png",
		TotalFrames: 5,
		FPS:         30,
		Width:       64,
		Height:      48,
		Workers:     1,
	}
}

func solidSource(w, h int, c frame.Color) media.Source {
	return media.NewSliceSource([]*frame.Image{frame.Solid(w, h, c)})
}

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}

func TestRequestValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*render.Request)
	}{
		{"missing effect", func(r *render.Request) { r.Effect = " " }},
		{"missing source", func(r *render.Request) { r.Source2 = "" }},
		{"frames too high", func(r *render.Request) { r.TotalFrames = 301 }},
		{"fps too low", func(r *render.Request) { r.FPS = 14 }},
		{"width too small", func(r *render.Request) { r.Width = 100 }},
		{"height too large", func(r *render.Request) { r.Height = 4000 }},
		{"no workers", func(r *render.Request) { r.Workers = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest()
			tc.mutate(&req)
			err := req.Validate()
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}

	req := baseRequest()
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	defaults := config.Render{FPS: 30, Width: 1280, Height: 720, TotalFrames: 30, Workers: 4}

	req := render.Request{Effect: "crossfade", Source1: "a", Source2: "b"}
	req.ApplyDefaults(defaults)
	if req.TotalFrames != 30 || req.FPS != 30 || req.Width != 1280 || req.Height != 720 || req.Workers != 4 {
		t.Fatalf("defaults not applied: %+v", req)
	}

	req = render.Request{Effect: "crossfade", Source1: "a", Source2: "b", FPS: 24, Width: 640}
	req.ApplyDefaults(defaults)
	if req.FPS != 24 || req.Width != 640 {
		t.Fatalf("explicit values overridden: %+v", req)
	}
	if req.Height != 720 {
		t.Fatalf("unset height not defaulted: %+v", req)
	}
}

func TestRequestEncodeRoundTrip(t *testing.T) {
	req := baseRequest()
	req.Params = transition.Params{"fade_color": "black"}

	payload, err := req.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := render.ParseRequest(payload)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if got.Effect != req.Effect || got.TotalFrames != req.TotalFrames {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if got.Params["fade_color"] != "black" {
		t.Fatalf("params lost: %+v", got.Params)
	}

	if _, err := render.ParseRequest("{not json"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for bad payload, got %v", err)
	}
}

func TestRenderFramesCrossfadeProperty(t *testing.T) {
	p, _ := newProcessor(t, &captureEncoder{})
	req := baseRequest()

	src1 := solidSource(64, 48, frame.Color{R: 255})
	src2 := solidSource(64, 48, frame.Color{B: 255})

	frames, err := p.RenderFrames(context.Background(), req, src1, src2, nil)
	if err != nil {
		t.Fatalf("RenderFrames: %v", err)
	}
	if len(frames) != 5 {
		t.Fatalf("frame count = %d", len(frames))
	}

	check := func(img *frame.Image, wantR, wantB float64) {
		t.Helper()
		off := img.Offset(32, 24)
		if math.Abs(float64(img.Pix[off])-wantR) > 1 || math.Abs(float64(img.Pix[off+2])-wantB) > 1 {
			t.Fatalf("pixel = (%v, %v, %v), want R=%v B=%v",
				img.Pix[off], img.Pix[off+1], img.Pix[off+2], wantR, wantB)
		}
	}
	check(frames[0], 255, 0)
	check(frames[2], 127.5, 127.5)
	check(frames[4], 0, 255)
}

func TestRenderFramesParallelMatchesSequential(t *testing.T) {
	p, _ := newProcessor(t, &captureEncoder{})

	src1 := solidSource(64, 48, frame.Color{R: 200, G: 40})
	src2 := solidSource(64, 48, frame.Color{B: 180, G: 90})

	seq := baseRequest()
	seq.TotalFrames = 12
	sequential, err := p.RenderFrames(context.Background(), seq, src1, src2, nil)
	if err != nil {
		t.Fatalf("sequential RenderFrames: %v", err)
	}

	par := seq
	par.Workers = 4
	parallel, err := p.RenderFrames(context.Background(), par, src1, src2, nil)
	if err != nil {
		t.Fatalf("parallel RenderFrames: %v", err)
	}

	for i := range sequential {
		a, b := sequential[i], parallel[i]
		if !a.SameGeometry(b) {
			t.Fatalf("frame %d geometry differs", i)
		}
		for j := range a.Pix {
			if a.Pix[j] != b.Pix[j] {
				t.Fatalf("frame %d differs at offset %d: %v vs %v", i, j, a.Pix[j], b.Pix[j])
			}
		}
	}
}

func TestRenderFramesResizesSources(t *testing.T) {
	p, _ := newProcessor(t, &captureEncoder{})
	req := baseRequest()

	// Sources deliberately mismatch the request geometry.
	src1 := solidSource(20, 20, frame.Color{R: 255})
	src2 := solidSource(100, 30, frame.Color{B: 255})

	frames, err := p.RenderFrames(context.Background(), req, src1, src2, nil)
	if err != nil {
		t.Fatalf("RenderFrames: %v", err)
	}
	for i, img := range frames {
		if img.W != 64 || img.H != 48 {
			t.Fatalf("frame %d is %dx%d, want 64x48", i, img.W, img.H)
		}
	}
}

func TestRenderFramesReportsCompletionCount(t *testing.T) {
	p, _ := newProcessor(t, &captureEncoder{})
	req := baseRequest()
	req.TotalFrames = 8
	req.Workers = 3

	src1 := solidSource(64, 48, frame.Color{R: 255})
	src2 := solidSource(64, 48, frame.Color{B: 255})

	var counts []int
	_, err := p.RenderFrames(context.Background(), req, src1, src2, func(done, total int) {
		if total != 8 {
			t.Errorf("total = %d", total)
		}
		counts = append(counts, done)
	})
	if err != nil {
		t.Fatalf("RenderFrames: %v", err)
	}
	if len(counts) != 8 {
		t.Fatalf("expected 8 completion callbacks, got %d", len(counts))
	}
	if counts[len(counts)-1] != 8 {
		t.Fatalf("final count = %d", counts[len(counts)-1])
	}
}

func TestRenderFramesCancellation(t *testing.T) {
	p, _ := newProcessor(t, &captureEncoder{})
	req := baseRequest()
	req.TotalFrames = 50

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src1 := solidSource(64, 48, frame.Color{R: 255})
	src2 := solidSource(64, 48, frame.Color{B: 255})
	if _, err := p.RenderFrames(ctx, req, src1, src2, nil); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestRenderUnknownEffect(t *testing.T) {
	p, _ := newProcessor(t, &captureEncoder{})
	req := baseRequest()
	req.Effect = "wipe"

	if _, err := p.Render(context.Background(), req, nil); !errors.Is(err, services.ErrUnknownEffect) {
		t.Fatalf("expected unknown effect error, got %v", err)
	}
}

func TestRenderProducesOutputAndCleansTemp(t *testing.T) {
	encoder := &captureEncoder{}
	p, root := newProcessor(t, encoder)

	srcDir := filepath.Join(root, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writePNG(t, filepath.Join(srcDir, "red.png"), color.RGBA{R: 255, A: 255})
	writePNG(t, filepath.Join(srcDir, "blue.png"), color.RGBA{B: 255, A: 255})

	req := baseRequest()
	req.Source1 = filepath.Join(srcDir, "red.png")
	req.Source2 = filepath.Join(srcDir, "blue.png")
	req.OutputFile = filepath.Join(root, "out", "result.mp4")

	var percents []float64
	outputPath, err := p.Render(context.Background(), req, func(percent float64, message string) {
		percents = append(percents, percent)
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if outputPath != req.OutputFile {
		t.Fatalf("output path = %q", outputPath)
	}
	if _, err := os.Stat(outputPath); err != nil {
		t.Fatalf("output missing: %v", err)
	}

	if len(encoder.frames) != 5 {
		t.Fatalf("encoder received %d frames", len(encoder.frames))
	}
	if encoder.opts.FPS != 30 {
		t.Fatalf("encoder fps = %d", encoder.opts.FPS)
	}
	if !strings.HasPrefix(encoder.opts.OutputPath, filepath.Join(root, "tmp")) {
		t.Fatalf("encode should target the temp directory, got %q", encoder.opts.OutputPath)
	}

	entries, err := os.ReadDir(filepath.Join(root, "tmp"))
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("temp directory not cleaned: %d entries", len(entries))
	}

	if len(percents) == 0 || percents[len(percents)-1] != 100 {
		t.Fatalf("progress never reached 100: %v", percents)
	}
}

// shrinkEffect violates the output geometry contract on purpose.
type shrinkEffect struct{}

func (shrinkEffect) Params() transition.Schema { return transition.Schema{} }

func (shrinkEffect) Apply(f1, f2 *frame.Image, frameIndex, totalFrames, fps int, params transition.Params) (*frame.Image, error) {
	return frame.New(f1.W/2, f1.H/2, f1.C), nil
}

func TestRenderFramesRejectsWrongOutputGeometry(t *testing.T) {
	reg := transition.NewRegistry()
	if err := reg.Register("shrink", "test", func() transition.Transition { return shrinkEffect{} }); err != nil {
		t.Fatalf("Register: %v", err)
	}
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(root, "out")
	cfg.Paths.TempDir = filepath.Join(root, "tmp")
	cfg.Paths.LogDir = filepath.Join(root, "logs")
	cfg.Paths.QueueDB = filepath.Join(root, "queue.db")
	p := render.NewProcessor(&cfg, transition.NewFactory(reg), &captureEncoder{}, nil)

	req := baseRequest()
	req.Effect = "shrink"
	src1 := solidSource(64, 48, frame.Color{R: 255})
	src2 := solidSource(64, 48, frame.Color{B: 255})

	if _, err := p.RenderFrames(context.Background(), req, src1, src2, nil); !errors.Is(err, services.ErrFrameDimension) {
		t.Fatalf("expected frame dimension error, got %v", err)
	}
}

func TestRenderRejectsMissingSourceFile(t *testing.T) {
	p, root := newProcessor(t, &captureEncoder{})
	req := baseRequest()
	req.Source1 = filepath.Join(root, "missing.png")
	req.Source2 = filepath.Join(root, "missing2.png")

	if _, err := p.Render(context.Background(), req, nil); !errors.Is(err, services.ErrMediaLoad) {
		t.Fatalf("expected media load error, got %v", err)
	}
}
