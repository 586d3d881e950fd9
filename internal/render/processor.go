package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"segue/internal/config"
	"segue/internal/fileutil"
	"segue/internal/frame"
	"segue/internal/logging"
	"segue/internal/media"
	"segue/internal/services"
	"segue/internal/services/ffmpeg"
	"segue/internal/transition"
)

// Progress receives render progress updates. Implementations must tolerate
// concurrent frame completion; the processor serializes calls itself.
type Progress func(percent float64, message string)

// videoExtensions routes source paths to the video decoder; everything else
// is treated as a still image.
var videoExtensions = map[string]bool{
	".avi":  true,
	".m4v":  true,
	".mkv":  true,
	".mov":  true,
	".mp4":  true,
	".webm": true,
}

// Processor renders transition requests end to end.
type Processor struct {
	factory   *transition.Factory
	encoder   ffmpeg.Encoder
	logger    *slog.Logger
	video     media.VideoOptions
	tempDir   string
	outputDir string
}

// NewProcessor wires a processor from configuration and collaborators. A nil
// logger silences the processor.
func NewProcessor(cfg *config.Config, factory *transition.Factory, encoder ffmpeg.Encoder, logger *slog.Logger) *Processor {
	return &Processor{
		factory: factory,
		encoder: encoder,
		logger:  logging.NewComponentLogger(logger, "render"),
		video: media.VideoOptions{
			FFmpegBinary:  cfg.FFmpegBinary(),
			FFprobeBinary: cfg.FFprobeBinary(),
		},
		tempDir:   cfg.Paths.TempDir,
		outputDir: cfg.Paths.OutputDir,
	}
}

// Render executes the full pipeline: validation, source loading, frame
// rendering, and encoding. The output lands at req.OutputFile (or a generated
// path under the output directory) only after the encode succeeds; partial
// results never escape the temp directory.
func (p *Processor) Render(ctx context.Context, req Request, progress Progress) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if _, err := p.factory.Create(req.Effect); err != nil {
		return "", err
	}
	outputPath := req.OutputFile
	if outputPath == "" {
		outputPath = filepath.Join(p.outputDir,
			fmt.Sprintf("%s_%s.mp4", req.Effect, time.Now().Format("20060102_150405")))
	}

	report := func(percent float64, message string) {
		if progress != nil {
			progress(percent, message)
		}
	}

	p.logger.Info("render started", logging.Args(
		logging.String("effect", req.Effect),
		logging.String("source1", req.Source1),
		logging.String("source2", req.Source2),
		logging.Int("total_frames", req.TotalFrames),
		logging.Int("fps", req.FPS),
		logging.String("geometry", fmt.Sprintf("%dx%d", req.Width, req.Height)),
	)...)

	report(0, "loading sources")
	src1, err := p.openSource(ctx, req.Source1)
	if err != nil {
		return "", err
	}
	src2, err := p.openSource(ctx, req.Source2)
	if err != nil {
		return "", err
	}

	frames, err := p.RenderFrames(ctx, req, src1, src2, func(done, total int) {
		report(float64(done)/float64(total)*80, fmt.Sprintf("rendered frame %d/%d", done, total))
	})
	if err != nil {
		return "", err
	}

	tempPath := filepath.Join(p.tempDir, fmt.Sprintf("render-%s.mp4", uuid.NewString()))
	defer os.Remove(tempPath)

	encodeLog := logging.WithStage(p.logger, "encode")
	encodeLog.Info("encoding frames", logging.Args(
		logging.Int("frames", len(frames)),
		logging.Int("fps", req.FPS),
	)...)
	report(80, "encoding")
	err = p.encoder.Encode(ctx, frames, ffmpeg.EncodeOptions{
		OutputPath: tempPath,
		FPS:        req.FPS,
		Progress: func(percent float64) {
			report(80+percent/5, "encoding")
		},
	})
	if err != nil {
		return "", err
	}

	if err := fileutil.MoveFile(tempPath, outputPath); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "render", "publish output", outputPath, err)
	}
	report(100, "completed")
	p.logger.Info("render completed", logging.Args(
		logging.String("effect", req.Effect),
		logging.String("output", outputPath),
	)...)
	return outputPath, nil
}

// RenderFrames renders every output frame of the transition. Frames render in
// request order when req.Workers is 1 and across a bounded worker pool
// otherwise; the returned slice is always in frame order. onFrame, when set,
// receives the running completion count.
func (p *Processor) RenderFrames(ctx context.Context, req Request, src1, src2 media.Source, onFrame func(done, total int)) ([]*frame.Image, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	workers := req.Workers
	if workers > req.TotalFrames {
		workers = req.TotalFrames
	}

	sampler := logging.NewProgressSampler(10)
	out := make([]*frame.Image, req.TotalFrames)
	var done atomic.Int64
	var mu sync.Mutex
	completed := func() {
		count := int(done.Add(1))
		mu.Lock()
		defer mu.Unlock()
		if onFrame != nil {
			onFrame(count, req.TotalFrames)
		}
		percent := float64(count) / float64(req.TotalFrames) * 100
		if sampler.ShouldLog(percent) {
			p.logger.Info("render progress", logging.Args(
				logging.String("effect", req.Effect),
				logging.Int("frame", count),
				logging.Int("total", req.TotalFrames),
			)...)
		}
	}

	if workers <= 1 {
		effect, err := p.factory.Create(req.Effect)
		if err != nil {
			return nil, err
		}
		for i := 0; i < req.TotalFrames; i++ {
			img, err := p.renderOne(ctx, effect, req, src1, src2, i)
			if err != nil {
				return nil, err
			}
			out[i] = img
			completed()
		}
		return out, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var firstErr error
	var errMu sync.Mutex
	fail := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		errMu.Unlock()
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		// Each worker owns its own transition instance so seeded effects
		// never share random state.
		effect, err := p.factory.Create(req.Effect)
		if err != nil {
			cancel()
			return nil, err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				img, err := p.renderOne(runCtx, effect, req, src1, src2, i)
				if err != nil {
					fail(err)
					return
				}
				out[i] = img
				completed()
			}
		}()
	}

feed:
	for i := 0; i < req.TotalFrames; i++ {
		select {
		case indices <- i:
		case <-runCtx.Done():
			break feed
		}
	}
	close(indices)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Processor) renderOne(ctx context.Context, effect transition.Transition, req Request, src1, src2 media.Source, index int) (*frame.Image, error) {
	progress := transition.Progress(index, req.TotalFrames)
	f1, err := media.Sample(ctx, src1, progress)
	if err != nil {
		return nil, err
	}
	f2, err := media.Sample(ctx, src2, progress)
	if err != nil {
		return nil, err
	}
	f1 = f1.Resize(req.Width, req.Height)
	f2 = f2.Resize(req.Width, req.Height)

	img, err := effect.Apply(f1, f2, index, req.TotalFrames, req.FPS, req.Params)
	if err != nil {
		return nil, err
	}
	if img.W != req.Width || img.H != req.Height || img.C != f1.C {
		return nil, services.Wrap(services.ErrFrameDimension, "render", "check output",
			fmt.Sprintf("effect %q returned %dx%dx%d for frame %d, want %dx%dx%d",
				req.Effect, img.W, img.H, img.C, index, req.Width, req.Height, f1.C), nil)
	}
	return img, nil
}

func (p *Processor) openSource(ctx context.Context, path string) (media.Source, error) {
	if videoExtensions[strings.ToLower(filepath.Ext(path))] {
		return media.OpenVideo(ctx, path, p.video)
	}
	return media.OpenImage(path)
}

