package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"segue/internal/frame"
	"segue/internal/services"
)

var commandContext = exec.CommandContext

// EncodeOptions describes one encode run.
type EncodeOptions struct {
	OutputPath string
	FPS        int
	// Progress, when set, receives a percentage after each frame is written.
	Progress func(percent float64)
}

// Encoder turns a finished frame sequence into a video file.
type Encoder interface {
	Encode(ctx context.Context, frames []*frame.Image, opts EncodeOptions) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI drives the ffmpeg command-line encoder.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Encode streams the frames into ffmpeg as rawvideo RGB24 and writes an
// H.264 MP4 at opts.OutputPath. Every frame must share the geometry of the
// first and carry exactly three channels.
func (c *CLI) Encode(ctx context.Context, frames []*frame.Image, opts EncodeOptions) error {
	if len(frames) == 0 {
		return errors.New("no frames to encode")
	}
	if strings.TrimSpace(opts.OutputPath) == "" {
		return errors.New("output path required")
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	first := frames[0]
	if first.C != 3 {
		return services.Wrap(services.ErrExternalTool, "encode", "prepare",
			fmt.Sprintf("rawvideo pipe needs 3 channels, got %d", first.C), nil)
	}
	for i, img := range frames {
		if !img.SameGeometry(first) {
			return services.Wrap(services.ErrExternalTool, "encode", "prepare",
				fmt.Sprintf("frame %d geometry %dx%dx%d does not match %dx%dx%d",
					i, img.W, img.H, img.C, first.W, first.H, first.C), nil)
		}
	}

	args := []string{
		"-y",
		"-v", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", first.W, first.H),
		"-r", strconv.Itoa(fps),
		"-i", "-",
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", "18",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		opts.OutputPath,
	}
	cmd := commandContext(ctx, c.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "encode", "pipe", "", err)
	}
	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrExternalTool, "encode", "start", c.binary, err)
	}

	writeErr := func() error {
		defer stdin.Close()
		total := len(frames)
		for i, img := range frames {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := stdin.Write(img.Bytes()); err != nil {
				return fmt.Errorf("write frame %d: %w", i, err)
			}
			if opts.Progress != nil {
				opts.Progress(float64(i+1) / float64(total) * 100)
			}
		}
		return nil
	}()

	waitErr := cmd.Wait()
	if writeErr != nil {
		return services.Wrap(services.ErrExternalTool, "encode", "stream",
			strings.TrimSpace(stderr.String()), writeErr)
	}
	if waitErr != nil {
		return services.Wrap(services.ErrExternalTool, "encode", "finalize",
			strings.TrimSpace(stderr.String()), waitErr)
	}
	return nil
}

var _ Encoder = (*CLI)(nil)
