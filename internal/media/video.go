package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"segue/internal/frame"
	"segue/internal/media/ffprobe"
	"segue/internal/services"
)

// maxDecodedFrames bounds how much video a source will hold in memory.
// Transitions only ever need a few seconds of footage.
const maxDecodedFrames = 2000

// VideoOptions selects the external binaries used for probing and decoding.
// Zero values fall back to the bare command names on PATH.
type VideoOptions struct {
	FFmpegBinary  string
	FFprobeBinary string
}

// OpenVideo probes the file, then decodes every frame through ffmpeg's
// rawvideo pipe into an in-memory source. Decoding up front keeps the source
// restartable and random-access, which the renderer's parallel frame loop
// depends on.
func OpenVideo(ctx context.Context, path string, opts VideoOptions) (*SliceSource, error) {
	probe, err := ffprobe.Inspect(ctx, opts.FFprobeBinary, path)
	if err != nil {
		return nil, services.Wrap(services.ErrMediaLoad, "media", "probe video", path, err)
	}
	stream, ok := probe.FirstVideoStream()
	if !ok {
		return nil, services.Wrap(services.ErrMediaLoad, "media", "probe video",
			fmt.Sprintf("%s: no video stream", path), nil)
	}
	if stream.Width <= 0 || stream.Height <= 0 {
		return nil, services.Wrap(services.ErrMediaLoad, "media", "probe video",
			fmt.Sprintf("%s: stream reports %dx%d", path, stream.Width, stream.Height), nil)
	}

	frames, err := decodeRawVideo(ctx, opts.FFmpegBinary, path, stream.Width, stream.Height)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, services.Wrap(services.ErrMediaLoad, "media", "decode video",
			fmt.Sprintf("%s: ffmpeg produced no frames", path), nil)
	}
	return NewSliceSource(frames), nil
}

func decodeRawVideo(ctx context.Context, binary, path string, w, h int) ([]*frame.Image, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, services.Wrap(services.ErrMediaLoad, "media", "decode video", path, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, services.Wrap(services.ErrMediaLoad, "media", "decode video", path, err)
	}

	frameBytes := w * h * 3
	buf := make([]byte, frameBytes)
	var frames []*frame.Image
	for {
		_, err := io.ReadFull(stdout, buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			cmd.Wait()
			return nil, services.Wrap(services.ErrMediaLoad, "media", "decode video",
				fmt.Sprintf("%s: truncated frame %d: %s", path, len(frames), strings.TrimSpace(stderr.String())), err)
		}
		img, err := frame.FromBytes(w, h, 3, buf)
		if err != nil {
			cmd.Wait()
			return nil, services.Wrap(services.ErrMediaLoad, "media", "decode video", path, err)
		}
		frames = append(frames, img)
		if len(frames) > maxDecodedFrames {
			cmd.Process.Kill()
			cmd.Wait()
			return nil, services.Wrap(services.ErrMediaLoad, "media", "decode video",
				fmt.Sprintf("%s: more than %d frames", path, maxDecodedFrames), nil)
		}
	}
	if err := cmd.Wait(); err != nil {
		return nil, services.Wrap(services.ErrMediaLoad, "media", "decode video",
			fmt.Sprintf("%s: %s", path, strings.TrimSpace(stderr.String())), err)
	}
	return frames, nil
}
