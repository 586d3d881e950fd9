package ffmpeg

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"segue/internal/frame"
	"segue/internal/services"
)

// stubCommand swaps the ffmpeg invocation for a shell that drains stdin, so
// tests exercise the streaming path without a real encoder.
func stubCommand(t *testing.T, capture *[]string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if capture != nil {
			*capture = append([]string{name}, args...)
		}
		return exec.CommandContext(ctx, "sh", "-c", "cat > /dev/null")
	}
	t.Cleanup(func() { commandContext = original })
}

func solidFrames(n, w, h int) []*frame.Image {
	frames := make([]*frame.Image, n)
	for i := range frames {
		frames[i] = frame.Solid(w, h, frame.Color{R: uint8(i * 40)})
	}
	return frames
}

func TestEncodeBuildsRawVideoArgs(t *testing.T) {
	var argv []string
	stubCommand(t, &argv)

	cli := NewCLI(WithBinary("ffmpeg-test"))
	err := cli.Encode(context.Background(), solidFrames(3, 64, 48), EncodeOptions{
		OutputPath: "/tmp/out.mp4",
		FPS:        24,
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if argv[0] != "ffmpeg-test" {
		t.Fatalf("binary = %q", argv[0])
	}
	want := map[string]string{"-s": "64x48", "-r": "24", "-pix_fmt": "rgb24"}
	for flag, value := range want {
		found := false
		for i := 0; i < len(argv)-1; i++ {
			if argv[i] == flag && argv[i+1] == value {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing %s %s in %v", flag, value, argv)
		}
	}
	if argv[len(argv)-1] != "/tmp/out.mp4" {
		t.Fatalf("output path should be last arg: %v", argv)
	}
}

func TestEncodeReportsProgress(t *testing.T) {
	stubCommand(t, nil)

	var percents []float64
	cli := NewCLI()
	err := cli.Encode(context.Background(), solidFrames(4, 8, 8), EncodeOptions{
		OutputPath: "/tmp/out.mp4",
		FPS:        30,
		Progress:   func(p float64) { percents = append(percents, p) },
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(percents) != 4 {
		t.Fatalf("expected 4 progress calls, got %d", len(percents))
	}
	if percents[3] != 100 {
		t.Fatalf("final progress = %v", percents[3])
	}
}

func TestEncodeRejectsEmptyInput(t *testing.T) {
	cli := NewCLI()
	if err := cli.Encode(context.Background(), nil, EncodeOptions{OutputPath: "/tmp/out.mp4"}); err == nil {
		t.Fatal("expected error for empty frame list")
	}
	if err := cli.Encode(context.Background(), solidFrames(1, 8, 8), EncodeOptions{}); err == nil {
		t.Fatal("expected error for missing output path")
	}
}

func TestEncodeRejectsMixedGeometry(t *testing.T) {
	stubCommand(t, nil)

	frames := []*frame.Image{
		frame.Solid(8, 8, frame.Color{}),
		frame.Solid(16, 8, frame.Color{}),
	}
	err := NewCLI().Encode(context.Background(), frames, EncodeOptions{OutputPath: "/tmp/out.mp4"})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestEncodeRejectsAlphaFrames(t *testing.T) {
	stubCommand(t, nil)

	err := NewCLI().Encode(context.Background(), []*frame.Image{frame.New(8, 8, 4)}, EncodeOptions{OutputPath: "/tmp/out.mp4"})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}
