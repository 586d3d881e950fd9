package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"segue/internal/config"
	"segue/internal/logging"
	"segue/internal/queue"
	"segue/internal/render"
	"segue/internal/services/ffmpeg"
	"segue/internal/transition"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var (
		outputFlag  string
		framesFlag  int
		fpsFlag     int
		widthFlag   int
		heightFlag  int
		workersFlag int
		paramFlags  []string
		queueFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "render <effect> <source1> <source2>",
		Short: "Render a transition between two sources",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := buildRequest(cfg, args, outputFlag, framesFlag, fpsFlag,
				widthFlag, heightFlag, workersFlag, paramFlags)
			if err != nil {
				return err
			}

			if queueFlag {
				payload, err := req.Encode()
				if err != nil {
					return err
				}
				return ctx.withStore(func(store *queue.Store) error {
					job, err := store.Enqueue(cmd.Context(), req.Effect, req.Source1, req.Source2, req.OutputFile, payload)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Queued job %d (%s)\n", job.ID, job.Effect)
					return nil
				})
			}

			factory, err := ctx.ensureFactory()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			encoder := ffmpeg.NewCLI(ffmpeg.WithBinary(cfg.FFmpegBinary()))
			processor := render.NewProcessor(cfg, factory, encoder, logger)

			out := cmd.OutOrStdout()
			sampler := logging.NewProgressSampler(10)
			outputPath, err := processor.Render(cmd.Context(), req, func(percent float64, message string) {
				if sampler.ShouldLog(percent) {
					fmt.Fprintf(out, "%3.0f%% %s\n", percent, message)
				}
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output video path (default: generated under the output directory)")
	cmd.Flags().IntVar(&framesFlag, "frames", 0, "Number of output frames")
	cmd.Flags().IntVar(&fpsFlag, "fps", 0, "Output frame rate")
	cmd.Flags().IntVar(&widthFlag, "width", 0, "Output width in pixels")
	cmd.Flags().IntVar(&heightFlag, "height", 0, "Output height in pixels")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Parallel frame workers")
	cmd.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "Effect parameter as name=value (repeatable)")
	cmd.Flags().BoolVar(&queueFlag, "queue", false, "Enqueue the render for the daemon instead of running it now")
	return cmd
}

func buildRequest(cfg *config.Config, args []string, output string, frames, fps, width, height, workers int, paramPairs []string) (render.Request, error) {
	params, err := parseParams(paramPairs)
	if err != nil {
		return render.Request{}, err
	}

	source1, err := config.ExpandPath(args[1])
	if err != nil {
		return render.Request{}, err
	}
	source2, err := config.ExpandPath(args[2])
	if err != nil {
		return render.Request{}, err
	}
	if output != "" {
		if output, err = config.ExpandPath(output); err != nil {
			return render.Request{}, err
		}
	}

	req := render.Request{
		Effect:      args[0],
		Source1:     source1,
		Source2:     source2,
		OutputFile:  output,
		TotalFrames: frames,
		FPS:         fps,
		Width:       width,
		Height:      height,
		Workers:     workers,
		Params:      params,
	}
	req.ApplyDefaults(cfg.Render)
	if err := req.Validate(); err != nil {
		return render.Request{}, err
	}
	return req, nil
}

// parseParams converts repeated name=value flags into typed effect parameters.
// Values parse as bool, int, then float before falling back to string, which
// matches how schema resolution coerces them.
func parseParams(pairs []string) (transition.Params, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(transition.Params, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --param %q: expected name=value", pair)
		}
		params[name] = parseParamValue(strings.TrimSpace(value))
	}
	return params, nil
}

func parseParamValue(value string) any {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
