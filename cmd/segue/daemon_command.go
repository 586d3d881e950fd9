package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"segue/internal/logging"
	"segue/internal/preflight"
	"segue/internal/queue"
	"segue/internal/render"
	"segue/internal/services/ffmpeg"
	"segue/internal/worker"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the background render daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if !skipPreflight {
				results := preflight.RunAll(cmd.Context(), cfg)
				if !preflight.Passed(results) {
					printPreflight(cmd, results)
					return fmt.Errorf("preflight checks failed; fix the environment or pass --skip-preflight")
				}
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			factory, err := ctx.ensureFactory()
			if err != nil {
				return err
			}
			store, err := queue.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			encoder := ffmpeg.NewCLI(ffmpeg.WithBinary(cfg.FFmpegBinary()))
			processor := render.NewProcessor(cfg, factory, encoder, logger)
			w, err := worker.New(cfg, store, processor, logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := w.Start(runCtx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Daemon running (queue: %s); press Ctrl-C to stop\n", store.Path())

			<-runCtx.Done()
			w.Stop()
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Start even when environment checks fail")
	return cmd
}
