package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"segue/internal/preflight"
	"segue/internal/queue"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show environment health and queue summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Environment", colorize) {
				fmt.Fprintln(out, line)
			}
			results := preflight.RunAll(cmd.Context(), cfg)
			printPreflight(cmd, results)

			for _, line := range renderSectionHeader("Queue", colorize) {
				fmt.Fprintln(out, line)
			}
			return ctx.withStore(func(store *queue.Store) error {
				health, err := store.Health(cmd.Context())
				if err != nil {
					return err
				}
				summary := []struct {
					label string
					count int
					kind  statusKind
				}{
					{"Pending", health.Pending, statusInfo},
					{"Rendering", health.Rendering, statusInfo},
					{"Completed", health.Completed, statusOK},
					{"Failed", health.Failed, statusError},
					{"Review", health.Review, statusWarn},
				}
				for _, entry := range summary {
					kind := entry.kind
					if entry.count == 0 && kind != statusOK {
						kind = statusInfo
					}
					fmt.Fprintln(out, renderStatusLine(entry.label, kind,
						fmt.Sprintf("%d", entry.count), colorize))
				}
				fmt.Fprintln(out, renderStatusLine("Total", statusInfo,
					fmt.Sprintf("%d", health.Total), colorize))
				return nil
			})
		},
	}
}

func printPreflight(cmd *cobra.Command, results []preflight.Result) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	for _, result := range results {
		kind := statusError
		if result.Passed {
			kind = statusOK
		}
		fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
	}
}
