package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"segue/internal/transition"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var categoryFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:         "list",
		Short:       "List available transition effects",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, err := ctx.ensureFactory()
			if err != nil {
				return err
			}

			category := strings.TrimSpace(categoryFlag)
			descriptors := factory.DescribeAll()
			filtered := make([]transition.Descriptor, 0, len(descriptors))
			for _, desc := range descriptors {
				if category != "" && desc.Category != category {
					continue
				}
				filtered = append(filtered, desc)
			}
			if len(filtered) == 0 && category != "" {
				return fmt.Errorf("no effects in category %q (categories: %s)",
					category, strings.Join(factory.Categories(), ", "))
			}

			if jsonFlag {
				return writeJSON(cmd, filtered)
			}

			rows := make([][]string, 0, len(filtered))
			for _, desc := range filtered {
				rows = append(rows, []string{
					desc.Name,
					titleCase(desc.Category),
					strings.Join(desc.Schema.Names(), ", "),
				})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No effects registered")
				return nil
			}

			out := renderTable([]string{"Effect", "Category", "Parameters"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft})
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Only show effects in this category")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON instead of a table")
	return cmd
}

func writeJSON(cmd *cobra.Command, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func newParamsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "params <effect>",
		Short:       "Show an effect's parameter schema",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, err := ctx.ensureFactory()
			if err != nil {
				return err
			}
			desc, err := factory.Describe(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", desc.Name, titleCase(desc.Category))
			if len(desc.Schema) == 0 {
				fmt.Fprintln(out, "No parameters")
				return nil
			}

			rows := make([][]string, 0, len(desc.Schema))
			for _, name := range desc.Schema.Names() {
				param := desc.Schema[name]
				rows = append(rows, []string{
					name,
					string(param.Type),
					fmt.Sprintf("%v", param.Default),
					describeConstraint(param),
					param.Description,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Parameter", "Type", "Default", "Constraint", "Description"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft}))
			return nil
		},
	}
}

func describeConstraint(param transition.Param) string {
	if len(param.Choices) > 0 {
		return strings.Join(param.Choices, " | ")
	}
	if param.Bounded() {
		return fmt.Sprintf("%g to %g", param.Min, param.Max)
	}
	return ""
}
