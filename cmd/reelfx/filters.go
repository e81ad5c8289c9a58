package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/reelfx/internal/filter"
)

func newFiltersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List filter presets and custom parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := ctx.config.Catalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			rows := make([][]string, 0, len(catalog.Presets()))
			for _, p := range catalog.Presets() {
				rows = append(rows, []string{p.Name, p.DisplayLabel(), orDash(p.Expression)})
			}
			fmt.Fprintln(out, renderTable([]string{"Name", "Label", "Expression"}, rows, nil))

			params := make([][]string, 0, len(filter.Specs))
			for _, spec := range filter.Specs {
				params = append(params, []string{
					string(spec.Name),
					spec.Label,
					formatValue(spec.Min),
					formatValue(spec.Max),
					formatValue(spec.Default),
				})
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Custom parameters (--filter %s --custom name=value):\n", filter.CustomName)
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Label", "Min", "Max", "Default"},
				params,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
}
