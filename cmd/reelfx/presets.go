package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/reelfx/internal/filter"
)

func newPresetsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage saved custom filter values",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := ctx.presetStore()
			names, err := store.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved presets")
				return nil
			}
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				values, err := store.Get(name)
				if err != nil {
					return err
				}
				row := []string{name}
				for _, spec := range filter.Specs {
					row = append(row, formatValue(values.Get(spec.Name)))
				}
				rows = append(rows, row)
			}
			headers := []string{"Name"}
			aligns := []columnAlignment{alignLeft}
			for _, spec := range filter.Specs {
				headers = append(headers, spec.Label)
				aligns = append(aligns, alignRight)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show NAME",
		Short: "Show the values of a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := ctx.presetStore().Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderValues(values))
			fmt.Fprintf(cmd.OutOrStdout(), "Filter: %s\n", orDash(filter.Build(filter.CustomSelection(values))))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save NAME name=value...",
		Short: "Save custom filter values under a name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := filter.ParseAssignments(filter.Defaults(), args[1:])
			if err != nil {
				return err
			}
			values = values.Clamp()
			if err := ctx.presetStore().Save(args[0], values); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %q\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.presetStore().Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted preset %q\n", args[0])
			return nil
		},
	})

	return cmd
}

func renderValues(values filter.CustomValues) string {
	rows := make([][]string, 0, len(filter.Specs))
	for _, spec := range filter.Specs {
		rows = append(rows, []string{spec.Label, formatValue(values.Get(spec.Name))})
	}
	return renderTable([]string{"Parameter", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
