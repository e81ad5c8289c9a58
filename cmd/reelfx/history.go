package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/reelfx/internal/util"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent batch outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			batches, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(batches) == 0 {
				fmt.Fprintln(out, "No batches recorded")
				return nil
			}

			rows := make([][]string, 0, len(batches))
			for _, b := range batches {
				status := "done"
				if b.Cancelled {
					status = "stopped"
				}
				rows = append(rows, []string{
					b.StartedAt.Local().Format("2006-01-02 15:04"),
					strconv.Itoa(b.Total),
					strconv.Itoa(b.Success),
					strconv.Itoa(b.Failure),
					strconv.Itoa(b.Skipped),
					status,
					util.FormatDuration(b.FinishedAt.Sub(b.StartedAt).Seconds()),
					orDash(b.DestinationDir),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Started", "Total", "Saved", "Failed", "Skipped", "Status", "Duration", "Destination"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft, alignRight, alignLeft},
			))

			if !ctx.flags.verbose {
				return nil
			}
			var failures [][]string
			for _, b := range batches {
				for _, f := range b.Failures {
					failures = append(failures, []string{shortID(b.ID), f.Filename, f.Reason})
				}
			}
			if len(failures) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable([]string{"Batch", "File", "Reason"}, failures, nil))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of batches to show")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
