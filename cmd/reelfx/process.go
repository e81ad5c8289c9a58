package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/reelfx/internal/discovery"
	"github.com/five82/reelfx/internal/reporter"
)

type processOptions struct {
	speed  float64
	zoom   float64
	filter filterFlags
	output string
	yes    bool
}

func (o *processOptions) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&o.speed, "speed", 0, "Playback speed factor (default from config)")
	cmd.Flags().Float64Var(&o.zoom, "zoom", 0, "Center zoom factor (default from config)")
	o.filter.register(cmd)
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Save the first file here (file or directory) without prompting")
	cmd.Flags().BoolVarP(&o.yes, "yes", "y", false, "Accept the suggested destination without prompting")
}

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var opts processOptions

	cmd := &cobra.Command{
		Use:   "process [files or directories...]",
		Short: "Apply speed, zoom and filter to a batch of videos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := ctx.reporter(cmd)
			found, err := discovery.Collect(args, ctx.runLog)
			if err != nil {
				return err
			}
			if found.SkippedCount > 0 {
				rep.Warning(fmt.Sprintf("Skipped %d non-video files", found.SkippedCount))
			}
			return runBatch(cmd, ctx, rep, found.Files, &opts)
		},
	}
	opts.register(cmd)
	return cmd
}

// runBatch processes files with opts and returns an error when any file
// failed.
func runBatch(cmd *cobra.Command, ctx *commandContext, rep reporter.Reporter, files []string, opts *processOptions) error {
	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}

	editor, cleanup, err := ctx.newEditor(runCtx, rep)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := editor.Files().Add(files...); err != nil {
		return err
	}

	sel, err := opts.filter.selection(ctx, editor)
	if err != nil {
		return err
	}
	cfg := editor.Config()
	speed, zoom := cfg.Processing.Speed, cfg.Processing.Zoom
	if cmd.Flags().Changed("speed") {
		speed = opts.speed
	}
	if cmd.Flags().Changed("zoom") {
		zoom = opts.zoom
	}
	batch := editor.Batch(speed, zoom, sel)
	if err := batch.Validate(); err != nil {
		return err
	}

	choose := destinationChooser(opts.output, opts.yes, cmd.InOrStdin(), cmd.ErrOrStderr())
	outcome, err := editor.Process(runCtx, batch, choose)
	if err != nil {
		return err
	}
	if outcome.Failure > 0 {
		return fmt.Errorf("%d of %d files failed", outcome.Failure, outcome.Total)
	}
	return nil
}
