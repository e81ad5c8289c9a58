package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/reelfx/internal/config"
	"github.com/five82/reelfx/internal/preview"
	"github.com/five82/reelfx/internal/reporter"
	"github.com/five82/reelfx/internal/util"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var (
		filter filterFlags
		out    string
		fit    bool
		zoom   float64
	)

	cmd := &cobra.Command{
		Use:   "preview IMAGE",
		Short: "Render a filter preview of a still image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := ctx.reporter(cmd)
			editor, cleanup, err := ctx.newEditor(cmd.Context(), reporter.NullReporter{})
			if err != nil {
				return err
			}
			defer cleanup()

			sel, err := filter.selection(ctx, editor)
			if err != nil {
				return err
			}

			res, _ := editor.PreviewLatest(cmd.Context(), args[0], sel)
			if !res.Success {
				return fmt.Errorf("preview failed: %s", res.Reason)
			}
			path := res.OutputPath

			if fit {
				if !cmd.Flags().Changed("zoom") {
					zoom = editor.Config().Processing.Zoom
				}
				fitted := util.TempFilePath(editor.Config().Paths.PreviewDir, "reelfx_preview_canvas", ".jpg")
				if err := preview.FitToCanvas(path, fitted, zoom); err != nil {
					return err
				}
				_ = util.RemoveIfExists(path)
				path = fitted
			}

			if out != "" {
				dest, err := config.ExpandPath(out)
				if err != nil {
					return err
				}
				if err := util.MoveFile(path, dest); err != nil {
					return err
				}
				path = dest
			}

			if res.Expression != "" {
				rep.Verbose("Filter: " + res.Expression)
			}
			rep.OperationComplete("Preview written to " + path)
			return nil
		},
	}
	filter.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Move the preview to this path")
	cmd.Flags().BoolVar(&fit, "fit", false, "Scale the preview onto the display canvas")
	cmd.Flags().Float64Var(&zoom, "zoom", 0, "Zoom applied when fitting (default from config)")
	return cmd
}

func newThumbnailCommand(ctx *commandContext) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "thumbnail VIDEO",
		Short: "Extract the first frame of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := ctx.reporter(cmd)
			editor, cleanup, err := ctx.newEditor(cmd.Context(), reporter.NullReporter{})
			if err != nil {
				return err
			}
			defer cleanup()

			res := editor.Thumbnail(cmd.Context(), args[0])
			if !res.Success {
				return fmt.Errorf("thumbnail failed: %s", res.Reason)
			}
			path := res.OutputPath
			if out != "" {
				dest, err := config.ExpandPath(out)
				if err != nil {
					return err
				}
				if err := util.MoveFile(path, dest); err != nil {
					return err
				}
				path = dest
			}
			rep.OperationComplete("Thumbnail written to " + path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Move the frame to this path")
	return cmd
}
