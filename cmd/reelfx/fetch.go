package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/five82/reelfx/internal/download"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var (
		process bool
		opts    processOptions
	)

	cmd := &cobra.Command{
		Use:   "fetch URL...",
		Short: "Download short videos and optionally process them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := ctx.reporter(cmd)
			cfg := ctx.config

			for _, u := range args {
				if err := download.ValidateURL(u); err != nil {
					return err
				}
			}

			fetchOpts := download.FetchOptions{
				VideoDir:     cfg.Download.VideoDir,
				ThumbnailDir: cfg.Download.ThumbnailDir,
				DatedFolder:  true,
			}

			var bar *progressbar.ProgressBar
			current := 0
			if !ctx.jsonOutput(cmd) {
				fetchOpts.Progress = func(index int, written, total int64) {
					if bar == nil || index != current {
						if bar != nil {
							_ = bar.Finish()
						}
						current = index
						bar = progressbar.NewOptions64(total,
							progressbar.OptionSetWriter(cmd.ErrOrStderr()),
							progressbar.OptionSetDescription(fmt.Sprintf("Video %d/%d", index, len(args))),
							progressbar.OptionShowBytes(true),
							progressbar.OptionClearOnFinish(),
						)
					}
					_ = bar.Set64(written)
				}
			}

			client := download.NewClient(cfg.Download)
			fetched, err := client.FetchAll(cmd.Context(), args, fetchOpts)
			if bar != nil {
				_ = bar.Finish()
			}
			for _, f := range fetched {
				rep.Verbose(fmt.Sprintf("Downloaded %s via %s", f.VideoPath, f.Provider))
			}
			if err != nil {
				return err
			}
			rep.OperationComplete(fmt.Sprintf("Downloaded %d videos", len(fetched)))

			if !process {
				return nil
			}
			files := make([]string, len(fetched))
			for i, f := range fetched {
				files[i] = f.VideoPath
			}
			return runBatch(cmd, ctx, rep, files, &opts)
		},
	}
	cmd.Flags().BoolVar(&process, "process", false, "Process the downloaded videos as one batch")
	opts.register(cmd)
	return cmd
}
