package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/reelfx"
	"github.com/five82/reelfx/internal/filter"
)

// filterFlags selects a filter from the command line.
type filterFlags struct {
	name         string
	custom       []string
	customPreset string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "filter", "f", "", "Filter preset name, or \"custom\" (default from config)")
	cmd.Flags().StringSliceVar(&f.custom, "custom", nil, "Custom parameter as name=value; implies --filter custom")
	cmd.Flags().StringVar(&f.customPreset, "custom-preset", "", "Load custom values from a saved preset; implies --filter custom")
}

// selection resolves the flags against the editor's catalog. Saved values
// are applied first and --custom pairs override them.
func (f *filterFlags) selection(ctx *commandContext, editor *reelfx.Editor) (reelfx.Selection, error) {
	values := filter.Defaults()
	custom := false

	if f.customPreset != "" {
		stored, err := ctx.presetStore().Get(f.customPreset)
		if err != nil {
			return reelfx.Selection{}, err
		}
		values = stored
		custom = true
	}
	if len(f.custom) > 0 {
		parsed, err := filter.ParseAssignments(values, f.custom)
		if err != nil {
			return reelfx.Selection{}, err
		}
		values = parsed
		custom = true
	}

	name := f.name
	if name == "" {
		name = editor.Config().Processing.Filter
		if custom {
			name = filter.CustomName
		}
	}
	return editor.Select(name, values.Clamp())
}
