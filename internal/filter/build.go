package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates a Selection.
type Kind int

const (
	// KindPreset selects a fixed catalog fragment.
	KindPreset Kind = iota
	// KindCustom synthesizes a fragment from CustomValues.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindPreset:
		return "preset"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Selection is either a named preset or a custom parameter set.
type Selection struct {
	kind   Kind
	preset Preset
	custom CustomValues
}

// PresetSelection selects a fixed preset.
func PresetSelection(p Preset) Selection {
	return Selection{kind: KindPreset, preset: p}
}

// CustomSelection selects a custom parameter set.
func CustomSelection(v CustomValues) Selection {
	return Selection{kind: KindCustom, custom: v}
}

// Kind returns the selection variant.
func (s Selection) Kind() Kind { return s.kind }

// Preset returns the preset; only meaningful for KindPreset.
func (s Selection) Preset() Preset { return s.preset }

// Custom returns the custom values; only meaningful for KindCustom.
func (s Selection) Custom() CustomValues { return s.custom }

// Name returns the catalog name, or "custom".
func (s Selection) Name() string {
	if s.kind == KindCustom {
		return CustomName
	}
	return s.preset.Name
}

// Build renders the selection as a filter-graph expression. An empty result
// means no visual filter.
func Build(sel Selection) string {
	switch sel.kind {
	case KindCustom:
		return buildCustom(sel.custom)
	default:
		return sel.preset.Expression
	}
}

// Fragment order is fixed: eq, hue, vibrance eq, channel mixer.
func buildCustom(v CustomValues) string {
	var fragments []string

	var eq []string
	if v.Brightness != 0 {
		eq = append(eq, fmt.Sprintf("brightness=%.2f", v.Brightness))
	}
	if v.Contrast != 1 {
		eq = append(eq, fmt.Sprintf("contrast=%.2f", v.Contrast))
	}
	if v.Saturation != 1 {
		eq = append(eq, fmt.Sprintf("saturation=%.2f", v.Saturation))
	}
	if v.Gamma != 1 {
		eq = append(eq, fmt.Sprintf("gamma=%.2f", v.Gamma))
	}
	if len(eq) > 0 {
		fragments = append(fragments, "eq="+strings.Join(eq, ":"))
	}

	if v.Hue != 0 {
		fragments = append(fragments, "hue=h="+strconv.FormatFloat(v.Hue, 'f', -1, 64))
	}

	// Vibrance is approximated by a second, independent saturation pass. It
	// stacks with an explicit saturation value.
	if v.Vibrance != 1 {
		fragments = append(fragments, fmt.Sprintf("eq=saturation=%.2f", VibranceSaturation(v.Vibrance)))
	}

	if v.Red != 1 || v.Green != 1 || v.Blue != 1 {
		fragments = append(fragments, fmt.Sprintf("colorchannelmixer=rr=%.2f:gg=%.2f:bb=%.2f", v.Red, v.Green, v.Blue))
	}

	return strings.Join(fragments, ",")
}

// VibranceSaturation maps a vibrance value to the saturation used for it.
func VibranceSaturation(vibrance float64) float64 {
	return 1 + (vibrance-1)*0.5
}
