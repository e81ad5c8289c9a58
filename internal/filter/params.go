// Package filter turns a preset choice or a set of custom color parameters
// into an ffmpeg filter-graph expression.
package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Param identifies one of the nine custom color channels.
type Param string

const (
	Brightness Param = "brightness"
	Contrast   Param = "contrast"
	Saturation Param = "saturation"
	Gamma      Param = "gamma"
	Hue        Param = "hue"
	Vibrance   Param = "vibrance"
	Red        Param = "red"
	Green      Param = "green"
	Blue       Param = "blue"
)

// ParamSpec describes the valid range and neutral value of a custom parameter.
type ParamSpec struct {
	Name    Param
	Label   string
	Min     float64
	Max     float64
	Default float64
}

// Specs lists every custom parameter in canonical order.
var Specs = []ParamSpec{
	{Name: Brightness, Label: "Brightness", Min: -1, Max: 1, Default: 0},
	{Name: Contrast, Label: "Contrast", Min: 0, Max: 3, Default: 1},
	{Name: Saturation, Label: "Saturation", Min: 0, Max: 3, Default: 1},
	{Name: Gamma, Label: "Gamma", Min: 0.1, Max: 3, Default: 1},
	{Name: Hue, Label: "Hue", Min: -180, Max: 180, Default: 0},
	{Name: Vibrance, Label: "Vibrance", Min: 0, Max: 2, Default: 1},
	{Name: Red, Label: "Red", Min: 0, Max: 2, Default: 1},
	{Name: Green, Label: "Green", Min: 0, Max: 2, Default: 1},
	{Name: Blue, Label: "Blue", Min: 0, Max: 2, Default: 1},
}

// LookupSpec returns the ParamSpec for a parameter name (case-insensitive).
func LookupSpec(name string) (ParamSpec, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Specs {
		if string(s.Name) == name {
			return s, true
		}
	}
	return ParamSpec{}, false
}

// ParamNames returns the parameter names in canonical order.
func ParamNames() []string {
	names := make([]string, len(Specs))
	for i, s := range Specs {
		names[i] = string(s.Name)
	}
	return names
}

// CustomValues holds one value for every custom parameter.
type CustomValues struct {
	Brightness float64
	Contrast   float64
	Saturation float64
	Gamma      float64
	Hue        float64
	Vibrance   float64
	Red        float64
	Green      float64
	Blue       float64
}

// Defaults returns the neutral parameter set, which produces no filter.
func Defaults() CustomValues {
	var v CustomValues
	for _, s := range Specs {
		v.set(s.Name, s.Default)
	}
	return v
}

// Get returns the value of a single parameter.
func (v CustomValues) Get(p Param) float64 {
	switch p {
	case Brightness:
		return v.Brightness
	case Contrast:
		return v.Contrast
	case Saturation:
		return v.Saturation
	case Gamma:
		return v.Gamma
	case Hue:
		return v.Hue
	case Vibrance:
		return v.Vibrance
	case Red:
		return v.Red
	case Green:
		return v.Green
	case Blue:
		return v.Blue
	}
	return 0
}

func (v *CustomValues) set(p Param, val float64) {
	switch p {
	case Brightness:
		v.Brightness = val
	case Contrast:
		v.Contrast = val
	case Saturation:
		v.Saturation = val
	case Gamma:
		v.Gamma = val
	case Hue:
		v.Hue = val
	case Vibrance:
		v.Vibrance = val
	case Red:
		v.Red = val
	case Green:
		v.Green = val
	case Blue:
		v.Blue = val
	}
}

// With returns a copy with one parameter replaced.
func (v CustomValues) With(p Param, val float64) CustomValues {
	v.set(p, val)
	return v
}

// FromMap builds a value set from a name->value map. Missing keys take their
// default; unknown keys are ignored.
func FromMap(m map[string]float64) CustomValues {
	v := Defaults()
	for k, val := range m {
		if s, ok := LookupSpec(k); ok {
			v.set(s.Name, val)
		}
	}
	return v
}

// ToMap returns every parameter keyed by name.
func (v CustomValues) ToMap() map[string]float64 {
	m := make(map[string]float64, len(Specs))
	for _, s := range Specs {
		m[string(s.Name)] = v.Get(s.Name)
	}
	return m
}

// Clamp returns a copy with every value forced into its valid range.
func (v CustomValues) Clamp() CustomValues {
	out := v
	for _, s := range Specs {
		val := v.Get(s.Name)
		switch {
		case val < s.Min:
			out.set(s.Name, s.Min)
		case val > s.Max:
			out.set(s.Name, s.Max)
		}
	}
	return out
}

// IsNeutral reports whether every parameter is at its default.
func (v CustomValues) IsNeutral() bool {
	return v == Defaults()
}

// ParseAssignments applies "name=value" pairs on top of base.
func ParseAssignments(base CustomValues, pairs []string) (CustomValues, error) {
	out := base
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return base, fmt.Errorf("%w: %q (expected name=value)", ErrInvalidAssignment, pair)
		}
		spec, ok := LookupSpec(name)
		if !ok {
			return base, fmt.Errorf("%w: %q, valid names: %s", ErrUnknownParam, name, strings.Join(ParamNames(), ", "))
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return base, fmt.Errorf("%w: %s=%q", ErrInvalidAssignment, name, raw)
		}
		out.set(spec.Name, val)
	}
	return out, nil
}
