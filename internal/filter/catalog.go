package filter

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CustomName selects the custom parameter set instead of a preset.
const CustomName = "custom"

// NoneName is the preset that applies no visual filter.
const NoneName = "none"

// Preset is a named, non-parametric filter-graph fragment.
type Preset struct {
	Name       string
	Label      string
	Expression string
}

// DisplayLabel returns the label, or a title-cased name when none is set.
func (p Preset) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return cases.Title(language.English).String(strings.ReplaceAll(p.Name, "_", " "))
}

// DefaultPresets is the built-in catalog.
var DefaultPresets = []Preset{
	{Name: NoneName, Label: "No filter", Expression: ""},
	{Name: "custom1", Label: "Custom1", Expression: "eq=brightness=0.06:contrast=1.12:saturation=1.18,colortemperature=5500,unsharp=5:5:0.9:5:5:0.0"},
	{Name: "grayscale", Expression: "hue=s=0"},
	{Name: "blur", Expression: "boxblur=2:1"},
	{Name: "sharpen", Expression: "unsharp=5:5:1.0:5:5:0.0"},
	{Name: "brightness", Expression: "eq=brightness=0.1"},
	{Name: "contrast", Expression: "eq=contrast=1.2"},
	{Name: "saturation", Expression: "eq=saturation=1.5"},
	{Name: "vintage", Expression: "curves=vintage"},
	{Name: "cool", Expression: "colortemperature=10000"},
}

// Catalog is an ordered set of presets addressed by name.
type Catalog struct {
	presets []Preset
	index   map[string]int
}

// NewCatalog builds a catalog from presets. Later entries with the same name
// replace earlier ones in place.
func NewCatalog(presets ...Preset) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int)}
	for _, p := range presets {
		if err := c.add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, _ := NewCatalog(DefaultPresets...)
	return c
}

// Extend returns a new catalog with extra presets layered over this one.
func (c *Catalog) Extend(extra ...Preset) (*Catalog, error) {
	all := append(c.Presets(), extra...)
	return NewCatalog(all...)
}

func (c *Catalog) add(p Preset) error {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownFilter)
	}
	if name == CustomName {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	p.Name = name
	if i, ok := c.index[name]; ok {
		c.presets[i] = p
		return nil
	}
	c.index[name] = len(c.presets)
	c.presets = append(c.presets, p)
	return nil
}

// Lookup finds a preset by name (case-insensitive).
func (c *Catalog) Lookup(name string) (Preset, bool) {
	i, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, false
	}
	return c.presets[i], true
}

// Presets returns a copy of the catalog in order.
func (c *Catalog) Presets() []Preset {
	out := make([]Preset, len(c.presets))
	copy(out, c.presets)
	return out
}

// Names returns preset names in order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.presets))
	for i, p := range c.presets {
		names[i] = p.Name
	}
	return names
}

// Select resolves a filter name to a Selection. The reserved name "custom"
// yields a custom selection carrying values.
func (c *Catalog) Select(name string, values CustomValues) (Selection, error) {
	if strings.EqualFold(strings.TrimSpace(name), CustomName) {
		return CustomSelection(values), nil
	}
	p, ok := c.Lookup(name)
	if !ok {
		return Selection{}, fmt.Errorf("%w: %q, valid options: %s, %s", ErrUnknownFilter, name, strings.Join(c.Names(), ", "), CustomName)
	}
	return PresetSelection(p), nil
}
