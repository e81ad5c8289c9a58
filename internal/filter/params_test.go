package filter

import (
	"errors"
	"testing"
)

func TestDefaultsAreNeutral(t *testing.T) {
	d := Defaults()
	if !d.IsNeutral() {
		t.Error("Defaults() should be neutral")
	}
	for _, s := range Specs {
		if got := d.Get(s.Name); got != s.Default {
			t.Errorf("Defaults().%s = %v, want %v", s.Name, got, s.Default)
		}
	}
}

func TestFromMapFillsDefaults(t *testing.T) {
	v := FromMap(map[string]float64{
		"Brightness": 0.2,
		"red":        1.5,
		"sharpness":  4,
	})
	if v.Brightness != 0.2 {
		t.Errorf("Brightness = %v, want 0.2", v.Brightness)
	}
	if v.Red != 1.5 {
		t.Errorf("Red = %v, want 1.5", v.Red)
	}
	if v.Contrast != 1 || v.Hue != 0 {
		t.Errorf("missing keys not defaulted: %+v", v)
	}

	m := v.ToMap()
	if len(m) != len(Specs) {
		t.Errorf("len(ToMap()) = %d, want %d", len(m), len(Specs))
	}
	if FromMap(m) != v {
		t.Error("FromMap(ToMap()) changed values")
	}
}

func TestClamp(t *testing.T) {
	v := Defaults().With(Brightness, -4).With(Hue, 400).With(Gamma, 0)
	c := v.Clamp()
	if c.Brightness != -1 {
		t.Errorf("Brightness = %v, want -1", c.Brightness)
	}
	if c.Hue != 180 {
		t.Errorf("Hue = %v, want 180", c.Hue)
	}
	if c.Gamma != 0.1 {
		t.Errorf("Gamma = %v, want 0.1", c.Gamma)
	}
	if v.Brightness != -4 {
		t.Error("Clamp() mutated receiver")
	}
}

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		check   func(CustomValues) bool
		wantErr error
	}{
		{
			name:  "two values",
			pairs: []string{"contrast=1.3", " hue = -20 "},
			check: func(v CustomValues) bool { return v.Contrast == 1.3 && v.Hue == -20 },
		},
		{
			name:    "missing equals",
			pairs:   []string{"contrast"},
			wantErr: ErrInvalidAssignment,
		},
		{
			name:    "unknown param",
			pairs:   []string{"sharpness=2"},
			wantErr: ErrUnknownParam,
		},
		{
			name:    "not a number",
			pairs:   []string{"gamma=abc"},
			wantErr: ErrInvalidAssignment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAssignments(Defaults(), tt.pairs)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseAssignments() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAssignments() error = %v", err)
			}
			if !tt.check(got) {
				t.Errorf("ParseAssignments() = %+v", got)
			}
		})
	}
}
