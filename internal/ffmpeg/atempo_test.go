package ffmpeg

import (
	"reflect"
	"testing"
)

func TestAtempoSteps(t *testing.T) {
	tests := []struct {
		speed float64
		want  []float64
	}{
		{1, nil},
		{0, nil},
		{-2, nil},
		{1.2, []float64{1.2}},
		{0.5, []float64{0.5}},
		{2, []float64{2}},
		{3, []float64{2, 1.5}},
		{5, []float64{2, 2, 1.25}},
		{0.25, []float64{0.5, 0.5}},
	}

	for _, tt := range tests {
		got := AtempoSteps(tt.speed)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("AtempoSteps(%v) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestAtempoStepsStayInRange(t *testing.T) {
	for _, speed := range []float64{0.1, 0.3, 2.5, 4.4, 7, 16} {
		for _, s := range AtempoSteps(speed) {
			if s < AtempoMin || s > AtempoMax {
				t.Errorf("AtempoSteps(%v) produced out-of-range step %v", speed, s)
			}
		}
	}
}

func TestAtempoChain(t *testing.T) {
	tests := []struct {
		speed float64
		want  string
	}{
		{1, ""},
		{1.2, "atempo=1.2"},
		{0.75, "atempo=0.75"},
		{3, "atempo=2.0,atempo=1.50"},
		{5, "atempo=2.0,atempo=2.0,atempo=1.25"},
		{0.2, "atempo=0.5,atempo=0.5,atempo=0.80"},
		{0.25, "atempo=0.5,atempo=0.50"},
	}

	for _, tt := range tests {
		if got := AtempoChain(tt.speed); got != tt.want {
			t.Errorf("AtempoChain(%v) = %q, want %q", tt.speed, got, tt.want)
		}
	}
}
