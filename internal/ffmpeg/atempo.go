package ffmpeg

import (
	"fmt"
	"strings"
)

// atempo accepts a factor in [AtempoMin, AtempoMax] per filter instance.
const (
	AtempoMin = 0.5
	AtempoMax = 2.0
)

// tempoPlan is a speed split into boundary steps plus one leftover factor.
type tempoPlan struct {
	single    bool
	bounds    []float64
	remainder float64
}

func planTempo(speed float64) (tempoPlan, bool) {
	if speed == 1 || speed <= 0 {
		return tempoPlan{}, false
	}
	if speed >= AtempoMin && speed <= AtempoMax {
		return tempoPlan{single: true, remainder: speed}, true
	}

	var p tempoPlan
	remaining := speed
	for remaining > AtempoMax {
		p.bounds = append(p.bounds, AtempoMax)
		remaining /= AtempoMax
	}
	for remaining < AtempoMin {
		p.bounds = append(p.bounds, AtempoMin)
		remaining /= AtempoMin
	}
	p.remainder = remaining
	return p, true
}

// AtempoSteps decomposes a playback speed into atempo factors, each within
// the range a single atempo instance accepts.
func AtempoSteps(speed float64) []float64 {
	p, ok := planTempo(speed)
	if !ok {
		return nil
	}
	if p.single {
		return []float64{p.remainder}
	}
	steps := append([]float64(nil), p.bounds...)
	if p.remainder != 1 {
		steps = append(steps, p.remainder)
	}
	return steps
}

// AtempoChain renders the audio tempo filter chain for speed. It returns ""
// when no tempo change is needed.
func AtempoChain(speed float64) string {
	p, ok := planTempo(speed)
	if !ok {
		return ""
	}
	if p.single {
		return "atempo=" + formatFloat(p.remainder)
	}

	parts := make([]string, 0, len(p.bounds)+1)
	for _, b := range p.bounds {
		parts = append(parts, fmt.Sprintf("atempo=%.1f", b))
	}
	if p.remainder != 1 {
		parts = append(parts, fmt.Sprintf("atempo=%.2f", p.remainder))
	}
	return strings.Join(parts, ",")
}
