package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"
)

// VideoFilterChain builds video filter chains.
type VideoFilterChain struct {
	filters []string
}

// NewVideoFilterChain creates a new empty filter chain.
func NewVideoFilterChain() *VideoFilterChain {
	return &VideoFilterChain{}
}

// AddSpeed retimes frames so playback runs speed times faster.
// Speed 1 (or any non-positive value) adds nothing.
func (c *VideoFilterChain) AddSpeed(speed float64) *VideoFilterChain {
	if speed == 1 || speed <= 0 {
		return c
	}
	c.filters = append(c.filters, fmt.Sprintf("setpts=%s*PTS", formatFloat(1/speed)))
	return c
}

// AddZoom adds a zoom stage. Zoom above 1 scales up and center-crops back to
// the source size; zoom below 1 only scales down.
func (c *VideoFilterChain) AddZoom(zoom float64) *VideoFilterChain {
	switch {
	case zoom > 1:
		z := formatFloat(zoom)
		c.filters = append(c.filters, fmt.Sprintf("scale=iw*%s:ih*%s,crop=iw/%s:ih/%s", z, z, z, z))
	case zoom > 0 && zoom < 1:
		z := formatFloat(zoom)
		c.filters = append(c.filters, fmt.Sprintf("scale=iw*%s:ih*%s", z, z))
	}
	return c
}

// AddFilter adds a custom filter to the chain.
func (c *VideoFilterChain) AddFilter(filter string) *VideoFilterChain {
	if filter != "" {
		c.filters = append(c.filters, filter)
	}
	return c
}

// Build builds the filter chain into a single filter string.
// Returns empty string if no filters are present.
func (c *VideoFilterChain) Build() string {
	if len(c.filters) == 0 {
		return ""
	}
	return strings.Join(c.filters, ",")
}

// IsEmpty returns true if no filters are present.
func (c *VideoFilterChain) IsEmpty() bool {
	return len(c.filters) == 0
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
