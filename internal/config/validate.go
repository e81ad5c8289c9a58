package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoder(); err != nil {
		return err
	}
	if err := c.validateProcessing(); err != nil {
		return err
	}
	if err := c.validateFilters(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEncoder() error {
	if c.Encoder.CRF < 0 || c.Encoder.CRF > MaxCRF {
		return fmt.Errorf("%w: encoder.crf must be 0-%d, got %d", ErrInvalidCRF, MaxCRF, c.Encoder.CRF)
	}
	return nil
}

func (c *Config) validateProcessing() error {
	if err := ValidateSpeed(c.Processing.Speed); err != nil {
		return fmt.Errorf("processing.speed: %w", err)
	}
	if err := ValidateZoom(c.Processing.Zoom); err != nil {
		return fmt.Errorf("processing.zoom: %w", err)
	}
	if c.Processing.PreviewTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: processing.preview_timeout_seconds", ErrInvalidTimeout)
	}
	if c.Processing.FrameTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: processing.frame_timeout_seconds", ErrInvalidTimeout)
	}
	return nil
}

func (c *Config) validateFilters() error {
	for i, f := range c.Filters {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("%w: filters[%d] has no name", ErrInvalidFilterEntry, i)
		}
	}
	catalog, err := c.Catalog()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilterEntry, err)
	}
	if c.Processing.Filter == "custom" {
		return nil
	}
	if _, ok := catalog.Lookup(c.Processing.Filter); !ok {
		return fmt.Errorf("%w: processing.filter %q", ErrUnknownFilter, c.Processing.Filter)
	}
	return nil
}

func (c *Config) validateDownload() error {
	timeouts := map[string]int{
		"download.primary_timeout_seconds":  c.Download.PrimaryTimeoutSeconds,
		"download.fallback_timeout_seconds": c.Download.FallbackTimeoutSeconds,
		"download.stream_timeout_seconds":   c.Download.StreamTimeoutSeconds,
	}
	for key, v := range timeouts {
		if v <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidTimeout, key)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: text, json)", ErrInvalidLogFormat, c.Logging.Format)
	}
}

// ValidateSpeed checks a playback factor against the hard bounds.
func ValidateSpeed(speed float64) error {
	if speed <= 0 || speed > MaxSpeed {
		return fmt.Errorf("%w: must be in (0, %g], got %g", ErrInvalidSpeed, MaxSpeed, speed)
	}
	return nil
}

// ValidateZoom checks a zoom factor against the hard bounds.
func ValidateZoom(zoom float64) error {
	if zoom <= 0 || zoom > MaxZoom {
		return fmt.Errorf("%w: must be in (0, %g], got %g", ErrInvalidZoom, MaxZoom, zoom)
	}
	return nil
}
