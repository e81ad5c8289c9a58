package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidSpeed indicates a playback factor outside (0, 100].
	ErrInvalidSpeed = errors.New("speed out of range")

	// ErrInvalidZoom indicates a zoom factor outside (0, 10].
	ErrInvalidZoom = errors.New("zoom out of range")

	// ErrInvalidCRF indicates a CRF value outside the valid 0-51 range.
	ErrInvalidCRF = errors.New("CRF value out of range")

	// ErrInvalidTimeout indicates a non-positive timeout.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrUnknownFilter indicates the default filter is not in the catalog.
	ErrUnknownFilter = errors.New("unknown filter")

	// ErrInvalidFilterEntry indicates a malformed [[filters]] entry.
	ErrInvalidFilterEntry = errors.New("invalid filter entry")

	// ErrInvalidLogFormat indicates a logging format other than text or json.
	ErrInvalidLogFormat = errors.New("invalid log format")
)
