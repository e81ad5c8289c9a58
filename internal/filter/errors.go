package filter

import "errors"

// Sentinel errors for filter selection and parameter parsing.
var (
	// ErrUnknownFilter indicates a filter name that is not in the catalog.
	ErrUnknownFilter = errors.New("unknown filter")

	// ErrUnknownParam indicates a custom parameter name that does not exist.
	ErrUnknownParam = errors.New("unknown custom parameter")

	// ErrInvalidAssignment indicates a malformed name=value pair.
	ErrInvalidAssignment = errors.New("invalid parameter assignment")

	// ErrReservedName indicates an attempt to define a preset named "custom".
	ErrReservedName = errors.New("filter name is reserved")
)
