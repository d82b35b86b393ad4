package plan

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrUnknownValue  = errors.New("unknown enumeration value")
	ErrInvalidRecord = errors.New("invalid plan record")
)
