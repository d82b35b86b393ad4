package query

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrNoData is returned by Summarize when the scope has no plans.
	ErrNoData       = errors.New("no data for scope")
	ErrInvalidQuery = errors.New("invalid query")
)
