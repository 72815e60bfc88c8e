package reports

import "errors"

// Error taxonomy for report generation. Handlers map these to HTTP statuses;
// anything not matching one of the sentinels is treated as internal.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrComputationFailed = errors.New("computation failed")
)
