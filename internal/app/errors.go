package service

import "errors"

// Sentinel kinds for service errors. Store absence and backend failures
// keep their repository sentinels; this package only adds the validation
// kind for input or stored data that cannot be evaluated.
var (
	ErrValidation = errors.New("validation failed")
)
