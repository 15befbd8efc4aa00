package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrEmptyUpdate = errors.New("update body must set at least one field")
)
