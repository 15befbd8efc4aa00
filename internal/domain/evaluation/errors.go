package evaluation

import "errors"

// Sentinel kinds for evaluation errors.
var (
	// ErrMissingExpiryDate marks a record whose freshness cannot be
	// assessed because it carries no expiry date.
	ErrMissingExpiryDate = errors.New("freshness_expiry_date missing")
)
