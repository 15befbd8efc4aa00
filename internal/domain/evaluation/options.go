package evaluation

import "time"

// Option applies a configuration option to an evaluator or suite.
type Option func(*settings)

// WithRequiredCertifications replaces the required certification set.
// Order is preserved and determines reason/alert order.
func WithRequiredCertifications(certs []string) Option {
	return func(s *settings) {
		if len(certs) > 0 {
			s.required = append([]string(nil), certs...)
		}
	}
}

// WithNearExpiryWindow sets the horizon for near-expiry alerts.
func WithNearExpiryWindow(window time.Duration) Option {
	return func(s *settings) {
		if window > 0 {
			s.nearExpiryWindow = window
		}
	}
}
