package test

import "context"

// HealthCheckerStub reports the configured error.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns Err.
func (s *HealthCheckerStub) HealthCheck(ctx context.Context) error {
	return s.Err
}
