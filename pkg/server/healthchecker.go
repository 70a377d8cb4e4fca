package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// OkHealthChecker is used when the service has no backing store to check.
type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return ctx.Err() == nil
}

// HealthCheckers is healthy only when every checker is.
type HealthCheckers []HealthChecker

func (hcs HealthCheckers) Healthy(ctx context.Context) bool {
	for _, hc := range hcs {
		if !hc.Healthy(ctx) {
			return false
		}
	}
	return true
}
