package limiter

import (
	"context"

	"github.com/erjac77/f5-reconciler/internal/core/ports"
	"golang.org/x/time/rate"
)

const (
	defaultRPS = 20
	minRPS     = 1
	maxRPS     = 100
)

// Limiter throttles management-API calls per client. iControl REST devices
// share the control plane with the traffic plane, so unbounded request
// bursts can degrade the device itself.
type Limiter struct {
	limiter *rate.Limiter
}

func New(rps int, logger ports.Logger) *Limiter {
	value := defaultRPS
	if rps >= minRPS && rps <= maxRPS {
		value = rps
	} else if rps != 0 {
		logger.Warnf(context.Background(), "Invalid API RPS configured (%d), using default %d RPS. Valid range: %d-%d.", rps, defaultRPS, minRPS, maxRPS)
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(value), value)}
}

func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
