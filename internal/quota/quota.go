// Package quota gates answer synthesis behind a usage budget. Generation
// calls are the expensive path, so the gate sits in front of them and fails
// closed: if an allowance cannot be determined, the request is denied.
package quota

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

// ErrDenied indicates the request exceeded the usage budget. Callers report
// it as quota exhaustion, distinct from backend failures.
var ErrDenied = errors.New("usage quota exceeded")

// Gate decides whether a generation request may proceed.
type Gate interface {
	// Allow returns nil if the request may proceed, ErrDenied otherwise.
	Allow(ctx context.Context) error
}

// RateGate admits requests under a token-bucket budget.
type RateGate struct {
	limiter *rate.Limiter
}

// NewRateGate creates a gate admitting perMinute requests per minute with a
// burst of burst. Non-positive values deny everything.
func NewRateGate(perMinute float64, burst int) *RateGate {
	if perMinute <= 0 || burst <= 0 {
		return &RateGate{limiter: rate.NewLimiter(0, 0)}
	}
	return &RateGate{limiter: rate.NewLimiter(rate.Limit(perMinute/60.0), burst)}
}

// Allow consumes one token from the budget. A drained bucket denies
// immediately rather than queueing the caller.
func (g *RateGate) Allow(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return ErrDenied
	}
	if !g.limiter.Allow() {
		return ErrDenied
	}
	return nil
}

// Unlimited is a gate that admits everything. Used when no budget is
// configured.
type Unlimited struct{}

// Allow always returns nil.
func (Unlimited) Allow(ctx context.Context) error { return nil }

// DenyAll is a gate that denies everything. Used to disable answer
// synthesis outright.
type DenyAll struct{}

// Allow always returns ErrDenied.
func (DenyAll) Allow(ctx context.Context) error { return ErrDenied }
