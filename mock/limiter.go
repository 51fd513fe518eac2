package mock

import (
	"context"

	"github.com/mjarosz/docskill"
)

var _ docskill.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of docskill.RateLimiter.
// A nil WaitFn never waits.
type RateLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *RateLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
