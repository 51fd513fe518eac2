package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/mjarosz/docskill/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_first_request_is_immediate(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, limiter.Wait(ctx, "example.com"), "first request should not wait")
}

func TestDomainLimiter_spaces_requests_within_a_domain(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "example.com"))
	require.NoError(t, limiter.Wait(ctx, "example.com"))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond, "second request should be delayed by the interval")
}

func TestDomainLimiter_domains_are_independent(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, limiter.Wait(ctx, "a.example.com"))
	require.NoError(t, limiter.Wait(ctx, "b.example.com"), "different domain should not be delayed")
}

func TestDomainLimiter_zero_interval_disables_waiting(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, limiter.Wait(ctx, "example.com"))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestDomainLimiter_respects_context_cancellation(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.NoError(t, limiter.Wait(ctx, "example.com"))
	err := limiter.Wait(ctx, "example.com")
	assert.Error(t, err, "waiting past the context deadline should fail")
}
