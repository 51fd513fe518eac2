package docskill

import "context"

// URLFrontier manages a crawl queue with deduplication. URLs are marked
// seen when pushed, so a URL enters the queue at most once.
type URLFrontier interface {
	// Push adds a URL to the tail of the frontier.
	// Returns false if the URL has already been seen.
	Push(rawURL string) bool

	// Pop returns the next URL in FIFO order.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of URLs waiting in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(rawURL string) bool
}

// RateLimiter provides per-domain rate limiting.
type RateLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
