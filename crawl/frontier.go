package crawl

import (
	"sync"

	"github.com/mjarosz/docskill"
)

// Compile-time interface verification.
var _ docskill.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO URL frontier with exact deduplication.
// URLs are marked seen at enqueue time, so a URL enters the queue at most
// once and is fetched at most once. It is safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	queue []string
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{seen: make(map[string]struct{})}
}

// Push adds a URL to the tail of the frontier.
// URLs are canonicalized first, so URLs differing only by fragment or
// trailing slash are duplicates. Returns false if already seen.
func (f *Frontier) Push(rawURL string) bool {
	url := docskill.NormalizeURL(rawURL)

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.seen[url]; ok {
		return false
	}
	f.seen[url] = struct{}{}
	f.queue = append(f.queue, url)
	return true
}

// Pop returns the next URL in FIFO order, giving breadth-first crawls.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been queued at any point.
// The URL is canonicalized before checking.
func (f *Frontier) Seen(rawURL string) bool {
	url := docskill.NormalizeURL(rawURL)

	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.seen[url]
	return ok
}
