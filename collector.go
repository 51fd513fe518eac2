package docskill

import "context"

// ProgressEvent reports crawl progress. Purely observational: it never
// influences control flow.
type ProgressEvent struct {
	// URL most recently processed.
	URL string

	// Pages collected so far.
	Pages int

	// Queued is the current frontier depth. Always zero for collectors
	// without a frontier.
	Queued int

	// Err is set when processing the URL failed and the page was skipped.
	Err error
}

// ProgressFunc is called as pages are processed.
type ProgressFunc func(ProgressEvent)

// Collector gathers pages from an external source. The web crawler and
// the GitHub collector both implement it; both feed the same bundle
// writer.
type Collector interface {
	// Collect fetches pages until the source is exhausted or a
	// configured cap is reached. Per-page failures are skipped and
	// reported via progress; only unrecoverable setup errors fail the
	// collection as a whole.
	Collect(ctx context.Context, progress ProgressFunc) ([]*Page, error)
}
