package docskill

import "context"

// URLDiscoverer lists the URLs a site advertises, without fetching the
// pages themselves. Used to preview what a crawl would cover.
type URLDiscoverer interface {
	// DiscoverURLs finds URLs advertised by the site's sitemap.
	// Returns an empty slice when the site has no sitemap.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
