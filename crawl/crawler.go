// Package crawl implements the breadth-first documentation crawler: a
// FIFO frontier with deduplication, a per-domain rate limiter, and the
// loop that turns fetched pages into page records.
package crawl

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/mjarosz/docskill"
)

// progressInterval controls how often queue-depth progress is reported,
// in collected pages.
const progressInterval = 10

// Compile-time interface verification.
var _ docskill.Collector = (*Crawler)(nil)

// Crawler walks a documentation site breadth-first from the configured
// seed URL and produces one page record per successfully fetched page.
// One page is fully fetched, extracted, and categorized before the next
// is dequeued; the rate limiter is the only other suspension point.
type Crawler struct {
	Config    *docskill.CrawlConfig
	Fetcher   docskill.Fetcher
	Extractor docskill.Extractor
	Limiter   docskill.RateLimiter
	Logger    *slog.Logger
}

// Collect crawls until the frontier is exhausted or the configured page
// cap is reached. Per-page fetch and extraction failures are logged,
// reported via progress, and skipped; their outbound links are never
// discovered. Only configuration errors and context cancellation fail
// the crawl as a whole.
func (c *Crawler) Collect(ctx context.Context, progress docskill.ProgressFunc) ([]*docskill.Page, error) {
	if err := c.Config.Validate(); err != nil {
		return nil, err
	}
	policy, err := docskill.NewURLPolicy(c.Config)
	if err != nil {
		return nil, err
	}
	seed, err := url.Parse(c.Config.URL)
	if err != nil {
		return nil, docskill.Errorf(docskill.EINVALID, "invalid seed URL %q: %v", c.Config.URL, err)
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	frontier := NewFrontier()
	frontier.Push(c.Config.URL)

	var pages []*docskill.Page
	for frontier.Len() > 0 && len(pages) < c.Config.MaxPages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageURL, ok := frontier.Pop()
		if !ok {
			break
		}

		page, err := c.processPage(ctx, pageURL, policy, frontier)
		if err != nil {
			logger.Warn("page skipped", "url", pageURL, "error", err)
		} else {
			pages = append(pages, page)
			for _, link := range page.Links {
				frontier.Push(link)
			}
		}

		if progress != nil {
			progress(docskill.ProgressEvent{
				URL:    pageURL,
				Pages:  len(pages),
				Queued: frontier.Len(),
				Err:    err,
			})
		}
		if err == nil && len(pages)%progressInterval == 0 {
			logger.Info("crawl progress", "pages", len(pages), "queued", frontier.Len())
		}

		// Applies after every processed URL, success or failure.
		if err := c.Limiter.Wait(ctx, seed.Host); err != nil {
			return nil, err
		}
	}

	logger.Info("crawl complete", "pages", len(pages))
	return pages, nil
}

// processPage fetches one URL and builds its page record. The links kept
// on the record are canonical, in-scope, and not yet seen by the
// frontier at extraction time.
func (c *Crawler) processPage(ctx context.Context, pageURL string, policy *docskill.URLPolicy, frontier *Frontier) (*docskill.Page, error) {
	html, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	extraction, err := c.Extractor.Extract(pageURL, html)
	if err != nil {
		return nil, err
	}

	var links []string
	for _, link := range extraction.Links {
		if policy.Allow(link) && !frontier.Seen(link) {
			links = append(links, link)
		}
	}

	return &docskill.Page{
		URL:        pageURL,
		Title:      extraction.Title,
		Content:    extraction.Text,
		CodeBlocks: extraction.CodeBlocks,
		Category:   docskill.Categorize(pageURL, extraction.Title, extraction.Text, c.Config.Categories),
		Links:      links,
	}, nil
}
