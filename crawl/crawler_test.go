package crawl_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/mjarosz/docskill"
	"github.com/mjarosz/docskill/crawl"
	"github.com/mjarosz/docskill/goquery"
	"github.com/mjarosz/docskill/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCrawler builds a crawler over an in-memory site. Unknown URLs
// return a fetch error, like a 404 would.
func newTestCrawler(cfg *docskill.CrawlConfig, site map[string]string, fetched *[]string) *crawl.Crawler {
	return &crawl.Crawler{
		Config: cfg,
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if fetched != nil {
					*fetched = append(*fetched, url)
				}
				html, ok := site[url]
				if !ok {
					return "", fmt.Errorf("HTTP 404 for %s", url)
				}
				return html, nil
			},
		},
		Extractor: goquery.NewExtractor(nil, docskill.MaxCodeBlocksPerPage),
		Limiter:   &mock.RateLimiter{},
	}
}

func page(title string, links ...string) string {
	html := "<html><head><title>" + title + "</title></head><body><main>Content for " + title + "</main>"
	for _, link := range links {
		html += `<a href="` + link + `">link</a>`
	}
	return html + "</body></html>"
}

func TestCrawler_Collect_breadth_first(t *testing.T) {
	t.Parallel()

	site := map[string]string{
		"https://docs.example.com":        page("Home", "/a", "/b"),
		"https://docs.example.com/a":      page("A", "/a/deep"),
		"https://docs.example.com/b":      page("B"),
		"https://docs.example.com/a/deep": page("Deep"),
	}

	var fetched []string
	c := newTestCrawler(&docskill.CrawlConfig{
		Name: "test", URL: "https://docs.example.com/", MaxPages: 10,
	}, site, &fetched)

	pages, err := c.Collect(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, pages, 4)
	// Siblings before grandchildren: FIFO frontier gives breadth-first order.
	assert.Equal(t, []string{
		"https://docs.example.com",
		"https://docs.example.com/a",
		"https://docs.example.com/b",
		"https://docs.example.com/a/deep",
	}, fetched)
}

func TestCrawler_Collect_stops_at_page_cap(t *testing.T) {
	t.Parallel()

	// Every page links to two fresh pages, so the reachable graph is
	// effectively unbounded.
	site := make(map[string]string)
	var build func(path string, depth int)
	build = func(path string, depth int) {
		if depth > 6 {
			site["https://h"+path] = page(path)
			return
		}
		site["https://h"+path] = page(path, path+"/l", path+"/r")
		build(path+"/l", depth+1)
		build(path+"/r", depth+1)
	}
	build("/start", 0)

	c := newTestCrawler(&docskill.CrawlConfig{
		Name: "test", URL: "https://h/start", MaxPages: 7,
	}, site, nil)

	pages, err := c.Collect(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, pages, 7, "crawl must terminate with exactly MaxPages results")
}

func TestCrawler_Collect_fetches_shared_links_once(t *testing.T) {
	t.Parallel()

	// /shared is linked from both /a and /b.
	site := map[string]string{
		"https://h":        page("Home", "/a", "/b"),
		"https://h/a":      page("A", "/shared"),
		"https://h/b":      page("B", "/shared"),
		"https://h/shared": page("Shared"),
	}

	var fetched []string
	c := newTestCrawler(&docskill.CrawlConfig{
		Name: "test", URL: "https://h", MaxPages: 10,
	}, site, &fetched)

	pages, err := c.Collect(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, pages, 4)

	count := 0
	for _, u := range fetched {
		if u == "https://h/shared" {
			count++
		}
	}
	assert.Equal(t, 1, count, "a page linked from two pages is fetched at most once")
}

func TestCrawler_Collect_skips_failed_pages(t *testing.T) {
	t.Parallel()

	// /broken is linked but does not exist; its own links are never
	// discovered and the crawl continues.
	site := map[string]string{
		"https://h":    page("Home", "/broken", "/ok"),
		"https://h/ok": page("OK"),
	}

	var events []docskill.ProgressEvent
	c := newTestCrawler(&docskill.CrawlConfig{
		Name: "test", URL: "https://h", MaxPages: 10,
	}, site, nil)

	pages, err := c.Collect(context.Background(), func(e docskill.ProgressEvent) {
		events = append(events, e)
	})
	require.NoError(t, err, "a single page failure is non-fatal")
	require.Len(t, pages, 2)
	assert.Equal(t, "https://h", pages[0].URL)
	assert.Equal(t, "https://h/ok", pages[1].URL)

	var failures int
	for _, e := range events {
		if e.Err != nil {
			failures++
			assert.Equal(t, "https://h/broken", e.URL)
		}
	}
	assert.Equal(t, 1, failures)
}

func TestCrawler_Collect_respects_url_policy(t *testing.T) {
	t.Parallel()

	site := map[string]string{
		"https://h":           page("Home", "/docs/a", "/private/x", "https://elsewhere.net/b"),
		"https://h/docs/a":    page("A"),
		"https://h/private/x": page("Secret"),
	}

	var fetched []string
	c := newTestCrawler(&docskill.CrawlConfig{
		Name: "test", URL: "https://h", MaxPages: 10,
		ExcludePatterns: []string{"/private/"},
	}, site, &fetched)

	pages, err := c.Collect(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, pages, 2)
	assert.NotContains(t, fetched, "https://h/private/x", "excluded URL must not be fetched")
	assert.NotContains(t, fetched, "https://elsewhere.net/b", "off-host URL must not be fetched")
}

func TestCrawler_Collect_categorizes_pages(t *testing.T) {
	t.Parallel()

	site := map[string]string{
		"https://h":           page("Home", "/api/users"),
		"https://h/api/users": page("Users endpoint"),
	}

	c := newTestCrawler(&docskill.CrawlConfig{
		Name: "test", URL: "https://h", MaxPages: 10,
		Categories: []docskill.Category{
			{Name: "api", Keywords: []string{"api"}},
			{Name: "guides", Keywords: []string{"guide"}},
		},
	}, site, nil)

	pages, err := c.Collect(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "general", pages[0].Category)
	assert.Equal(t, "api", pages[1].Category)
}

func TestCrawler_Collect_rejects_invalid_config_before_fetching(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(&docskill.CrawlConfig{
		Name: "", URL: "https://h", MaxPages: 10,
	}, nil, nil)

	_, err := c.Collect(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, docskill.EINVALID, docskill.ErrorCode(err))
}

func TestCrawler_Collect_honors_context_cancellation(t *testing.T) {
	t.Parallel()

	site := map[string]string{
		"https://h": page("Home", "/a"),
	}
	c := newTestCrawler(&docskill.CrawlConfig{
		Name: "test", URL: "https://h", MaxPages: 10,
	}, site, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Collect(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCrawler_Collect_waits_between_pages(t *testing.T) {
	t.Parallel()

	site := map[string]string{
		"https://h":   page("Home", "/a", "/missing"),
		"https://h/a": page("A"),
	}

	var waits int
	c := newTestCrawler(&docskill.CrawlConfig{
		Name: "test", URL: "https://h", MaxPages: 10,
	}, site, nil)
	c.Limiter = &mock.RateLimiter{
		WaitFn: func(_ context.Context, domain string) error {
			assert.Equal(t, "h", domain)
			waits++
			return nil
		},
	}

	_, err := c.Collect(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, waits, "rate limit applies after every processed URL, success or failure")
}
