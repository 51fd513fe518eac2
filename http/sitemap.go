package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/mjarosz/docskill"
)

// Ensure Discoverer implements docskill.URLDiscoverer.
var _ docskill.URLDiscoverer = (*Discoverer)(nil)

// Discoverer lists site URLs from /sitemap.xml. Sitemap indexes are
// resolved recursively, with cycle protection.
type Discoverer struct {
	client *http.Client
}

// NewDiscoverer creates a Discoverer with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewDiscoverer(client *http.Client) *Discoverer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Discoverer{client: client}
}

// DiscoverURLs finds all URLs advertised by the site's sitemap.
// Returns an empty slice (not nil) when the site has no sitemap.
//
// When baseURL has a non-root path (e.g. https://example.com/docs/),
// only URLs under that path are returned.
func (d *Discoverer) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docskill.Errorf(docskill.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	pathPrefix := base.Path
	if pathPrefix == "/" {
		pathPrefix = ""
	}

	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()

	seen := make(map[string]bool)
	urls, err := d.readSitemap(ctx, sitemapURL, seen)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// No sitemap is not an error; the crawler can still discover
		// pages by following links.
		return []string{}, nil
	}

	result := []string{}
	seenURLs := make(map[string]bool)
	for _, u := range urls {
		if pathPrefix != "" && !underPath(u, pathPrefix) {
			continue
		}
		if !seenURLs[u] {
			seenURLs[u] = true
			result = append(result, u)
		}
	}
	return result, nil
}

// readSitemap fetches and parses one sitemap document, following
// sitemapindex entries recursively.
func (d *Discoverer) readSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := d.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		var all []string
		for _, sm := range root.SelectElements("sitemap") {
			loc := sm.SelectElement("loc")
			if loc == nil {
				continue
			}
			child := strings.TrimSpace(loc.Text())
			if child == "" {
				continue
			}
			urls, err := d.readSitemap(ctx, child, seen)
			if err != nil {
				return nil, err
			}
			all = append(all, urls...)
		}
		return all, nil
	}

	// urlset
	var urls []string
	for _, u := range root.SelectElements("url") {
		loc := u.SelectElement("loc")
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.Text()); text != "" {
			urls = append(urls, text)
		}
	}
	return urls, nil
}

func (d *Discoverer) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}

// underPath checks whether a URL's path sits under prefix, respecting
// path boundaries: /docs matches /docs/intro but not /documentation.
func underPath(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix) || parsed.Path == strings.TrimSuffix(prefix, "/")
}
