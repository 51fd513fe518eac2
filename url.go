package docskill

import (
	"net/url"
	"regexp"
	"strings"
)

// NormalizeURL returns the canonical form of a URL: the fragment and any
// trailing slash are removed. Two URLs differing only by fragment or
// trailing slash are the same page. Nothing else is touched: case, query
// strings, and dot segments are preserved as distinct URLs.
func NormalizeURL(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		rawURL = rawURL[:idx]
	}
	return strings.TrimRight(rawURL, "/")
}

// URLPolicy decides which URLs belong to a crawl. It binds the seed host
// together with the configured include/exclude patterns.
type URLPolicy struct {
	host    string
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// NewURLPolicy builds a URLPolicy from a crawl configuration.
// Returns EINVALID if the seed URL or any pattern is malformed.
func NewURLPolicy(cfg *CrawlConfig) (*URLPolicy, error) {
	seed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid seed URL %q: %v", cfg.URL, err)
	}
	if seed.Host == "" {
		return nil, Errorf(EINVALID, "seed URL must be absolute, got %q", cfg.URL)
	}

	p := &URLPolicy{host: seed.Host}
	for _, pattern := range cfg.IncludePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid include pattern %q: %v", pattern, err)
		}
		p.include = append(p.include, re)
	}
	for _, pattern := range cfg.ExcludePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclude pattern %q: %v", pattern, err)
		}
		p.exclude = append(p.exclude, re)
	}
	return p, nil
}

// Allow reports whether a URL should be crawled. Only http(s) URLs on the
// seed host pass; the host comparison is exact, so subdomains are treated
// as different hosts. Exclude patterns are checked before include patterns
// and short-circuit. When include patterns are configured, a URL must
// match at least one of them.
func (p *URLPolicy) Allow(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host != p.host {
		return false
	}

	for _, re := range p.exclude {
		if re.MatchString(rawURL) {
			return false
		}
	}

	if len(p.include) > 0 {
		for _, re := range p.include {
			if re.MatchString(rawURL) {
				return true
			}
		}
		return false
	}

	return true
}
