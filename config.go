package docskill

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"time"
)

// Crawl defaults, shared by the CLI and configuration loading.
const (
	// DefaultMaxPages bounds a crawl when no limit is configured.
	DefaultMaxPages = 500

	// DefaultRateLimit is the pause between successive page fetches.
	DefaultRateLimit = 500 * time.Millisecond

	// DefaultUserAgent identifies the crawler to documentation sites.
	DefaultUserAgent = "Mozilla/5.0 (compatible; docskill/1.0; +https://github.com/mjarosz/docskill)"

	// MaxCodeBlocksPerPage caps how many code samples are kept per page.
	MaxCodeBlocksPerPage = 5
)

// DefaultContentSelectors are tried in order when no selectors are
// configured. They cover the common documentation site layouts.
var DefaultContentSelectors = []string{
	"article",
	"main",
	".content",
	".documentation",
	".markdown-body",
	"#content",
}

// Category pairs a label with the keywords that score pages into it.
// Category order is significant: earlier categories win score ties.
type Category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// DefaultCategories returns the category set used when none is configured.
func DefaultCategories() []Category {
	return []Category{
		{Name: "guides", Keywords: []string{"guide", "tutorial", "getting started"}},
		{Name: "api", Keywords: []string{"api", "reference", "method", "function"}},
		{Name: "examples", Keywords: []string{"example", "demo", "sample"}},
	}
}

// CategoryList is an ordered list of categories that decodes from either a
// JSON array of {name, keywords} objects or a JSON object mapping names to
// keyword arrays. Object keys are decoded in declaration order so that
// score tie-breaking stays deterministic.
type CategoryList []Category

// UnmarshalJSON implements json.Unmarshaler.
func (l *CategoryList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*l = nil
		return nil
	}

	if trimmed[0] == '[' {
		var cats []Category
		if err := json.Unmarshal(trimmed, &cats); err != nil {
			return err
		}
		*l = cats
		return nil
	}

	// Object form: walk tokens so that key order is preserved.
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categories: expected object or array, got %v", tok)
	}

	var cats []Category
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("categories: expected string key, got %v", keyTok)
		}

		var keywords []string
		if err := dec.Decode(&keywords); err != nil {
			return fmt.Errorf("categories: keywords for %q: %w", name, err)
		}
		cats = append(cats, Category{Name: name, Keywords: keywords})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = cats
	return nil
}

// CrawlConfig describes a single crawl: where to start, how far to go,
// and how to extract and categorize what it finds. It is immutable once
// the crawl starts.
type CrawlConfig struct {
	// Name of the skill. Used for the output directory and bundle metadata.
	Name string

	// URL is the absolute seed URL. Its host scopes the crawl.
	URL string

	// MaxPages bounds the number of pages collected.
	MaxPages int

	// RateLimit is the pause enforced after each processed URL.
	RateLimit time.Duration

	// ContentSelectors are CSS selectors tried in priority order when
	// extracting page content.
	ContentSelectors []string

	// Categories score pages into output groups. Order breaks ties.
	Categories []Category

	// IncludePatterns, when non-empty, restrict the crawl to URLs
	// matching at least one pattern.
	IncludePatterns []string

	// ExcludePatterns reject matching URLs. Checked before includes.
	ExcludePatterns []string

	// UserAgent sent with every page request.
	UserAgent string
}

// ApplyDefaults fills zero-valued fields with crawl defaults.
// A negative RateLimit is treated as zero (no delay).
func (c *CrawlConfig) ApplyDefaults() {
	if c.MaxPages == 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.RateLimit < 0 {
		c.RateLimit = 0
	}
	if len(c.ContentSelectors) == 0 {
		c.ContentSelectors = DefaultContentSelectors
	}
	if len(c.Categories) == 0 {
		c.Categories = DefaultCategories()
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
}

// Validate returns an EINVALID error if the configuration cannot start a
// crawl. Surfaced before the crawl loop so that misconfiguration never
// fails mid-crawl.
func (c *CrawlConfig) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "skill name required")
	}
	if c.URL == "" {
		return Errorf(EINVALID, "seed URL required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return Errorf(EINVALID, "invalid seed URL %q: %v", c.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "seed URL must be http or https, got %q", c.URL)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "seed URL must be absolute, got %q", c.URL)
	}
	if c.MaxPages <= 0 {
		return Errorf(EINVALID, "max pages must be positive, got %d", c.MaxPages)
	}
	for _, pattern := range c.IncludePatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return Errorf(EINVALID, "invalid include pattern %q: %v", pattern, err)
		}
	}
	for _, pattern := range c.ExcludePatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return Errorf(EINVALID, "invalid exclude pattern %q: %v", pattern, err)
		}
	}
	return nil
}

// fileConfig is the JSON representation of a CrawlConfig. The rate limit
// is expressed in seconds to keep config files readable.
type fileConfig struct {
	Name             string       `json:"name"`
	URL              string       `json:"url"`
	MaxPages         int          `json:"max_pages"`
	RateLimit        *float64     `json:"rate_limit"`
	ContentSelectors []string     `json:"content_selectors"`
	Categories       CategoryList `json:"categories"`
	IncludePatterns  []string     `json:"include_patterns"`
	ExcludePatterns  []string     `json:"exclude_patterns"`
	UserAgent        string       `json:"user_agent"`
}

// ParseConfig decodes a CrawlConfig from JSON and applies defaults.
// The result is validated; decoding or validation failures are EINVALID.
func ParseConfig(data []byte) (*CrawlConfig, error) {
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, Errorf(EINVALID, "invalid config JSON: %v", err)
	}

	cfg := &CrawlConfig{
		Name:             fc.Name,
		URL:              fc.URL,
		MaxPages:         fc.MaxPages,
		ContentSelectors: fc.ContentSelectors,
		Categories:       fc.Categories,
		IncludePatterns:  fc.IncludePatterns,
		ExcludePatterns:  fc.ExcludePatterns,
		UserAgent:        fc.UserAgent,
	}
	if fc.RateLimit != nil {
		cfg.RateLimit = time.Duration(*fc.RateLimit * float64(time.Second))
	} else {
		cfg.RateLimit = DefaultRateLimit
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
