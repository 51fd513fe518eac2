package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mjarosz/docskill"
	"github.com/mjarosz/docskill/crawl"
	"github.com/mjarosz/docskill/fs"
	"github.com/mjarosz/docskill/goquery"
	dochttp "github.com/mjarosz/docskill/http"
	docslog "github.com/mjarosz/docskill/slog"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cfg, err := c.config()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docskill.ErrorMessage(err))
		return err
	}

	fetcher := docslog.NewLoggingFetcher(
		dochttp.NewFetcher(dochttp.WithUserAgent(cfg.UserAgent)),
		deps.Logger,
	)
	defer fetcher.Close()

	crawler := &crawl.Crawler{
		Config:    cfg,
		Fetcher:   fetcher,
		Extractor: goquery.NewExtractor(cfg.ContentSelectors, docskill.MaxCodeBlocksPerPage),
		Limiter:   crawl.NewDomainLimiter(cfg.RateLimit),
		Logger:    deps.Logger,
	}

	fmt.Fprintf(deps.Stdout, "Crawling %s (max %d pages)\n", cfg.URL, cfg.MaxPages)

	pages, err := crawler.Collect(deps.Ctx, func(event docskill.ProgressEvent) {
		if event.Err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Err)
			return
		}
		fmt.Fprintf(deps.Stdout, "Scraping: %s\n", event.URL)
		if event.Pages%10 == 0 {
			fmt.Fprintf(deps.Stdout, "  %d pages collected, %d queued\n", event.Pages, event.Queued)
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %s\n", docskill.ErrorMessage(err))
		return err
	}

	bundle := &docskill.Bundle{Name: cfg.Name, BaseURL: cfg.URL, Pages: pages}
	outDir := filepath.Join(c.Output, cfg.Name)
	if err := fs.NewBundleWriter(outDir).WriteBundle(deps.Ctx, bundle); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing bundle: %s\n", docskill.ErrorMessage(err))
		return err
	}

	printBundleReport(deps.Stdout, bundle, outDir)
	return nil
}

// config builds the crawl configuration from either the config file or
// the positional arguments plus flags.
func (c *CrawlCmd) config() (*docskill.CrawlConfig, error) {
	if c.Config != "" {
		data, err := os.ReadFile(c.Config)
		if err != nil {
			return nil, docskill.Errorf(docskill.EINVALID, "cannot read config file: %v", err)
		}
		return docskill.ParseConfig(data)
	}

	if c.Name == "" || c.URL == "" {
		return nil, docskill.Errorf(docskill.EINVALID, "NAME and URL are required unless --config is given")
	}

	cfg := &docskill.CrawlConfig{
		Name:             c.Name,
		URL:              c.URL,
		MaxPages:         c.MaxPages,
		RateLimit:        time.Duration(c.RateLimit * float64(time.Second)),
		ContentSelectors: c.Selector,
		IncludePatterns:  c.Include,
		ExcludePatterns:  c.Exclude,
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printBundleReport prints the closing per-category summary.
func printBundleReport(w io.Writer, bundle *docskill.Bundle, outDir string) {
	fmt.Fprintf(w, "\nSaved %d pages to %s\n", len(bundle.Pages), outDir)
	order, groups := docskill.GroupByCategory(bundle.Pages)
	for _, category := range order {
		fmt.Fprintf(w, "  %s: %d pages\n", category, len(groups[category]))
	}
}
