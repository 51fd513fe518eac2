package main

import (
	"fmt"

	"github.com/mjarosz/docskill"
	dochttp "github.com/mjarosz/docskill/http"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	cfg := &docskill.CrawlConfig{
		Name:            "preview",
		URL:             c.URL,
		IncludePatterns: c.Include,
		ExcludePatterns: c.Exclude,
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docskill.ErrorMessage(err))
		return err
	}
	policy, err := docskill.NewURLPolicy(cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docskill.ErrorMessage(err))
		return err
	}

	urls, err := dochttp.NewDiscoverer(nil).DiscoverURLs(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docskill.ErrorMessage(err))
		return err
	}

	matched := 0
	for _, u := range urls {
		if !policy.Allow(u) {
			continue
		}
		fmt.Fprintln(deps.Stdout, u)
		matched++
	}
	fmt.Fprintf(deps.Stdout, "\n%d URLs discovered\n", matched)
	return nil
}
