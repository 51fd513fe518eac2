package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mjarosz/docskill"
	"github.com/mjarosz/docskill/fs"
	"github.com/mjarosz/docskill/github"
)

// Run executes the github command.
func (c *GithubCmd) Run(deps *Dependencies) error {
	name := c.Name
	if name == "" {
		if idx := strings.Index(c.Repo, "/"); idx != -1 {
			name = c.Repo[idx+1:]
		} else {
			name = c.Repo
		}
	}

	collector := &github.Collector{
		Repo:     c.Repo,
		Token:    c.Token,
		MaxFiles: c.MaxFiles,
		BaseURL:  c.APIURL,
		Logger:   deps.Logger,
	}

	fmt.Fprintf(deps.Stdout, "Collecting %s (max %d files)\n", c.Repo, c.MaxFiles)

	pages, err := collector.Collect(deps.Ctx, func(event docskill.ProgressEvent) {
		if event.Err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Err)
			return
		}
		fmt.Fprintf(deps.Stdout, "Fetched: %s\n", event.URL)
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error collecting: %s\n", docskill.ErrorMessage(err))
		return err
	}

	bundle := &docskill.Bundle{
		Name:    name,
		BaseURL: "https://github.com/" + c.Repo,
		Pages:   pages,
	}
	outDir := filepath.Join(c.Output, name)
	if err := fs.NewBundleWriter(outDir).WriteBundle(deps.Ctx, bundle); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing bundle: %s\n", docskill.ErrorMessage(err))
		return err
	}

	printBundleReport(deps.Stdout, bundle, outDir)
	return nil
}
