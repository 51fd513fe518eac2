package main

import (
	"context"
	"io"
	"log/slog"
)

// Dependencies holds shared state and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl a documentation site into a skill bundle"`
	Github  GithubCmd  `cmd:"" help:"Collect a GitHub repository into a skill bundle"`
	Preview PreviewCmd `cmd:"" help:"Show sitemap URLs without crawling"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Name      string   `arg:"" optional:"" help:"Skill name"`
	URL       string   `arg:"" optional:"" help:"Documentation seed URL"`
	Config    string   `short:"c" type:"path" help:"JSON config file (replaces NAME and URL)"`
	MaxPages  int      `default:"500" help:"Maximum pages to crawl"`
	RateLimit float64  `default:"0.5" help:"Seconds to wait between requests"`
	Selector  []string `short:"s" help:"Content CSS selector (repeatable, tried in order)"`
	Include   []string `short:"i" help:"Only crawl URLs matching regex (repeatable)"`
	Exclude   []string `short:"e" help:"Skip URLs matching regex (repeatable)"`
	Output    string   `short:"o" default:"output" help:"Output directory"`
}

// GithubCmd is the "github" subcommand.
type GithubCmd struct {
	Repo     string `arg:"" help:"Repository in owner/repo form"`
	Name     string `help:"Skill name (defaults to the repository name)"`
	Token    string `env:"GITHUB_TOKEN" help:"GitHub API token"`
	MaxFiles int    `default:"100" help:"Maximum source files to collect"`
	Output   string `short:"o" default:"output" help:"Output directory"`
	APIURL   string `name:"api-url" hidden:"" env:"GITHUB_API_URL" help:"GitHub API base URL"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	URL     string   `arg:"" help:"Documentation site URL"`
	Include []string `short:"i" help:"Only show URLs matching regex (repeatable)"`
	Exclude []string `short:"e" help:"Hide URLs matching regex (repeatable)"`
}
