// Package github collects pages from GitHub repositories via the REST
// v3 API: repository metadata, the README, and a bounded walk of source
// files. The resulting pages feed the same bundle writer as the web
// crawler.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/mjarosz/docskill"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// Collection bounds.
const (
	// DefaultMaxFiles bounds how many source files are collected.
	DefaultMaxFiles = 100

	// DefaultConcurrency bounds parallel file downloads.
	DefaultConcurrency = 5

	// maxFileContent caps how much of each file is kept.
	maxFileContent = 5000
)

// sourceExtensions are the file types worth collecting.
var sourceExtensions = []string{
	".py", ".js", ".jsx", ".ts", ".tsx", ".java", ".go", ".rs", ".cpp", ".c", ".h", ".md",
}

// skipDirs are directories never worth walking.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
}

// extLanguages maps file extensions to code fence language tags.
var extLanguages = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".java": "java",
	".go":   "go",
	".rs":   "rust",
	".cpp":  "cpp",
	".c":    "c",
	".h":    "c",
	".md":   "markdown",
}

// Compile-time interface verification.
var _ docskill.Collector = (*Collector)(nil)

// Collector gathers pages from a single GitHub repository.
type Collector struct {
	// Repo in "owner/repo" form.
	Repo string

	// Token authenticates API requests when set. Unauthenticated access
	// works but is heavily rate limited by GitHub.
	Token string

	// MaxFiles bounds the number of source files collected.
	// Defaults to DefaultMaxFiles.
	MaxFiles int

	// Concurrency bounds parallel file downloads.
	// Defaults to DefaultConcurrency.
	Concurrency int

	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// Client is the HTTP client used for all requests.
	// Defaults to http.DefaultClient.
	Client *http.Client

	Logger *slog.Logger
}

// repoInfo is the subset of the repository resource the collector uses.
type repoInfo struct {
	FullName    string   `json:"full_name"`
	Description string   `json:"description"`
	Stargazers  int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	Language    string   `json:"language"`
	HTMLURL     string   `json:"html_url"`
	Topics      []string `json:"topics"`
}

// contentEntry is one entry of a repository contents listing.
type contentEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	Size        int    `json:"size"`
	HTMLURL     string `json:"html_url"`
	DownloadURL string `json:"download_url"`
}

// Collect fetches repository metadata, the README, and source files.
// Individual file failures are logged and skipped; a repository that
// cannot be accessed at all fails the collection.
func (c *Collector) Collect(ctx context.Context, progress docskill.ProgressFunc) ([]*docskill.Page, error) {
	if !strings.Contains(c.Repo, "/") {
		return nil, docskill.Errorf(docskill.EINVALID, "repository must be in owner/repo form, got %q", c.Repo)
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	info, err := c.fetchRepoInfo(ctx)
	if err != nil {
		return nil, err
	}

	pages := []*docskill.Page{overviewPage(info)}

	if readme, err := c.fetchReadme(ctx); err != nil {
		logger.Warn("readme unavailable", "repo", c.Repo, "error", err)
	} else if readme != "" {
		pages = append(pages, &docskill.Page{
			URL:      info.HTMLURL + "#readme",
			Title:    "README",
			Content:  readme,
			Category: "readme",
		})
	}

	entries, err := c.listSourceFiles(ctx)
	if err != nil {
		return nil, err
	}

	filePages, err := c.fetchFiles(ctx, entries, logger, progress, len(pages))
	if err != nil {
		return nil, err
	}
	return append(pages, filePages...), nil
}

// overviewPage renders repository metadata as the bundle's lead page.
func overviewPage(info *repoInfo) *docskill.Page {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", info.Description)
	fmt.Fprintf(&b, "Language: %s\n", info.Language)
	fmt.Fprintf(&b, "Stars: %d\n", info.Stargazers)
	fmt.Fprintf(&b, "Forks: %d\n", info.Forks)
	if len(info.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(info.Topics, ", "))
	}

	return &docskill.Page{
		URL:      info.HTMLURL,
		Title:    info.FullName,
		Content:  b.String(),
		Category: "overview",
	}
}

// listSourceFiles walks the repository contents breadth-first and
// returns up to MaxFiles entries with collectable extensions.
func (c *Collector) listSourceFiles(ctx context.Context) ([]contentEntry, error) {
	maxFiles := c.MaxFiles
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}

	var files []contentEntry
	queue := []string{""}
	for len(queue) > 0 && len(files) < maxFiles {
		dir := queue[0]
		queue = queue[1:]

		var entries []contentEntry
		if err := c.getJSON(ctx, "/repos/"+c.Repo+"/contents/"+dir, &entries); err != nil {
			return nil, err
		}

		for _, entry := range entries {
			switch entry.Type {
			case "dir":
				if !skipDirs[entry.Name] {
					queue = append(queue, entry.Path)
				}
			case "file":
				if len(files) >= maxFiles {
					break
				}
				if hasSourceExtension(entry.Name) && entry.DownloadURL != "" {
					files = append(files, entry)
				}
			}
		}
	}
	return files, nil
}

// fetchFiles downloads file contents with bounded concurrency and turns
// them into pages, preserving listing order. Failed downloads are
// dropped.
func (c *Collector) fetchFiles(ctx context.Context, entries []contentEntry, logger *slog.Logger, progress docskill.ProgressFunc, collected int) ([]*docskill.Page, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*docskill.Page, len(entries))
	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, entry := range entries {
		g.Go(func() error {
			content, err := c.download(gctx, entry.DownloadURL)

			mu.Lock()
			defer mu.Unlock()
			done++
			if err != nil {
				logger.Warn("file skipped", "path", entry.Path, "error", err)
			} else {
				results[i] = filePage(entry, content)
			}
			if progress != nil {
				progress(docskill.ProgressEvent{
					URL:   entry.Path,
					Pages: collected + done,
					Err:   err,
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages := make([]*docskill.Page, 0, len(results))
	for _, p := range results {
		if p != nil {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

// filePage turns one downloaded file into a page. Markdown files keep
// their content as text; source files carry it as a code block.
func filePage(entry contentEntry, content string) *docskill.Page {
	if len(content) > maxFileContent {
		content = content[:maxFileContent]
	}

	page := &docskill.Page{
		URL:      entry.HTMLURL,
		Title:    entry.Path,
		Category: fileCategory(entry.Path),
	}

	ext := strings.ToLower(path.Ext(entry.Name))
	if ext == ".md" {
		page.Content = content
		return page
	}

	page.Content = fmt.Sprintf("Source file %s (%d bytes)", entry.Path, entry.Size)
	page.CodeBlocks = []docskill.CodeBlock{{
		Language: extLanguages[ext],
		Code:     content,
	}}
	return page
}

// fileCategory groups files by their top-level directory.
func fileCategory(filePath string) string {
	if idx := strings.Index(filePath, "/"); idx != -1 {
		return filePath[:idx]
	}
	return "root"
}

func hasSourceExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func (c *Collector) fetchRepoInfo(ctx context.Context) (*repoInfo, error) {
	var info repoInfo
	if err := c.getJSON(ctx, "/repos/"+c.Repo, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// fetchReadme retrieves the repository README in raw form.
func (c *Collector) fetchReadme(ctx context.Context) (string, error) {
	body, err := c.get(ctx, c.baseURL()+"/repos/"+c.Repo+"/readme", "application/vnd.github.raw+json")
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *Collector) getJSON(ctx context.Context, apiPath string, v any) error {
	body, err := c.get(ctx, c.baseURL()+apiPath, "application/vnd.github+json")
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

func (c *Collector) download(ctx context.Context, rawURL string) (string, error) {
	body, err := c.get(ctx, rawURL, "")
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *Collector) get(ctx context.Context, rawURL, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, docskill.Errorf(docskill.ENOTFOUND, "GitHub resource not found: %s", rawURL)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		resp.Body.Close()
		return nil, docskill.Errorf(docskill.EUNAVAILABLE, "GitHub API returned HTTP %d for %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}

func (c *Collector) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return DefaultBaseURL
}
