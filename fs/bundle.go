// Package fs writes completed skill bundles to disk: per-category
// Markdown reference files, a top-level SKILL.md index, and JSON metadata
// for downstream tooling.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/mjarosz/docskill"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Per-page output limits for reference files.
const (
	// excerptLimit caps the body text excerpt embedded per page.
	excerptLimit = 2000

	// maxCodeBlocksPerRefPage caps the code samples embedded per page.
	maxCodeBlocksPerRefPage = 3

	// codeCharLimit caps each embedded code sample.
	codeCharLimit = 500
)

// Ensure BundleWriter implements docskill.BundleWriter at compile time.
var _ docskill.BundleWriter = (*BundleWriter)(nil)

// BundleWriter writes bundles under a base directory. Filesystem errors
// are fatal and propagate to the caller; no partial-bundle cleanup is
// performed.
type BundleWriter struct {
	baseDir string
}

// NewBundleWriter creates a BundleWriter rooted at baseDir.
// The directory is created on the first write.
func NewBundleWriter(baseDir string) *BundleWriter {
	return &BundleWriter{baseDir: baseDir}
}

// WriteBundle persists the bundle: one reference file per category (in
// first-seen category order), SKILL.md, summary.json, and manifest.json.
func (w *BundleWriter) WriteBundle(ctx context.Context, bundle *docskill.Bundle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	refsDir := filepath.Join(w.baseDir, "references")
	if err := os.MkdirAll(refsDir, 0755); err != nil {
		return err
	}

	order, groups := docskill.GroupByCategory(bundle.Pages)
	for _, category := range order {
		path := filepath.Join(refsDir, sanitizeFilename(category)+".md")
		content := formatReference(category, groups[category])
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}

	skillPath := filepath.Join(w.baseDir, "SKILL.md")
	if err := os.WriteFile(skillPath, []byte(formatSkill(bundle, order, groups)), 0644); err != nil {
		return err
	}

	if err := writeJSON(filepath.Join(w.baseDir, "summary.json"), bundle.Summary()); err != nil {
		return err
	}

	manifest := make([]docskill.ManifestEntry, 0, len(bundle.Pages))
	for _, page := range bundle.Pages {
		manifest = append(manifest, docskill.ManifestEntry{
			URL:         page.URL,
			Title:       page.Title,
			Category:    page.Category,
			ContentHash: contentHash(page.Content),
		})
	}
	return writeJSON(filepath.Join(w.baseDir, "manifest.json"), manifest)
}

// formatReference renders one category's reference document.
func formatReference(category string, pages []*docskill.Page) string {
	var b strings.Builder

	title := cases.Title(language.Und).String(strings.ReplaceAll(category, "_", " "))
	fmt.Fprintf(&b, "# %s\n\n", title)

	for _, page := range pages {
		fmt.Fprintf(&b, "## %s\n\n", page.Title)
		fmt.Fprintf(&b, "Source: %s\n\n", page.URL)
		fmt.Fprintf(&b, "%s\n\n", truncate(page.Content, excerptLimit))

		if len(page.CodeBlocks) > 0 {
			b.WriteString("### Code Examples\n\n")
			for i, cb := range page.CodeBlocks {
				if i >= maxCodeBlocksPerRefPage {
					break
				}
				fmt.Fprintf(&b, "```%s\n%s\n```\n\n", cb.Language, truncate(cb.Code, codeCharLimit))
			}
		}

		b.WriteString("---\n\n")
	}

	return b.String()
}

// formatSkill renders the top-level SKILL.md index.
func formatSkill(bundle *docskill.Bundle, order []string, groups map[string][]*docskill.Page) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", bundle.Name)
	fmt.Fprintf(&b, "Documentation skill for %s\n\n", bundle.Name)
	fmt.Fprintf(&b, "Source: %s\n\n", bundle.BaseURL)
	fmt.Fprintf(&b, "Total pages: %d\n\n", len(bundle.Pages))
	b.WriteString("## Categories\n\n")

	for _, category := range order {
		fmt.Fprintf(&b, "- **%s**: %d pages\n", category, len(groups[category]))
	}

	b.WriteString("\n## Quick Reference\n\n")
	b.WriteString("See the `references/` directory for detailed documentation.\n")

	return b.String()
}

// contentHash returns a stable hex hash of page content for change
// detection between runs.
func contentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// truncate cuts s to at most n runes, so multibyte content is never
// split mid-character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// sanitizeFilename makes a category label safe to use as a file name.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "general"
	}
	return b.String()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
