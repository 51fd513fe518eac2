package docskill

import "context"

// Bundle is the output grouping of a completed collection: the pages plus
// the metadata that describes them.
type Bundle struct {
	// Name of the skill.
	Name string

	// BaseURL is the source the pages were collected from.
	BaseURL string

	// Pages in collection order.
	Pages []*Page
}

// Summary is the machine-readable bundle metadata written alongside the
// reference files for external tooling.
type Summary struct {
	Name       string         `json:"name"`
	BaseURL    string         `json:"base_url"`
	TotalPages int            `json:"total_pages"`
	Categories map[string]int `json:"categories"`
}

// Summary derives the bundle's metadata summary.
func (b *Bundle) Summary() *Summary {
	s := &Summary{
		Name:       b.Name,
		BaseURL:    b.BaseURL,
		TotalPages: len(b.Pages),
		Categories: make(map[string]int),
	}
	for _, page := range b.Pages {
		s.Categories[page.Category]++
	}
	return s
}

// ManifestEntry records one page in the bundle manifest so downstream
// tooling can detect pages that changed between runs.
type ManifestEntry struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	ContentHash string `json:"content_hash"`
}

// GroupByCategory groups pages by their category label, preserving the
// order in which categories were first seen. The returned slice holds the
// category order; the map holds the pages per category.
func GroupByCategory(pages []*Page) ([]string, map[string][]*Page) {
	var order []string
	groups := make(map[string][]*Page)
	for _, page := range pages {
		if _, ok := groups[page.Category]; !ok {
			order = append(order, page.Category)
		}
		groups[page.Category] = append(groups[page.Category], page)
	}
	return order, groups
}

// BundleWriter persists a bundle. Writers have no network or crawl-state
// access; they consume the finished page list exactly once.
type BundleWriter interface {
	WriteBundle(ctx context.Context, bundle *Bundle) error
}
