package docskill

import "strings"

// Categorization scoring weights. A keyword hit in the URL outweighs one
// in the title, which outweighs one in the content preview.
const (
	urlMatchScore     = 3
	titleMatchScore   = 2
	contentMatchScore = 1

	// categorizePreviewLength is how much of the content participates in
	// scoring. Keywords beyond it don't count.
	categorizePreviewLength = 1000
)

// GeneralCategory is assigned when no configured category scores.
const GeneralCategory = "general"

// Categorize scores a page against the configured categories and returns
// the winning label. Matching is case-insensitive substring containment,
// not tokenized word matching; each keyword contributes its weight at
// most once per field. The first strictly greater score replaces the
// incumbent, so ties keep the earliest-declared category. All-zero scores
// yield GeneralCategory.
func Categorize(pageURL, title, content string, categories []Category) string {
	urlLower := strings.ToLower(pageURL)
	titleLower := strings.ToLower(title)
	if len(content) > categorizePreviewLength {
		content = content[:categorizePreviewLength]
	}
	contentLower := strings.ToLower(content)

	best := GeneralCategory
	bestScore := 0

	for _, category := range categories {
		score := 0
		for _, keyword := range category.Keywords {
			kw := strings.ToLower(keyword)
			if strings.Contains(urlLower, kw) {
				score += urlMatchScore
			}
			if strings.Contains(titleLower, kw) {
				score += titleMatchScore
			}
			if strings.Contains(contentLower, kw) {
				score += contentMatchScore
			}
		}
		if score > bestScore {
			bestScore = score
			best = category.Name
		}
	}

	return best
}
