// Package goquery implements content extraction over parsed HTML using
// CSS selectors. It pulls the primary text, code samples, and outbound
// links out of fetched documentation pages.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mjarosz/docskill"
	"golang.org/x/net/html"
)

// minCodeLength filters out tiny inline snippets. Blocks below this
// length do not count against the per-page cap.
const minCodeLength = 10

// langClassRe matches language-* and lang-* class markers, the
// convention used by most syntax highlighters.
var langClassRe = regexp.MustCompile(`lang(?:uage)?-(\w+)`)

// Ensure Extractor implements docskill.Extractor at compile time.
var _ docskill.Extractor = (*Extractor)(nil)

// Extractor extracts content from HTML using a prioritized list of CSS
// selectors. The zero value is not usable; use NewExtractor.
type Extractor struct {
	selectors []string
	maxBlocks int
}

// NewExtractor creates an Extractor. Selectors are tried in order when
// locating the primary content; the first one matching any element wins.
// maxBlocks caps the number of code blocks collected per page; values
// below one fall back to docskill.MaxCodeBlocksPerPage.
func NewExtractor(selectors []string, maxBlocks int) *Extractor {
	if len(selectors) == 0 {
		selectors = docskill.DefaultContentSelectors
	}
	if maxBlocks < 1 {
		maxBlocks = docskill.MaxCodeBlocksPerPage
	}
	return &Extractor{selectors: selectors, maxBlocks: maxBlocks}
}

// Extract processes the HTML of the page at pageURL.
func (e *Extractor) Extract(pageURL, rawHTML string) (*docskill.Extraction, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, docskill.Errorf(docskill.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docskill.Errorf(docskill.EINVALID, "failed to parse HTML: %v", err)
	}

	return &docskill.Extraction{
		Title:      extractTitle(doc, pageURL),
		Text:       e.extractText(doc),
		CodeBlocks: e.extractCodeBlocks(doc),
		Links:      extractLinks(doc, base),
	}, nil
}

// extractTitle returns the <title> text, falling back to the page URL.
func extractTitle(doc *goquery.Document, pageURL string) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return pageURL
	}
	return title
}

// extractText locates the primary page content. Configured selectors act
// as a priority list: the first selector matching any element wins and
// its text is returned. Pages without a match fall back to the document
// body; pages without a body yield empty text.
func (e *Extractor) extractText(doc *goquery.Document) string {
	for _, selector := range e.selectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return nodeText(sel.First())
		}
	}

	if body := doc.Find("body"); body.Length() > 0 {
		return nodeText(body.First())
	}
	return ""
}

// nodeText collects all descendant text nodes, trimmed and joined by
// newlines. Empty text nodes are dropped.
func nodeText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, "\n")
}

// extractCodeBlocks scans pre and code elements in document order and
// collects up to maxBlocks qualifying blocks. Blocks shorter than
// minCodeLength are skipped and do not count against the cap.
func (e *Extractor) extractCodeBlocks(doc *goquery.Document) []docskill.CodeBlock {
	var blocks []docskill.CodeBlock

	doc.Find("pre, code").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		code := strings.TrimSpace(sel.Text())
		if len(code) < minCodeLength {
			return true
		}

		lang := docskill.GenericCodeTag
		if class, ok := sel.Attr("class"); ok {
			if m := langClassRe.FindStringSubmatch(class); m != nil {
				lang = m[1]
			}
		}
		if lang == docskill.GenericCodeTag {
			lang = docskill.DetectLanguage(code)
		}

		blocks = append(blocks, docskill.CodeBlock{Language: lang, Code: code})
		return len(blocks) < e.maxBlocks
	})

	return blocks
}

// extractLinks resolves every anchor href against the base URL and
// returns canonical candidate URLs in document order. Policy and
// visited-set filtering is the crawler's job, not the extractor's.
func extractLinks(doc *goquery.Document, base *url.URL) []string {
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		links = append(links, docskill.NormalizeURL(resolved))
	})

	return links
}

// resolveURL resolves href against the base URL, dropping fragments and
// self-referential links (anchor-only links pointing to the same page).
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
