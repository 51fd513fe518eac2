package docskill

// Extraction holds everything pulled out of a single fetched page.
type Extraction struct {
	// Title is the page title, falling back to the page URL.
	Title string

	// Text is the primary page content: the first matching content
	// selector wins, with the document body as fallback.
	Text string

	// CodeBlocks are the code samples found on the page, in document
	// order, capped at MaxCodeBlocksPerPage.
	CodeBlocks []CodeBlock

	// Links are all outbound anchors resolved against the page URL and
	// canonicalized. They are unfiltered; domain and pattern policy is
	// applied by the crawler.
	Links []string
}

// Extractor pulls content, code samples, and links out of raw HTML.
type Extractor interface {
	// Extract processes the HTML of the page at pageURL.
	// Extraction is best-effort: missing content yields empty fields,
	// not errors. Only unparseable input fails.
	Extract(pageURL, html string) (*Extraction, error)
}
