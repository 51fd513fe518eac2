package docskill

// Page represents one successfully fetched and processed documentation
// page. Pages are created once by the extraction pipeline and immutable
// afterwards.
type Page struct {
	// URL is the canonical page URL.
	URL string `json:"url"`

	// Title extracted from the page, falling back to the URL.
	Title string `json:"title"`

	// Content is the extracted body text.
	Content string `json:"content"`

	// CodeBlocks holds code samples in document order.
	CodeBlocks []CodeBlock `json:"codeBlocks"`

	// Category is the keyword-assigned label grouping pages in the bundle.
	Category string `json:"category"`

	// Links are the outbound same-site links discovered on the page,
	// canonicalized and policy-filtered.
	Links []string `json:"links"`
}

// CodeBlock is a code sample with its detected or declared language tag.
type CodeBlock struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}
