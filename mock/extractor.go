package mock

import "github.com/mjarosz/docskill"

var _ docskill.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docskill.Extractor.
type Extractor struct {
	ExtractFn func(pageURL, html string) (*docskill.Extraction, error)
}

func (e *Extractor) Extract(pageURL, html string) (*docskill.Extraction, error) {
	return e.ExtractFn(pageURL, html)
}
