package mock

import "github.com/fwojciec/serplens"

var _ serplens.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of serplens.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*serplens.Extraction, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*serplens.Extraction, error) {
	return e.ExtractFn(html, pageURL)
}
