package serplens

import "context"

// SERPResult is one organic search result for a locality query.
type SERPResult struct {
	Position        int    `json:"position"` // 1-based
	URL             string `json:"url"`
	Title           string `json:"title"`
	MetaDescription string `json:"metaDescription"`
	Locality        string `json:"locality"`
	Keyword         string `json:"keyword"`
	IsTopRank       bool   `json:"isTopRank"`
}

// SERPService retrieves organic search results.
type SERPService interface {
	// Search returns up to n organic results for the query as seen
	// from the given locality.
	Search(ctx context.Context, query string, loc Locality, n int) ([]SERPResult, error)
}

// NewPage creates a page record from a SERP result and its preliminary
// URL classification. The record starts unfetched; the pipeline
// enriches it in place.
func NewPage(r SERPResult, prelim URLClassification) *Page {
	return &Page{
		URL:              r.URL,
		Locality:         r.Locality,
		Position:         r.Position,
		IsTopRank:        r.IsTopRank,
		Keyword:          r.Keyword,
		Title:            r.Title,
		MetaDescription:  r.MetaDescription,
		PrelimType:       prelim.Type,
		PrelimConfidence: prelim.Confidence,
		URLSignal:        prelim.Signal,
		Type:             prelim.Type,
		Confidence:       prelim.Confidence,
		Wireframe:        WireframeWeight[prelim.Type],
	}
}
