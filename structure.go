package serplens

import "strings"

// Structure is the heading hierarchy of a page in document order.
type Structure struct {
	H1  string      `json:"h1"`
	H2s []H2Section `json:"h2s"`
}

// H2Section is a heading-2 with the heading-3 texts nested under it.
// An H3 belongs to the nearest preceding H2 in document order.
type H2Section struct {
	Text string   `json:"text"`
	H3s  []string `json:"h3s"`
}

// Hero summarizes the above-the-fold block of a page, approximated for
// a mobile viewport.
type Hero struct {
	Headline           string `json:"headline"`
	Subheadline        string `json:"subheadline"`
	CTAText            string `json:"ctaText"`
	HasVideo           bool   `json:"hasVideo"`
	HasBackgroundImage bool   `json:"hasBackgroundImage"`
	HasTrustBadge      bool   `json:"hasTrustBadge"`
}

// SectionWordCount is the word count of the content under one H2.
type SectionWordCount struct {
	Position int    `json:"position"` // 1-based H2 index
	H2Text   string `json:"h2Text"`
	Words    int    `json:"words"`
}

// ProcedureSection is the procedure-specific content block captured
// from a homepage: the first H2 containing the procedure keyword plus
// the content until the next H2.
type ProcedureSection struct {
	H2      string `json:"h2"`
	Content string `json:"content"`
}

// Link is an internal link with its anchor text.
type Link struct {
	URL        string `json:"url"`
	AnchorText string `json:"anchorText"`
}

// H2Texts returns the H2 heading texts in document order.
func (s Structure) H2Texts() []string {
	texts := make([]string, 0, len(s.H2s))
	for _, h2 := range s.H2s {
		texts = append(texts, h2.Text)
	}
	return texts
}

// ClassificationText returns the lower-cased text the content
// reclassifier matches signal phrases against: H1, all H2/H3 headings,
// and any captured credential text.
func ClassificationText(structure Structure, elements ElementMap) string {
	parts := []string{structure.H1}
	for _, h2 := range structure.H2s {
		parts = append(parts, h2.Text)
		parts = append(parts, h2.H3s...)
	}
	if cred := elements[ElementSurgeonCredentials]; cred.ExactText != "" {
		parts = append(parts, cred.ExactText)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
