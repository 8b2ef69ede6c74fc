// Package goquery implements serplens.Extractor on top of the goquery
// HTML parsing library.
package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"

	"github.com/fwojciec/serplens"
)

// excludeSelectors are removed before computing visible text so that
// navigation chrome and cookie banners don't pollute word counts or
// signal positions.
var excludeSelectors = []string{
	"nav", "header", "footer", "[role='navigation']",
	".navbar", ".nav", ".header", ".footer", ".menu",
	".cookie-banner", ".cookie-consent", "#cookie",
	"script", "style", "noscript", "iframe",
}

var _ serplens.Extractor = (*Extractor)(nil)

// Extractor extracts structure, hero content, and content-element
// signals from raw HTML.
type Extractor struct {
	cfg serplens.Config
}

// NewExtractor creates an Extractor for the given run configuration.
func NewExtractor(cfg serplens.Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract processes raw HTML into an Extraction. It is total over its
// input: empty or malformed markup yields an Extraction with absent
// fields. The only error path is a document that cannot be parsed at
// all.
func (e *Extractor) Extract(html string, pageURL string) (*serplens.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, serplens.Errorf(serplens.EINVALID, "failed to parse HTML: %v", err)
	}

	visibleText := visibleText(doc)
	wordCount := len(strings.Fields(visibleText))

	ex := &serplens.Extraction{
		Structure:     extractStructure(doc),
		Hero:          extractHero(doc),
		InternalLinks: extractInternalLinks(doc, pageURL),
		VisibleText:   visibleText,
		WordCount:     wordCount,
		ContentHash:   fmt.Sprintf("%016x", xxhash.Sum64String(html)),
	}
	ex.Elements = detectElements(doc, visibleText, html, e.cfg.TechnologyKeywords)
	ex.SectionWordCounts = sectionWordCounts(doc)

	return ex, nil
}

// ExtractWithProcedureSection is Extract plus the homepage
// procedure-block capture.
func (e *Extractor) ExtractWithProcedureSection(html string, pageURL string) (*serplens.Extraction, error) {
	ex, err := e.Extract(html, pageURL)
	if err != nil {
		return nil, err
	}
	ex.ProcedureSection = extractProcedureSection(ex, html, e.cfg.Procedure)
	return ex, nil
}

// visibleText returns the body text with excluded elements removed,
// fields joined by single spaces.
func visibleText(doc *goquery.Document) string {
	body := doc.Find("body")
	if body.Length() == 0 {
		return ""
	}
	work := body.Clone()
	for _, sel := range excludeSelectors {
		work.Find(sel).Remove()
	}
	return strings.Join(strings.Fields(work.Text()), " ")
}

// extractProcedureSection captures the first H2 containing the
// procedure keyword plus the content until the next H2.
func extractProcedureSection(ex *serplens.Extraction, html, procedure string) *serplens.ProcedureSection {
	if procedure == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	procLower := strings.ToLower(procedure)
	var section *serplens.ProcedureSection
	doc.Find("h2").EachWithBreak(func(_ int, h2 *goquery.Selection) bool {
		text := strings.TrimSpace(h2.Text())
		if !strings.Contains(strings.ToLower(text), procLower) {
			return true
		}
		parts := []string{text}
		h2.NextAll().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
			if goquery.NodeName(sib) == "h2" {
				return false
			}
			if t := strings.Join(strings.Fields(sib.Text()), " "); t != "" {
				parts = append(parts, t)
			}
			return true
		})
		section = &serplens.ProcedureSection{
			H2:      text,
			Content: strings.Join(parts, " "),
		}
		return false
	})
	return section
}
