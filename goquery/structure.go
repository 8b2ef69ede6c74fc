package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fwojciec/serplens"
)

// extractStructure pulls the H1 and the H2 sections with their nested
// H3s. An H3 attaches to its nearest preceding H2 sibling; an H3 with
// no H2 sibling before it falls back to the first H2 on the page, and
// an H3 whose preceding H2 text matches no section attaches to the
// last one.
func extractStructure(doc *goquery.Document) serplens.Structure {
	s := serplens.Structure{
		H1: cleanText(doc.Find("h1").First()),
	}

	doc.Find("h2").Each(func(_ int, h2 *goquery.Selection) {
		s.H2s = append(s.H2s, serplens.H2Section{Text: cleanText(h2)})
	})

	doc.Find("h3").Each(func(_ int, h3 *goquery.Selection) {
		text := cleanText(h3)
		parent := precedingH2Text(h3)

		attached := false
		for i := range s.H2s {
			if s.H2s[i].Text == parent || parent == "" {
				s.H2s[i].H3s = append(s.H2s[i].H3s, text)
				attached = true
				break
			}
		}
		if !attached && len(s.H2s) > 0 {
			last := len(s.H2s) - 1
			s.H2s[last].H3s = append(s.H2s[last].H3s, text)
		}
	})

	return s
}

// precedingH2Text walks the previous siblings of an H3 looking for the
// nearest H2. Hitting another H3 first means the heading belongs to the
// same run, so the walk stops there too.
func precedingH2Text(h3 *goquery.Selection) string {
	parent := ""
	h3.PrevAll().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
		switch goquery.NodeName(sib) {
		case "h2":
			parent = cleanText(sib)
			return false
		case "h3":
			return false
		}
		return true
	})
	return parent
}

// sectionWordCounts measures the text between each H2 and the next,
// walking following siblings. Position is the 1-based order of the H2
// on the page.
func sectionWordCounts(doc *goquery.Document) []serplens.SectionWordCount {
	var counts []serplens.SectionWordCount
	doc.Find("h2").Each(func(i int, h2 *goquery.Selection) {
		words := 0
		h2.NextAll().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
			if goquery.NodeName(sib) == "h2" {
				return false
			}
			words += len(strings.Fields(sib.Text()))
			return true
		})
		counts = append(counts, serplens.SectionWordCount{
			Position: i + 1,
			H2Text:   cleanText(h2),
			Words:    words,
		})
	})
	return counts
}

// cleanText returns the selection's text with runs of whitespace
// collapsed to single spaces.
func cleanText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
