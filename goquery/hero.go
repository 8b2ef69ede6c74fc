package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fwojciec/serplens"
)

var heroClassPattern = regexp.MustCompile(`(?i)hero|banner|header`)

// trustPatterns are loose on purpose. The hero check only looks at the
// opening slice of the page, where credential language almost always
// means a badge or a byline.
var trustPatterns = []string{
	"certified", "accredited", "award", "years", "board", " fellowship", "md", "do",
}

var ctaClassSignals = []string{"btn", "button", "cta", "schedule", "consult"}
var ctaTextSignals = []string{"schedule", "consult", "book", "get started", "learn more"}

// extractHero approximates the above-the-fold mobile viewport with
// heuristics: first H1 as headline, first substantial paragraph as
// subheadline, and class or anchor-text signals for the CTA.
func extractHero(doc *goquery.Document) serplens.Hero {
	var hero serplens.Hero
	body := doc.Find("body")
	if body.Length() == 0 {
		return hero
	}

	hero.Headline = cleanText(doc.Find("h1").First())

	// The first substantial element ends the search even when it is an
	// h2, which only qualifies as a break point, not a subheadline.
	body.Find("p, h2, div").Slice(0, min(20, body.Find("p, h2, div").Length())).
		EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := cleanText(el)
			if text == "" || len(text) <= 20 {
				return true
			}
			name := goquery.NodeName(el)
			if hero.Subheadline == "" && (name == "p" || name == "div") {
				hero.Subheadline = truncate(text, 200)
			}
			return false
		})

	hero.CTAText = heroCTA(doc)
	hero.HasVideo = heroVideo(doc)
	hero.HasBackgroundImage = heroBackground(doc)

	if html, err := goquery.OuterHtml(body); err == nil {
		block := strings.ToLower(truncate(html, 4000))
		for _, p := range trustPatterns {
			if strings.Contains(block, p) {
				hero.HasTrustBadge = true
				break
			}
		}
	}

	return hero
}

func heroCTA(doc *goquery.Document) string {
	cta := ""
	doc.Find("a, button").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		cls := strings.ToLower(el.AttrOr("class", ""))
		text := cleanText(el)
		if text == "" {
			return true
		}
		for _, sig := range ctaClassSignals {
			if strings.Contains(cls, sig) {
				cta = text
				return false
			}
		}
		return true
	})
	if cta != "" {
		return cta
	}
	doc.Find("a[href]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := cleanText(el)
		if text == "" || len(text) >= 50 {
			return true
		}
		lower := strings.ToLower(text)
		for _, sig := range ctaTextSignals {
			if strings.Contains(lower, sig) {
				cta = text
				return false
			}
		}
		return true
	})
	return cta
}

func heroVideo(doc *goquery.Document) bool {
	found := false
	doc.Find("video, iframe").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		src := el.AttrOr("src", "")
		if goquery.NodeName(el) == "video" ||
			strings.Contains(src, "youtube") || strings.Contains(src, "vimeo") {
			found = true
			return false
		}
		return true
	})
	return found
}

func heroBackground(doc *goquery.Document) bool {
	found := false
	doc.Find("[style]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		style := el.AttrOr("style", "")
		if strings.Contains(style, "background-image") || strings.Contains(style, "background:") {
			found = true
			return false
		}
		return true
	})
	if found {
		return true
	}
	doc.Find("[class]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if !heroClassPattern.MatchString(el.AttrOr("class", "")) {
			return true
		}
		if el.AttrOr("style", "") != "" || el.Find("img, video").Length() > 0 {
			found = true
			return false
		}
		return true
	})
	return found
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
