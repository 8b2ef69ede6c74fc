package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fwojciec/serplens"
)

var (
	faqPatterns = []string{
		"faq", "frequently asked", "common questions", "q&a", "questions and answers",
	}
	testimonialSignals = []string{
		"testimonial", "review", "patient story", "what our patients",
		"google reviews", "realself", "healthgrades",
	}
	costSignals = []string{
		"cost", "price", "pricing", "$", "affordable", "investment", "financing",
	}
	quizSignals = []string{
		"candidate", "candidacy", "quiz", "self-test", "am i a candidate", "find out if",
	}
	beforeAfterSignals = []string{
		"before and after", "before & after", "before/after", "results gallery",
	}
	credentialSignals = []string{
		"fellowship", "years of experience", "board certified",
		"procedure count", "surgeon", "dr.", "md", "credentials",
	}
	financingSignals = []string{
		"financing", "payment plan", "carecredit", "afford", "monthly",
	}
	trustSignals      = []string{"certified", "accredited", "award", "top doctor", "best of"}
	pressSignals      = []string{"as seen in", "featured in", "press", "media"}
	chatSignals       = []string{"live chat", "chat widget", "intercom", "drift", "crisp"}
	schedulingSignals = []string{"schedule online", "book online", "online scheduling", "schedule your"}
)

var statPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+%\s+of\s+patients.*?(?:\.|achieved|vision)`),
	regexp.MustCompile(`(?i)\d+%\s+.*?20/20`),
	regexp.MustCompile(`(?i)over\s+\d+,?\d*\s+procedures`),
	regexp.MustCompile(`(?i)\d+\+\s+years`),
}

var videoTestimonialClassPattern = regexp.MustCompile(`(?i)video.*testimonial|testimonial.*video`)

// positioner buckets a phrase into early/mid/late by its character
// offset within the visible text. A phrase that cannot be located
// reports mid.
type positioner struct {
	textLower string
	wordTotal int
}

func (p positioner) position(phrase string) string {
	idx := strings.Index(p.textLower, strings.ToLower(phrase))
	if idx < 0 {
		return serplens.PositionMid
	}
	return bucketPosition(p.wordTotal, idx)
}

// bucketPosition maps a character offset to a page third, using five
// characters per word as the length proxy. Very short pages are all
// early.
func bucketPosition(wordTotal, charPos int) string {
	if wordTotal < 10 {
		return serplens.PositionEarly
	}
	threshold := float64(wordTotal) * 5
	switch {
	case float64(charPos) < threshold*0.33:
		return serplens.PositionEarly
	case float64(charPos) < threshold*0.66:
		return serplens.PositionMid
	default:
		return serplens.PositionLate
	}
}

// detectElements runs the full detector vocabulary against the page.
// The result always holds every key, absent elements included, so that
// coverage aggregation can rely on the shape.
func detectElements(doc *goquery.Document, visibleText, rawHTML string, techKeywords []string) serplens.ElementMap {
	textLower := strings.ToLower(visibleText)
	htmlLower := strings.ToLower(rawHTML)
	pos := positioner{textLower: textLower, wordTotal: len(strings.Fields(visibleText))}

	elements := make(serplens.ElementMap, len(serplens.ElementKeys()))
	for _, key := range serplens.ElementKeys() {
		elements[key] = serplens.Element{}
	}

	elements[serplens.ElementCTAButtons] = detectCTAButtons(doc, pos)
	elements[serplens.ElementVideoEmbed] = detectVideoEmbed(doc, htmlLower)
	elements[serplens.ElementFAQSection] = detectFAQ(doc, textLower, visibleText, pos)
	elements[serplens.ElementTestimonials] = detectTestimonials(doc, textLower, pos)
	elements[serplens.ElementCostPricing] = detectFirstSignal(costSignals, textLower, pos)
	elements[serplens.ElementCandidacyQuiz] = detectFirstSignal(quizSignals, textLower, pos)
	elements[serplens.ElementBeforeAfterPhotos] = detectFirstSignal(beforeAfterSignals, textLower, pos)
	elements[serplens.ElementSurgeonCredentials] = detectCredentials(doc, pos)
	elements[serplens.ElementTechnologyNames] = detectTechnology(techKeywords, visibleText, textLower)
	elements[serplens.ElementFinancing] = detectFirstSignal(financingSignals, textLower, pos)
	elements[serplens.ElementOutcomeStatistics] = detectOutcomeStats(visibleText, pos)

	if containsAny(textLower, trustSignals) {
		elements[serplens.ElementTrustBadges] = serplens.Element{Present: true, Position: serplens.PositionEarly}
	}
	if containsAny(textLower, pressSignals) {
		elements[serplens.ElementPressMentions] = serplens.Element{Present: true, Position: serplens.PositionEarly}
	}
	if containsAny(htmlLower, chatSignals) {
		elements[serplens.ElementLiveChat] = serplens.Element{Present: true}
	}
	if containsAny(textLower, schedulingSignals) {
		elements[serplens.ElementOnlineScheduling] = serplens.Element{Present: true, Position: serplens.PositionMid}
	}
	if strings.Contains(htmlLower, "google") &&
		(strings.Contains(htmlLower, "review") || strings.Contains(htmlLower, "rating")) {
		elements[serplens.ElementGoogleReviewWidget] = serplens.Element{Present: true}
	}

	if elements[serplens.ElementTestimonials].Type == "video" ||
		strings.Contains(textLower, "video testimonial") {
		elements[serplens.ElementVideoTestimonials] = serplens.Element{
			Present: true,
			// Rough proxy: every mention of "video" on a page that has
			// video testimonials at all.
			Count: strings.Count(textLower, "video"),
		}
	}

	return elements
}

func detectCTAButtons(doc *goquery.Document, pos positioner) serplens.Element {
	var el serplens.Element
	doc.Find("a, button").Each(func(_ int, a *goquery.Selection) {
		t := cleanText(a)
		if len(t) > 3 && len(t) < 80 {
			el.Texts = append(el.Texts, t)
		}
	})
	if len(el.Texts) > 0 {
		el.Present = true
		el.Position = pos.position(el.Texts[0])
	}
	return el
}

func detectVideoEmbed(doc *goquery.Document, htmlLower string) serplens.Element {
	if strings.Contains(htmlLower, "youtube") || strings.Contains(htmlLower, "vimeo") ||
		doc.Find("video").Length() > 0 {
		return serplens.Element{Present: true, Position: serplens.PositionMid}
	}
	return serplens.Element{}
}

func detectFAQ(doc *goquery.Document, textLower, visibleText string, pos positioner) serplens.Element {
	var el serplens.Element
	for _, p := range faqPatterns {
		if strings.Contains(textLower, p) {
			el.Present = true
			el.Position = pos.position(p)
			el.Count = strings.Count(visibleText, "?")
			break
		}
	}
	// Markup-level evidence catches accordions with no FAQ wording.
	if doc.Find("details, [data-faq], .faq").Length() > 0 {
		el.Present = true
		if n := doc.Find("details").Length(); n > el.Count {
			el.Count = n
		}
	}
	return el
}

func detectTestimonials(doc *goquery.Document, textLower string, pos positioner) serplens.Element {
	for _, s := range testimonialSignals {
		if !strings.Contains(textLower, s) {
			continue
		}
		el := serplens.Element{Present: true, Position: pos.position(s)}
		switch {
		case strings.Contains(s, "video") || hasVideoTestimonialClass(doc):
			el.Type = "video"
		case strings.Contains(s, "google") || strings.Contains(s, "realself") || strings.Contains(s, "healthgrades"):
			el.Type = "third-party embed"
		case strings.Contains(textLower, "star") || strings.Contains(textLower, "rating"):
			el.Type = "star rating widget"
		default:
			el.Type = "text quote"
		}
		return el
	}
	return serplens.Element{}
}

func hasVideoTestimonialClass(doc *goquery.Document) bool {
	found := false
	doc.Find("[class]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if videoTestimonialClassPattern.MatchString(el.AttrOr("class", "")) {
			found = true
			return false
		}
		return true
	})
	return found
}

func detectFirstSignal(signals []string, textLower string, pos positioner) serplens.Element {
	for _, s := range signals {
		if strings.Contains(textLower, s) {
			return serplens.Element{Present: true, Position: pos.position(s)}
		}
	}
	return serplens.Element{}
}

// detectCredentials captures the first mid-sized text block that reads
// like a credential statement, verbatim, for the report.
func detectCredentials(doc *goquery.Document, pos positioner) serplens.Element {
	var el serplens.Element
	doc.Find("p, div, span, li").EachWithBreak(func(_ int, tag *goquery.Selection) bool {
		t := cleanText(tag)
		if len(t) <= 20 || len(t) >= 500 {
			return true
		}
		if !containsAny(strings.ToLower(t), credentialSignals) {
			return true
		}
		el.Present = true
		el.ExactText = t
		el.Position = pos.position(truncate(t, 50))
		return false
	})
	return el
}

func detectTechnology(keywords []string, visibleText, textLower string) serplens.Element {
	var found []string
	for _, kw := range keywords {
		if strings.Contains(textLower, strings.ToLower(kw)) || strings.Contains(visibleText, kw) {
			found = append(found, kw)
		}
	}
	if len(found) == 0 {
		return serplens.Element{}
	}
	return serplens.Element{Present: true, Position: serplens.PositionMid, Found: found}
}

// detectOutcomeStats collects statistical claims verbatim, deduplicated
// in first-seen order and capped at five.
func detectOutcomeStats(visibleText string, pos positioner) serplens.Element {
	var el serplens.Element
	seen := make(map[string]bool)
	for _, pat := range statPatterns {
		for _, m := range pat.FindAllString(visibleText, -1) {
			claim := strings.TrimSpace(m)
			if seen[claim] {
				continue
			}
			seen[claim] = true
			el.Claims = append(el.Claims, claim)
		}
	}
	if len(el.Claims) > 5 {
		el.Claims = el.Claims[:5]
	}
	if len(el.Claims) > 0 {
		el.Present = true
		el.Position = pos.position(el.Claims[0])
	}
	return el
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
