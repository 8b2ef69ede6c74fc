package serplens

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// URLClassification is the result of the pre-fetch URL classifier.
type URLClassification struct {
	Type       PageType
	Confidence Confidence
	Signal     string
}

// ContentClassification is the result of the post-fetch reclassifier.
type ContentClassification struct {
	Type       PageType
	Confidence Confidence
	Signal     string
	Wireframe  string
}

var datePathPattern = regexp.MustCompile(`/\d{4}/|\d{4}-\d{2}|/\d{2}-\d{2}-\d{4}/|/[a-z]{3}-\d{4}/`)
var leadingYearPattern = regexp.MustCompile(`^\d{4}`)

// urlRule is one step of the pre-fetch classifier chain.
type urlRule struct {
	match   func(path string, segments []string, cfg Config) bool
	outcome func(path string, cfg Config) URLClassification
}

// urlRules is the pre-fetch rule chain, first match wins.
var urlRules = []urlRule{
	{
		// Homepage: no path, root, or an index file.
		match: func(path string, _ []string, _ Config) bool {
			trimmed := strings.TrimRight(path, "/")
			lower := strings.ToLower(path)
			return path == "" || path == "/" || trimmed == "" ||
				lower == "/index" || lower == "/index.html" || lower == "/index.htm"
		},
		outcome: func(_ string, _ Config) URLClassification {
			return URLClassification{PageTypeHomepage, ConfidenceHigh, "No path or index"}
		},
	},
	{
		// Blog/Article: blog-style folder or date pattern.
		match: func(path string, _ []string, _ Config) bool {
			lower := strings.ToLower(path)
			return strings.Contains(lower, "/blog/") ||
				strings.Contains(lower, "/news/") ||
				strings.Contains(lower, "/articles/") ||
				datePathPattern.MatchString(lower) ||
				leadingYearPattern.MatchString(strings.TrimPrefix(path, "/"))
		},
		outcome: func(_ string, _ Config) URLClassification {
			return URLClassification{PageTypeBlogArticle, ConfidenceHigh, "Blog/news/date pattern"}
		},
	},
	{
		// Geo Page: configured location folder in path.
		match: func(path string, _ []string, cfg Config) bool {
			lower := strings.ToLower(path)
			for _, p := range cfg.LocationFolderPatterns {
				if strings.Contains(lower, strings.ToLower(p)) {
					return true
				}
			}
			return false
		},
		outcome: func(_ string, _ Config) URLClassification {
			return URLClassification{PageTypeGeoPage, ConfidenceMedium, "Location folder in path"}
		},
	},
	{
		// Procedure+Location: procedure keyword plus a multi-segment path.
		match: func(path string, segments []string, cfg Config) bool {
			return pathHasProcedure(path, cfg) && len(segments) >= 2
		},
		outcome: func(_ string, _ Config) URLClassification {
			return URLClassification{PageTypeProcedureLocation, ConfidenceMedium, "Procedure + location in path"}
		},
	},
	{
		// Service Page: procedure keyword with no clear location.
		match: func(path string, _ []string, cfg Config) bool {
			return pathHasProcedure(path, cfg)
		},
		outcome: func(_ string, _ Config) URLClassification {
			return URLClassification{PageTypeServicePage, ConfidenceMedium, "Procedure in path"}
		},
	},
}

func pathHasProcedure(path string, cfg Config) bool {
	procedure := strings.ToLower(cfg.Procedure)
	return procedure != "" && strings.Contains(strings.ToLower(path), procedure)
}

// ClassifyURL assigns a preliminary page type from URL shape alone,
// before any document is fetched. It is a total function of the URL
// string and the configured procedure keyword: the same input always
// yields the same output. Unmatched URLs default to a low-confidence
// Service Page.
func ClassifyURL(rawURL string, cfg Config) URLClassification {
	var path string
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	segments := pathSegments(path)

	for _, rule := range urlRules {
		if rule.match(path, segments, cfg) {
			return rule.outcome(path, cfg)
		}
	}
	return URLClassification{PageTypeServicePage, ConfidenceLow, "Default"}
}

func pathSegments(path string) []string {
	var segments []string
	for _, s := range strings.Split(strings.Trim(path, "/"), "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// ContentSnapshot is the immutable input to the content reclassifier:
// the preliminary classification plus the signals extracted from the
// fetched document. Rules read only this snapshot, never each other's
// partial output.
type ContentSnapshot struct {
	PrelimType       PageType
	PrelimConfidence Confidence
	Structure        Structure
	Elements         ElementMap
	WordCount        int
}

// contentRule is one step of the reclassifier chain. Each rule inspects
// the snapshot and either fires with a new classification or passes.
// Rules are evaluated in order and a later firing rule overwrites an
// earlier one, so the chain is a fold, not a first-match scan.
type contentRule func(snap ContentSnapshot, cfg Config, text string) (ContentClassification, bool)

var contentRules = []contentRule{
	ruleCityH1GeoSignals,
	ruleGeoSignalFewProcedures,
	ruleProcedureSignalOverridesGeo,
	ruleProcedureH1Clinical,
}

// ReclassifyContent revises the preliminary URL classification using
// content signals extracted from the document. Content signals always
// take precedence over URL signals: a firing rule raises confidence to
// High, and confidence is never downgraded.
func ReclassifyContent(snap ContentSnapshot, cfg Config) ContentClassification {
	result := ContentClassification{
		Type:       snap.PrelimType,
		Confidence: snap.PrelimConfidence,
		Signal:     "Default",
	}
	if result.Confidence == "" {
		result.Confidence = ConfidenceMedium
	}

	text := ClassificationText(snap.Structure, snap.Elements)
	for _, rule := range contentRules {
		if outcome, ok := rule(snap, cfg, text); ok {
			result = outcome
		}
	}

	result.Wireframe = WireframeWeight[result.Type]
	return result
}

// ruleCityH1GeoSignals: a short page whose H1 suggests a locality and
// whose text carries a geo signal is a Geo Page.
func ruleCityH1GeoSignals(snap ContentSnapshot, cfg Config, text string) (ContentClassification, bool) {
	h1 := strings.ToLower(snap.Structure.H1)
	if h1 == "" || snap.WordCount >= 400 {
		return ContentClassification{}, false
	}
	if !containsAny(h1, localityTokens(cfg)) {
		return ContentClassification{}, false
	}
	for _, g := range cfg.GeoPageSignals {
		if strings.Contains(text, strings.ToLower(g)) {
			return ContentClassification{
				Type:       PageTypeGeoPage,
				Confidence: ConfidenceHigh,
				Signal:     "City H1 + geo signals",
			}, true
		}
	}
	return ContentClassification{}, false
}

// ruleGeoSignalFewProcedures: a geo signal with fewer than two
// procedure signals and no procedure keyword means the page lists
// multiple services for an area, not one procedure.
func ruleGeoSignalFewProcedures(snap ContentSnapshot, cfg Config, text string) (ContentClassification, bool) {
	h2Joined := strings.ToLower(strings.Join(snap.Structure.H2Texts(), " "))
	for _, g := range cfg.GeoPageSignals {
		lowered := strings.ToLower(g)
		if !strings.Contains(text, lowered) && !strings.Contains(h2Joined, lowered) {
			continue
		}
		procCount := 0
		for _, s := range cfg.ProcedureLocationSignals {
			if strings.Contains(text, strings.ToLower(s)) {
				procCount++
			}
		}
		procedure := strings.ToLower(cfg.Procedure)
		if procCount < 2 && !(procedure != "" && strings.Contains(text, procedure)) {
			return ContentClassification{
				Type:       PageTypeGeoPage,
				Confidence: ConfidenceHigh,
				Signal:     fmt.Sprintf("Geo signal: %s", g),
			}, true
		}
		// First matching geo signal decides; later ones are not consulted.
		return ContentClassification{}, false
	}
	return ContentClassification{}, false
}

// ruleProcedureSignalOverridesGeo: clinical detail on a page the URL
// called a Geo Page means the content is about one procedure.
func ruleProcedureSignalOverridesGeo(snap ContentSnapshot, cfg Config, text string) (ContentClassification, bool) {
	for _, sig := range cfg.ProcedureLocationSignals {
		if !strings.Contains(text, strings.ToLower(sig)) {
			continue
		}
		if snap.PrelimType != PageTypeGeoPage {
			return ContentClassification{}, false
		}
		h1 := strings.ToLower(snap.Structure.H1)
		newType := PageTypeServicePage
		if strings.Contains(h1, "location") || len(snap.Structure.H2s) > 4 {
			newType = PageTypeProcedureLocation
		}
		return ContentClassification{
			Type:       newType,
			Confidence: ConfidenceHigh,
			Signal:     fmt.Sprintf("Procedure signal: %s", sig),
		}, true
	}
	return ContentClassification{}, false
}

// ruleProcedureH1Clinical: the procedure keyword in the H1 plus any
// clinical signal reclassifies Geo Pages and Homepages.
func ruleProcedureH1Clinical(snap ContentSnapshot, cfg Config, text string) (ContentClassification, bool) {
	procedure := strings.ToLower(cfg.Procedure)
	if procedure == "" || !strings.Contains(strings.ToLower(snap.Structure.H1), procedure) {
		return ContentClassification{}, false
	}
	if !anySignal(text, cfg.ProcedureLocationSignals) {
		return ContentClassification{}, false
	}
	switch snap.PrelimType {
	case PageTypeGeoPage:
		return ContentClassification{
			Type:       PageTypeProcedureLocation,
			Confidence: ConfidenceHigh,
			Signal:     "Procedure H1 + clinical content",
		}, true
	case PageTypeHomepage:
		return ContentClassification{
			Type:       PageTypeServicePage,
			Confidence: ConfidenceHigh,
			Signal:     "Procedure H1 + clinical content",
		}, true
	}
	return ContentClassification{}, false
}

// localityTokens are the H1 tokens that suggest a location page: the
// configured city names plus generic location words.
func localityTokens(cfg Config) []string {
	tokens := []string{"location", "office", "our"}
	for _, l := range cfg.Localities {
		if l.City != "" {
			tokens = append(tokens, strings.ToLower(l.City))
		}
	}
	return tokens
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func anySignal(text string, signals []string) bool {
	for _, s := range signals {
		if strings.Contains(text, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
