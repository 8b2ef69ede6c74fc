package serplens

import (
	"fmt"
	"regexp"
	"strconv"
)

// Diagnosis buckets used for report coloring.
const (
	DiagnosisContentGap   = "Content Gap"
	DiagnosisAuthorityGap = "Authority Gap"
	DiagnosisBoth         = "Both"
	DiagnosisCompetitive  = "Competitive"
)

// Ranking driver labels.
const (
	DriverAuthority        = "Authority-driven"
	DriverContent          = "Content-driven"
	DriverAuthorityContent = "Authority + Content"
	DriverUnclear          = "Unclear"
)

// Decision thresholds for diagnosis and ranking-driver assessment.
// All comparisons are strict, so values exactly on a threshold fall
// through to the default bucket.
const (
	HighDomainRating = 40
	HighURLRating    = 30
	WeakContentScore = 5
	RichContentScore = 6
)

var firstNumberPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// ParseRating extracts the first embedded number from a free-text
// authority field. Unparsable values default to 0.
func ParseRating(s string) float64 {
	m := firstNumberPattern.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// Diagnose buckets a page purely on (domain rating, richness score).
// Boundary combinations deliberately land in "Both"; splitting them
// into a separate bucket would be a behavioral change.
func Diagnose(dr, score float64) string {
	switch {
	case dr > HighDomainRating && score < WeakContentScore:
		return DiagnosisContentGap
	case dr < HighDomainRating && score > RichContentScore:
		return DiagnosisAuthorityGap
	case dr < HighDomainRating && score < WeakContentScore:
		return DiagnosisBoth
	case dr > HighDomainRating && score > RichContentScore:
		return DiagnosisCompetitive
	}
	return DiagnosisBoth
}

// AssessRankingDriver maps a page's authority metrics, richness score,
// type, and rank to a qualitative explanation of why it ranks. The
// rules are evaluated in order; the first match wins.
func AssessRankingDriver(p *Page) (driver, note string) {
	dr := ParseRating(p.Authority.DomainRating)
	ur := ParseRating(p.Authority.URLRating)
	score := p.RichnessScore

	// A Homepage or Geo Page at rank 1 is authority-driven regardless
	// of scores.
	if p.IsTopRank && (p.Type == PageTypeHomepage || p.Type == PageTypeGeoPage) {
		return DriverAuthority,
			"Position 1 Homepage/Geo page — domain authority likely primary ranking factor; content optimization alone will not outrank"
	}

	if dr > HighDomainRating && score < WeakContentScore {
		return DriverAuthority,
			fmt.Sprintf("High DR (%v), low content score (%v) — ranking on domain/URL authority; beatable with stronger content", dr, score)
	}

	if ur > HighURLRating && score < WeakContentScore {
		return DriverAuthority,
			fmt.Sprintf("High URL Rating (%v), low content (%v) — page authority outweighs content; improve content to compete", ur, score)
	}

	if dr < HighDomainRating && score > RichContentScore {
		return DriverContent,
			fmt.Sprintf("Low DR (%v), strong content (%v) — ranking on content quality; needs more backlinks to compete with high-DR players", dr, score)
	}

	if dr > HighDomainRating && score > RichContentScore {
		return DriverAuthorityContent,
			fmt.Sprintf("High DR (%v), strong content (%v) — benchmark to beat; requires both better content and link building", dr, score)
	}

	return DriverUnclear,
		fmt.Sprintf("DR %v, content %v — manual review recommended; unclear why it ranks", dr, score)
}
