package serplens

import (
	"context"
	"strconv"
)

// PageType classifies the intent of a ranking page.
type PageType string

// The five page types. Final classifications are always one of these.
const (
	PageTypeHomepage          PageType = "Homepage"
	PageTypeServicePage       PageType = "Service Page"
	PageTypeProcedureLocation PageType = "Procedure+Location"
	PageTypeGeoPage           PageType = "Geo Page"
	PageTypeBlogArticle       PageType = "Blog/Article"
)

// Confidence expresses how strongly a classification is justified.
type Confidence string

// Confidence levels, ordered Low < Medium < High.
const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// WireframeWeight is how much a page type should influence the
// recommended wireframe.
var WireframeWeight = map[PageType]string{
	PageTypeHomepage:          "Low",
	PageTypeServicePage:       "High",
	PageTypeProcedureLocation: "High",
	PageTypeGeoPage:           "Low",
	PageTypeBlogArticle:       "Excluded",
}

// NotAvailable is reported for authority fields with no backlink data.
const NotAvailable = "Not available"

// Authority holds the backlink metrics for one URL. Values are kept as
// the provider's raw strings; ParseRating extracts numbers on demand.
type Authority struct {
	DomainRating     string `json:"domainRating"`
	URLRating        string `json:"urlRating"`
	ReferringDomains string `json:"referringDomains"`
	Backlinks        string `json:"backlinks"`
	OrganicTraffic   string `json:"organicTraffic"`
}

// UnmatchedAuthority is the Authority recorded for pages the backlink
// provider has no data for.
func UnmatchedAuthority() Authority {
	return Authority{
		DomainRating:     NotAvailable + " — add this URL to a batch analysis export and re-run.",
		URLRating:        NotAvailable,
		ReferringDomains: NotAvailable,
		Backlinks:        NotAvailable,
		OrganicTraffic:   NotAvailable,
	}
}

// Page is the record for one (locality, rank) pair. It is created from
// a SERP result, enriched in place through extraction, classification,
// scoring, and diagnosis, then frozen and consumed by aggregation.
type Page struct {
	// Identity.
	URL       string `json:"url"`
	Locality  string `json:"locality"`
	Position  int    `json:"position"` // 1-based rank
	IsTopRank bool   `json:"isTopRank"`
	Keyword   string `json:"keyword"`

	// SERP metadata.
	Title           string `json:"title"`
	MetaDescription string `json:"metaDescription"`

	// Classification.
	PrelimType       PageType   `json:"prelimType"`
	PrelimConfidence Confidence `json:"prelimConfidence"`
	URLSignal        string     `json:"urlSignal"`
	Type             PageType   `json:"type"`
	Confidence       Confidence `json:"confidence"`
	ContentSignal    string     `json:"contentSignal"`
	Wireframe        string     `json:"wireframe"`

	// Extracted structure and signals.
	Structure         Structure          `json:"structure"`
	Hero              Hero               `json:"hero"`
	Elements          ElementMap         `json:"elements"`
	InternalLinks     []Link             `json:"internalLinks,omitempty"`
	SectionWordCounts []SectionWordCount `json:"sectionWordCounts,omitempty"`
	ProcedureSection  *ProcedureSection  `json:"procedureSection,omitempty"`
	WordCount         int                `json:"wordCount"`
	ContentHash       string             `json:"contentHash,omitempty"`

	// Derived metrics.
	RichnessScore     float64 `json:"richnessScore"`
	Diagnosis         string  `json:"diagnosis"`
	RankingDriver     string  `json:"rankingDriver"`
	RankingDriverNote string  `json:"rankingDriverNote"`

	// Authority metrics.
	Authority        Authority `json:"authority"`
	AuthorityMatched bool      `json:"authorityMatched"`

	// Fetch status.
	Scraped            bool   `json:"scraped"`
	ScrapeFailed       bool   `json:"scrapeFailed"`
	FetchError         string `json:"fetchError,omitempty"`
	JSRenderingFlagged bool   `json:"jsRenderingFlagged"`
}

// Qualifying reports whether the page enters the content-coverage
// matrix and section clustering.
func (p *Page) Qualifying() bool {
	return p.Type == PageTypeServicePage || p.Type == PageTypeProcedureLocation
}

// Label returns the short page identifier used in reports, e.g.
// "Dallas #1".
func (p *Page) Label() string {
	return p.Locality + " #" + strconv.Itoa(p.Position)
}

// JSRenderWordThreshold is the visible word count below which a
// successfully fetched page is flagged as likely requiring JavaScript
// rendering. Flagged pages are never rendered, only marked.
const JSRenderWordThreshold = 200

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs the network retrieval and returns the raw HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter rate limits outbound requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain,
	// or the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// Extraction holds everything pulled from one fetched document.
type Extraction struct {
	Structure         Structure
	Hero              Hero
	Elements          ElementMap
	InternalLinks     []Link
	SectionWordCounts []SectionWordCount
	ProcedureSection  *ProcedureSection
	VisibleText       string
	WordCount         int
	ContentHash       string
}

// Extractor turns raw HTML into structured signals. Implementations
// must be total over their input: malformed or empty markup yields an
// Extraction with absent fields rather than an error.
type Extractor interface {
	Extract(html string, pageURL string) (*Extraction, error)
}

// AuthorityProvider supplies backlink metrics keyed by normalized URL.
type AuthorityProvider interface {
	// Lookup returns the authority metrics for a URL and whether the
	// provider had data for it.
	Lookup(url string) (Authority, bool)
}
