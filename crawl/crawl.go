// Package crawl orchestrates a competitive analysis run: SERP
// acquisition, concurrent page fetching, extraction, reclassification,
// authority enrichment, scoring, and aggregation.
package crawl

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/serplens"
)

// DefaultConcurrency is the fetch worker limit when none is configured.
const DefaultConcurrency = 5

// ProcedureSectionExtractor is implemented by extractors that can also
// capture the homepage procedure block.
type ProcedureSectionExtractor interface {
	ExtractWithProcedureSection(html, pageURL string) (*serplens.Extraction, error)
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Runner executes analysis runs. All dependencies are interfaces; the
// zero value of the optional ones degrades gracefully (no authority
// provider means every page reports unmatched authority).
type Runner struct {
	SERP        serplens.SERPService
	Fetcher     serplens.Fetcher
	Extractor   serplens.Extractor
	Authority   serplens.AuthorityProvider
	Grouper     serplens.SectionGrouper
	RateLimiter serplens.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// Run executes one complete analysis for the config. Page records
// degrade individually: a failed fetch or a locality with no SERP data
// never aborts the run. The returned run has no ID; persistence assigns
// one.
func (r *Runner) Run(ctx context.Context, cfg serplens.Config, progress ProgressFunc) (*serplens.Run, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results, err := r.search(ctx, cfg, progress)
	if err != nil {
		return nil, err
	}

	pages := make([]*serplens.Page, len(results))
	for i, res := range results {
		pages[i] = serplens.NewPage(res, serplens.ClassifyURL(res.URL, cfg))
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(pages)})
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var completed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, page := range pages {
		g.Go(func() error {
			r.processPage(gctx, page, cfg)
			done := int(completed.Add(1))
			if progress != nil {
				ev := ProgressEvent{Type: ProgressCompleted, Completed: done, Total: len(pages), URL: page.URL}
				if page.ScrapeFailed {
					ev.Type = ProgressFailed
					ev.Error = serplens.Errorf(serplens.EUNAVAILABLE, "%s", page.FetchError)
				}
				progress(ev)
			}
			return nil
		})
	}
	// Aggregation reads every page record, so nothing below this
	// barrier may run before all workers finish.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	run := &serplens.Run{
		Procedure: cfg.Procedure,
		Keyword:   cfg.Procedure,
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
		Pages:     pages,
		Analysis:  serplens.BuildAnalysis(pages, cfg, r.Grouper),
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: len(pages), Total: len(pages)})
	}
	return run, nil
}

// search queries the SERP provider once per locality. A locality whose
// query fails is skipped; a run with no results at all is an error.
func (r *Runner) search(ctx context.Context, cfg serplens.Config, progress ProgressFunc) ([]serplens.SERPResult, error) {
	var results []serplens.SERPResult
	var lastErr error
	for _, loc := range cfg.Localities {
		query := cfg.Procedure + " " + loc.City
		rs, err := r.SERP.Search(ctx, query, loc, cfg.NumResults)
		if err != nil {
			lastErr = err
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: query, Error: err})
			}
			continue
		}
		results = append(results, rs...)
	}
	if len(results) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, serplens.Errorf(serplens.ENOTFOUND, "no organic results for %q in any locality", cfg.Procedure)
	}
	return results, nil
}

// processPage runs the per-page pipeline in place. Fetch and extraction
// failures degrade the record; scoring and diagnosis always run so
// failed pages still carry a coherent diagnosis.
func (r *Runner) processPage(ctx context.Context, page *serplens.Page, cfg serplens.Config) {
	html, err := r.fetch(ctx, page.URL)
	if err != nil {
		page.ScrapeFailed = true
		page.FetchError = serplens.ErrorMessage(err)
	} else if err := r.extract(page, html, cfg); err != nil {
		page.ScrapeFailed = true
		page.FetchError = serplens.ErrorMessage(err)
	} else {
		page.Scraped = true
		page.JSRenderingFlagged = page.WordCount < serplens.JSRenderWordThreshold
	}

	r.enrichAuthority(page)

	page.RichnessScore = serplens.RichnessScore(page.Elements)
	dr := serplens.ParseRating(page.Authority.DomainRating)
	page.Diagnosis = serplens.Diagnose(dr, page.RichnessScore)
	page.RankingDriver, page.RankingDriverNote = serplens.AssessRankingDriver(page)
}

func (r *Runner) fetch(ctx context.Context, pageURL string) (string, error) {
	if r.RateLimiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return "", serplens.Errorf(serplens.EINVALID, "invalid URL %q: %v", pageURL, err)
		}
		if err := r.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, pageURL, r.Fetcher.Fetch, nil, delays)
}

func (r *Runner) extract(page *serplens.Page, html string, cfg serplens.Config) error {
	var ex *serplens.Extraction
	var err error

	pse, capturable := r.Extractor.(ProcedureSectionExtractor)
	if capturable && cfg.CaptureHomepageSection && page.PrelimType == serplens.PageTypeHomepage {
		ex, err = pse.ExtractWithProcedureSection(html, page.URL)
	} else {
		ex, err = r.Extractor.Extract(html, page.URL)
	}
	if err != nil {
		return err
	}

	page.Structure = ex.Structure
	page.Hero = ex.Hero
	page.Elements = ex.Elements
	page.InternalLinks = ex.InternalLinks
	page.SectionWordCounts = ex.SectionWordCounts
	page.ProcedureSection = ex.ProcedureSection
	page.WordCount = ex.WordCount
	page.ContentHash = ex.ContentHash

	cc := serplens.ReclassifyContent(serplens.ContentSnapshot{
		PrelimType:       page.PrelimType,
		PrelimConfidence: page.PrelimConfidence,
		Structure:        page.Structure,
		Elements:         page.Elements,
		WordCount:        page.WordCount,
	}, cfg)
	page.Type = cc.Type
	page.Confidence = cc.Confidence
	page.ContentSignal = cc.Signal
	page.Wireframe = cc.Wireframe

	return nil
}

func (r *Runner) enrichAuthority(page *serplens.Page) {
	if r.Authority != nil {
		if a, ok := r.Authority.Lookup(page.URL); ok {
			page.Authority = a
			page.AuthorityMatched = true
			return
		}
	}
	page.Authority = serplens.UnmatchedAuthority()
}
