package serplens

import (
	"fmt"
	"math"
	"sort"
)

// Wireframe priorities for the content-coverage matrix.
const (
	PriorityDifferentiator = "Differentiator"
	PriorityMustHave       = "Must Have"
	PriorityConsider       = "Consider"
	PriorityGapOpportunity = "Gap Opportunity"
)

// SectionGroup is a cluster of equivalent heading-2 texts collected
// across qualifying pages. The label is the first heading text that
// started the group; members are kept in insertion order and never
// migrate to another group.
type SectionGroup struct {
	Label   string   `json:"label"`
	Members []string `json:"members"`
}

// SectionGrouper clusters heading texts and picks consensus values.
type SectionGrouper interface {
	// Group clusters titles into section groups. The result depends on
	// input order: group labels are fixed by first arrival.
	Group(titles []string) []SectionGroup

	// Consensus returns the representative value for one heading
	// position by majority similarity vote. Empty input returns "".
	Consensus(values []string) string
}

// CoverageRow is one element's row in the content-coverage matrix.
type CoverageRow struct {
	Key                   ElementKey `json:"key"`
	Element               string     `json:"element"`
	Count                 string     `json:"count"` // e.g. "4 of 6"
	Percentage            float64    `json:"percentage"`
	TopRankDifferentiator bool       `json:"topRankDifferentiator"`
	WireframePriority     string     `json:"wireframePriority"`
}

// Differentiator is an element present on every top-rank qualifying
// page and missing from at least one lower-ranked one.
type Differentiator struct {
	Element string `json:"element"`
	Summary string `json:"summary"`
}

// SectionIntelligence summarizes one section group for the wireframe.
type SectionIntelligence struct {
	Topic           string `json:"topic"`
	PagesContaining int    `json:"pagesContaining"`
	TopRankInclude  int    `json:"topRankInclude"`
	TypicalPosition string `json:"typicalPosition"`
	WordCountRange  string `json:"wordCountRange"`
	Recommendation  string `json:"recommendation"`
}

// Analysis is the aggregate result over all page records for one run.
// It is built once, after every page is classified, scored, and
// diagnosed, and is read-only afterward.
type Analysis struct {
	Procedure       string `json:"procedure"`
	TotalPages      int    `json:"totalPages"`
	QualifyingPages int    `json:"qualifyingPages"`

	Coverage         []CoverageRow    `json:"coverage"`
	Differentiators  []Differentiator `json:"differentiators"`
	AuthorityDriven  []string         `json:"authorityDriven"`
	GapOpportunities []string         `json:"gapOpportunities"`

	// SectionOrder maps a 0-based H2 position index to page label ->
	// heading text at that position.
	SectionOrder        map[int]map[string]string `json:"sectionOrder"`
	ConsensusOrder      []string                  `json:"consensusOrder"`
	SectionGroups       []SectionGroup            `json:"sectionGroups"`
	SectionIntelligence []SectionIntelligence     `json:"sectionIntelligence"`
}

// QualifyingPages filters to the pages that enter the coverage matrix
// and section clustering.
func QualifyingPages(pages []*Page) []*Page {
	var qualifying []*Page
	for _, p := range pages {
		if p.Qualifying() {
			qualifying = append(qualifying, p)
		}
	}
	return qualifying
}

// BuildAnalysis aggregates frozen page records into the run-level
// analysis. Every page must already be classified, scored, and
// diagnosed; BuildAnalysis never mutates a page.
func BuildAnalysis(pages []*Page, cfg Config, grouper SectionGrouper) *Analysis {
	qualifying := QualifyingPages(pages)

	a := &Analysis{
		Procedure:       cfg.Procedure,
		TotalPages:      len(pages),
		QualifyingPages: len(qualifying),
		SectionOrder:    make(map[int]map[string]string),
	}

	for _, p := range pages {
		if p.IsTopRank && (p.Type == PageTypeGeoPage || p.Type == PageTypeHomepage) {
			a.AuthorityDriven = append(a.AuthorityDriven,
				fmt.Sprintf("%s #%d is a %s — content optimization alone will not outrank it", p.Locality, p.Position, p.Type))
		}
	}

	a.buildCoverage(qualifying)
	a.buildSections(qualifying, grouper)

	return a
}

func (a *Analysis) buildCoverage(qualifying []*Page) {
	for _, key := range ElementKeys() {
		var present, topHas, topTotal, otherAbsent, otherTotal int
		for _, p := range qualifying {
			has := p.Elements[key].Present
			if has {
				present++
			}
			if p.IsTopRank {
				topTotal++
				if has {
					topHas++
				}
			} else {
				otherTotal++
				if !has {
					otherAbsent++
				}
			}
		}

		var pct float64
		if len(qualifying) > 0 {
			pct = math.Round(1000*float64(present)/float64(len(qualifying))) / 10
		}
		isDiff := topTotal > 0 && topHas == topTotal && otherTotal > 0 && otherAbsent > 0

		priority := PriorityConsider
		switch {
		case isDiff:
			priority = PriorityDifferentiator
		case pct > 50:
			priority = PriorityMustHave
		}
		if present == 0 {
			priority = PriorityGapOpportunity
			a.GapOpportunities = append(a.GapOpportunities, ElementDisplayName[key])
		}

		a.Coverage = append(a.Coverage, CoverageRow{
			Key:                   key,
			Element:               ElementDisplayName[key],
			Count:                 fmt.Sprintf("%d of %d", present, len(qualifying)),
			Percentage:            pct,
			TopRankDifferentiator: isDiff,
			WireframePriority:     priority,
		})

		if isDiff {
			a.Differentiators = append(a.Differentiators, Differentiator{
				Element: ElementDisplayName[key],
				Summary: fmt.Sprintf("present on %d of %d position 1 pages, absent on %d of %d others",
					topHas, topTotal, otherAbsent, otherTotal),
			})
		}
	}
}

func (a *Analysis) buildSections(qualifying []*Page, grouper SectionGrouper) {
	// Position matrix: H2 text per (position index, page).
	var allH2s []string
	for _, p := range qualifying {
		label := p.Label()
		for i, h2 := range p.Structure.H2Texts() {
			if a.SectionOrder[i] == nil {
				a.SectionOrder[i] = make(map[string]string)
			}
			a.SectionOrder[i][label] = h2
			if h2 != "" {
				allH2s = append(allH2s, h2)
			}
		}
	}

	a.SectionGroups = grouper.Group(allH2s)

	// Consensus per position index across pages.
	positions := make([]int, 0, len(a.SectionOrder))
	for i := range a.SectionOrder {
		positions = append(positions, i)
	}
	sort.Ints(positions)
	for _, i := range positions {
		var values []string
		for _, p := range qualifying {
			h2s := p.Structure.H2Texts()
			if i < len(h2s) && h2s[i] != "" {
				values = append(values, h2s[i])
			}
		}
		if len(values) > 0 {
			a.ConsensusOrder = append(a.ConsensusOrder, grouper.Consensus(values))
		}
	}

	// Section intelligence per group.
	for _, group := range a.SectionGroups {
		memberSet := make(map[string]struct{}, len(group.Members))
		for _, m := range group.Members {
			memberSet[m] = struct{}{}
		}
		topInclude := 0
		for _, p := range qualifying {
			if !p.IsTopRank {
				continue
			}
			for _, h2 := range p.Structure.H2Texts() {
				if _, ok := memberSet[h2]; ok {
					topInclude++
					break
				}
			}
		}
		rec := PriorityConsider
		if len(group.Members) >= len(qualifying)/2 {
			rec = "Include"
		}
		a.SectionIntelligence = append(a.SectionIntelligence, SectionIntelligence{
			Topic:           group.Label,
			PagesContaining: len(group.Members),
			TopRankInclude:  topInclude,
			TypicalPosition: PositionEarly,
			WordCountRange:  "varies",
			Recommendation:  rec,
		})
	}
}
