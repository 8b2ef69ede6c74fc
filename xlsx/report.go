// Package xlsx renders analysis runs into multi-tab Excel workbooks
// using excelize.
package xlsx

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fwojciec/serplens"
)

// Ensure ReportWriter implements serplens.ReportWriter.
var _ serplens.ReportWriter = (*ReportWriter)(nil)

// ReportWriter builds the competitive-analysis workbook: one tab per
// deliverable, from the content matrix down to the raw data dump.
type ReportWriter struct{}

// NewReportWriter creates a new ReportWriter.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// ReportFilename is the conventional workbook name for a run, e.g.
// "LASIK_competitive_analysis_2026-08-25_<id>.xlsx".
func ReportFilename(run *serplens.Run) string {
	date := run.CreatedAt
	if date.IsZero() {
		date = time.Now()
	}
	suffix := ""
	if run.ID != "" {
		suffix = "_" + run.ID
	}
	return fmt.Sprintf("%s_competitive_analysis_%s%s.xlsx",
		run.Procedure, date.Format("2006-01-02"), suffix)
}

// fills used for presence and diagnosis coloring.
const (
	colorGreen     = "C6EFCE"
	colorRed       = "FFC7CE"
	colorYellow    = "FFEB9C"
	colorGold      = "FFD700"
	colorBlue      = "BDD7EE"
	colorOrange    = "F4B183"
	colorLightBlue = "D6EAF8"
)

type styles struct {
	bold      int
	green     int
	red       int
	yellow    int
	gold      int
	lightBlue int
	diagnosis map[string]int
}

// Write renders the run to an xlsx workbook at path.
func (w *ReportWriter) Write(run *serplens.Run, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := buildStyles(f)
	if err != nil {
		return serplens.Errorf(serplens.EINTERNAL, "failed to build styles: %v", err)
	}

	qualifying := serplens.QualifyingPages(run.Pages)
	if len(qualifying) == 0 {
		// No Service or Procedure+Location pages at all; the matrix
		// still renders over everything rather than coming out blank.
		qualifying = run.Pages
	}

	if err := w.writeContentMatrix(f, st, run, qualifying); err != nil {
		return err
	}
	if err := w.writeSectionOrder(f, st, run, qualifying); err != nil {
		return err
	}
	if err := w.writeSectionWordCounts(f, st, qualifying); err != nil {
		return err
	}
	if err := w.writeAuthorityProfile(f, st, run); err != nil {
		return err
	}
	if err := w.writeAboveTheFold(f, st, run); err != nil {
		return err
	}
	if err := w.writeSectionIntelligence(f, st, run); err != nil {
		return err
	}
	if err := w.writeTechnology(f, st, run); err != nil {
		return err
	}
	if err := w.writePageTypeSummary(f, st, run); err != nil {
		return err
	}
	if err := w.writeRawData(f, st, run); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return serplens.Errorf(serplens.EINTERNAL, "failed to save workbook: %v", err)
	}
	return nil
}

func buildStyles(f *excelize.File) (*styles, error) {
	fill := func(color string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	green, err := fill(colorGreen)
	if err != nil {
		return nil, err
	}
	red, err := fill(colorRed)
	if err != nil {
		return nil, err
	}
	yellow, err := fill(colorYellow)
	if err != nil {
		return nil, err
	}
	gold, err := fill(colorGold)
	if err != nil {
		return nil, err
	}
	blue, err := fill(colorBlue)
	if err != nil {
		return nil, err
	}
	orange, err := fill(colorOrange)
	if err != nil {
		return nil, err
	}
	lightBlue, err := fill(colorLightBlue)
	if err != nil {
		return nil, err
	}

	return &styles{
		bold:      bold,
		green:     green,
		red:       red,
		yellow:    yellow,
		gold:      gold,
		lightBlue: lightBlue,
		diagnosis: map[string]int{
			serplens.DiagnosisContentGap:   blue,
			serplens.DiagnosisAuthorityGap: orange,
			serplens.DiagnosisBoth:         red,
			serplens.DiagnosisCompetitive:  green,
		},
	}, nil
}

// newSheet creates (or renames to) a sheet with a bold frozen header row.
func newSheet(f *excelize.File, name string, headers []any, st *styles) error {
	if name == "Master Content Matrix" {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return err
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := f.SetSheetRow(name, "A1", &headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", last, st.bold); err != nil {
		return err
	}
	return f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// presenceValue renders an element for the matrix. Partial means the
// detector captured evidence without marking the element present.
func presenceValue(el serplens.Element) string {
	if el.Present {
		return "✅ Present"
	}
	if el.HasMetadata() {
		return "⚠️ Partial"
	}
	return "❌ Absent"
}

func (w *ReportWriter) writeContentMatrix(f *excelize.File, st *styles, run *serplens.Run, qualifying []*serplens.Page) error {
	const sheet = "Master Content Matrix"

	headers := []any{"Content Element", "Count", "%", "Wireframe Priority"}
	for _, p := range qualifying {
		headers = append(headers, fmt.Sprintf("%s (%s)", p.Label(), p.Type))
	}
	if err := newSheet(f, sheet, headers, st); err != nil {
		return err
	}

	coverage := make(map[serplens.ElementKey]serplens.CoverageRow)
	if run.Analysis != nil {
		for _, row := range run.Analysis.Coverage {
			coverage[row.Key] = row
		}
	}

	for i, key := range serplens.ElementKeys() {
		row := i + 2
		cov := coverage[key]
		values := []any{
			serplens.ElementDisplayName[key],
			cov.Count,
			fmt.Sprintf("%v%%", cov.Percentage),
			cov.WireframePriority,
		}
		for _, p := range qualifying {
			values = append(values, presenceValue(p.Elements[key]))
		}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}

		if cov.TopRankDifferentiator {
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetCellStyle(sheet, cell, cell, st.gold); err != nil {
				return err
			}
		}
		for c, p := range qualifying {
			cell, err := excelize.CoordinatesToCellName(c+5, row)
			if err != nil {
				return err
			}
			var style int
			switch presenceValue(p.Elements[key]) {
			case "✅ Present":
				style = st.green
			case "⚠️ Partial":
				style = st.yellow
			default:
				style = st.red
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *ReportWriter) writeSectionOrder(f *excelize.File, st *styles, run *serplens.Run, qualifying []*serplens.Page) error {
	const sheet = "Section Order Map"

	headers := []any{"Position"}
	for _, p := range qualifying {
		headers = append(headers, p.Label())
	}
	headers = append(headers, "Consensus Order")
	if err := newSheet(f, sheet, headers, st); err != nil {
		return err
	}

	if run.Analysis == nil {
		return nil
	}
	order := run.Analysis.SectionOrder
	consensus := run.Analysis.ConsensusOrder

	for pos := 0; pos < len(order); pos++ {
		byLabel := order[pos]
		row := pos + 2
		values := []any{fmt.Sprintf("H2 #%d", pos+1)}
		for _, p := range qualifying {
			values = append(values, byLabel[p.Label()])
		}
		if pos < len(consensus) {
			values = append(values, consensus[pos])
		}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}

		// Highlight headings shared by three or more pages at this slot.
		counts := make(map[string]int)
		for _, v := range byLabel {
			counts[v]++
		}
		for c, p := range qualifying {
			v := byLabel[p.Label()]
			if v == "" || counts[v] < 3 {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+2, row)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, st.lightBlue); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *ReportWriter) writeSectionWordCounts(f *excelize.File, st *styles, qualifying []*serplens.Page) error {
	const sheet = "Section Word Counts"

	if err := newSheet(f, sheet, []any{"Page", "Position", "H2 Text", "Word Count"}, st); err != nil {
		return err
	}

	row := 2
	for _, p := range qualifying {
		for _, sec := range p.SectionWordCounts {
			if err := setRow(f, sheet, row, []any{p.Label(), sec.Position, sec.H2Text, sec.Words}); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func (w *ReportWriter) writeAuthorityProfile(f *excelize.File, st *styles, run *serplens.Run) error {
	const sheet = "Authority Profile"

	headers := []any{
		"City", "Position", "URL", "Page Type", "Classification Confidence",
		"Domain Rating", "URL Rating", "Referring Domains", "Backlinks",
		"Organic Traffic", "Content Richness Score", "Diagnosis", "Notes",
	}
	if err := newSheet(f, sheet, headers, st); err != nil {
		return err
	}

	for i, p := range run.Pages {
		row := i + 2
		var notes []string
		if p.Type == serplens.PageTypeHomepage {
			notes = append(notes, "Homepage ranking — authority driven")
		}
		if p.Type == serplens.PageTypeGeoPage {
			notes = append(notes, "Geo page ranking — different intent")
		}
		if p.JSRenderingFlagged {
			notes = append(notes, "⚠️ May require JS rendering")
		}
		values := []any{
			p.Locality, p.Position, truncate(p.URL, 80), string(p.Type), string(p.Confidence),
			p.Authority.DomainRating, p.Authority.URLRating, p.Authority.ReferringDomains,
			p.Authority.Backlinks, p.Authority.OrganicTraffic,
			p.RichnessScore, p.Diagnosis, strings.Join(notes, " "),
		}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		if style, ok := st.diagnosis[p.Diagnosis]; ok {
			cell, err := excelize.CoordinatesToCellName(12, row)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *ReportWriter) writeAboveTheFold(f *excelize.File, st *styles, run *serplens.Run) error {
	const sheet = "Above The Fold - Mobile"

	headers := []any{
		"City", "Position", "URL", "Page Type", "Hero Headline", "Hero Subheadline",
		"Primary CTA Text", "CTA Location", "Has Trust Badge in Hero", "Has Video in Hero",
		"Has Background Image", "First Impression Summary",
	}
	if err := newSheet(f, sheet, headers, st); err != nil {
		return err
	}

	for i, p := range run.Pages {
		ctaLocation := ""
		if p.Hero.CTAText != "" {
			ctaLocation = "in hero"
		}
		values := []any{
			p.Locality, p.Position, truncate(p.URL, 60), string(p.Type),
			p.Hero.Headline, truncate(p.Hero.Subheadline, 100),
			p.Hero.CTAText, ctaLocation,
			yesNo(p.Hero.HasTrustBadge), yesNo(p.Hero.HasVideo), yesNo(p.Hero.HasBackgroundImage),
			fmt.Sprintf("Headline: %s...", truncate(p.Hero.Headline, 50)),
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writeSectionIntelligence(f *excelize.File, st *styles, run *serplens.Run) error {
	const sheet = "Section Intelligence"

	headers := []any{
		"Section Topic", "Pages Containing It", "Position 1 Pages That Include It",
		"Typical Position on Page", "Estimated Word Count Range", "Wireframe Recommendation",
	}
	if err := newSheet(f, sheet, headers, st); err != nil {
		return err
	}

	if run.Analysis == nil {
		return nil
	}
	for i, si := range run.Analysis.SectionIntelligence {
		values := []any{
			si.Topic, si.PagesContaining, si.TopRankInclude,
			si.TypicalPosition, si.WordCountRange, si.Recommendation,
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writeTechnology(f *excelize.File, st *styles, run *serplens.Run) error {
	const sheet = "Technology & Differentiation"

	headers := []any{
		"City", "Position", "URL", "Page Type", "Technologies Mentioned",
		"Credential Claims", "Statistical Claims", "Financing Mentioned", "Unique Differentiators",
	}
	if err := newSheet(f, sheet, headers, st); err != nil {
		return err
	}

	for i, p := range run.Pages {
		claims := p.Elements[serplens.ElementOutcomeStatistics].Claims
		if len(claims) > 3 {
			claims = claims[:3]
		}
		values := []any{
			p.Locality, p.Position, truncate(p.URL, 60), string(p.Type),
			strings.Join(p.Elements[serplens.ElementTechnologyNames].Found, ", "),
			truncate(p.Elements[serplens.ElementSurgeonCredentials].ExactText, 200),
			strings.Join(claims, " | "),
			yesNo(p.Elements[serplens.ElementFinancing].Present),
			"",
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writePageTypeSummary(f *excelize.File, st *styles, run *serplens.Run) error {
	const sheet = "Page Type Summary"

	headers := []any{
		"City", "Position", "URL", "Detected Page Type", "Classification Confidence",
		"URL Signal", "Content Signal", "Final Classification", "Wireframe Weight", "Notes",
	}
	if err := newSheet(f, sheet, headers, st); err != nil {
		return err
	}

	for i, p := range run.Pages {
		var notes []string
		if p.JSRenderingFlagged {
			notes = append(notes, "⚠️ May require JS rendering")
		}
		if p.Type == serplens.PageTypeHomepage {
			notes = append(notes, "Homepage ranking — domain authority likely the primary ranking factor")
		}
		values := []any{
			p.Locality, p.Position, truncate(p.URL, 60), string(p.Type), string(p.Confidence),
			p.URLSignal, p.ContentSignal, string(p.Type), p.Wireframe, strings.Join(notes, " "),
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writeRawData(f *excelize.File, st *styles, run *serplens.Run) error {
	const sheet = "Raw Data"

	headers := []any{
		"city", "position", "url", "page_type", "page_title", "meta_description",
		"h1", "word_count", "domain_rating", "url_rating", "content_richness_score", "diagnosis",
		"js_rendering_flagged", "scrape_failed", "faq", "testimonials", "surgeon_credentials",
		"technology", "online_scheduling", "outcome_stats",
	}
	if err := newSheet(f, sheet, headers, st); err != nil {
		return err
	}

	for i, p := range run.Pages {
		values := []any{
			p.Locality, p.Position, p.URL, string(p.Type), p.Title, p.MetaDescription,
			p.Structure.H1, p.WordCount, p.Authority.DomainRating, p.Authority.URLRating,
			p.RichnessScore, p.Diagnosis,
			yesNo(p.JSRenderingFlagged), yesNo(p.ScrapeFailed),
			yesNo(p.Elements[serplens.ElementFAQSection].Present),
			yesNo(p.Elements[serplens.ElementTestimonials].Present),
			yesNo(p.Elements[serplens.ElementSurgeonCredentials].Present),
			strings.Join(p.Elements[serplens.ElementTechnologyNames].Found, ","),
			yesNo(p.Elements[serplens.ElementOnlineScheduling].Present),
			yesNo(p.Elements[serplens.ElementOutcomeStatistics].Present),
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
