package xlsx_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fwojciec/serplens"
	"github.com/fwojciec/serplens/xlsx"
)

func testReportRun() *serplens.Run {
	service := &serplens.Page{
		URL:        "https://dallaseye.com/lasik",
		Locality:   "Dallas",
		Position:   1,
		IsTopRank:  true,
		Type:       serplens.PageTypeServicePage,
		Confidence: serplens.ConfidenceHigh,
		Structure: serplens.Structure{
			H1:  "LASIK Eye Surgery in Dallas",
			H2s: []serplens.H2Section{{Text: "Why Choose Us"}},
		},
		Hero: serplens.Hero{
			Headline:           "LASIK Eye Surgery in Dallas",
			Subheadline:        "Board certified surgeons",
			CTAText:            "Schedule a Consultation",
			HasBackgroundImage: true,
		},
		Elements: serplens.ElementMap{
			serplens.ElementCTAButtons:         {Present: true, Position: serplens.PositionEarly},
			serplens.ElementSurgeonCredentials: {ExactText: "Dr. Smith is a board certified ophthalmologist."},
			serplens.ElementTechnologyNames:    {Present: true, Found: []string{"Contoura"}},
			serplens.ElementOutcomeStatistics:  {Present: true, Claims: []string{"over 50,000 procedures"}},
		},
		SectionWordCounts: []serplens.SectionWordCount{
			{Position: 1, H2Text: "Why Choose Us", Words: 240},
		},
		WordCount:     950,
		RichnessScore: 4.2,
		Diagnosis:     serplens.DiagnosisContentGap,
		Authority:     serplens.Authority{DomainRating: "72", URLRating: "35"},
		Scraped:       true,
	}
	homepage := &serplens.Page{
		URL:        "https://chicagovision.com/",
		Locality:   "Chicago",
		Position:   1,
		IsTopRank:  true,
		Type:       serplens.PageTypeHomepage,
		Confidence: serplens.ConfidenceHigh,
		Elements:   serplens.ElementMap{},
		Diagnosis:  serplens.DiagnosisBoth,
		Authority:  serplens.UnmatchedAuthority(),
		Scraped:    true,
	}
	return &serplens.Run{
		ID:        "run-1",
		Procedure: "LASIK",
		Keyword:   "LASIK",
		CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		Pages:     []*serplens.Page{service, homepage},
		Analysis: &serplens.Analysis{
			Procedure:       "LASIK",
			TotalPages:      2,
			QualifyingPages: 1,
			Coverage: []serplens.CoverageRow{
				{
					Key:                   serplens.ElementCTAButtons,
					Element:               "CTA Buttons",
					Count:                 "1 of 1",
					Percentage:            100,
					TopRankDifferentiator: true,
					WireframePriority:     "Differentiator",
				},
			},
			SectionOrder: map[int]map[string]string{
				0: {"Dallas #1": "Why Choose Us"},
			},
			ConsensusOrder: []string{"Why Choose Us"},
			SectionIntelligence: []serplens.SectionIntelligence{
				{
					Topic:           "Why Choose Us",
					PagesContaining: 1,
					TopRankInclude:  1,
					TypicalPosition: "1",
					WordCountRange:  "240-240",
					Recommendation:  "Include",
				},
			},
		},
	}
}

func TestReportWriter_Write(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.xlsx")
	run := testReportRun()

	require.NoError(t, xlsx.NewReportWriter().Write(run, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	t.Run("creates all tabs", func(t *testing.T) {
		assert.Equal(t, []string{
			"Master Content Matrix",
			"Section Order Map",
			"Section Word Counts",
			"Authority Profile",
			"Above The Fold - Mobile",
			"Section Intelligence",
			"Technology & Differentiation",
			"Page Type Summary",
			"Raw Data",
		}, f.GetSheetList())
	})

	t.Run("content matrix covers qualifying pages only", func(t *testing.T) {
		cell := func(ref string) string {
			v, err := f.GetCellValue("Master Content Matrix", ref)
			require.NoError(t, err)
			return v
		}

		assert.Equal(t, "Content Element", cell("A1"))
		assert.Equal(t, "Dallas #1 (Service Page)", cell("E1"))
		assert.Equal(t, "", cell("F1")) // the homepage does not qualify

		// Rows follow the canonical element order.
		assert.Equal(t, "CTA Buttons", cell("A2"))
		assert.Equal(t, "1 of 1", cell("B2"))
		assert.Equal(t, "100%", cell("C2"))
		assert.Equal(t, "Differentiator", cell("D2"))
		assert.Equal(t, "✅ Present", cell("E2"))

		// Credentials carry exact text without presence, so partial.
		assert.Equal(t, "Surgeon Credentials", cell("A9"))
		assert.Equal(t, "⚠️ Partial", cell("E9"))

		// FAQ has no evidence at all.
		assert.Equal(t, "FAQ Section", cell("A4"))
		assert.Equal(t, "❌ Absent", cell("E4"))
	})

	t.Run("section order map includes consensus column", func(t *testing.T) {
		v, err := f.GetCellValue("Section Order Map", "A2")
		require.NoError(t, err)
		assert.Equal(t, "H2 #1", v)
		v, err = f.GetCellValue("Section Order Map", "B2")
		require.NoError(t, err)
		assert.Equal(t, "Why Choose Us", v)
		v, err = f.GetCellValue("Section Order Map", "C2")
		require.NoError(t, err)
		assert.Equal(t, "Why Choose Us", v)
	})

	t.Run("section word counts list qualifying sections", func(t *testing.T) {
		v, err := f.GetCellValue("Section Word Counts", "A2")
		require.NoError(t, err)
		assert.Equal(t, "Dallas #1", v)
		v, err = f.GetCellValue("Section Word Counts", "D2")
		require.NoError(t, err)
		assert.Equal(t, "240", v)
	})

	t.Run("authority profile reports diagnosis and notes", func(t *testing.T) {
		v, err := f.GetCellValue("Authority Profile", "F2")
		require.NoError(t, err)
		assert.Equal(t, "72", v)
		v, err = f.GetCellValue("Authority Profile", "L2")
		require.NoError(t, err)
		assert.Equal(t, serplens.DiagnosisContentGap, v)
		v, err = f.GetCellValue("Authority Profile", "M3")
		require.NoError(t, err)
		assert.Contains(t, v, "Homepage ranking")
	})

	t.Run("above the fold captures hero details", func(t *testing.T) {
		v, err := f.GetCellValue("Above The Fold - Mobile", "E2")
		require.NoError(t, err)
		assert.Equal(t, "LASIK Eye Surgery in Dallas", v)
		v, err = f.GetCellValue("Above The Fold - Mobile", "H2")
		require.NoError(t, err)
		assert.Equal(t, "in hero", v)
		v, err = f.GetCellValue("Above The Fold - Mobile", "K2")
		require.NoError(t, err)
		assert.Equal(t, "Yes", v)
	})

	t.Run("technology tab joins claims", func(t *testing.T) {
		v, err := f.GetCellValue("Technology & Differentiation", "E2")
		require.NoError(t, err)
		assert.Equal(t, "Contoura", v)
		v, err = f.GetCellValue("Technology & Differentiation", "G2")
		require.NoError(t, err)
		assert.Equal(t, "over 50,000 procedures", v)
	})

	t.Run("raw data dumps every page", func(t *testing.T) {
		v, err := f.GetCellValue("Raw Data", "C2")
		require.NoError(t, err)
		assert.Equal(t, "https://dallaseye.com/lasik", v)
		v, err = f.GetCellValue("Raw Data", "C3")
		require.NoError(t, err)
		assert.Equal(t, "https://chicagovision.com/", v)
		v, err = f.GetCellValue("Raw Data", "D3")
		require.NoError(t, err)
		assert.Equal(t, "Homepage", v)
	})
}

func TestReportWriter_Write_NoQualifyingPages(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.xlsx")
	run := testReportRun()
	for _, p := range run.Pages {
		p.Type = serplens.PageTypeHomepage
	}

	require.NoError(t, xlsx.NewReportWriter().Write(run, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// With nothing qualifying the matrix falls back to all pages.
	v, err := f.GetCellValue("Master Content Matrix", "E1")
	require.NoError(t, err)
	assert.Equal(t, "Dallas #1 (Homepage)", v)
	v, err = f.GetCellValue("Master Content Matrix", "F1")
	require.NoError(t, err)
	assert.Equal(t, "Chicago #1 (Homepage)", v)
}

func TestReportFilename(t *testing.T) {
	t.Parallel()

	run := testReportRun()
	assert.Equal(t, "LASIK_competitive_analysis_2026-01-15_run-1.xlsx", xlsx.ReportFilename(run))

	run.ID = ""
	assert.Equal(t, "LASIK_competitive_analysis_2026-01-15.xlsx", xlsx.ReportFilename(run))
}
