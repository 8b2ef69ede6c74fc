package serplens_test

import (
	"testing"

	"github.com/fwojciec/serplens"
	"github.com/stretchr/testify/assert"
)

func testConfig() serplens.Config {
	return serplens.Config{
		Procedure: "LASIK",
		Localities: []serplens.Locality{
			{City: "Dallas", State: "TX", Country: "United States"},
			{City: "Chicago", State: "IL", Country: "United States"},
		},
	}.WithDefaults()
}

func TestClassifyURL(t *testing.T) {
	t.Parallel()

	cfg := testConfig()

	tests := []struct {
		name       string
		url        string
		wantType   serplens.PageType
		wantConf   serplens.Confidence
		wantSignal string
	}{
		{
			name:       "root path is homepage",
			url:        "https://example.com/",
			wantType:   serplens.PageTypeHomepage,
			wantConf:   serplens.ConfidenceHigh,
			wantSignal: "No path or index",
		},
		{
			name:     "empty path is homepage",
			url:      "https://example.com",
			wantType: serplens.PageTypeHomepage,
			wantConf: serplens.ConfidenceHigh,
		},
		{
			name:     "index file is homepage",
			url:      "https://example.com/index.html",
			wantType: serplens.PageTypeHomepage,
			wantConf: serplens.ConfidenceHigh,
		},
		{
			name:       "blog folder is article",
			url:        "https://example.com/blog/lasik-recovery-tips",
			wantType:   serplens.PageTypeBlogArticle,
			wantConf:   serplens.ConfidenceHigh,
			wantSignal: "Blog/news/date pattern",
		},
		{
			name:     "news folder is article",
			url:      "https://example.com/news/announcement",
			wantType: serplens.PageTypeBlogArticle,
			wantConf: serplens.ConfidenceHigh,
		},
		{
			name:     "year segment is article",
			url:      "https://example.com/2024/05/lasik-update",
			wantType: serplens.PageTypeBlogArticle,
			wantConf: serplens.ConfidenceHigh,
		},
		{
			name:     "month-year segment is article",
			url:      "https://example.com/posts/jan-2024/update",
			wantType: serplens.PageTypeBlogArticle,
			wantConf: serplens.ConfidenceHigh,
		},
		{
			name:       "location folder is geo page",
			url:        "https://example.com/locations/dallas",
			wantType:   serplens.PageTypeGeoPage,
			wantConf:   serplens.ConfidenceMedium,
			wantSignal: "Location folder in path",
		},
		{
			name:       "procedure with two segments is procedure+location",
			url:        "https://example.com/lasik/dallas",
			wantType:   serplens.PageTypeProcedureLocation,
			wantConf:   serplens.ConfidenceMedium,
			wantSignal: "Procedure + location in path",
		},
		{
			name:       "procedure with one segment is service page",
			url:        "https://example.com/lasik",
			wantType:   serplens.PageTypeServicePage,
			wantConf:   serplens.ConfidenceMedium,
			wantSignal: "Procedure in path",
		},
		{
			name:       "unmatched path defaults to service page",
			url:        "https://example.com/about-us",
			wantType:   serplens.PageTypeServicePage,
			wantConf:   serplens.ConfidenceLow,
			wantSignal: "Default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := serplens.ClassifyURL(tt.url, cfg)

			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantConf, got.Confidence)
			if tt.wantSignal != "" {
				assert.Equal(t, tt.wantSignal, got.Signal)
			}
		})
	}

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		first := serplens.ClassifyURL("https://example.com/lasik/dallas", cfg)
		second := serplens.ClassifyURL("https://example.com/lasik/dallas", cfg)

		assert.Equal(t, first, second)
	})

	t.Run("geo folder wins over procedure keyword", func(t *testing.T) {
		t.Parallel()

		got := serplens.ClassifyURL("https://example.com/locations/dallas-lasik", cfg)

		assert.Equal(t, serplens.PageTypeGeoPage, got.Type)
	})
}

func TestReclassifyContent(t *testing.T) {
	t.Parallel()

	cfg := testConfig()

	t.Run("short city H1 with geo signal reclassifies to geo page", func(t *testing.T) {
		t.Parallel()

		// URL matched only the Service Page default rule, but the
		// content says location page.
		snap := serplens.ContentSnapshot{
			PrelimType:       serplens.PageTypeServicePage,
			PrelimConfidence: serplens.ConfidenceLow,
			Structure: serplens.Structure{
				H1: "LASIK in Dallas",
				H2s: []serplens.H2Section{
					{Text: "Our Offices"},
					{Text: "Contact Us"},
				},
			},
			WordCount: 150,
		}

		got := serplens.ReclassifyContent(snap, cfg)

		assert.Equal(t, serplens.PageTypeGeoPage, got.Type)
		assert.Equal(t, serplens.ConfidenceHigh, got.Confidence)
	})

	t.Run("no signals keeps preliminary classification", func(t *testing.T) {
		t.Parallel()

		snap := serplens.ContentSnapshot{
			PrelimType:       serplens.PageTypeServicePage,
			PrelimConfidence: serplens.ConfidenceMedium,
			Structure:        serplens.Structure{H1: "Better Vision Starts Here"},
			WordCount:        900,
		}

		got := serplens.ReclassifyContent(snap, cfg)

		assert.Equal(t, serplens.PageTypeServicePage, got.Type)
		assert.Equal(t, serplens.ConfidenceMedium, got.Confidence)
		assert.Equal(t, "Default", got.Signal)
	})

	t.Run("geo signal with no procedure mentions reclassifies to geo page", func(t *testing.T) {
		t.Parallel()

		snap := serplens.ContentSnapshot{
			PrelimType:       serplens.PageTypeServicePage,
			PrelimConfidence: serplens.ConfidenceMedium,
			Structure: serplens.Structure{
				H1: "Eye Care Across Texas",
				H2s: []serplens.H2Section{
					{Text: "Areas We Serve"},
					{Text: "Cataracts"},
					{Text: "Glaucoma"},
				},
			},
			WordCount: 800,
		}

		got := serplens.ReclassifyContent(snap, cfg)

		assert.Equal(t, serplens.PageTypeGeoPage, got.Type)
		assert.Equal(t, serplens.ConfidenceHigh, got.Confidence)
		assert.Contains(t, got.Signal, "Geo signal")
	})

	t.Run("procedure signal overrides preliminary geo page", func(t *testing.T) {
		t.Parallel()

		snap := serplens.ContentSnapshot{
			PrelimType:       serplens.PageTypeGeoPage,
			PrelimConfidence: serplens.ConfidenceMedium,
			Structure: serplens.Structure{
				H1: "Advanced Vision Center",
				H2s: []serplens.H2Section{
					{Text: "What Is LASIK"},
					{Text: "Recovery"},
				},
			},
			WordCount: 1200,
		}

		got := serplens.ReclassifyContent(snap, cfg)

		assert.Equal(t, serplens.PageTypeServicePage, got.Type)
		assert.Equal(t, serplens.ConfidenceHigh, got.Confidence)
		assert.Contains(t, got.Signal, "Procedure signal")
	})

	t.Run("geo page with location H1 and clinical content becomes procedure+location", func(t *testing.T) {
		t.Parallel()

		snap := serplens.ContentSnapshot{
			PrelimType:       serplens.PageTypeGeoPage,
			PrelimConfidence: serplens.ConfidenceMedium,
			Structure: serplens.Structure{
				H1: "Our Dallas Location",
				H2s: []serplens.H2Section{
					{Text: "What Is LASIK"},
				},
			},
			WordCount: 1000,
		}

		got := serplens.ReclassifyContent(snap, cfg)

		assert.Equal(t, serplens.PageTypeProcedureLocation, got.Type)
	})

	t.Run("procedure H1 with clinical content upgrades homepage", func(t *testing.T) {
		t.Parallel()

		snap := serplens.ContentSnapshot{
			PrelimType:       serplens.PageTypeHomepage,
			PrelimConfidence: serplens.ConfidenceHigh,
			Structure: serplens.Structure{
				H1: "LASIK Specialists of Chicago",
				H2s: []serplens.H2Section{
					{Text: "Am I a Candidate"},
				},
			},
			WordCount: 1500,
		}

		got := serplens.ReclassifyContent(snap, cfg)

		assert.Equal(t, serplens.PageTypeServicePage, got.Type)
		assert.Equal(t, serplens.ConfidenceHigh, got.Confidence)
		assert.Equal(t, "Procedure H1 + clinical content", got.Signal)
	})

	t.Run("final type is always one of the five types", func(t *testing.T) {
		t.Parallel()

		valid := map[serplens.PageType]bool{
			serplens.PageTypeHomepage:          true,
			serplens.PageTypeServicePage:       true,
			serplens.PageTypeProcedureLocation: true,
			serplens.PageTypeGeoPage:           true,
			serplens.PageTypeBlogArticle:       true,
		}

		snaps := []serplens.ContentSnapshot{
			{PrelimType: serplens.PageTypeBlogArticle, PrelimConfidence: serplens.ConfidenceHigh},
			{PrelimType: serplens.PageTypeHomepage, PrelimConfidence: serplens.ConfidenceHigh},
			{PrelimType: serplens.PageTypeGeoPage, PrelimConfidence: serplens.ConfidenceMedium,
				Structure: serplens.Structure{H1: "LASIK Dallas"}, WordCount: 100},
		}
		for _, snap := range snaps {
			got := serplens.ReclassifyContent(snap, cfg)
			assert.True(t, valid[got.Type], "unexpected type %q", got.Type)
		}
	})

	t.Run("wireframe weight follows final type", func(t *testing.T) {
		t.Parallel()

		snap := serplens.ContentSnapshot{
			PrelimType:       serplens.PageTypeBlogArticle,
			PrelimConfidence: serplens.ConfidenceHigh,
			WordCount:        2000,
		}

		got := serplens.ReclassifyContent(snap, cfg)

		assert.Equal(t, "Excluded", got.Wireframe)
	})
}
