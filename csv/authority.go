// Package csv implements serplens.AuthorityProvider backed by an
// Ahrefs Batch Analysis CSV export.
package csv

import (
	"encoding/csv"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/fwojciec/serplens"
)

// Column aliases seen across Ahrefs export versions. Matching is
// case-insensitive and bidirectional on substrings, so "DR" matches a
// "Domain Rating (DR)" header and vice versa.
var (
	urlAliases     = []string{"url", "address", "target", "page"}
	drAliases      = []string{"domain rating", "dr"}
	urAliases      = []string{"url rating", "ur"}
	rdAliases      = []string{"referring domains", "refdomains"}
	blAliases      = []string{"backlinks", "links"}
	trafficAliases = []string{"organic traffic", "traffic"}
)

// Ensure Provider implements serplens.AuthorityProvider at compile time.
var _ serplens.AuthorityProvider = (*Provider)(nil)

// Provider answers authority lookups from a parsed Ahrefs export.
// Lookups tolerate the usual URL drift between the SERP and the export:
// scheme, www, trailing slash, and path case.
type Provider struct {
	byURL map[string]serplens.Authority
}

// NewProviderFromFile parses the CSV at path. A missing file is an
// ENOTFOUND error so the caller can degrade to unmatched authority
// instead of failing the run.
func NewProviderFromFile(path string) (*Provider, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, serplens.Errorf(serplens.ENOTFOUND, "ahrefs export not found: %s", path)
		}
		return nil, serplens.Errorf(serplens.EINTERNAL, "open ahrefs export: %v", err)
	}
	defer f.Close()
	return NewProvider(f)
}

// NewProvider parses an Ahrefs Batch Analysis export from r.
func NewProvider(r io.Reader) (*Provider, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &Provider{byURL: map[string]serplens.Authority{}}, nil
	}
	if err != nil {
		return nil, serplens.Errorf(serplens.EINVALID, "read ahrefs header: %v", err)
	}

	urlCol := findColumn(header, urlAliases)
	if urlCol < 0 {
		// Exports without a recognizable header keep the URL first.
		urlCol = 0
	}
	drCol := findColumn(header, drAliases)
	urCol := findColumn(header, urAliases)
	rdCol := findColumn(header, rdAliases)
	blCol := findColumn(header, blAliases)
	trafficCol := findColumn(header, trafficAliases)

	byURL := make(map[string]serplens.Authority)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, serplens.Errorf(serplens.EINVALID, "read ahrefs row: %v", err)
		}
		if len(row) <= urlCol {
			continue
		}
		rawURL := strings.TrimSpace(row[urlCol])
		if rawURL == "" || strings.HasPrefix(rawURL, "#") {
			continue
		}
		entry := serplens.Authority{
			DomainRating:     cellValue(row, drCol),
			URLRating:        cellValue(row, urCol),
			ReferringDomains: cellValue(row, rdCol),
			Backlinks:        cellValue(row, blCol),
			OrganicTraffic:   cellValue(row, trafficCol),
		}
		byURL[normalizeURL(rawURL)] = entry
		for _, v := range urlVariants(rawURL) {
			byURL[v] = entry
		}
	}

	return &Provider{byURL: byURL}, nil
}

// Lookup returns the authority metrics for a URL, trying its variants
// until one matches the export.
func (p *Provider) Lookup(rawURL string) (serplens.Authority, bool) {
	for _, v := range urlVariants(rawURL) {
		if a, ok := p.byURL[v]; ok {
			return a, true
		}
	}
	return serplens.Authority{}, false
}

// Len reports how many distinct URL keys the provider indexed,
// variants included.
func (p *Provider) Len() int {
	return len(p.byURL)
}

func findColumn(header []string, names []string) int {
	for i, col := range header {
		colLower := strings.ToLower(strings.TrimSpace(col))
		for _, name := range names {
			if strings.Contains(colLower, name) || strings.Contains(name, colLower) {
				return i
			}
		}
	}
	return -1
}

// cellValue reads a cell, mapping missing columns and blank cells to
// the Not available sentinel.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return serplens.NotAvailable
	}
	val := strings.TrimSpace(row[idx])
	if val == "" {
		return serplens.NotAvailable
	}
	return val
}

// normalizeURL canonicalizes a URL for matching: lowercase, https
// scheme, no www, no trailing slash.
func normalizeURL(rawURL string) string {
	rawURL = strings.ToLower(strings.TrimSpace(rawURL))
	if rawURL == "" {
		return ""
	}
	if strings.HasPrefix(rawURL, "//") {
		rawURL = "https:" + rawURL
	} else if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	host := strings.TrimPrefix(u.Host, "www.")
	path := strings.TrimRight(u.Path, "/")
	if path == "" {
		path = "/"
	}
	return "https://" + host + path
}

// urlVariants generates the match keys for a URL: with and without www,
// trailing slash, http scheme, and a lowercased path.
func urlVariants(rawURL string) []string {
	normalized := normalizeURL(rawURL)
	if normalized == "" {
		return nil
	}
	seen := map[string]bool{normalized: true}
	variants := []string{normalized}
	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}

	u, err := url.Parse(normalized)
	if err != nil {
		return variants
	}
	host, path := u.Host, u.Path

	if strings.HasPrefix(host, "www.") {
		add("https://" + strings.TrimPrefix(host, "www.") + path)
	} else {
		add("https://www." + host + path)
	}
	if path != "/" {
		add(normalized + "/")
		add(strings.TrimRight(normalized, "/"))
	}
	add(strings.Replace(normalized, "https://", "http://", 1))
	if lower := strings.ToLower(path); lower != path {
		add("https://" + host + lower)
	}

	return variants
}
