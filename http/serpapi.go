package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/serplens"
)

// DefaultSERPTimeout is the default timeout for SerpAPI requests.
const DefaultSERPTimeout = 30 * time.Second

// serpAPIBaseURL is the SerpAPI search endpoint. Overridden in tests.
const serpAPIBaseURL = "https://serpapi.com/search"

// Ensure SERPClient implements serplens.SERPService at compile time.
var _ serplens.SERPService = (*SERPClient)(nil)

// SERPClient queries SerpAPI for localized Google organic results.
type SERPClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// SERPOption configures a SERPClient.
type SERPOption func(*SERPClient)

// WithSERPBaseURL overrides the SerpAPI endpoint. Used in tests.
func WithSERPBaseURL(u string) SERPOption {
	return func(c *SERPClient) {
		c.baseURL = u
	}
}

// WithSERPTimeout sets the timeout for SerpAPI requests.
func WithSERPTimeout(d time.Duration) SERPOption {
	return func(c *SERPClient) {
		c.client.Timeout = d
	}
}

// NewSERPClient creates a SERPClient with the given API key.
func NewSERPClient(apiKey string, opts ...SERPOption) *SERPClient {
	c := &SERPClient{
		apiKey:  apiKey,
		baseURL: serpAPIBaseURL,
		client:  &http.Client{Timeout: DefaultSERPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// serpAPIResponse is the subset of the SerpAPI payload we read.
type serpAPIResponse struct {
	OrganicResults []struct {
		Link    string `json:"link"`
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Search returns up to n organic results for the query as seen from the
// given locality. A few extra results are requested in case some are
// filtered on the provider side.
func (c *SERPClient) Search(ctx context.Context, query string, loc serplens.Locality, n int) ([]serplens.SERPResult, error) {
	if c.apiKey == "" {
		return nil, serplens.Errorf(serplens.EINVALID, "SerpAPI key not set")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("location", serpLocation(loc))
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(min(n+5, 100)))
	params.Set("engine", "google")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, serplens.Errorf(serplens.EINTERNAL, "build SerpAPI request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, serplens.Errorf(serplens.EUNAVAILABLE, "SerpAPI request failed for %q: %v", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serplens.Errorf(serplens.EUNAVAILABLE, "SerpAPI returned HTTP %d for %q", resp.StatusCode, query)
	}

	var payload serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, serplens.Errorf(serplens.EINTERNAL, "SerpAPI response parse error for %q: %v", query, err)
	}

	organic := payload.OrganicResults
	if len(organic) > n {
		organic = organic[:n]
	}

	results := make([]serplens.SERPResult, 0, len(organic))
	for i, item := range organic {
		pos := i + 1
		results = append(results, serplens.SERPResult{
			Position:        pos,
			URL:             item.Link,
			Title:           item.Title,
			MetaDescription: item.Snippet,
			Locality:        loc.Label(),
			Keyword:         query,
			IsTopRank:       pos == 1,
		})
	}
	return results, nil
}

// serpLocation renders the locality the way SerpAPI expects, e.g.
// "Dallas, TX, United States". Empty parts are dropped.
func serpLocation(loc serplens.Locality) string {
	country := loc.Country
	if country == "" {
		country = "United States"
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{loc.City, loc.State, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Keyword builds the per-locality search query, e.g. "LASIK Dallas".
func Keyword(procedure string, loc serplens.Locality) string {
	return fmt.Sprintf("%s %s", procedure, loc.City)
}
