package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fwojciec/serplens"
)

// extractInternalLinks lists same-domain links with their anchor text,
// in document order, deduplicated by the (url, anchor) pair. Relative
// hrefs resolve against the page URL.
func extractInternalLinks(doc *goquery.Document, pageURL string) []serplens.Link {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	baseDomain := stripWWW(base.Host)

	var links []serplens.Link
	seen := make(map[serplens.Link]bool)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		full := base.ResolveReference(ref)
		if !isInternal(href, ref, baseDomain) && stripWWW(full.Host) != baseDomain {
			return
		}
		link := serplens.Link{URL: full.String(), AnchorText: cleanText(a)}
		if seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})
	return links
}

func isInternal(href string, ref *url.URL, baseDomain string) bool {
	if strings.HasPrefix(href, "/") {
		return true
	}
	return ref.Host == "" || ref.Host == baseDomain
}

func stripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}
