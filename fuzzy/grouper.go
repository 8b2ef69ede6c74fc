// Package fuzzy implements section clustering and consensus voting on
// fuzzy string similarity.
package fuzzy

import (
	"strings"

	fuzz "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/fwojciec/serplens"
)

// Similarity thresholds. A heading joins a group when its ratio against
// the group label reaches GroupThreshold, or its best-substring overlap
// reaches PartialThreshold. Consensus votes count neighbors at
// ConsensusThreshold.
const (
	GroupThreshold     = 80
	PartialThreshold   = 90
	ConsensusThreshold = 80
)

var _ serplens.SectionGrouper = (*Grouper)(nil)

// Grouper clusters heading texts with fuzzy matching.
type Grouper struct{}

// NewGrouper creates a new Grouper.
func NewGrouper() *Grouper {
	return &Grouper{}
}

// Group clusters titles with a greedy single pass: each title joins the
// first existing group (in creation order) whose label is similar
// enough, otherwise it starts a new group labeled by itself.
//
// The outcome is deterministic for a fixed input order but depends on
// that order, because group labels are fixed by first arrival. This is
// intentional: the corpus arrives in page order, so repeated runs over
// the same scrape produce identical groups.
func (g *Grouper) Group(titles []string) []serplens.SectionGroup {
	var groups []serplens.SectionGroup
	for _, title := range titles {
		matched := false
		for i := range groups {
			if similar(title, groups[i].Label) {
				groups[i].Members = append(groups[i].Members, title)
				matched = true
				break
			}
		}
		if !matched {
			groups = append(groups, serplens.SectionGroup{
				Label:   title,
				Members: []string{title},
			})
		}
	}
	return groups
}

// Consensus returns the value with the most neighbors at or above
// ConsensusThreshold. The first value wins ties.
func (g *Grouper) Consensus(values []string) string {
	if len(values) == 0 {
		return ""
	}
	best := values[0]
	bestCount := 0
	for _, v := range values {
		count := 0
		for _, other := range values {
			if fuzz.Ratio(strings.ToLower(v), strings.ToLower(other)) >= ConsensusThreshold {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = v
		}
	}
	return best
}

func similar(title, label string) bool {
	a, b := strings.ToLower(title), strings.ToLower(label)
	return fuzz.Ratio(a, b) >= GroupThreshold || fuzz.PartialRatio(a, b) >= PartialThreshold
}
