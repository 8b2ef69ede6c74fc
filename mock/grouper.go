package mock

import "github.com/fwojciec/serplens"

var _ serplens.SectionGrouper = (*SectionGrouper)(nil)

// SectionGrouper is a mock implementation of serplens.SectionGrouper.
type SectionGrouper struct {
	GroupFn     func(titles []string) []serplens.SectionGroup
	ConsensusFn func(values []string) string
}

func (g *SectionGrouper) Group(titles []string) []serplens.SectionGroup {
	return g.GroupFn(titles)
}

func (g *SectionGrouper) Consensus(values []string) string {
	return g.ConsensusFn(values)
}

// ExactGrouper returns a SectionGrouper that clusters by exact label
// match and picks the first value as consensus. Useful where the test
// cares about aggregation, not similarity.
func ExactGrouper() *SectionGrouper {
	return &SectionGrouper{
		GroupFn: func(titles []string) []serplens.SectionGroup {
			index := make(map[string]int)
			var groups []serplens.SectionGroup
			for _, t := range titles {
				if i, ok := index[t]; ok {
					groups[i].Members = append(groups[i].Members, t)
					continue
				}
				index[t] = len(groups)
				groups = append(groups, serplens.SectionGroup{Label: t, Members: []string{t}})
			}
			return groups
		},
		ConsensusFn: func(values []string) string {
			if len(values) == 0 {
				return ""
			}
			return values[0]
		},
	}
}
