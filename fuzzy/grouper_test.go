package fuzzy_test

import (
	"testing"

	"github.com/fwojciec/serplens/fuzzy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrouperGroup(t *testing.T) {
	t.Parallel()

	t.Run("near-identical headings cluster into one group", func(t *testing.T) {
		t.Parallel()

		g := fuzzy.NewGrouper()

		groups := g.Group([]string{"Our Locations", "Our Location"})

		require.Len(t, groups, 1)
		assert.Equal(t, "Our Locations", groups[0].Label)
		assert.Equal(t, []string{"Our Locations", "Our Location"}, groups[0].Members)
	})

	t.Run("dissimilar heading starts a new group", func(t *testing.T) {
		t.Parallel()

		g := fuzzy.NewGrouper()

		groups := g.Group([]string{"Our Locations", "Our Location", "Pricing"})

		require.Len(t, groups, 2)
		assert.Equal(t, "Our Locations", groups[0].Label)
		assert.Equal(t, "Pricing", groups[1].Label)
	})

	t.Run("substring overlap joins a group", func(t *testing.T) {
		t.Parallel()

		g := fuzzy.NewGrouper()

		// "FAQ" is wholly contained in the label, so the partial ratio
		// clears the threshold even though the full ratio does not.
		groups := g.Group([]string{"Frequently Asked Questions About FAQ", "FAQ"})

		require.Len(t, groups, 1)
	})

	t.Run("group label is fixed by first arrival", func(t *testing.T) {
		t.Parallel()

		g := fuzzy.NewGrouper()

		groups := g.Group([]string{"Our Location", "Our Locations"})

		require.Len(t, groups, 1)
		assert.Equal(t, "Our Location", groups[0].Label)
	})

	t.Run("same corpus in same order yields identical groups", func(t *testing.T) {
		t.Parallel()

		g := fuzzy.NewGrouper()
		corpus := []string{
			"Why Choose Us",
			"Why Choose Our Practice",
			"Pricing",
			"The LASIK Procedure",
			"LASIK Procedure",
			"FAQ",
		}

		first := g.Group(corpus)
		second := g.Group(corpus)

		assert.Equal(t, first, second)
	})

	t.Run("empty input yields no groups", func(t *testing.T) {
		t.Parallel()

		g := fuzzy.NewGrouper()

		assert.Empty(t, g.Group(nil))
	})

	t.Run("case differences do not split groups", func(t *testing.T) {
		t.Parallel()

		g := fuzzy.NewGrouper()

		groups := g.Group([]string{"PRICING", "pricing"})

		require.Len(t, groups, 1)
	})
}

func TestGrouperConsensus(t *testing.T) {
	t.Parallel()

	t.Run("majority-similar value wins", func(t *testing.T) {
		t.Parallel()

		g := fuzzy.NewGrouper()

		got := g.Consensus([]string{"Why Choose Us", "Why Choose Us?", "Pricing"})

		assert.Equal(t, "Why Choose Us", got)
	})

	t.Run("first value wins ties", func(t *testing.T) {
		t.Parallel()

		g := fuzzy.NewGrouper()

		got := g.Consensus([]string{"Pricing", "Testimonials"})

		assert.Equal(t, "Pricing", got)
	})

	t.Run("empty input returns empty string", func(t *testing.T) {
		t.Parallel()

		g := fuzzy.NewGrouper()

		assert.Equal(t, "", g.Consensus(nil))
	})

	t.Run("single value is its own consensus", func(t *testing.T) {
		t.Parallel()

		g := fuzzy.NewGrouper()

		assert.Equal(t, "FAQ", g.Consensus([]string{"FAQ"}))
	})
}
