package model

import "sort"

// ABC tier boundaries: the top 20% of movers are A items, the next 30% B,
// the rest C.
const (
	aFraction = 0.2
	bFraction = 0.5
)

// TierFor returns the ABC class for the item at rank i of n, ranked by
// velocity descending.
func TierFor(i, n int) string {
	aLimit := int(float64(n) * aFraction)
	bLimit := int(float64(n) * bFraction)
	switch {
	case i < aLimit:
		return "A"
	case i < bLimit:
		return "B"
	default:
		return "C"
	}
}

// RankSKUs orders every SKU by velocity descending. SKUs with no recorded
// movement rank last; ties break alphabetically so runs are deterministic.
func RankSKUs(allSKUs []string, velocity map[string]int) []string {
	ranked := make([]string, len(allSKUs))
	copy(ranked, allSKUs)
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := velocity[ranked[i]], velocity[ranked[j]]
		if vi != vj {
			return vi > vj
		}
		return ranked[i] < ranked[j]
	})
	return ranked
}
