package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/integration-selector/internal/selector"
)

// BestMatchIndex picks where the cursor lands in a result list: an exact
// label, then a label prefix, then the closest fuzzy match, else the first
// row. It returns -1 for an empty list.
func BestMatchIndex(items []selector.Item, term string) int {
	if len(items) == 0 {
		return -1
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return 0
	}
	lower := strings.ToLower(term)
	labels := make([]string, len(items))
	prefix := -1
	for i, item := range items {
		labels[i] = item.Label()
		if strings.EqualFold(labels[i], term) {
			return i
		}
		if prefix < 0 && strings.HasPrefix(strings.ToLower(labels[i]), lower) {
			prefix = i
		}
	}
	if prefix >= 0 {
		return prefix
	}
	best := -1
	bestDistance := 0
	for _, rank := range fuzzy.RankFindNormalizedFold(term, labels) {
		if best < 0 || rank.Distance < bestDistance || (rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best, bestDistance = rank.OriginalIndex, rank.Distance
		}
	}
	if best < 0 || best >= len(items) {
		return 0
	}
	return best
}
