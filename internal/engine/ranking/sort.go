package ranking

import "sort"

// SortByRankScore produces the final feed order: a stable descending sort
// by rank score, except pinned signals move to the front in the order of
// the pinned-id list (not their input order), ahead of any non-pinned
// signal regardless of score.
func SortByRankScore(ranked []RankedSignal, rc *Context) []RankedSignal {
	out := make([]RankedSignal, len(ranked))
	copy(out, ranked)

	pinnedOrder := make(map[string]int, len(rc.PinnedSignalIDs))
	for i, id := range rc.PinnedSignalIDs {
		pinnedOrder[id] = i
	}

	pinnedIndex := func(rs RankedSignal) int {
		if idx, ok := pinnedOrder[rs.Signal.ID]; ok {
			return idx
		}
		return -1
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi := pinnedIndex(out[i])
		pj := pinnedIndex(out[j])

		if pi >= 0 && pj >= 0 {
			return pi < pj
		}
		if pi >= 0 || pj >= 0 {
			return pi >= 0
		}

		return out[i].RankScore > out[j].RankScore
	})

	return out
}
