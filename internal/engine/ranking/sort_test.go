package ranking

import (
	"testing"

	"github.com/jmcferran/sightline/internal/domain/signal"
)

func ranked(id string, score float64) RankedSignal {
	return RankedSignal{
		Signal:    &signal.Signal{ID: id, Classification: signal.ClassificationCommunity},
		RankScore: score,
	}
}

func ids(list []RankedSignal) []string {
	out := make([]string, len(list))
	for i, rs := range list {
		out[i] = rs.Signal.ID
	}
	return out
}

func TestSortByRankScore(t *testing.T) {
	t.Run("descending by score", func(t *testing.T) {
		out := SortByRankScore([]RankedSignal{
			ranked("low", 10),
			ranked("high", 300),
			ranked("mid", 50),
		}, NewContext())

		want := []string{"high", "mid", "low"}
		for i, id := range ids(out) {
			if id != want[i] {
				t.Fatalf("Order = %v, want %v", ids(out), want)
			}
		}
	})

	t.Run("pinned first in pinned-list order", func(t *testing.T) {
		rc := NewContext()
		rc.PinnedSignalIDs = []string{"pin-b", "pin-a"}

		out := SortByRankScore([]RankedSignal{
			ranked("pin-a", -1000), // negative score, still pinned to front
			ranked("free", 9999),
			ranked("pin-b", 1),
		}, rc)

		want := []string{"pin-b", "pin-a", "free"}
		for i, id := range ids(out) {
			if id != want[i] {
				t.Fatalf("Order = %v, want %v", ids(out), want)
			}
		}
	})

	t.Run("official global outranks everything unpinned", func(t *testing.T) {
		official := &signal.Signal{
			ID:             "official",
			Classification: signal.ClassificationOfficial,
			Target:         signal.GlobalTarget(),
		}
		rc := NewContext()

		officialScore := CalculateRankScore(official, rc, false, nil)
		if officialScore <= 10000 {
			t.Fatalf("Official global rank score must exceed 10000, got %v", officialScore)
		}

		popular := communitySignal("popular")
		popular.Analytics = signal.Analytics{ViewCount: 10, SubscriberCount: 2, SightingCount: 4}

		out := SortByRankScore([]RankedSignal{
			{Signal: popular, RankScore: CalculateRankScore(popular, rc, true, nil)},
			{Signal: official, RankScore: officialScore},
		}, rc)

		if out[0].Signal.ID != "official" {
			t.Errorf("Official global should rank first, got %v", ids(out))
		}
	})

	t.Run("unimportant community sorts last unless pinned", func(t *testing.T) {
		rc := NewContext()
		rc.UnimportantSignalIDs["sunk"] = true

		sunk := communitySignal("sunk")
		out := SortByRankScore([]RankedSignal{
			{Signal: sunk, RankScore: CalculateRankScore(sunk, rc, false, nil)},
			ranked("ordinary", 0),
		}, rc)

		if out[len(out)-1].Signal.ID != "sunk" {
			t.Errorf("Unimportant community signal should sort last, got %v", ids(out))
		}
	})

	t.Run("stable for equal scores", func(t *testing.T) {
		out := SortByRankScore([]RankedSignal{
			ranked("first", 42),
			ranked("second", 42),
		}, NewContext())

		if out[0].Signal.ID != "first" || out[1].Signal.ID != "second" {
			t.Errorf("Equal scores must preserve input order, got %v", ids(out))
		}
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		in := []RankedSignal{ranked("low", 1), ranked("high", 2)}
		SortByRankScore(in, NewContext())
		if in[0].Signal.ID != "low" {
			t.Error("SortByRankScore must not reorder its input")
		}
	})
}
