package usecase

import (
	"testing"

	"RosterPulse/internal/domain/models"
)

func TestScoreFormula(t *testing.T) {
	cases := []struct {
		c    models.PlayerCounters
		want int
	}{
		{models.PlayerCounters{}, 0},
		{models.PlayerCounters{Adds: 2}, 2},
		{models.PlayerCounters{Trades: 2}, 6},
		{models.PlayerCounters{Adds: 2, Trades: 1}, 5},
		{models.PlayerCounters{Adds: 1, Drops: 50, Trades: 1}, 4},
	}
	for _, c := range cases {
		if got := Score(c.c); got != c.want {
			t.Fatalf("score of %+v: expected %d, got %d", c.c, c.want, got)
		}
	}
}

func TestRankDescendingByScore(t *testing.T) {
	totals := NewActivityAggregator().Aggregate([]models.TransactionRecord{
		record(t, `{"type":"waiver","adds":{"low":1}}`),
		record(t, `{"type":"trade","adds":{"high":1}}`),
	})

	entries := Rank(totals, nil)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].PlayerID != "high" || entries[1].PlayerID != "low" {
		t.Fatalf("unexpected order: %s, %s", entries[0].PlayerID, entries[1].PlayerID)
	}
	if entries[0].Score != 4 || entries[1].Score != 1 {
		t.Fatalf("unexpected scores: %d, %d", entries[0].Score, entries[1].Score)
	}
}

func TestRankStableOnEqualScores(t *testing.T) {
	// Three players with identical activity; first appearance decides.
	totals := NewActivityAggregator().Aggregate([]models.TransactionRecord{
		record(t, `{"type":"waiver","adds":{"b":1}}`),
		record(t, `{"type":"waiver","adds":{"c":1}}`),
		record(t, `{"type":"waiver","adds":{"a":1}}`),
	})

	entries := Rank(totals, nil)
	want := []string{"b", "c", "a"}
	for i, e := range entries {
		if e.PlayerID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], e.PlayerID)
		}
	}
}

func TestRankResolvesNames(t *testing.T) {
	dir := models.PlayerDirectory{
		"100": {FirstName: "Justin", LastName: "Jefferson"},
	}
	totals := NewActivityAggregator().Aggregate([]models.TransactionRecord{
		record(t, `{"type":"waiver","adds":{"100":1,"999":1}}`),
	})

	entries := Rank(totals, dir)
	byID := make(map[string]models.LeaderboardEntry, len(entries))
	for _, e := range entries {
		byID[e.PlayerID] = e
	}

	if byID["100"].Name != "Justin Jefferson" {
		t.Fatalf("expected resolved name, got %q", byID["100"].Name)
	}
	if byID["999"].Name != "999" {
		t.Fatalf("expected raw id fallback, got %q", byID["999"].Name)
	}
}

func TestRankEmptyTotals(t *testing.T) {
	entries := Rank(newActivityTotals(), nil)
	if len(entries) != 0 {
		t.Fatalf("expected empty leaderboard, got %d entries", len(entries))
	}
}
