package usecase

import (
	"math/rand"
	"testing"

	"RosterPulse/internal/domain/models"
)

func TestAggregateEndToEnd(t *testing.T) {
	records := []models.TransactionRecord{
		record(t, `{"type":"waiver","adds":{"100":1}}`),
		record(t, `{"type":"waiver","drops":{"100":1}}`),
		record(t, `{"type":"trade","adds":{"100":1,"200":1}}`),
	}

	totals := NewActivityAggregator().Aggregate(records)

	c100, ok := totals.Counters("100")
	if !ok {
		t.Fatalf("player 100 missing")
	}
	if c100.Adds != 2 || c100.Drops != 1 || c100.Trades != 1 {
		t.Fatalf("player 100: unexpected counters %+v", c100)
	}

	c200, ok := totals.Counters("200")
	if !ok {
		t.Fatalf("player 200 missing")
	}
	if c200.Adds != 1 || c200.Drops != 0 || c200.Trades != 1 {
		t.Fatalf("player 200: unexpected counters %+v", c200)
	}

	if Score(c100) != 5 || Score(c200) != 4 {
		t.Fatalf("unexpected scores: %d, %d", Score(c100), Score(c200))
	}
}

func TestAggregateMalformedQuantity(t *testing.T) {
	totals := NewActivityAggregator().Aggregate([]models.TransactionRecord{
		record(t, `{"type":"free_agent","adds":{"300":"abc"}}`),
	})

	c, _ := totals.Counters("300")
	if c.Adds != 1 {
		t.Fatalf("non-numeric quantity: expected 1 add, got %d", c.Adds)
	}
}

func TestAggregateTradeWithoutAdds(t *testing.T) {
	totals := NewActivityAggregator().Aggregate([]models.TransactionRecord{
		record(t, `{"type":"trade","adds":null,"drops":{"400":1}}`),
	})

	c, _ := totals.Counters("400")
	if c.Drops != 1 {
		t.Fatalf("expected 1 drop, got %d", c.Drops)
	}
	if c.Trades != 0 {
		t.Fatalf("trade counts only apply to the adds side, got %d", c.Trades)
	}
}

func TestAggregateDropSideOfTradeNotCounted(t *testing.T) {
	totals := NewActivityAggregator().Aggregate([]models.TransactionRecord{
		record(t, `{"type":"trade","adds":{"100":1},"drops":{"200":1}}`),
	})

	c, _ := totals.Counters("200")
	if c.Trades != 0 {
		t.Fatalf("dropped player got trade credit: %d", c.Trades)
	}
}

func TestAggregateSkipsUntypedRecords(t *testing.T) {
	totals := NewActivityAggregator().Aggregate([]models.TransactionRecord{
		record(t, `{"adds":{"100":1}}`),
		record(t, `{"type":"","adds":{"100":1}}`),
	})

	if totals.Len() != 0 {
		t.Fatalf("untyped records must not count, got %d players", totals.Len())
	}
}

func TestAggregateQuantityScalesCounters(t *testing.T) {
	totals := NewActivityAggregator().Aggregate([]models.TransactionRecord{
		record(t, `{"type":"waiver","adds":{"100":3},"drops":{"200":"2"}}`),
	})

	c100, _ := totals.Counters("100")
	if c100.Adds != 3 {
		t.Fatalf("expected 3 adds, got %d", c100.Adds)
	}
	c200, _ := totals.Counters("200")
	if c200.Drops != 2 {
		t.Fatalf("expected 2 drops, got %d", c200.Drops)
	}
}

func TestAggregateOrderIndependentCounters(t *testing.T) {
	records := []models.TransactionRecord{
		record(t, `{"type":"waiver","adds":{"1":1}}`),
		record(t, `{"type":"trade","adds":{"2":1},"drops":{"1":1}}`),
		record(t, `{"type":"free_agent","adds":{"3":2}}`),
		record(t, `{"type":"waiver","drops":{"2":1}}`),
		record(t, `{"type":"trade","adds":{"1":1,"3":1}}`),
	}

	agg := NewActivityAggregator()
	base := agg.Aggregate(records)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]models.TransactionRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := agg.Aggregate(shuffled)
		if got.Len() != base.Len() {
			t.Fatalf("trial %d: player count changed", trial)
		}
		for _, pid := range base.PlayerIDs() {
			want, _ := base.Counters(pid)
			have, ok := got.Counters(pid)
			if !ok || have != want {
				t.Fatalf("trial %d: player %s counters %+v != %+v", trial, pid, have, want)
			}
		}
	}
}
