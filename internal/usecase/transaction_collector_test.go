package usecase

import (
	"context"
	"testing"

	"RosterPulse/internal/domain/models"
)

func TestCollectConcatenatesWeeks(t *testing.T) {
	src := &fakeSource{
		records: map[string]map[int][]models.TransactionRecord{
			"league1": {
				1: {record(t, `{"type":"waiver","adds":{"100":1}}`)},
				3: {record(t, `{"type":"trade","adds":{"200":1}}`)},
			},
		},
	}
	m := newStubMetrics()
	c := NewTransactionCollector(src, m, testLogger(t))

	out, err := c.Collect(context.Background(), "league1", 3)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if m.transactions != 2 {
		t.Fatalf("expected 2 recorded transactions, got %d", m.transactions)
	}
}

func TestCollectWeekFailureIsolation(t *testing.T) {
	src := &fakeSource{
		records: map[string]map[int][]models.TransactionRecord{
			"league1": {
				1: {record(t, `{"type":"waiver","adds":{"100":1}}`)},
				3: {record(t, `{"type":"waiver","adds":{"300":1}}`)},
			},
		},
		failWeek: map[int]error{2: errWeekDown},
	}
	m := newStubMetrics()
	c := NewTransactionCollector(src, m, testLogger(t))

	out, err := c.Collect(context.Background(), "league1", 3)
	if err != nil {
		t.Fatalf("a failed week must not abort the league: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected records from surviving weeks, got %d", len(out))
	}
	if m.weekErrs != 1 {
		t.Fatalf("expected 1 week fetch error, got %d", m.weekErrs)
	}
}

func TestCollectInvalidLeagueID(t *testing.T) {
	c := NewTransactionCollector(&fakeSource{}, newStubMetrics(), testLogger(t))

	if _, err := c.Collect(context.Background(), "bad id!", 3); err == nil {
		t.Fatalf("expected error for invalid league id")
	}
	if _, err := c.Collect(context.Background(), "", 3); err == nil {
		t.Fatalf("expected error for empty league id")
	}
}

func TestCollectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewTransactionCollector(&fakeSource{}, newStubMetrics(), testLogger(t))
	if _, err := c.Collect(ctx, "league1", 18); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestCollectClampsWeekFloor(t *testing.T) {
	src := &fakeSource{
		records: map[string]map[int][]models.TransactionRecord{
			"league1": {1: {record(t, `{"type":"waiver","adds":{"100":1}}`)}},
		},
	}
	c := NewTransactionCollector(src, newStubMetrics(), testLogger(t))

	out, err := c.Collect(context.Background(), "league1", 0)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("week floor of 1 not applied, got %d records", len(out))
	}
}
