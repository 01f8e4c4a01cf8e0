package usecase

import (
	"context"
	"errors"
	"testing"

	"RosterPulse/internal/domain/models"
)

func newTestBuilder(t *testing.T, src *fakeSource, dir *fakeDirectory, opts ...BuilderOption) *SummaryBuilder {
	t.Helper()
	m := newStubMetrics()
	collector := NewTransactionCollector(src, m, testLogger(t))
	return NewSummaryBuilder(collector, dir, m, testLogger(t), opts...)
}

func TestBuildOneHappyPath(t *testing.T) {
	src := &fakeSource{
		records: map[string]map[int][]models.TransactionRecord{
			"league1": {
				1: {record(t, `{"type":"waiver","adds":{"100":1}}`)},
				2: {record(t, `{"type":"trade","adds":{"100":1,"200":1}}`)},
			},
		},
	}
	dir := &fakeDirectory{dir: models.PlayerDirectory{
		"100": {FirstName: "Amon-Ra", LastName: "St. Brown"},
	}}

	b := newTestBuilder(t, src, dir)
	sum, err := b.BuildOne(context.Background(), "league1", 2)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sum.Failed() {
		t.Fatalf("unexpected failure: %s", sum.Error)
	}
	if len(sum.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(sum.Entries))
	}
	if sum.Entries[0].PlayerID != "100" || sum.Entries[0].Score != 5 {
		t.Fatalf("unexpected top entry: %+v", sum.Entries[0])
	}
	if sum.Entries[0].Name != "Amon-Ra St. Brown" {
		t.Fatalf("unexpected name: %q", sum.Entries[0].Name)
	}
}

func TestBuildMarksFailedLeague(t *testing.T) {
	src := &fakeSource{
		records: map[string]map[int][]models.TransactionRecord{
			"good": {1: {record(t, `{"type":"waiver","adds":{"100":1}}`)}},
		},
	}
	b := newTestBuilder(t, src, &fakeDirectory{dir: models.PlayerDirectory{}})

	// "bad id!" fails league id validation; "good" still succeeds.
	out, err := b.Build(context.Background(), []string{"good", "bad id!"}, 1)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("every requested league must appear, got %d", len(out))
	}
	if out["good"].Failed() {
		t.Fatalf("good league marked failed: %s", out["good"].Error)
	}
	if !out["bad id!"].Failed() {
		t.Fatalf("bad league not marked failed")
	}
	if len(out["bad id!"].Entries) != 0 {
		t.Fatalf("failed league must not carry entries")
	}
}

func TestBuildDirectoryFailureIsFatal(t *testing.T) {
	dirErr := errors.New("players endpoint down")
	b := newTestBuilder(t, &fakeSource{}, &fakeDirectory{err: dirErr})

	if _, err := b.Build(context.Background(), []string{"league1"}, 1); !errors.Is(err, dirErr) {
		t.Fatalf("expected directory error, got %v", err)
	}
}

func TestBuildConcurrentMatchesSequential(t *testing.T) {
	src := &fakeSource{
		records: map[string]map[int][]models.TransactionRecord{
			"a": {1: {record(t, `{"type":"waiver","adds":{"1":1}}`)}},
			"b": {1: {record(t, `{"type":"trade","adds":{"2":1}}`)}},
			"c": {1: {record(t, `{"type":"waiver","drops":{"3":1}}`)}},
		},
	}
	leagues := []string{"a", "b", "c"}

	seq, err := newTestBuilder(t, src, &fakeDirectory{}).Build(context.Background(), leagues, 1)
	if err != nil {
		t.Fatalf("sequential build: %v", err)
	}
	par, err := newTestBuilder(t, src, &fakeDirectory{}, WithWorkers(3)).Build(context.Background(), leagues, 1)
	if err != nil {
		t.Fatalf("concurrent build: %v", err)
	}

	for _, id := range leagues {
		s, p := seq[id], par[id]
		if len(s.Entries) != len(p.Entries) {
			t.Fatalf("league %s: entry count differs", id)
		}
		for i := range s.Entries {
			if s.Entries[i] != p.Entries[i] {
				t.Fatalf("league %s entry %d: %+v != %+v", id, i, s.Entries[i], p.Entries[i])
			}
		}
	}
}

func TestBuildZeroTransactionsIsEmptySuccess(t *testing.T) {
	b := newTestBuilder(t, &fakeSource{}, &fakeDirectory{})

	sum, err := b.BuildOne(context.Background(), "quietleague", 3)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sum.Failed() {
		t.Fatalf("zero activity is a success, got error %q", sum.Error)
	}
	if len(sum.Entries) != 0 {
		t.Fatalf("expected empty leaderboard, got %d entries", len(sum.Entries))
	}
}
