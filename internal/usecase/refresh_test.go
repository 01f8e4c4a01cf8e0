package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"RosterPulse/internal/domain/models"
)

type stubStore struct {
	stored []string
	err    error
}

func (s *stubStore) Store(_ context.Context, sum *models.LeagueSummary) error {
	if s.err != nil {
		return s.err
	}
	s.stored = append(s.stored, sum.LeagueID)
	return nil
}

func (s *stubStore) Latest(context.Context, string, int) (*models.LeagueSummary, error) {
	return &models.LeagueSummary{}, nil
}

func (s *stubStore) Health(context.Context) error { return nil }
func (s *stubStore) Close() error                 { return nil }

type stubPublisher struct {
	published []string
	err       error
}

func (p *stubPublisher) Publish(_ context.Context, sum *models.LeagueSummary) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, sum.LeagueID)
	return nil
}

func (p *stubPublisher) Close() error { return nil }

func newRefreshFixture(t *testing.T, store *stubStore, pub *stubPublisher) (*RefreshUsecase, *fakeSource) {
	t.Helper()
	src := &fakeSource{
		state: models.SeasonState{Week: 2, SeasonType: "regular"},
		records: map[string]map[int][]models.TransactionRecord{
			"league1": {1: {record(t, `{"type":"waiver","adds":{"100":1}}`)}},
		},
	}
	m := newStubMetrics()
	collector := NewTransactionCollector(src, m, testLogger(t))
	builder := NewSummaryBuilder(collector, &fakeDirectory{}, m, testLogger(t))
	u := NewRefreshUsecase(builder, src, store, pub, m, testLogger(t), []string{"league1"})
	return u, src
}

func TestRefreshStampsAndRoutes(t *testing.T) {
	store := &stubStore{}
	pub := &stubPublisher{}
	u, _ := newRefreshFixture(t, store, pub)

	before := time.Now().UTC()
	out, err := u.Refresh(context.Background(), nil)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	sum := out["league1"]
	if sum == nil || sum.Failed() {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	stamp, err := time.Parse(time.RFC3339, sum.ComputedAt)
	if err != nil {
		t.Fatalf("computed_at not RFC3339: %q", sum.ComputedAt)
	}
	if stamp.Before(before.Truncate(time.Second)) {
		t.Fatalf("computed_at in the past: %v", stamp)
	}

	if len(store.stored) != 1 || store.stored[0] != "league1" {
		t.Fatalf("store not called: %v", store.stored)
	}
	if len(pub.published) != 1 || pub.published[0] != "league1" {
		t.Fatalf("publisher not called: %v", pub.published)
	}
}

func TestRefreshSkipsFailedLeagueSinks(t *testing.T) {
	store := &stubStore{}
	pub := &stubPublisher{}
	u, _ := newRefreshFixture(t, store, pub)

	out, err := u.Refresh(context.Background(), []string{"bad id!"})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !out["bad id!"].Failed() {
		t.Fatalf("expected failure marker")
	}
	if len(store.stored) != 0 || len(pub.published) != 0 {
		t.Fatalf("failed league must not reach sinks")
	}
}

func TestRefreshSinkFailureIsNotFatal(t *testing.T) {
	store := &stubStore{err: errors.New("insert refused")}
	pub := &stubPublisher{err: errors.New("broker down")}
	u, _ := newRefreshFixture(t, store, pub)

	out, err := u.Refresh(context.Background(), nil)
	if err != nil {
		t.Fatalf("sink failures must not fail the refresh: %v", err)
	}
	if out["league1"].Failed() {
		t.Fatalf("summary marked failed by sink error")
	}
}

func TestRefreshStateErrorIsFatal(t *testing.T) {
	u, src := newRefreshFixture(t, &stubStore{}, &stubPublisher{})
	src.stateErr = errors.New("state endpoint down")

	if _, err := u.Refresh(context.Background(), nil); err == nil {
		t.Fatalf("expected error when week cannot be resolved")
	}
}
