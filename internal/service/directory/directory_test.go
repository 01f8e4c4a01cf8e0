package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"RosterPulse/internal/domain/models"
	icache "RosterPulse/internal/service/cache"
	xlogger "RosterPulse/pkg/logger"
)

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

// fakeClock is a movable clock for staleness tests.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func countingFetch(calls *int, dir models.PlayerDirectory, err error) FetchFunc {
	return func(context.Context) (models.PlayerDirectory, error) {
		*calls++
		if err != nil {
			return nil, err
		}
		return dir, nil
	}
}

func TestServesCachedWithinTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	calls := 0
	dir := models.PlayerDirectory{"100": {FirstName: "Puka", LastName: "Nacua"}}

	c := New(icache.NewTTLCache(), countingFetch(&calls, dir, nil), testLogger(t),
		WithTTL(24*time.Hour), WithClock(clock.Now))

	for i := 0; i < 3; i++ {
		got, err := c.PlayerDirectory(context.Background())
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got.DisplayName("100") != "Puka Nacua" {
			t.Fatalf("call %d: wrong directory", i)
		}
		clock.Advance(time.Hour)
	}
	if calls != 1 {
		t.Fatalf("expected a single fetch within the TTL, got %d", calls)
	}
}

func TestRefetchesAfterTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	calls := 0

	c := New(icache.NewTTLCache(), countingFetch(&calls, models.PlayerDirectory{}, nil), testLogger(t),
		WithTTL(24*time.Hour), WithClock(clock.Now))

	if _, err := c.PlayerDirectory(context.Background()); err != nil {
		t.Fatalf("first call: %v", err)
	}
	clock.Advance(24 * time.Hour)
	if _, err := c.PlayerDirectory(context.Background()); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected refetch at exactly the TTL boundary, got %d fetches", calls)
	}
}

func TestFetchFailureIsUnavailable(t *testing.T) {
	calls := 0
	c := New(icache.NewTTLCache(), countingFetch(&calls, nil, errors.New("network down")), testLogger(t))

	_, err := c.PlayerDirectory(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestCorruptSnapshotTriggersRefetch(t *testing.T) {
	store := icache.NewTTLCache()
	if err := store.SetBytes("sleeper_players_cache", []byte("{not json"), 0); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	calls := 0
	c := New(store, countingFetch(&calls, models.PlayerDirectory{}, nil), testLogger(t))

	if _, err := c.PlayerDirectory(context.Background()); err != nil {
		t.Fatalf("corrupt snapshot must fall through to fetch: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one fetch, got %d", calls)
	}
}

func TestSnapshotSurvivesAcrossInstances(t *testing.T) {
	store := icache.NewTTLCache()
	clock := &fakeClock{t: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	calls := 0
	dir := models.PlayerDirectory{"7": {FirstName: "CJ", LastName: "Stroud"}}

	first := New(store, countingFetch(&calls, dir, nil), testLogger(t), WithClock(clock.Now))
	if _, err := first.PlayerDirectory(context.Background()); err != nil {
		t.Fatalf("first instance: %v", err)
	}

	// A second cache over the same store must reuse the stored snapshot.
	second := New(store, countingFetch(&calls, nil, errors.New("must not fetch")), testLogger(t), WithClock(clock.Now))
	got, err := second.PlayerDirectory(context.Background())
	if err != nil {
		t.Fatalf("second instance: %v", err)
	}
	if got.DisplayName("7") != "CJ Stroud" {
		t.Fatalf("snapshot not shared through store")
	}
	if calls != 1 {
		t.Fatalf("expected one fetch total, got %d", calls)
	}
}
