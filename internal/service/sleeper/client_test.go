package sleeper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

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

func TestGetState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/state/nfl" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"week":7,"season_type":"regular","season":"2025"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger(t))
	state, err := c.GetState(context.Background())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Week != 7 || state.SeasonType != "regular" || state.Season != "2025" {
		t.Fatalf("unexpected state %+v", state)
	}
}

func TestGetStateNormalizesSeasonType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"week":1,"season_type":"exhibition","season":"2025"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger(t))
	state, err := c.GetState(context.Background())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.SeasonType != "regular" {
		t.Fatalf("expected normalized season type, got %q", state.SeasonType)
	}
}

func TestGetTransactions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/league/abc123/transactions/4" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"type":"trade","adds":{"100":1}},{"type":"waiver","drops":{"200":1}}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger(t))
	records, err := c.GetTransactions(context.Background(), "abc123", 4)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Type != "trade" || records[0].Adds[0].PlayerID != "100" {
		t.Fatalf("unexpected first record %+v", records[0])
	}
}

func TestGetTransactionsNonList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"league not in season"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger(t))
	records, err := c.GetTransactions(context.Background(), "abc123", 1)
	if err != nil {
		t.Fatalf("a non-list success payload is zero records, got %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected zero records, got %d", len(records))
	}
}

func TestGetTransactionsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger(t))
	if _, err := c.GetTransactions(context.Background(), "abc123", 1); err == nil {
		t.Fatalf("expected error on 500")
	}
}

func TestGetPlayers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/players/nfl" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"100":{"first_name":"Ja'Marr","last_name":"Chase","position":"WR","team":"CIN"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger(t))
	dir, err := c.GetPlayers(context.Background())
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	if dir.DisplayName("100") != "Ja'Marr Chase" {
		t.Fatalf("unexpected directory %+v", dir)
	}
}

func TestRateLimitHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	// A single-token bucket with negligible refill; cancellation must win
	// once the token is spent.
	c := New(srv.URL, testLogger(t), WithRateLimit(0.0001, 1))
	ctx, cancel := context.WithCancel(context.Background())

	// burn the initial token
	if _, err := c.GetTransactions(ctx, "abc123", 1); err != nil {
		t.Fatalf("first request: %v", err)
	}
	cancel()
	if _, err := c.GetTransactions(ctx, "abc123", 2); err == nil {
		t.Fatalf("expected context cancellation")
	}
}
