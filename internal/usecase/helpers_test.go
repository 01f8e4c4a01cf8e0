package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"RosterPulse/internal/domain/models"
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

// stubMetrics records calls without exporting anything.
type stubMetrics struct {
	mu            sync.Mutex
	weekErrs      int
	summaries     int
	transactions  int
	errorsByKind  map[string]int
	latencyByName map[string]int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{
		errorsByKind:  make(map[string]int),
		latencyByName: make(map[string]int),
	}
}

func (m *stubMetrics) RecordSummary(string, int) {
	m.mu.Lock()
	m.summaries++
	m.mu.Unlock()
}

func (m *stubMetrics) RecordWeekFetchError(string) {
	m.mu.Lock()
	m.weekErrs++
	m.mu.Unlock()
}

func (m *stubMetrics) RecordTransactions(_ string, count int) {
	m.mu.Lock()
	m.transactions += count
	m.mu.Unlock()
}

func (m *stubMetrics) RecordError(kind string) {
	m.mu.Lock()
	m.errorsByKind[kind]++
	m.mu.Unlock()
}

func (m *stubMetrics) RecordLatency(op string, _ float64) {
	m.mu.Lock()
	m.latencyByName[op]++
	m.mu.Unlock()
}

// fakeSource serves canned transactions per (league, week) and can fail
// selected weeks.
type fakeSource struct {
	state    models.SeasonState
	stateErr error
	records  map[string]map[int][]models.TransactionRecord
	failWeek map[int]error
	players  models.PlayerDirectory
	plErr    error
}

func (f *fakeSource) GetState(context.Context) (models.SeasonState, error) {
	return f.state, f.stateErr
}

func (f *fakeSource) GetTransactions(_ context.Context, leagueID string, week int) ([]models.TransactionRecord, error) {
	if err, ok := f.failWeek[week]; ok {
		return nil, err
	}
	return f.records[leagueID][week], nil
}

func (f *fakeSource) GetPlayers(context.Context) (models.PlayerDirectory, error) {
	return f.players, f.plErr
}

// fakeDirectory serves a fixed directory or a fixed error.
type fakeDirectory struct {
	dir models.PlayerDirectory
	err error
}

func (f *fakeDirectory) PlayerDirectory(context.Context) (models.PlayerDirectory, error) {
	return f.dir, f.err
}

// record builds a TransactionRecord from raw JSON, the shape the Sleeper
// API actually returns.
func record(t *testing.T, raw string) models.TransactionRecord {
	t.Helper()
	var r models.TransactionRecord
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("record %s: %v", raw, err)
	}
	return r
}

var errWeekDown = fmt.Errorf("upstream 500")
