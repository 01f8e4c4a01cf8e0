package usecase

import (
	"context"
	"sync"
	"time"

	"RosterPulse/internal/domain/models"
	drepo "RosterPulse/internal/domain/repository"
	xlogger "RosterPulse/pkg/logger"
)

// SummaryBuilder orchestrates collect → aggregate → rank per league. One
// directory snapshot is resolved up front and shared by every league of a
// run, so the live and batch paths compute identical results from the same
// inputs.
type SummaryBuilder struct {
	collector *TransactionCollector
	agg       *ActivityAggregator
	directory drepo.DirectoryProvider
	metrics   drepo.Metrics
	logger    *xlogger.Logger
	workers   int
}

// BuilderOption configures SummaryBuilder.
type BuilderOption func(*SummaryBuilder)

// WithWorkers sets how many leagues are processed concurrently. Aggregation
// is order-independent, so concurrent collection cannot change results.
func WithWorkers(n int) BuilderOption {
	return func(b *SummaryBuilder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// NewSummaryBuilder creates a new SummaryBuilder instance.
func NewSummaryBuilder(
	collector *TransactionCollector,
	directory drepo.DirectoryProvider,
	metrics drepo.Metrics,
	l *xlogger.Logger,
	opts ...BuilderOption,
) *SummaryBuilder {
	b := &SummaryBuilder{
		collector: collector,
		agg:       NewActivityAggregator(),
		directory: directory,
		metrics:   metrics,
		logger:    l,
		workers:   1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build computes summaries for every requested league. Directory failure
// is fatal to the whole run (no leaderboard can resolve names); any single
// league's failure only marks that league's summary. Every requested id is
// present in the result.
func (b *SummaryBuilder) Build(ctx context.Context, leagueIDs []string, maxWeek int) (map[string]*models.LeagueSummary, error) {
	dir, err := b.directory.PlayerDirectory(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]*models.LeagueSummary, len(leagueIDs))
	if b.workers <= 1 || len(leagueIDs) <= 1 {
		for _, id := range leagueIDs {
			out[id] = b.buildLeague(ctx, id, maxWeek, dir)
		}
		return out, nil
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		jobs = make(chan string)
	)
	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				s := b.buildLeague(ctx, id, maxWeek, dir)
				mu.Lock()
				out[id] = s
				mu.Unlock()
			}
		}()
	}
	for _, id := range leagueIDs {
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	return out, nil
}

// BuildOne computes a single league's summary (live path).
func (b *SummaryBuilder) BuildOne(ctx context.Context, leagueID string, maxWeek int) (*models.LeagueSummary, error) {
	dir, err := b.directory.PlayerDirectory(ctx)
	if err != nil {
		return nil, err
	}
	return b.buildLeague(ctx, leagueID, maxWeek, dir), nil
}

func (b *SummaryBuilder) buildLeague(ctx context.Context, leagueID string, maxWeek int, dir models.PlayerDirectory) *models.LeagueSummary {
	start := time.Now()

	records, err := b.collector.Collect(ctx, leagueID, maxWeek)
	if err != nil {
		b.metrics.RecordError("league")
		b.logger.Warn("summary: league failed",
			xlogger.String("league_id", leagueID),
			xlogger.Error(err),
		)
		return &models.LeagueSummary{LeagueID: leagueID, Error: err.Error()}
	}

	totals := b.agg.Aggregate(records)
	entries := Rank(totals, dir)

	b.metrics.RecordSummary(leagueID, len(entries))
	b.metrics.RecordLatency("league_summary", time.Since(start).Seconds())
	return &models.LeagueSummary{LeagueID: leagueID, Entries: entries}
}
