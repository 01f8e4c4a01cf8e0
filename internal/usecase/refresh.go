package usecase

import (
	"context"
	"fmt"
	"time"

	"RosterPulse/internal/domain/models"
	drepo "RosterPulse/internal/domain/repository"
	xlogger "RosterPulse/pkg/logger"
)

// RefreshUsecase is the batch path: recompute league summaries, stamp them,
// and route them to the configured sinks (ClickHouse storage, Kafka
// publishing). Sinks are optional; a sink failure never fails the refresh.
type RefreshUsecase struct {
	builder *SummaryBuilder
	source  drepo.TransactionSource
	store   drepo.SummaryStore
	pub     drepo.SummaryPublisher
	metrics drepo.Metrics
	logger  *xlogger.Logger
	leagues []string
}

// NewRefreshUsecase creates a new RefreshUsecase instance. store and pub
// may be nil when the corresponding backend is disabled.
func NewRefreshUsecase(
	builder *SummaryBuilder,
	source drepo.TransactionSource,
	store drepo.SummaryStore,
	pub drepo.SummaryPublisher,
	metrics drepo.Metrics,
	l *xlogger.Logger,
	leagues []string,
) *RefreshUsecase {
	return &RefreshUsecase{
		builder: builder,
		source:  source,
		store:   store,
		pub:     pub,
		metrics: metrics,
		logger:  l,
		leagues: leagues,
	}
}

// Refresh recomputes the given leagues (all configured leagues when empty).
// The week range is resolved from the season state once per refresh.
func (u *RefreshUsecase) Refresh(ctx context.Context, leagueIDs []string) (map[string]*models.LeagueSummary, error) {
	if len(leagueIDs) == 0 {
		leagueIDs = u.leagues
	}

	state, err := u.source.GetState(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve week: %w", err)
	}
	maxWeek := state.MaxWeek()

	start := time.Now()
	summaries, err := u.builder.Build(ctx, leagueIDs, maxWeek)
	if err != nil {
		return nil, err
	}
	u.metrics.RecordLatency("batch_refresh", time.Since(start).Seconds())

	computedAt := time.Now().UTC().Format(time.RFC3339)
	for _, id := range leagueIDs {
		s := summaries[id]
		if s == nil {
			continue
		}
		s.ComputedAt = computedAt
		if s.Failed() {
			continue
		}
		if u.store != nil {
			if err := u.store.Store(ctx, s); err != nil {
				u.metrics.RecordError("summary_store")
				u.logger.Warn("refresh: store failed",
					xlogger.String("league_id", id), xlogger.Error(err))
			}
		}
		if u.pub != nil {
			if err := u.pub.Publish(ctx, s); err != nil {
				u.metrics.RecordError("summary_publish")
				u.logger.Warn("refresh: publish failed",
					xlogger.String("league_id", id), xlogger.Error(err))
			}
		}
	}

	u.logger.Info("refresh complete",
		xlogger.Int("leagues", len(leagueIDs)),
		xlogger.Int("max_week", maxWeek),
	)
	return summaries, nil
}
