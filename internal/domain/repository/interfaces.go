package repository

import (
	"context"

	"RosterPulse/internal/domain/models"
)

// TransactionSource is the remote league API boundary. Implementations
// return errors for transport or non-success results; tolerating per-week
// failures is the caller's concern.
type TransactionSource interface {
	GetState(ctx context.Context) (models.SeasonState, error)
	GetTransactions(ctx context.Context, leagueID string, week int) ([]models.TransactionRecord, error)
	GetPlayers(ctx context.Context) (models.PlayerDirectory, error)
}

// DirectoryProvider serves the player directory, typically from a
// TTL-cached snapshot.
type DirectoryProvider interface {
	PlayerDirectory(ctx context.Context) (models.PlayerDirectory, error)
}

// SummaryStore persists computed league summaries (batch path).
type SummaryStore interface {
	Store(ctx context.Context, s *models.LeagueSummary) error
	Latest(ctx context.Context, leagueID string, limit int) (*models.LeagueSummary, error)
	Health(ctx context.Context) error
	Close() error
}

// SummaryPublisher publishes computed summaries downstream (batch path).
type SummaryPublisher interface {
	Publish(ctx context.Context, s *models.LeagueSummary) error
	Close() error
}

// Metrics records operational metrics for collection and aggregation.
type Metrics interface {
	RecordSummary(leagueID string, players int)
	RecordWeekFetchError(leagueID string)
	RecordTransactions(leagueID string, count int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
