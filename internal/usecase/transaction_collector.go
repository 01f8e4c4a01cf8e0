package usecase

import (
	"context"
	"fmt"
	"regexp"

	"RosterPulse/internal/domain/models"
	drepo "RosterPulse/internal/domain/repository"
	xlogger "RosterPulse/pkg/logger"
)

// leagueIDPattern matches structurally valid Sleeper league ids.
var leagueIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// TransactionCollector retrieves a league's transactions across a week
// range, tolerating per-week failures.
type TransactionCollector struct {
	source  drepo.TransactionSource
	metrics drepo.Metrics
	logger  *xlogger.Logger
}

// NewTransactionCollector creates a new TransactionCollector instance.
func NewTransactionCollector(source drepo.TransactionSource, metrics drepo.Metrics, l *xlogger.Logger) *TransactionCollector {
	return &TransactionCollector{source: source, metrics: metrics, logger: l}
}

// Collect fetches weeks [1, maxWeek] inclusive and concatenates their
// records in week-ascending order. A failed week contributes zero records
// and never aborts the league; only a structurally invalid league id or a
// cancelled context does.
func (c *TransactionCollector) Collect(ctx context.Context, leagueID string, maxWeek int) ([]models.TransactionRecord, error) {
	if !leagueIDPattern.MatchString(leagueID) {
		return nil, fmt.Errorf("invalid league id %q", leagueID)
	}
	if maxWeek < 1 {
		maxWeek = 1
	}

	var out []models.TransactionRecord
	for week := 1; week <= maxWeek; week++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, err := c.source.GetTransactions(ctx, leagueID, week)
		if err != nil {
			c.metrics.RecordWeekFetchError(leagueID)
			c.logger.Warn("collector: week fetch failed",
				xlogger.String("league_id", leagueID),
				xlogger.Int("week", week),
				xlogger.Error(err),
			)
			continue
		}
		out = append(out, records...)
	}

	c.metrics.RecordTransactions(leagueID, len(out))
	return out, nil
}
