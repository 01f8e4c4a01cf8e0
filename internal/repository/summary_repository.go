package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"RosterPulse/internal/domain/models"
	"RosterPulse/internal/domain/repository"
	pkgkafka "RosterPulse/pkg/kafka"
	"RosterPulse/pkg/util"
)

// ClickHouseSummaryStore implements SummaryStore for ClickHouse. Each
// leaderboard entry becomes one row keyed by (league_id, computed_at,
// rank); a whole summary is written per refresh and read back by latest
// computed_at.
type ClickHouseSummaryStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseSummaryStore creates ClickHouse summary storage.
func NewClickHouseSummaryStore(db *sql.DB, table string) repository.SummaryStore {
	return &ClickHouseSummaryStore{db: db, table: table}
}

func (s *ClickHouseSummaryStore) Store(ctx context.Context, sum *models.LeagueSummary) error {
	if sum == nil || len(sum.Entries) == 0 {
		return nil
	}
	computedAt := util.ParseTimeDefault(sum.ComputedAt, time.Now().UTC())

	// Multi-row VALUES insert to reduce round-trips; 2000 rows per batch.
	const chunkSize = 2000
	for start := 0; start < len(sum.Entries); start += chunkSize {
		end := start + chunkSize
		if end > len(sum.Entries) {
			end = len(sum.Entries)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*9)
		for i, e := range sum.Entries[start:end] {
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				sum.LeagueID,
				e.PlayerID,
				e.Name,
				uint32(e.Adds),
				uint32(e.Drops),
				uint32(e.Trades),
				uint32(e.Score),
				uint32(start+i+1),
				computedAt,
			)
		}
		q := fmt.Sprintf(
			"INSERT INTO %s (league_id, player_id, name, adds, drops, trades, score, rank, computed_at) VALUES %s",
			s.table, strings.Join(values, ","),
		)
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("store summary league=%s: %w", sum.LeagueID, err)
		}
	}
	return nil
}

func (s *ClickHouseSummaryStore) Latest(ctx context.Context, leagueID string, limit int) (*models.LeagueSummary, error) {
	if limit <= 0 {
		limit = 200
	}
	q := fmt.Sprintf(
		"SELECT player_id, name, adds, drops, trades, score, computed_at FROM %s "+
			"WHERE league_id = ? AND computed_at = (SELECT max(computed_at) FROM %s WHERE league_id = ?) "+
			"ORDER BY rank ASC LIMIT ?",
		s.table, s.table,
	)
	rows, err := s.db.QueryContext(ctx, q, leagueID, leagueID, limit)
	if err != nil {
		return nil, fmt.Errorf("query summary league=%s: %w", leagueID, err)
	}
	defer rows.Close()

	sum := &models.LeagueSummary{LeagueID: leagueID}
	for rows.Next() {
		var (
			e          models.LeaderboardEntry
			computedAt time.Time
		)
		if err := rows.Scan(&e.PlayerID, &e.Name, &e.Adds, &e.Drops, &e.Trades, &e.Score, &computedAt); err != nil {
			return nil, err
		}
		sum.ComputedAt = computedAt.UTC().Format(time.RFC3339)
		sum.Entries = append(sum.Entries, e)
	}
	return sum, rows.Err()
}

func (s *ClickHouseSummaryStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseSummaryStore) Close() error {
	return nil // connection pool managed by pkg
}

// KafkaSummaryPublisher implements SummaryPublisher for Kafka. Summaries
// are keyed by league id so all refreshes of a league land in one
// partition, in order.
type KafkaSummaryPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSummaryPublisher creates a Kafka summary publisher.
func NewKafkaSummaryPublisher(producer *pkgkafka.Producer, topic string) repository.SummaryPublisher {
	return &KafkaSummaryPublisher{producer: producer, topic: topic}
}

func (p *KafkaSummaryPublisher) Publish(ctx context.Context, sum *models.LeagueSummary) error {
	if sum == nil {
		return nil
	}
	return p.producer.Publish(ctx, p.topic, []byte(sum.LeagueID), sum)
}

func (p *KafkaSummaryPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
