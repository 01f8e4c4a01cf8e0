package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"RosterPulse/internal/domain/models"
	drepo "RosterPulse/internal/domain/repository"
	"RosterPulse/internal/service/ratelimit"
	xhttp "RosterPulse/pkg/http"
	xlogger "RosterPulse/pkg/logger"
)

// Client implements a TransactionSource backed by the Sleeper REST API.
type Client struct {
	baseURL string
	http    *xhttp.Client
	limiter *ratelimit.Limiter
	maxRPS  float64
	burst   float64
	logger  *xlogger.Logger
}

// Option configures Client.
type Option func(*Client)

// WithRateLimit caps outgoing requests per second (Sleeper asks clients to
// stay well under 1000 calls/min).
func WithRateLimit(maxRPS, burst float64) Option {
	return func(c *Client) {
		if maxRPS > 0 {
			c.maxRPS = maxRPS
		}
		if burst > 0 {
			c.burst = burst
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http = xhttp.NewClient(xhttp.WithTimeout(timeout))
	}
}

// New creates a Sleeper API client.
func New(baseURL string, l *xlogger.Logger, opts ...Option) drepo.TransactionSource {
	c := &Client{
		baseURL: baseURL,
		http:    xhttp.NewClient(),
		limiter: ratelimit.New(),
		maxRPS:  10,
		burst:   20,
		logger:  l,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetState fetches the current NFL season state.
func (c *Client) GetState(ctx context.Context) (models.SeasonState, error) {
	var state models.SeasonState
	if err := c.get(ctx, c.baseURL+"/v1/state/nfl", &state); err != nil {
		return models.SeasonState{}, fmt.Errorf("sleeper state: %w", err)
	}
	state.SeasonType = string(drepo.NormalizeSeasonType(state.SeasonType))
	return state, nil
}

// GetTransactions fetches one week of transactions for a league. A
// success response that is not list-shaped decodes to zero records.
func (c *Client) GetTransactions(ctx context.Context, leagueID string, week int) ([]models.TransactionRecord, error) {
	url := fmt.Sprintf("%s/v1/league/%s/transactions/%d", c.baseURL, leagueID, week)

	var raw []byte
	if err := c.get(ctx, url, &raw); err != nil {
		return nil, fmt.Errorf("sleeper transactions league=%s week=%d: %w", leagueID, week, err)
	}

	var records []models.TransactionRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		// not list-shaped (e.g. null or an object): zero records
		c.logger.Warn("sleeper: non-list transactions payload",
			xlogger.String("league_id", leagueID),
			xlogger.Int("week", week),
		)
		return nil, nil
	}
	return records, nil
}

// GetPlayers fetches the full player directory (~5MB payload).
func (c *Client) GetPlayers(ctx context.Context) (models.PlayerDirectory, error) {
	var dir models.PlayerDirectory
	if err := c.get(ctx, c.baseURL+"/v1/players/nfl", &dir); err != nil {
		return nil, fmt.Errorf("sleeper players: %w", err)
	}
	return dir, nil
}

func (c *Client) get(ctx context.Context, url string, dest interface{}) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	return c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    url,
	}, dest)
}

// wait blocks until the rate limiter grants a token or ctx is done.
func (c *Client) wait(ctx context.Context) error {
	for !c.limiter.Allow("sleeper", c.burst, c.maxRPS) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
	return nil
}
