package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"RosterPulse/internal/domain/models"
	icache "RosterPulse/internal/service/cache"
	xlogger "RosterPulse/pkg/logger"
)

// ErrUnavailable means no fresh snapshot could be served: nothing usable
// in the store and the refresh fetch failed. There is no stale fallback
// beyond the TTL window.
var ErrUnavailable = errors.New("player directory unavailable")

// FetchFunc retrieves a complete directory snapshot from the upstream
// source.
type FetchFunc func(ctx context.Context) (models.PlayerDirectory, error)

// snapshot is the stored envelope. The timestamp is unix milliseconds,
// matching the artifact format this cache inherited.
type snapshot struct {
	TS      int64                  `json:"ts"`
	Players models.PlayerDirectory `json:"data"`
}

// Cache serves the player directory under a time-to-live staleness rule.
// The clock and the storage backend are injected so staleness behavior is
// testable without real time or network.
type Cache struct {
	mu    sync.Mutex
	store icache.BytesCache
	fetch FetchFunc

	ttl    time.Duration
	key    string
	now    func() time.Time
	logger *xlogger.Logger
}

// Option configures Cache.
type Option func(*Cache)

// WithTTL sets the snapshot time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock injects a clock.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithCacheKey sets the fixed storage key.
func WithCacheKey(key string) Option {
	return func(c *Cache) {
		if key != "" {
			c.key = key
		}
	}
}

// New creates a directory cache over the given store and fetch function.
func New(store icache.BytesCache, fetch FetchFunc, l *xlogger.Logger, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		fetch:  fetch,
		ttl:    24 * time.Hour,
		key:    "sleeper_players_cache",
		now:    time.Now,
		logger: l,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PlayerDirectory returns the stored snapshot when its age is below the
// TTL, otherwise fetches a fresh one, stores it with the current
// timestamp, and returns it. The mutex serializes check-then-fetch so
// concurrent callers in one process never duplicate the fetch.
func (c *Cache) PlayerDirectory(ctx context.Context) (models.PlayerDirectory, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if dir, ok := c.loadFresh(); ok {
		return dir, nil
	}

	dir, err := c.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	env := snapshot{TS: c.now().UnixMilli(), Players: dir}
	b, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode directory snapshot: %w", err)
	}
	// Snapshot persistence is best-effort: the fetched directory is still
	// served this run; the next run refetches.
	if err := c.store.SetBytes(c.key, b, 0); err != nil {
		c.logger.Warn("directory: snapshot store failed", xlogger.Error(err))
	}
	return dir, nil
}

// loadFresh returns the stored snapshot if present, decodable, and
// younger than the TTL.
func (c *Cache) loadFresh() (models.PlayerDirectory, bool) {
	b, ok, err := c.store.GetBytes(c.key)
	if err != nil {
		c.logger.Warn("directory: snapshot load failed", xlogger.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var env snapshot
	if err := json.Unmarshal(b, &env); err != nil {
		c.logger.Warn("directory: corrupt snapshot, refetching", xlogger.Error(err))
		return nil, false
	}

	age := c.now().Sub(time.UnixMilli(env.TS))
	if age < 0 || age >= c.ttl {
		return nil, false
	}
	return env.Players, true
}
