package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"RosterPulse/internal/domain/models"
	drepo "RosterPulse/internal/domain/repository"
	"RosterPulse/internal/service/directory"
	"RosterPulse/internal/usecase"
	pkgcache "RosterPulse/pkg/cache"
	xhttp "RosterPulse/pkg/http"
	xlogger "RosterPulse/pkg/logger"
	"RosterPulse/pkg/queue"

	"github.com/labstack/echo/v4"
)

// LeaderboardEchoHandler implements the live-path HTTP API. It computes
// summaries on demand through the same engine the batch path uses, with an
// optional short-lived response cache in front.
type LeaderboardEchoHandler struct {
	logger  *xlogger.Logger
	source  drepo.TransactionSource
	builder *usecase.SummaryBuilder
	store   drepo.SummaryStore // nil when ClickHouse is disabled
	cache   pkgcache.Service   // nil when live caching is disabled
	jobs    queue.QueueService // nil when the Redis queue is disabled
	ttl     time.Duration
	leagues []string
}

// HandlerOption configures LeaderboardEchoHandler.
type HandlerOption func(*LeaderboardEchoHandler)

// WithSummaryStore enables /api/history backed by persisted summaries.
func WithSummaryStore(store drepo.SummaryStore) HandlerOption {
	return func(h *LeaderboardEchoHandler) { h.store = store }
}

// WithResponseCache caches computed summaries for ttl.
func WithResponseCache(c pkgcache.Service, ttl time.Duration) HandlerOption {
	return func(h *LeaderboardEchoHandler) {
		h.cache = c
		if ttl > 0 {
			h.ttl = ttl
		}
	}
}

// WithRefreshQueue routes POST /api/refresh through the job queue.
func WithRefreshQueue(q queue.QueueService) HandlerOption {
	return func(h *LeaderboardEchoHandler) { h.jobs = q }
}

func NewLeaderboardEchoHandler(
	l *xlogger.Logger,
	source drepo.TransactionSource,
	builder *usecase.SummaryBuilder,
	leagues []string,
	opts ...HandlerOption,
) *LeaderboardEchoHandler {
	h := &LeaderboardEchoHandler{
		logger:  l,
		source:  source,
		builder: builder,
		leagues: leagues,
		ttl:     time.Minute,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *LeaderboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/leaderboard", h.Leaderboard)
	g.GET("/summaries", h.Summaries)
	g.GET("/history", h.History)
	g.POST("/refresh", h.Refresh)
	e.GET("/healthz", h.Health)
}

// Leaderboard computes one league's ranked activity table.
func (h *LeaderboardEchoHandler) Leaderboard(c echo.Context) error {
	req := &models.LeaderboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ctx := c.Request().Context()
	maxWeek, err := h.resolveMaxWeek(ctx, req.MaxWeek)
	if err != nil {
		h.logger.Error("leaderboard: week state", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	key := pkgcache.GenerateKeyWithParams("leaderboard", req.LeagueID, maxWeek)
	if h.cache != nil {
		var cached models.LeagueSummary
		if err := h.cache.Get(ctx, key, &cached); err == nil {
			return xhttp.SuccessResponse(c, truncated(&cached, req.Limit))
		}
	}

	summary, err := h.builder.BuildOne(ctx, req.LeagueID, maxWeek)
	if err != nil {
		h.logger.Error("leaderboard: build failed", xlogger.Error(err))
		if errors.Is(err, directory.ErrUnavailable) {
			return xhttp.AppErrorResponse(c,
				xhttp.NewAppError("ERR_DIRECTORY_UNAVAILABLE", "", "player directory unavailable", http.StatusBadGateway))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	if summary.Failed() {
		return xhttp.AppErrorResponse(c,
			xhttp.NewAppError("ERR_LEAGUE_FAILED", "league_id", summary.Error, http.StatusBadGateway))
	}

	if h.cache != nil {
		// cache the full summary; limits are applied per request
		_ = h.cache.Set(ctx, key, summary, h.ttl)
	}
	return xhttp.SuccessResponse(c, truncated(summary, req.Limit))
}

// Summaries computes every configured league, failed leagues included as
// explicit markers.
func (h *LeaderboardEchoHandler) Summaries(c echo.Context) error {
	req := &models.SummariesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ctx := c.Request().Context()
	maxWeek, err := h.resolveMaxWeek(ctx, 0)
	if err != nil {
		h.logger.Error("summaries: week state", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	summaries, err := h.builder.Build(ctx, h.leagues, maxWeek)
	if err != nil {
		h.logger.Error("summaries: build failed", xlogger.Error(err))
		if errors.Is(err, directory.ErrUnavailable) {
			return xhttp.AppErrorResponse(c,
				xhttp.NewAppError("ERR_DIRECTORY_UNAVAILABLE", "", "player directory unavailable", http.StatusBadGateway))
		}
		return xhttp.AppErrorResponse(c, err)
	}

	out := make(map[string]*models.LeagueSummary, len(summaries))
	for id, s := range summaries {
		out[id] = truncated(s, req.Limit)
	}
	return xhttp.SuccessResponse(c, out)
}

// History serves the last batch-persisted summary for a league.
func (h *LeaderboardEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.store == nil {
		return xhttp.NotFoundResponse(c, "summary storage is not enabled")
	}

	sum, err := h.store.Latest(c.Request().Context(), req.LeagueID, req.Limit)
	if err != nil {
		h.logger.Error("history: query failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if len(sum.Entries) == 0 {
		return xhttp.NotFoundResponse(c, "no persisted summary for league")
	}
	return xhttp.SuccessResponse(c, sum)
}

// Refresh enqueues a batch recompute for the named leagues.
func (h *LeaderboardEchoHandler) Refresh(c echo.Context) error {
	req := &models.RefreshRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.jobs == nil {
		return xhttp.NotFoundResponse(c, "refresh queue is not enabled")
	}

	if err := h.jobs.PublishMessage(c.Request().Context(), usecase.RefreshJobType, req); err != nil {
		h.logger.Error("refresh: enqueue failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.DataResponse(c, http.StatusAccepted, "refresh enqueued")
}

func (h *LeaderboardEchoHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			status["storage"] = "unavailable"
		} else {
			status["storage"] = "ok"
		}
	}
	return xhttp.SuccessResponse(c, status)
}

func (h *LeaderboardEchoHandler) resolveMaxWeek(ctx context.Context, requested int) (int, error) {
	if requested > 0 {
		return requested, nil
	}
	state, err := h.source.GetState(ctx)
	if err != nil {
		return 0, err
	}
	return state.MaxWeek(), nil
}

// truncated bounds a summary to the display limit without mutating the
// engine's full result.
func truncated(s *models.LeagueSummary, limit int) *models.LeagueSummary {
	if s == nil || limit <= 0 || len(s.Entries) <= limit {
		return s
	}
	out := *s
	out.Entries = s.Entries[:limit]
	return &out
}
