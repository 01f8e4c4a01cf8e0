package models

// Requests for the leaderboard HTTP endpoints. Defined in domain for
// consistency and reuse.

type LeaderboardRequest struct {
	LeagueID string `query:"league_id" json:"league_id" validate:"required"`
	Limit    int    `query:"limit" json:"limit" default:"200" validate:"gte=1,lte=1000"`
	MaxWeek  int    `query:"max_week" json:"max_week" validate:"gte=0,lte=30"`
}

type SummariesRequest struct {
	Limit int `query:"limit" json:"limit" default:"200" validate:"gte=1,lte=1000"`
}

type HistoryRequest struct {
	LeagueID string `query:"league_id" json:"league_id" validate:"required"`
	Limit    int    `query:"limit" json:"limit" default:"200" validate:"gte=1,lte=1000"`
}

// RefreshRequest triggers a batch recompute for specific leagues. An empty
// list means all configured leagues.
type RefreshRequest struct {
	LeagueIDs []string `json:"league_ids"`
}
