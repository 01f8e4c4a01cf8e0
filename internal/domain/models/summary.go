package models

// PlayerInfo is one entry of the Sleeper player directory.
type PlayerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position,omitempty"`
	Team      string `json:"team,omitempty"`
}

// PlayerDirectory maps player id to player info. It is a complete,
// atomically replaced snapshot, read-only during aggregation.
type PlayerDirectory map[string]PlayerInfo

// DisplayName resolves a player id to "First Last", falling back to the
// raw id when the directory has no entry. Resolution never fails.
func (d PlayerDirectory) DisplayName(playerID string) string {
	p, ok := d[playerID]
	if !ok {
		return playerID
	}
	return p.FirstName + " " + p.LastName
}

// LeaderboardEntry is one ranked row of a league summary.
type LeaderboardEntry struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Adds     int    `json:"adds"`
	Trades   int    `json:"trades"`
	Drops    int    `json:"drops"`
	Score    int    `json:"score"`
}

// LeagueSummary is the per-league output of a run: the full ranked
// leaderboard, or an explicit failure marker. A failed league is never
// reported as an empty success.
type LeagueSummary struct {
	LeagueID   string             `json:"league_id"`
	ComputedAt string             `json:"computed_at,omitempty"`
	Entries    []LeaderboardEntry `json:"summary"`
	Error      string             `json:"error,omitempty"`
}

// Failed reports whether the league's processing failed.
func (s *LeagueSummary) Failed() bool { return s.Error != "" }

// SeasonState is the NFL season state from the Sleeper state endpoint.
type SeasonState struct {
	Week       int    `json:"week"`
	SeasonType string `json:"season_type"`
	Season     string `json:"season"`
}

// DefaultSeasonWeeks is assumed when the state endpoint reports no week
// (e.g. offseason).
const DefaultSeasonWeeks = 18

// MaxWeek derives the last week to collect: the reported week, defaulting
// to a full season when unset, and never below 1.
func (s SeasonState) MaxWeek() int {
	w := s.Week
	if w == 0 {
		w = DefaultSeasonWeeks
	}
	if w < 1 {
		return 1
	}
	return w
}
