package usecase

import (
	"sort"

	"RosterPulse/internal/domain/models"
)

// Activity score weights: an add is worth 1, a trade 3. Drops are reported
// but never scored.
const (
	addWeight   = 1
	tradeWeight = 3
)

// Score computes the weighted activity score for one player's counters.
func Score(c models.PlayerCounters) int {
	return c.Adds*addWeight + c.Trades*tradeWeight
}

// Rank converts counters into a leaderboard sorted by descending score.
// The sort is stable: entries with equal scores keep their first-appearance
// order. Unresolved player ids degrade to the raw id as display name.
func Rank(totals *ActivityTotals, dir models.PlayerDirectory) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, totals.Len())
	for _, pid := range totals.PlayerIDs() {
		c, _ := totals.Counters(pid)
		entries = append(entries, models.LeaderboardEntry{
			PlayerID: pid,
			Name:     dir.DisplayName(pid),
			Adds:     c.Adds,
			Trades:   c.Trades,
			Drops:    c.Drops,
			Score:    Score(c),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}
