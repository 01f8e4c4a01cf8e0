package usecase

import (
	"RosterPulse/internal/domain/models"
)

// ActivityTotals holds one league's per-player counters plus the order in
// which player ids were first observed. The encounter order is what ranking
// falls back to on score ties.
type ActivityTotals struct {
	order    []string
	counters map[string]*models.PlayerCounters
}

func newActivityTotals() *ActivityTotals {
	return &ActivityTotals{counters: make(map[string]*models.PlayerCounters)}
}

// at returns the counters for a player id, creating them on first sight.
func (t *ActivityTotals) at(playerID string) *models.PlayerCounters {
	c, ok := t.counters[playerID]
	if !ok {
		c = &models.PlayerCounters{}
		t.counters[playerID] = c
		t.order = append(t.order, playerID)
	}
	return c
}

// PlayerIDs returns ids in first-appearance order.
func (t *ActivityTotals) PlayerIDs() []string { return t.order }

// Counters returns a player's counters.
func (t *ActivityTotals) Counters(playerID string) (models.PlayerCounters, bool) {
	c, ok := t.counters[playerID]
	if !ok {
		return models.PlayerCounters{}, false
	}
	return *c, true
}

// Len returns the number of distinct players observed.
func (t *ActivityTotals) Len() int { return len(t.order) }

// ActivityAggregator folds transaction records into per-player counters.
// All steps are commutative accumulations, so the resulting counters do not
// depend on record order (which permits concurrent per-week fetches).
type ActivityAggregator struct{}

func NewActivityAggregator() *ActivityAggregator { return &ActivityAggregator{} }

// Aggregate applies, per record: fold adds, fold drops, and count one trade
// per player listed in a trade's adds mapping. Records without a type
// marker are skipped. A trade without adds (a pure draft-pick trade)
// contributes no trade counts; the counters track player movement, not
// pick movement.
func (a *ActivityAggregator) Aggregate(records []models.TransactionRecord) *ActivityTotals {
	totals := newActivityTotals()
	for _, r := range records {
		if r.Type == "" {
			continue
		}
		for _, e := range r.Adds {
			totals.at(e.PlayerID).Adds += e.Qty.Units()
		}
		for _, e := range r.Drops {
			totals.at(e.PlayerID).Drops += e.Qty.Units()
		}
		if r.Type == models.TransactionTrade {
			for _, e := range r.Adds {
				totals.at(e.PlayerID).Trades++
			}
		}
	}
	return totals
}
