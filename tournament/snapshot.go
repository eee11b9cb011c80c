package tournament

import (
	"sort"
	"time"

	"github.com/cardroom/holdem/game"
)

// TableSummary is one table's roster size in a state snapshot
type TableSummary struct {
	ID      string
	Players int
}

// State is a read-only snapshot of the tournament
type State struct {
	ID        string
	Name      string
	Status    Status
	Paused    bool
	Level     int
	Blinds    BlindLevel
	PrizePool int
	Entrants  int
	Remaining int
	Tables    []TableSummary
	StartedAt time.Time
}

// State returns a defensive snapshot of the tournament
func (t *Tournament) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	tables := make([]TableSummary, 0, len(t.tableIDs))
	for _, id := range t.tableIDs {
		tables = append(tables, TableSummary{ID: id, Players: t.tables[id].SeatedCount()})
	}
	return State{
		ID:        t.id,
		Name:      t.cfg.Name,
		Status:    t.status,
		Paused:    t.paused,
		Level:     t.level,
		Blinds:    t.cfg.Level(t.level),
		PrizePool: t.prizePool,
		Entrants:  len(t.entrants),
		Remaining: t.activeCountLocked(),
		Tables:    tables,
		StartedAt: t.startedAt,
	}
}

// Standing is one row of the leaderboard
type Standing struct {
	Position   int
	PlayerID   string
	Chips      int
	Eliminated bool
	Payout     int
}

// Leaderboard ranks active players by chips, then appends eliminated
// players at their recorded finishing positions. Chip ties break by
// player id so the ordering is stable.
func (t *Tournament) Leaderboard() []Standing {
	t.mu.Lock()
	defer t.mu.Unlock()

	var active, out []Standing
	for _, e := range t.entrants {
		if e.eliminated {
			out = append(out, Standing{
				Position: e.position, PlayerID: e.id,
				Eliminated: true, Payout: e.payout,
			})
			continue
		}
		chips := 0
		if table, ok := t.tables[e.tableID]; ok {
			if p, ok := table.Player(e.id); ok {
				chips = p.Chips
			}
		}
		active = append(active, Standing{PlayerID: e.id, Chips: chips, Payout: e.payout})
	}

	sort.Slice(active, func(i, j int) bool {
		if active[i].Chips != active[j].Chips {
			return active[i].Chips > active[j].Chips
		}
		return active[i].PlayerID < active[j].PlayerID
	})
	for i := range active {
		active[i].Position = i + 1
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })

	return append(active, out...)
}

// PayoutInfo projects the payout table from the current prize pool
func (t *Tournament) PayoutInfo() []Payout {
	t.mu.Lock()
	defer t.mu.Unlock()
	return payoutAmounts(t.prizePool, t.cfg.Payouts)
}

// PrizePool returns the accumulated prize pool
func (t *Tournament) PrizePool() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prizePool
}

// TableIDs returns table ids in creation order
func (t *Tournament) TableIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, len(t.tableIDs))
	copy(ids, t.tableIDs)
	return ids
}

// GameState returns a snapshot of one table
func (t *Tournament) GameState(tableID string) (*game.GameState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	table, ok := t.tables[tableID]
	if !ok {
		return nil, ErrTableNotFound
	}
	return table.GameState(), nil
}

// HandInProgress reports whether a table has a live hand
func (t *Tournament) HandInProgress(tableID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	table, ok := t.tables[tableID]
	if !ok {
		return false, ErrTableNotFound
	}
	return table.HandInProgress(), nil
}
