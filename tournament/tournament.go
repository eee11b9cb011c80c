package tournament

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/cardroom/holdem/game"
)

// Status is the tournament lifecycle state
type Status string

const (
	StatusRegistering Status = "registering"
	StatusRunning     Status = "running"
	StatusFinalTable  Status = "final_table"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

// Terminal reports whether no further play is possible
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// entrant is the tournament-scoped record for a registered player. The
// table owns the canonical chip stack; this only carries the id, the
// table assignment and tournament bookkeeping.
type entrant struct {
	id         string
	tableID    string
	rebuys     int
	addedOn    bool
	eliminated bool
	position   int
	payout     int
}

// Tournament runs a multi-table tournament over game.Table instances.
// All roster mutation goes through one mutex; each table is only ever
// driven through that same lock, so hands never see concurrent writers.
type Tournament struct {
	mu sync.Mutex

	id  string
	cfg Config

	status    Status
	paused    bool
	prizePool int
	startedAt time.Time
	handSeq   uint64

	entrants map[string]*entrant
	tables   map[string]*game.Table
	tableIDs []string // creation order

	level         int
	levelStarted  time.Time
	levelDuration time.Duration
	levelSaved    time.Duration // remaining time while paused
	timer         *quartz.Timer
	timerGen      int

	rng    *rand.Rand
	clock  quartz.Clock
	logger *log.Logger
	bus    *Bus
}

// Option configures a Tournament
type Option func(*Tournament)

// WithID overrides the generated tournament id
func WithID(id string) Option {
	return func(t *Tournament) { t.id = id }
}

// WithClock injects the clock used for the blind-level timer and the
// rebuy, addon and late-registration windows
func WithClock(c quartz.Clock) Option {
	return func(t *Tournament) { t.clock = c }
}

// WithLogger injects a structured logger
func WithLogger(l *log.Logger) Option {
	return func(t *Tournament) { t.logger = l }
}

// New creates a tournament in the registering state
func New(cfg Config, rng *rand.Rand, opts ...Option) (*Tournament, error) {
	if rng == nil {
		panic("rng is required for tournament creation")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Tournament{
		id:       uuid.NewString(),
		cfg:      cfg,
		status:   StatusRegistering,
		entrants: make(map[string]*entrant),
		tables:   make(map[string]*game.Table),
		rng:      rng,
		clock:    quartz.NewReal(),
		logger:   log.New(io.Discard),
		bus:      NewBus(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// ID returns the tournament id
func (t *Tournament) ID() string { return t.id }

// Events returns the tournament's lifecycle event bus
func (t *Tournament) Events() *Bus { return t.bus }

// Status returns the current lifecycle state
func (t *Tournament) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// RegisterPlayer adds a player to the field and collects the buy-in.
// After the start it is only legal while late registration is open, and
// the player is seated immediately.
func (t *Tournament) RegisterPlayer(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.status {
	case StatusRegistering:
	case StatusRunning, StatusFinalTable:
		if !t.lateRegOpenLocked() {
			return ErrRegistrationClosed
		}
	default:
		return ErrRegistrationClosed
	}
	if _, ok := t.entrants[id]; ok {
		return ErrAlreadyRegistered
	}
	if t.cfg.MaxPlayers > 0 && len(t.entrants) >= t.cfg.MaxPlayers {
		return ErrTournamentFull
	}

	e := &entrant{id: id}
	if t.status != StatusRegistering {
		table := t.tableWithRoomLocked()
		if table == nil {
			return ErrTournamentFull
		}
		if _, err := table.AddPlayer(id, t.cfg.StartingChips); err != nil {
			return fmt.Errorf("late registration seating: %w", err)
		}
		e.tableID = table.ID()
	}

	t.entrants[id] = e
	t.prizePool += t.cfg.BuyIn
	t.logger.Info("player registered", "tournament", t.id, "player", id, "entrants", len(t.entrants), "prize_pool", t.prizePool)
	return nil
}

// StartTournament seats the field and starts blind level 0
func (t *Tournament) StartTournament() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusRegistering {
		return ErrAlreadyStarted
	}
	if len(t.entrants) < 2 {
		return game.ErrNotEnoughPlayers
	}

	ids := make([]string, 0, len(t.entrants))
	for id := range t.entrants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	t.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	numTables := (len(ids) + t.cfg.TableSize - 1) / t.cfg.TableSize
	for i := 0; i < numTables; i++ {
		t.newTableLocked()
	}

	// Round-robin seating keeps table sizes within one of each other.
	for i, id := range ids {
		table := t.tables[t.tableIDs[i%numTables]]
		if _, err := table.AddPlayer(id, t.cfg.StartingChips); err != nil {
			return fmt.Errorf("seating %s: %w", id, err)
		}
		t.entrants[id].tableID = table.ID()
	}

	t.status = StatusRunning
	t.startedAt = t.clock.Now()
	t.level = 0
	t.armLevelTimerLocked(t.cfg.Levels[0].Duration)

	t.logger.Info("tournament started",
		"tournament", t.id, "entrants", len(ids), "tables", numTables,
		"small_blind", t.cfg.Levels[0].SmallBlind, "big_blind", t.cfg.Levels[0].BigBlind)
	t.bus.Publish(StartedEvent{
		TournamentID: t.id, Entrants: len(ids), Tables: numTables,
		Level: t.cfg.Levels[0], timestamp: t.clock.Now(),
	})
	return nil
}

func (t *Tournament) newTableLocked() *game.Table {
	table := game.NewTable(t.rng,
		game.WithTableID(uuid.NewString()),
		game.WithMaxSeats(t.cfg.TableSize),
		game.WithLogger(t.logger))
	t.tables[table.ID()] = table
	t.tableIDs = append(t.tableIDs, table.ID())
	return table
}

// tableWithRoomLocked returns the table with the fewest players that
// still has a free seat and no hand in progress.
func (t *Tournament) tableWithRoomLocked() *game.Table {
	var best *game.Table
	for _, id := range t.tableIDs {
		table := t.tables[id]
		if table.SeatedCount() >= t.cfg.TableSize || table.HandInProgress() {
			continue
		}
		if best == nil || table.SeatedCount() < best.SeatedCount() {
			best = table
		}
	}
	return best
}

func (t *Tournament) lateRegOpenLocked() bool {
	return t.cfg.LateRegistration > 0 && t.clock.Since(t.startedAt) <= t.cfg.LateRegistration
}

// StartHand deals the next hand on a table at the current blind level
func (t *Tournament) StartHand(tableID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.playableLocked(); err != nil {
		return err
	}
	table, ok := t.tables[tableID]
	if !ok {
		return ErrTableNotFound
	}

	lvl := t.cfg.Level(t.level)
	table.SetAnte(lvl.Ante)
	t.handSeq++
	if err := table.StartHand(t.handSeq, lvl.SmallBlind, lvl.BigBlind); err != nil {
		t.handSeq--
		return err
	}
	return nil
}

// ProcessAction forwards a player action to their table. When the hand
// completes, busted players are eliminated and tables rebalanced before
// the call returns.
func (t *Tournament) ProcessAction(playerID string, action game.ActionType, amount int) (*game.ActionResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.playableLocked(); err != nil {
		return nil, err
	}
	table, err := t.tableForPlayerLocked(playerID)
	if err != nil {
		return nil, err
	}

	result, err := table.ProcessAction(playerID, action, amount)
	if err != nil {
		return nil, err
	}
	if result.HandComplete {
		t.sweepBustedLocked(table)
	}
	return result, nil
}

// LegalActions returns the legal action set for the player currently
// due to act on their table
func (t *Tournament) LegalActions(playerID string) ([]game.ActionType, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	table, err := t.tableForPlayerLocked(playerID)
	if err != nil {
		return nil, err
	}
	return table.LegalActions(playerID)
}

func (t *Tournament) playableLocked() error {
	if t.status.Terminal() {
		return ErrTournamentOver
	}
	if t.status == StatusRegistering {
		return ErrNotRunning
	}
	if t.paused {
		return ErrPaused
	}
	return nil
}

func (t *Tournament) tableForPlayerLocked(playerID string) (*game.Table, error) {
	e, ok := t.entrants[playerID]
	if !ok || e.eliminated {
		return nil, game.ErrPlayerNotFound
	}
	table, ok := t.tables[e.tableID]
	if !ok {
		return nil, ErrTableNotFound
	}
	return table, nil
}

// EliminatePlayer removes a player from the field, assigns their
// finishing position and records their payout when the position is
// paid. Only legal between hands on the player's table.
func (t *Tournament) EliminatePlayer(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status.Terminal() || t.status == StatusRegistering {
		return ErrNotRunning
	}
	e, ok := t.entrants[playerID]
	if !ok || e.eliminated {
		return game.ErrPlayerNotFound
	}
	table, ok := t.tables[e.tableID]
	if !ok {
		return ErrTableNotFound
	}
	if err := table.RemovePlayer(playerID); err != nil {
		return err
	}
	t.eliminateLocked(e)
	t.rebalanceLocked()
	t.maybeCompleteLocked()
	return nil
}

// eliminateLocked records the finishing position for a player already
// removed from their table.
func (t *Tournament) eliminateLocked(e *entrant) {
	e.eliminated = true
	remaining := t.activeCountLocked()
	e.position = remaining + 1
	e.payout = payoutForPosition(t.prizePool, t.cfg.Payouts, e.position)

	t.logger.Info("player eliminated",
		"tournament", t.id, "player", e.id, "position", e.position,
		"payout", e.payout, "remaining", remaining)
	t.bus.Publish(PlayerEliminatedEvent{
		TournamentID: t.id, PlayerID: e.id, Position: e.position,
		Payout: e.payout, Remaining: remaining, timestamp: t.clock.Now(),
	})
}

// sweepBustedLocked eliminates every zero-chip player at a table after
// a completed hand. While the rebuy window is open busted players keep
// their seats so they can rebuy.
func (t *Tournament) sweepBustedLocked(table *game.Table) {
	if t.rebuyOpenLocked() {
		return
	}
	for _, pv := range table.Players() {
		if pv.Chips > 0 {
			continue
		}
		e, ok := t.entrants[pv.ID]
		if !ok || e.eliminated {
			continue
		}
		if err := table.RemovePlayer(pv.ID); err != nil {
			continue
		}
		t.eliminateLocked(e)
	}
	t.rebalanceLocked()
	t.maybeCompleteLocked()
}

func (t *Tournament) activeCountLocked() int {
	n := 0
	for _, e := range t.entrants {
		if !e.eliminated {
			n++
		}
	}
	return n
}

func (t *Tournament) maybeCompleteLocked() {
	if t.status.Terminal() || t.activeCountLocked() != 1 {
		return
	}
	var winner *entrant
	for _, e := range t.entrants {
		if !e.eliminated {
			winner = e
			break
		}
	}
	winner.position = 1
	winner.payout = payoutForPosition(t.prizePool, t.cfg.Payouts, 1)

	t.stopTimerLocked()
	t.status = StatusCompleted
	t.logger.Info("tournament completed",
		"tournament", t.id, "winner", winner.id, "payout", winner.payout, "prize_pool", t.prizePool)
	t.bus.Publish(CompletedEvent{
		TournamentID: t.id, WinnerID: winner.id, Payout: winner.payout,
		PrizePool: t.prizePool, timestamp: t.clock.Now(),
	})
}

// rebalanceLocked closes empty tables, collapses to a final table once
// the field fits one, and otherwise keeps table sizes within one seat.
// Tables with a hand in progress are left alone until the hand ends.
func (t *Tournament) rebalanceLocked() {
	// Close empty tables.
	kept := t.tableIDs[:0]
	for _, id := range t.tableIDs {
		if t.tables[id].SeatedCount() == 0 {
			delete(t.tables, id)
			continue
		}
		kept = append(kept, id)
	}
	t.tableIDs = kept

	if len(t.tableIDs) <= 1 {
		return
	}

	if t.activeCountLocked() <= t.cfg.TableSize {
		t.collapseToFinalTableLocked()
		return
	}

	for {
		largest, smallest := t.extremeTablesLocked()
		if largest == nil || smallest == nil {
			return
		}
		if largest.SeatedCount()-smallest.SeatedCount() <= 1 {
			return
		}
		if !t.movePlayerLocked(largest, smallest) {
			return
		}
	}
}

func (t *Tournament) extremeTablesLocked() (largest, smallest *game.Table) {
	for _, id := range t.tableIDs {
		table := t.tables[id]
		if table.HandInProgress() {
			continue
		}
		if largest == nil || table.SeatedCount() > largest.SeatedCount() {
			largest = table
		}
		if smallest == nil || table.SeatedCount() < smallest.SeatedCount() {
			smallest = table
		}
	}
	return largest, smallest
}

// movePlayerLocked moves the highest free seat's player from src to
// dst, carrying their chips.
func (t *Tournament) movePlayerLocked(src, dst *game.Table) bool {
	players := src.Players()
	if len(players) == 0 {
		return false
	}
	moved := players[len(players)-1]
	if err := src.RemovePlayer(moved.ID); err != nil {
		return false
	}
	if _, err := dst.AddPlayer(moved.ID, moved.Chips); err != nil {
		// Undo so no chips are orphaned.
		src.AddPlayer(moved.ID, moved.Chips)
		return false
	}
	t.entrants[moved.ID].tableID = dst.ID()
	t.logger.Debug("player moved", "tournament", t.id, "player", moved.ID,
		"from", src.ID(), "to", dst.ID())
	return true
}

func (t *Tournament) collapseToFinalTableLocked() {
	// Seat everyone at the fullest table that is between hands.
	var dst *game.Table
	for _, id := range t.tableIDs {
		table := t.tables[id]
		if table.HandInProgress() {
			continue
		}
		if dst == nil || table.SeatedCount() > dst.SeatedCount() {
			dst = table
		}
	}
	if dst == nil {
		return
	}

	for _, id := range t.tableIDs {
		src := t.tables[id]
		if src == dst || src.HandInProgress() {
			continue
		}
		for _, pv := range src.Players() {
			if err := src.RemovePlayer(pv.ID); err != nil {
				continue
			}
			if _, err := dst.AddPlayer(pv.ID, pv.Chips); err != nil {
				src.AddPlayer(pv.ID, pv.Chips)
				continue
			}
			t.entrants[pv.ID].tableID = dst.ID()
		}
	}

	kept := t.tableIDs[:0]
	for _, id := range t.tableIDs {
		if t.tables[id].SeatedCount() == 0 {
			delete(t.tables, id)
			continue
		}
		kept = append(kept, id)
	}
	t.tableIDs = kept

	if len(t.tableIDs) == 1 && t.status == StatusRunning {
		t.status = StatusFinalTable
		ids := make([]string, 0, dst.SeatedCount())
		for _, pv := range dst.Players() {
			ids = append(ids, pv.ID)
		}
		t.logger.Info("final table reached", "tournament", t.id, "players", len(ids))
		t.bus.Publish(FinalTableEvent{
			TournamentID: t.id, TableID: dst.ID(), Players: ids, timestamp: t.clock.Now(),
		})
	}
}

// ProcessRebuy restores a busted player's stack during the rebuy window
func (t *Tournament) ProcessRebuy(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status.Terminal() || t.status == StatusRegistering {
		return ErrNotRunning
	}
	if !t.rebuyOpenLocked() {
		return ErrInvalidRebuyWindow
	}
	e, ok := t.entrants[playerID]
	if !ok || e.eliminated {
		return game.ErrPlayerNotFound
	}
	table, ok := t.tables[e.tableID]
	if !ok {
		return ErrTableNotFound
	}
	p, ok := table.Player(playerID)
	if !ok {
		return game.ErrPlayerNotFound
	}
	if p.Chips != 0 {
		return ErrPlayerHasChips
	}
	if err := table.AddChips(playerID, t.cfg.RebuyChips); err != nil {
		return err
	}

	e.rebuys++
	t.prizePool += t.cfg.RebuyPrice
	t.logger.Info("rebuy processed", "tournament", t.id, "player", playerID,
		"rebuys", e.rebuys, "prize_pool", t.prizePool)
	t.bus.Publish(RebuyProcessedEvent{
		TournamentID: t.id, PlayerID: playerID, Chips: t.cfg.RebuyChips,
		PrizePool: t.prizePool, timestamp: t.clock.Now(),
	})
	return nil
}

// ProcessAddon adds the one-time addon to a player's stack during the
// addon window
func (t *Tournament) ProcessAddon(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status.Terminal() || t.status == StatusRegistering {
		return ErrNotRunning
	}
	if !t.addonOpenLocked() {
		return ErrInvalidAddonWindow
	}
	e, ok := t.entrants[playerID]
	if !ok || e.eliminated {
		return game.ErrPlayerNotFound
	}
	if e.addedOn {
		return ErrAlreadyAddedOn
	}
	table, ok := t.tables[e.tableID]
	if !ok {
		return ErrTableNotFound
	}
	if err := table.AddChips(playerID, t.cfg.AddonChips); err != nil {
		return err
	}

	e.addedOn = true
	t.prizePool += t.cfg.AddonPrice
	t.logger.Info("addon processed", "tournament", t.id, "player", playerID,
		"prize_pool", t.prizePool)
	t.bus.Publish(AddonProcessedEvent{
		TournamentID: t.id, PlayerID: playerID, Chips: t.cfg.AddonChips,
		PrizePool: t.prizePool, timestamp: t.clock.Now(),
	})
	return nil
}

func (t *Tournament) rebuyOpenLocked() bool {
	return t.cfg.RebuyWindow > 0 && t.clock.Since(t.startedAt) <= t.cfg.RebuyWindow
}

func (t *Tournament) addonOpenLocked() bool {
	return t.cfg.AddonWindow > 0 && t.clock.Since(t.startedAt) <= t.cfg.AddonWindow
}

// Pause suspends the blind-level timer, keeping the unplayed remainder
// of the current level
func (t *Tournament) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusRunning && t.status != StatusFinalTable {
		return ErrNotRunning
	}
	if t.paused {
		return ErrAlreadyPaused
	}

	t.levelSaved = 0
	if t.timer != nil {
		elapsed := t.clock.Since(t.levelStarted)
		if remaining := t.levelDuration - elapsed; remaining > 0 {
			t.levelSaved = remaining
		}
	}
	t.stopTimerLocked()
	t.paused = true

	t.logger.Info("tournament paused", "tournament", t.id, "level_remaining", t.levelSaved)
	t.bus.Publish(PausedEvent{TournamentID: t.id, Remaining: t.levelSaved, timestamp: t.clock.Now()})
	return nil
}

// Resume restarts the blind-level timer with the remainder saved by
// Pause
func (t *Tournament) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusRunning && t.status != StatusFinalTable {
		return ErrNotRunning
	}
	if !t.paused {
		return ErrNotPaused
	}

	t.paused = false
	remaining := t.levelSaved
	t.levelSaved = 0
	if remaining > 0 {
		t.armLevelTimerLocked(remaining)
	} else if t.level+1 < len(t.cfg.Levels) {
		// The level expired exactly at the pause boundary.
		t.advanceLevelLocked()
	}

	t.logger.Info("tournament resumed", "tournament", t.id, "level_remaining", remaining)
	t.bus.Publish(ResumedEvent{TournamentID: t.id, Remaining: remaining, timestamp: t.clock.Now()})
	return nil
}

// Cancel aborts a tournament from any non-terminal state
func (t *Tournament) Cancel() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status.Terminal() {
		return ErrTournamentOver
	}
	t.stopTimerLocked()
	t.status = StatusCancelled

	t.logger.Info("tournament cancelled", "tournament", t.id)
	t.bus.Publish(CancelledEvent{TournamentID: t.id, timestamp: t.clock.Now()})
	return nil
}

// armLevelTimerLocked schedules the next level advancement. The final
// configured level never re-arms: it simply plays on.
func (t *Tournament) armLevelTimerLocked(d time.Duration) {
	t.stopTimerLocked()
	t.levelStarted = t.clock.Now()
	t.levelDuration = d
	gen := t.timerGen
	t.timer = t.clock.AfterFunc(d, func() { t.levelExpired(gen) })
}

func (t *Tournament) stopTimerLocked() {
	t.timerGen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Tournament) levelExpired(gen int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// A stopped or replaced timer may still fire; the generation check
	// discards it.
	if gen != t.timerGen || t.paused || t.status.Terminal() {
		return
	}
	t.timer = nil
	t.advanceLevelLocked()
}

func (t *Tournament) advanceLevelLocked() {
	if t.level+1 >= len(t.cfg.Levels) {
		return
	}
	t.level++
	lvl := t.cfg.Levels[t.level]

	t.logger.Info("blind level advanced", "tournament", t.id, "level", t.level,
		"small_blind", lvl.SmallBlind, "big_blind", lvl.BigBlind, "ante", lvl.Ante)
	t.bus.Publish(LevelAdvancedEvent{
		TournamentID: t.id, Level: t.level, Blinds: lvl, timestamp: t.clock.Now(),
	})

	// The final level arms too; its expiry is a no-op and play simply
	// continues at that level.
	t.armLevelTimerLocked(lvl.Duration)
}
