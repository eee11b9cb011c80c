package game

import (
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/cardroom/holdem/deck"
)

// DefaultMaxSeats is the largest roster a single table supports
const DefaultMaxSeats = 9

// Table owns the canonical player records for one poker table and runs
// one hand at a time. A table must only ever be mutated by one logical
// actor at a time; the orchestrator serializes incoming actions per
// table, and out-of-turn actions are rejected, never queued.
type Table struct {
	id         string
	players    []*Player // seat order
	maxSeats   int
	dealerSeat int
	ante       int

	hand       *Hand
	lastRecord *HandRecord
	nextDeck   *deck.Deck // test hook, used once

	rng    *rand.Rand
	logger *log.Logger
	bus    *Bus
}

// TableOption configures a table during creation
type TableOption func(*Table)

// WithTableID sets an explicit table id instead of a generated one
func WithTableID(id string) TableOption {
	return func(t *Table) { t.id = id }
}

// WithMaxSeats caps the number of seats
func WithMaxSeats(n int) TableOption {
	return func(t *Table) { t.maxSeats = n }
}

// WithAnte sets the ante posted by every player at hand start
func WithAnte(n int) TableOption {
	return func(t *Table) { t.ante = n }
}

// WithLogger attaches a structured logger
func WithLogger(logger *log.Logger) TableOption {
	return func(t *Table) { t.logger = logger }
}

// NewTable creates an empty table. The RNG is required so that shuffles
// and deals are explicit and reproducible under test.
func NewTable(rng *rand.Rand, opts ...TableOption) *Table {
	if rng == nil {
		panic("rng is required for table creation")
	}
	t := &Table{
		id:         uuid.NewString(),
		maxSeats:   DefaultMaxSeats,
		dealerSeat: -1,
		rng:        rng,
		logger:     log.New(io.Discard),
		bus:        NewBus(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the table identifier
func (t *Table) ID() string { return t.id }

// Events returns the table's event bus
func (t *Table) Events() *Bus { return t.bus }

// SetAnte updates the ante for subsequent hands
func (t *Table) SetAnte(n int) { t.ante = n }

// UseDeck rigs the deck for the next hand only. Intended for tests that
// need exact deals.
func (t *Table) UseDeck(d *deck.Deck) { t.nextDeck = d }

// AddPlayer seats a player with the given stack in the lowest free seat.
// Players can only join between hands.
func (t *Table) AddPlayer(id string, chips int) (*Player, error) {
	if t.HandInProgress() {
		return nil, ErrHandInProgress
	}
	if len(t.players) >= t.maxSeats {
		return nil, ErrTableFull
	}
	for _, p := range t.players {
		if p.ID == id {
			return nil, ErrSeatTaken
		}
	}

	seat := 0
	for _, p := range t.players {
		if p.Seat == seat {
			seat = p.Seat + 1
		}
	}
	player := &Player{ID: id, Seat: seat, Chips: chips}
	t.players = append(t.players, player)
	return player, nil
}

// RemovePlayer unseats a player between hands
func (t *Table) RemovePlayer(id string) error {
	if t.HandInProgress() {
		return ErrHandInProgress
	}
	for i, p := range t.players {
		if p.ID == id {
			t.players = append(t.players[:i], t.players[i+1:]...)
			return nil
		}
	}
	return ErrPlayerNotFound
}

// AddChips credits chips to a seated player between hands. Used for
// tournament rebuys and addons.
func (t *Table) AddChips(id string, amount int) error {
	if t.HandInProgress() {
		return ErrHandInProgress
	}
	p, ok := t.Player(id)
	if !ok {
		return ErrPlayerNotFound
	}
	p.Chips += amount
	return nil
}

// Player returns the canonical record for a seated player
func (t *Table) Player(id string) (*Player, bool) {
	for _, p := range t.players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// SeatedCount returns the number of seated players
func (t *Table) SeatedCount() int { return len(t.players) }

// HandInProgress reports whether a hand is currently being played
func (t *Table) HandInProgress() bool {
	return t.hand != nil && !t.hand.complete
}

// StartHand resets and reshuffles the deck, posts antes and blinds,
// deals hole cards and opens the preflop betting round. The deck from
// any previous hand is discarded.
func (t *Table) StartHand(handNumber uint64, smallBlind, bigBlind int) error {
	if t.HandInProgress() {
		return ErrHandInProgress
	}

	dealtIn := make([]*Player, 0, len(t.players))
	seats := make([]int, 0, len(t.players))
	for _, p := range t.players {
		if p.Chips > 0 {
			dealtIn = append(dealtIn, p)
			seats = append(seats, p.Seat)
		}
	}
	if len(dealtIn) < 2 {
		return ErrNotEnoughPlayers
	}

	t.dealerSeat = NextDealer(t.dealerSeat, seats)
	button := 0
	for i, p := range dealtIn {
		if p.Seat == t.dealerSeat {
			button = i
		}
	}

	d := t.nextDeck
	t.nextDeck = nil
	if d == nil {
		d = deck.NewShuffled(t.rng)
	}

	t.hand = newHand(handNumber, dealtIn, button, d, smallBlind, bigBlind, t.ante)

	t.logger.Debug("hand started",
		"table", t.id, "hand", handNumber,
		"dealer", t.dealerSeat, "sb", smallBlind, "bb", bigBlind, "ante", t.ante,
		"players", len(dealtIn))

	t.bus.Publish(HandStartedEvent{
		HandID:     t.hand.id,
		Number:     handNumber,
		TableID:    t.id,
		DealerSeat: t.dealerSeat,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		Ante:       t.ante,
		Players:    t.Players(),
		timestamp:  time.Now(),
	})

	// Blinds and antes can put every player all-in, running the hand out
	// with no actions at all.
	t.publishStreets(Preflop)
	if t.hand.complete {
		t.finishHand()
	}
	return nil
}

// ActionResult describes the state delta produced by one action
type ActionResult struct {
	HandNumber   uint64
	PlayerID     string
	Action       ActionType
	Amount       int // chips moved by this action
	NewStack     int
	Pot          int
	Street       Street
	NextToAct    string // empty when the hand is complete
	HandComplete bool
}

// ProcessAction validates and applies an action for the player currently
// due to act. Failed calls leave the table state exactly as it was.
func (t *Table) ProcessAction(playerID string, action ActionType, amount int) (*ActionResult, error) {
	if !t.HandInProgress() {
		return nil, ErrNoHandInProgress
	}
	h := t.hand

	idx := h.playerIndex(playerID)
	if idx == -1 {
		return nil, ErrPlayerNotFound
	}
	if idx != h.actionOn {
		return nil, ErrNotYourTurn
	}
	if err := h.validateAction(idx, action, amount); err != nil {
		return nil, err
	}

	streetBefore := h.street
	moved := h.applyAction(idx, action, amount)
	p := h.players[idx]

	result := &ActionResult{
		HandNumber:   h.number,
		PlayerID:     playerID,
		Action:       action,
		Amount:       moved,
		NewStack:     p.Chips,
		Pot:          potTotal(h.players),
		Street:       h.street,
		HandComplete: h.complete,
	}
	if !h.complete && h.actionOn >= 0 {
		result.NextToAct = h.players[h.actionOn].ID
	}

	t.logger.Debug("action applied",
		"table", t.id, "hand", h.number, "player", playerID,
		"action", action, "amount", moved, "pot", result.Pot, "street", h.street)

	t.bus.Publish(ActionAppliedEvent{HandID: h.id, TableID: t.id, Result: *result, timestamp: time.Now()})

	t.publishStreets(streetBefore)

	if h.complete {
		t.finishHand()
	}
	return result, nil
}

// publishStreets announces every street dealt past from, one event per
// street with the board as it stood on that street. A single action can
// run out several streets when the remaining players are all-in, and
// blinds alone can run out the whole board.
func (t *Table) publishStreets(from Street) {
	h := t.hand
	last := h.street
	if last > River {
		last = River
	}
	for s := from + 1; s <= last; s++ {
		n := min(3+int(s-Flop), len(h.board))
		board := make([]deck.Card, n)
		copy(board, h.board[:n])
		t.bus.Publish(StreetAdvancedEvent{HandID: h.id, TableID: t.id, Street: s, Board: board, timestamp: time.Now()})
	}
}

// finishHand records and announces a settled hand
func (t *Table) finishHand() {
	record := t.hand.record()
	t.lastRecord = record

	t.logger.Debug("hand complete",
		"table", t.id, "hand", record.Number, "pot", record.Pot, "awards", len(record.Awards))

	t.bus.Publish(HandCompletedEvent{HandID: record.ID, TableID: t.id, Record: record, timestamp: time.Now()})
}

// LegalActions returns the legal action set for the player currently due
// to act. Any other player gets ErrNotYourTurn.
func (t *Table) LegalActions(playerID string) ([]ActionType, error) {
	if !t.HandInProgress() {
		return nil, ErrNoHandInProgress
	}
	idx := t.hand.playerIndex(playerID)
	if idx == -1 {
		return nil, ErrPlayerNotFound
	}
	if idx != t.hand.actionOn {
		return nil, ErrNotYourTurn
	}
	return t.hand.legalActions(idx), nil
}

// CurrentHand returns a copy of the in-progress hand's record, or the
// last completed hand when the table is between hands.
func (t *Table) CurrentHand() *HandRecord {
	if t.hand != nil {
		return t.hand.record()
	}
	return t.lastRecord
}

// TotalChips returns all chips on the table: stacks plus any chips
// committed to the hand in progress. The state machine conserves this
// total across every action and settlement.
func (t *Table) TotalChips() int {
	total := 0
	for _, p := range t.players {
		total += p.Chips
	}
	if t.HandInProgress() {
		total += potTotal(t.hand.players)
	}
	return total
}
