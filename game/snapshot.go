package game

import (
	"github.com/cardroom/holdem/deck"
)

// GameState is a read-only snapshot of the table and the hand in
// progress. Every call returns a fresh deep copy: callers can never
// mutate engine state through a snapshot.
type GameState struct {
	TableID        string
	HandID         string
	HandNumber     uint64
	HandInProgress bool

	Street         Street
	Board          []deck.Card
	DealerSeat     int
	SmallBlindSeat int
	BigBlindSeat   int
	SmallBlind     int
	BigBlind       int
	Ante           int

	CurrentBet int
	MinRaise   int
	ActionOn   string // player id due to act, empty if none
	Pots       []Pot
	Players    []PlayerView
}

// GameState returns a defensive copy of the current state
func (t *Table) GameState() *GameState {
	state := &GameState{
		TableID:    t.id,
		DealerSeat: t.dealerSeat,
		Ante:       t.ante,
		Players:    t.Players(),
	}

	h := t.hand
	if h == nil {
		return state
	}

	state.HandID = h.id
	state.HandNumber = h.number
	state.HandInProgress = !h.complete
	state.Street = h.street
	state.Board = make([]deck.Card, len(h.board))
	copy(state.Board, h.board)
	state.SmallBlindSeat = h.players[h.sbIdx].Seat
	state.BigBlindSeat = h.players[h.bbIdx].Seat
	state.SmallBlind = h.smallBlind
	state.BigBlind = h.bigBlind
	state.Ante = h.ante
	state.CurrentBet = h.betting.CurrentBet
	state.MinRaise = h.betting.MinRaise

	if !h.complete && h.actionOn >= 0 {
		state.ActionOn = h.players[h.actionOn].ID
	}

	pots := h.Pots()
	state.Pots = make([]Pot, len(pots))
	for i, pot := range pots {
		eligible := make([]string, len(pot.Eligible))
		copy(eligible, pot.Eligible)
		state.Pots[i] = Pot{Amount: pot.Amount, Eligible: eligible}
	}
	return state
}

// Players returns read-only copies of the seated players in seat order
func (t *Table) Players() []PlayerView {
	views := make([]PlayerView, len(t.players))
	for i, p := range t.players {
		views[i] = p.view()
	}
	return views
}
