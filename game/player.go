package game

import (
	"github.com/cardroom/holdem/deck"
)

// Player represents a seated player. The table owns the canonical record:
// chip stack, committed bets and status flags are mutated only by the
// state machine in response to actions.
type Player struct {
	ID        string
	Seat      int
	Chips     int
	HoleCards []deck.Card
	Folded    bool
	AllIn     bool
	Bet       int // chips committed this street
	TotalBet  int // chips committed this hand
}

// CanAct returns true if the player can still take an action this street
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn
}

// resetForHand clears per-hand state ahead of a new deal
func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.Folded = false
	p.AllIn = false
	p.Bet = 0
	p.TotalBet = 0
}

// commit moves up to amount chips from the stack into the current bet,
// capped at the remaining stack. Returns the chips actually moved.
func (p *Player) commit(amount int) int {
	moved := min(amount, p.Chips)
	p.Chips -= moved
	p.Bet += moved
	p.TotalBet += moved
	if p.Chips == 0 {
		p.AllIn = true
	}
	return moved
}

// PlayerView is a read-only copy of a player's state for snapshots
type PlayerView struct {
	ID        string
	Seat      int
	Chips     int
	HoleCards []deck.Card
	Folded    bool
	AllIn     bool
	Bet       int
	TotalBet  int
}

func (p *Player) view() PlayerView {
	hole := make([]deck.Card, len(p.HoleCards))
	copy(hole, p.HoleCards)
	return PlayerView{
		ID:        p.ID,
		Seat:      p.Seat,
		Chips:     p.Chips,
		HoleCards: hole,
		Folded:    p.Folded,
		AllIn:     p.AllIn,
		Bet:       p.Bet,
		TotalBet:  p.TotalBet,
	}
}
