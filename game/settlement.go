package game

import (
	"fmt"
	"time"

	"github.com/cardroom/holdem/deck"
	"github.com/cardroom/holdem/evaluator"
)

// PotAward records the outcome of one pot layer
type PotAward struct {
	Amount  int
	Winners []string       // winning player ids, seat order after the button
	Shares  map[string]int // chips received per winner, odd chip included
	Ranking string         // winning hand description, empty when uncontested
}

// settle distributes every pot layer. Uncontested hands pay the last
// player standing without a showdown; otherwise each layer is awarded to
// the best hand(s) among its eligible players. Remainder chips from
// split pots go to the first tied winner in seat order after the button.
func (h *Hand) settle() {
	if h.complete {
		return
	}
	h.complete = true
	h.endedAt = time.Now()

	if h.countNonFolded() == 1 {
		for _, p := range h.players {
			if !p.Folded {
				amount := potTotal(h.players)
				p.Chips += amount
				h.awards = []PotAward{{
					Amount:  amount,
					Winners: []string{p.ID},
					Shares:  map[string]int{p.ID: amount},
				}}
				break
			}
		}
		h.clearStreetBets()
		return
	}

	// At most one showdown evaluation per player per hand.
	rankings := make(map[string]evaluator.Ranking, len(h.players))
	for _, p := range h.players {
		if p.Folded {
			continue
		}
		cards := make([]deck.Card, 0, 7)
		cards = append(cards, p.HoleCards...)
		cards = append(cards, h.board...)
		ranking, err := evaluator.Evaluate(cards)
		if err != nil {
			continue
		}
		rankings[p.ID] = ranking
	}

	h.awards = make([]PotAward, 0, 2)
	for _, pot := range potLayers(h.players) {
		winners := h.bestOfLayer(pot.Eligible, rankings)
		if len(winners) == 0 {
			// Dropping the layer would destroy chips; settlement must
			// never leave a pot unawarded.
			panic(fmt.Sprintf("pot layer of %d chips has no ranked eligible player", pot.Amount))
		}

		share := pot.Amount / len(winners)
		odd := pot.Amount % len(winners)
		ordered := h.orderAfterButton(winners)

		shares := make(map[string]int, len(winners))
		for _, id := range ordered {
			shares[id] = share
		}
		// Deterministic remainder: the odd chips go to the first tied
		// winner clockwise from the button.
		for i := 0; i < odd; i++ {
			shares[ordered[i%len(ordered)]]++
		}

		for id, amount := range shares {
			h.playerByID(id).Chips += amount
		}

		h.awards = append(h.awards, PotAward{
			Amount:  pot.Amount,
			Winners: ordered,
			Shares:  shares,
			Ranking: rankings[ordered[0]].String(),
		})
	}
	h.clearStreetBets()
}

// bestOfLayer returns the ids holding the highest-ranked hand among the
// layer's eligible players.
func (h *Hand) bestOfLayer(eligible []string, rankings map[string]evaluator.Ranking) []string {
	var winners []string
	var best evaluator.Ranking
	for _, id := range eligible {
		ranking, ok := rankings[id]
		if !ok {
			continue
		}
		if len(winners) == 0 {
			winners = []string{id}
			best = ranking
			continue
		}
		switch cmp := ranking.Compare(best); {
		case cmp > 0:
			winners = []string{id}
			best = ranking
		case cmp == 0:
			winners = append(winners, id)
		}
	}
	return winners
}

// orderAfterButton sorts ids by seat position clockwise from the button
func (h *Hand) orderAfterButton(ids []string) []string {
	n := len(h.players)
	ordered := make([]string, 0, len(ids))
	for i := 1; i <= n; i++ {
		p := h.players[(h.button+i)%n]
		for _, id := range ids {
			if id == p.ID {
				ordered = append(ordered, id)
				break
			}
		}
	}
	return ordered
}

func (h *Hand) playerByID(id string) *Player {
	for _, p := range h.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (h *Hand) clearStreetBets() {
	for _, p := range h.players {
		p.Bet = 0
	}
}

// HandRecord is the immutable record of one played-out hand
type HandRecord struct {
	ID        string
	Number    uint64
	StartedAt time.Time
	EndedAt   time.Time
	Street    Street
	Board     []deck.Card
	Pot       int
	Awards    []PotAward
}

// record snapshots the hand into an immutable HandRecord
func (h *Hand) record() *HandRecord {
	board := make([]deck.Card, len(h.board))
	copy(board, h.board)

	awards := make([]PotAward, len(h.awards))
	for i, a := range h.awards {
		winners := make([]string, len(a.Winners))
		copy(winners, a.Winners)
		shares := make(map[string]int, len(a.Shares))
		for id, amount := range a.Shares {
			shares[id] = amount
		}
		awards[i] = PotAward{Amount: a.Amount, Winners: winners, Shares: shares, Ranking: a.Ranking}
	}

	return &HandRecord{
		ID:        h.id,
		Number:    h.number,
		StartedAt: h.startedAt,
		EndedAt:   h.endedAt,
		Street:    h.street,
		Board:     board,
		Pot:       potTotal(h.players),
		Awards:    awards,
	}
}
