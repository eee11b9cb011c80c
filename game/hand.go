package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/cardroom/holdem/deck"
)

// Hand drives a single hand from blinds through showdown. It operates on
// the table's canonical player records; indices are positions within the
// dealt-in player list, in seat order.
type Hand struct {
	id      string
	number  uint64
	players []*Player
	button  int // index into players
	sbIdx   int
	bbIdx   int

	street   Street
	board    []deck.Card
	dck      *deck.Deck
	betting  *BettingRound
	actionOn int // index into players, -1 when nobody can act

	smallBlind int
	bigBlind   int
	ante       int

	startedAt time.Time
	endedAt   time.Time
	complete  bool
	awards    []PotAward
}

// newHand deals a fresh hand. The deck must already be shuffled; players
// must be the dealt-in players in seat order with the button index valid.
func newHand(number uint64, players []*Player, button int, d *deck.Deck, smallBlind, bigBlind, ante int) *Hand {
	h := &Hand{
		id:         uuid.NewString(),
		number:     number,
		players:    players,
		button:     button,
		street:     Preflop,
		board:      make([]deck.Card, 0, 5),
		dck:        d,
		betting:    NewBettingRound(len(players), bigBlind),
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		ante:       ante,
		startedAt:  time.Now(),
	}

	for _, p := range h.players {
		p.resetForHand()
	}

	h.postAntes()
	h.postBlinds()
	h.dealHoleCards()

	// Action starts on the first player able to act after the big blind.
	// Heads-up that is the dealer, who posted the small blind.
	h.actionOn = h.nextToAct(h.bbIdx + 1)
	if h.actionOn == -1 || h.betting.Complete(h.players, h.street, h.bbIdx) {
		// Blinds put everyone all-in already.
		h.advanceStreet()
	}
	return h
}

// seatIndexes maps blind positions using the pure seat rules
func (h *Hand) seatIndexes() {
	seats := make([]int, len(h.players))
	for i, p := range h.players {
		seats[i] = p.Seat
	}
	sbSeat := SmallBlindSeat(h.players[h.button].Seat, seats)
	bbSeat := BigBlindSeat(h.players[h.button].Seat, seats)
	for i, p := range h.players {
		if p.Seat == sbSeat {
			h.sbIdx = i
		}
		if p.Seat == bbSeat {
			h.bbIdx = i
		}
	}
}

// postAntes deducts the ante from every dealt-in player. Antes count
// toward hand commitment but not toward the street bet.
func (h *Hand) postAntes() {
	if h.ante <= 0 {
		return
	}
	for _, p := range h.players {
		posted := min(h.ante, p.Chips)
		p.Chips -= posted
		p.TotalBet += posted
		if p.Chips == 0 {
			p.AllIn = true
		}
	}
}

// postBlinds computes the blind seats relative to the dealer and deducts
// the blinds. A short stack posts what it has and is all-in.
func (h *Hand) postBlinds() {
	h.seatIndexes()
	h.players[h.sbIdx].commit(h.smallBlind)
	h.players[h.bbIdx].commit(h.bigBlind)
	h.betting.CurrentBet = h.bigBlind
}

// dealHoleCards deals two passes of one card each, in seat order starting
// left of the dealer, so no player holds a full hand before the next
// player's first card arrives.
func (h *Hand) dealHoleCards() {
	n := len(h.players)
	for pass := 0; pass < 2; pass++ {
		for i := 1; i <= n; i++ {
			p := h.players[(h.button+i)%n]
			card, ok := h.dck.Draw()
			if !ok {
				return
			}
			p.HoleCards = append(p.HoleCards, card)
		}
	}
}

// nextToAct returns the index of the first player able to act at or
// after from (wrapping), or -1 if nobody can.
func (h *Hand) nextToAct(from int) int {
	n := len(h.players)
	for i := 0; i < n; i++ {
		idx := (from + i) % n
		if h.players[idx].CanAct() {
			return idx
		}
	}
	return -1
}

// playerIndex returns the dealt-in index for a player id, or -1
func (h *Hand) playerIndex(id string) int {
	for i, p := range h.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// LegalActions returns the legal action set for the player currently due
// to act; nil if the id is not the current actor.
func (h *Hand) legalActions(idx int) []ActionType {
	if idx != h.actionOn {
		return nil
	}
	return h.betting.LegalActions(h.players[idx])
}

// validateAction checks an action against the legal-action rules without
// mutating anything, so failed calls leave the hand untouched.
func (h *Hand) validateAction(idx int, action ActionType, amount int) error {
	p := h.players[idx]
	toCall := h.betting.CurrentBet - p.Bet

	switch action {
	case Fold:
		return nil

	case Check:
		if toCall != 0 {
			return illegalAction(action, "cannot check, %d to call", toCall)
		}
		return nil

	case Call:
		if toCall == 0 {
			return illegalAction(action, "nothing to call")
		}
		if p.Chips == 0 {
			return illegalAction(action, "no chips remaining")
		}
		return nil

	case Raise:
		minTotal := h.betting.CurrentBet + h.betting.MinRaise
		maxTotal := p.Chips + p.Bet
		if amount > maxTotal {
			return illegalAction(action, "raise to %d exceeds stack of %d", amount, maxTotal)
		}
		// A stack too short for a full raise must move in with AllIn,
		// matching the advertised action set.
		if amount < minTotal {
			return illegalAction(action, "raise to %d below minimum %d", amount, minTotal)
		}
		return nil

	case AllIn:
		if p.Chips == 0 {
			return illegalAction(action, "no chips remaining")
		}
		return nil

	default:
		return illegalAction(action, "unknown action")
	}
}

// applyAction mutates state for a validated action and advances the
// turn, street and hand-completion bookkeeping. It returns the chips the
// player moved with this action.
func (h *Hand) applyAction(idx int, action ActionType, amount int) int {
	p := h.players[idx]
	h.betting.MarkActed(idx)
	if h.street == Preflop && idx == h.bbIdx {
		h.betting.BBActed = true
	}

	moved := 0
	switch action {
	case Fold:
		p.Folded = true
		if h.betting.LastRaiser == idx {
			h.betting.LastRaiser = -1
		}

	case Check:
		// No chips move.

	case Call:
		moved = p.commit(h.betting.CurrentBet - p.Bet)

	case Raise:
		moved = p.commit(amount - p.Bet)
		full := p.Bet >= h.betting.CurrentBet+h.betting.MinRaise
		h.betting.RegisterRaise(idx, p.Bet, full)

	case AllIn:
		moved = p.commit(p.Chips)
		if p.Bet > h.betting.CurrentBet {
			// A short all-in raises the price without reopening full
			// raising rights; the minimum increment only moves on a
			// full raise.
			full := p.Bet >= h.betting.CurrentBet+h.betting.MinRaise
			h.betting.RegisterRaise(idx, p.Bet, full)
		}
	}

	h.actionOn = h.nextToAct(idx + 1)

	if h.countNonFolded() <= 1 {
		h.finishEarly()
		return moved
	}

	if h.actionOn == -1 || h.betting.Complete(h.players, h.street, h.bbIdx) {
		h.advanceStreet()
	}
	return moved
}

// advanceStreet resets street betting, deals the next community cards
// and hands action to the first active seat after the dealer. When all
// remaining players are all-in the streets run out automatically.
func (h *Hand) advanceStreet() {
	for _, p := range h.players {
		p.Bet = 0
	}
	h.betting.ResetForStreet()

	switch h.street {
	case Preflop:
		h.street = Flop
		h.board = append(h.board, h.dck.DrawN(3)...)
	case Flop:
		h.street = Turn
		h.board = append(h.board, h.dck.DrawN(1)...)
	case Turn:
		h.street = River
		h.board = append(h.board, h.dck.DrawN(1)...)
	case River:
		h.street = Showdown
		h.settle()
		return
	case Showdown:
		return
	}

	h.actionOn = h.nextToAct(h.button + 1)
	if h.actionOn == -1 {
		// Everyone left is all-in; keep dealing to showdown.
		h.advanceStreet()
	}
}

// finishEarly settles immediately when all but one player has folded,
// skipping any undealt community cards.
func (h *Hand) finishEarly() {
	h.actionOn = -1
	h.settle()
}

func (h *Hand) countNonFolded() int {
	n := 0
	for _, p := range h.players {
		if !p.Folded {
			n++
		}
	}
	return n
}

// IsComplete reports whether the hand has been settled
func (h *Hand) IsComplete() bool {
	return h.complete
}

// Pots returns the current pot layers including this street's bets
func (h *Hand) Pots() []Pot {
	return potLayers(h.players)
}
