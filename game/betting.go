package game

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// ActionType represents a player action
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Raise
	AllIn
)

func (a ActionType) String() string {
	return [...]string{"fold", "check", "call", "raise", "allin"}[a]
}

// BettingRound holds the betting state for a single street.
//
// Acted tracks which players have acted since the last raise; the flags
// of every other live player are cleared whenever the current bet
// increases, so a player who checked before a late raise is still owed
// a turn even when commitments happen to match.
type BettingRound struct {
	CurrentBet int
	MinRaise   int
	LastRaiser int // index of the last aggressor, -1 if none
	BBActed    bool
	Acted      []bool
	bigBlind   int
}

// NewBettingRound creates betting state for numPlayers seats
func NewBettingRound(numPlayers, bigBlind int) *BettingRound {
	return &BettingRound{
		MinRaise:   bigBlind,
		LastRaiser: -1,
		Acted:      make([]bool, numPlayers),
		bigBlind:   bigBlind,
	}
}

// ResetForStreet clears per-street state; the minimum raise returns to
// one big blind.
func (br *BettingRound) ResetForStreet() {
	br.CurrentBet = 0
	br.MinRaise = br.bigBlind
	br.LastRaiser = -1
	for i := range br.Acted {
		br.Acted[i] = false
	}
}

// MarkActed records that the player at idx has acted this street
func (br *BettingRound) MarkActed(idx int) {
	if idx >= 0 && idx < len(br.Acted) {
		br.Acted[idx] = true
	}
}

// RegisterRaise records a bet increase by the player at idx. Every other
// player's acted flag is cleared: they all owe a response to the new
// price. fullRaise controls whether the minimum raise increment moves;
// a short all-in raises the price without reopening full raising rights.
func (br *BettingRound) RegisterRaise(idx, newBet int, fullRaise bool) {
	if fullRaise {
		br.MinRaise = newBet - br.CurrentBet
	}
	br.CurrentBet = newBet
	br.LastRaiser = idx
	for i := range br.Acted {
		br.Acted[i] = i == idx
	}
}

// LegalActions computes the legal action set for a player facing the
// current bet. Fold is always legal; folding when a check is available
// is actionable but not forbidden.
func (br *BettingRound) LegalActions(p *Player) []ActionType {
	if !p.CanAct() {
		return nil
	}

	actions := []ActionType{Fold}
	toCall := br.CurrentBet - p.Bet

	if toCall == 0 {
		actions = append(actions, Check)
	} else if p.Chips > 0 {
		// A short stack may always call for less, producing an all-in call.
		actions = append(actions, Call)
	}

	if p.Chips > toCall+br.MinRaise {
		actions = append(actions, Raise)
	}
	if p.Chips > 0 {
		actions = append(actions, AllIn)
	}
	return actions
}

// Complete reports whether the street's betting has finished: every
// player who is neither folded nor all-in has matched the current bet
// and has acted since the last raise. Preflop the big blind keeps the
// option to raise even when all bets match.
func (br *BettingRound) Complete(players []*Player, street Street, bbIdx int) bool {
	live := 0
	for _, p := range players {
		if p.CanAct() {
			live++
		}
	}
	if live == 0 {
		return true
	}

	for i, p := range players {
		if !p.CanAct() {
			continue
		}
		if p.Bet != br.CurrentBet {
			return false
		}
		if !br.Acted[i] {
			return false
		}
	}

	// Big blind option: no raise yet and the BB has not acted.
	if street == Preflop && br.LastRaiser == -1 &&
		bbIdx >= 0 && bbIdx < len(players) &&
		players[bbIdx].CanAct() && !br.BBActed {
		return false
	}

	return true
}
