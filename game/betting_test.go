package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegalActionsNoBetOutstanding(t *testing.T) {
	t.Parallel()

	br := NewBettingRound(3, 10)
	p := &Player{ID: "p1", Chips: 100}

	actions := br.LegalActions(p)
	assert.Contains(t, actions, Fold, "fold is always legal")
	assert.Contains(t, actions, Check)
	assert.Contains(t, actions, Raise)
	assert.Contains(t, actions, AllIn)
	assert.NotContains(t, actions, Call)
}

func TestLegalActionsFacingBet(t *testing.T) {
	t.Parallel()

	br := NewBettingRound(3, 10)
	br.CurrentBet = 20

	p := &Player{ID: "p1", Chips: 100}
	actions := br.LegalActions(p)
	assert.NotContains(t, actions, Check, "cannot check facing a bet")
	assert.Contains(t, actions, Call)
	assert.Contains(t, actions, Raise)
	assert.Contains(t, actions, AllIn)
}

func TestLegalActionsShortStack(t *testing.T) {
	t.Parallel()

	br := NewBettingRound(3, 10)
	br.CurrentBet = 50

	// Not enough for a full raise: aggressive option is all-in only.
	p := &Player{ID: "p1", Chips: 55}
	actions := br.LegalActions(p)
	assert.Contains(t, actions, Call, "short call is legal and produces an all-in call")
	assert.NotContains(t, actions, Raise)
	assert.Contains(t, actions, AllIn)

	// Even shorter than the call amount.
	p = &Player{ID: "p2", Chips: 30}
	actions = br.LegalActions(p)
	assert.Contains(t, actions, Call)
	assert.NotContains(t, actions, Raise)
	assert.Contains(t, actions, AllIn)
}

func TestLegalActionsFoldedOrAllIn(t *testing.T) {
	t.Parallel()

	br := NewBettingRound(2, 10)
	assert.Nil(t, br.LegalActions(&Player{ID: "p1", Folded: true}))
	assert.Nil(t, br.LegalActions(&Player{ID: "p2", AllIn: true}))
}

func TestRegisterRaiseClearsActedFlags(t *testing.T) {
	t.Parallel()

	br := NewBettingRound(3, 10)
	br.MarkActed(0)
	br.MarkActed(1)

	br.RegisterRaise(2, 40, true)

	assert.False(t, br.Acted[0], "raise must reopen action for earlier players")
	assert.False(t, br.Acted[1])
	assert.True(t, br.Acted[2])
	assert.Equal(t, 40, br.CurrentBet)
	assert.Equal(t, 40, br.MinRaise)
	assert.Equal(t, 2, br.LastRaiser)
}

func TestShortAllInKeepsMinRaise(t *testing.T) {
	t.Parallel()

	br := NewBettingRound(3, 10)
	br.CurrentBet = 20
	br.MinRaise = 20

	// All-in to 25 is less than a full raise: the price moves but the
	// minimum increment for a re-raise does not shrink.
	br.RegisterRaise(1, 25, false)
	assert.Equal(t, 25, br.CurrentBet)
	assert.Equal(t, 20, br.MinRaise)
}

func TestCompleteWaitsForActionSinceLastRaise(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: "a", Chips: 100},
		{ID: "b", Chips: 100},
		{ID: "c", Chips: 100},
	}
	br := NewBettingRound(3, 10)

	// a checks, b checks.
	br.MarkActed(0)
	br.MarkActed(1)
	assert.False(t, br.Complete(players, Flop, -1), "c has not acted")

	// c bets 30: a and b checked before the raise and are owed a turn
	// even though stacks were not yet committed.
	players[2].Bet = 30
	br.RegisterRaise(2, 30, true)
	assert.False(t, br.Complete(players, Flop, -1))

	players[0].Bet = 30
	br.MarkActed(0)
	players[1].Bet = 30
	br.MarkActed(1)
	assert.True(t, br.Complete(players, Flop, -1))
}

func TestCompleteBigBlindOption(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: "dealer", Chips: 90, Bet: 10},
		{ID: "sb", Chips: 90, Bet: 10},
		{ID: "bb", Chips: 90, Bet: 10},
	}
	br := NewBettingRound(3, 10)
	br.CurrentBet = 10

	// Everyone has limped; the big blind still has the option.
	br.MarkActed(0)
	br.MarkActed(1)
	assert.False(t, br.Complete(players, Preflop, 2))

	br.MarkActed(2)
	br.BBActed = true
	assert.True(t, br.Complete(players, Preflop, 2))
}

func TestCompleteAllFoldedOrAllIn(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: "a", Folded: true},
		{ID: "b", AllIn: true},
		{ID: "c", AllIn: true},
	}
	br := NewBettingRound(3, 10)
	assert.True(t, br.Complete(players, Turn, -1))
}
