package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPotLayersSingle(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: "a", Seat: 0, TotalBet: 20},
		{ID: "b", Seat: 1, TotalBet: 20},
		{ID: "c", Seat: 2, TotalBet: 20},
	}

	pots := potLayers(players)
	require.Len(t, pots, 1)
	assert.Equal(t, 60, pots[0].Amount)
	assert.Equal(t, []string{"a", "b", "c"}, pots[0].Eligible)
}

func TestPotLayersShortAllIn(t *testing.T) {
	t.Parallel()

	// The side-pot cap: A all-in for 50, B and C continue to 200 each.
	// A only contests the layer up to 50 per contributor, never the
	// chips wagered beyond that cap.
	players := []*Player{
		{ID: "a", Seat: 0, TotalBet: 50, AllIn: true},
		{ID: "b", Seat: 1, TotalBet: 200},
		{ID: "c", Seat: 2, TotalBet: 200},
	}

	pots := potLayers(players)
	require.Len(t, pots, 2)

	assert.Equal(t, 150, pots[0].Amount, "main pot is 50 from each of three contributors")
	assert.Equal(t, []string{"a", "b", "c"}, pots[0].Eligible)

	assert.Equal(t, 300, pots[1].Amount, "side pot is the excess from B and C")
	assert.Equal(t, []string{"b", "c"}, pots[1].Eligible)
}

func TestPotLayersFoldedChipsStayInPot(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: "a", Seat: 0, TotalBet: 30, Folded: true},
		{ID: "b", Seat: 1, TotalBet: 100},
		{ID: "c", Seat: 2, TotalBet: 100},
	}

	pots := potLayers(players)
	require.Len(t, pots, 1)
	assert.Equal(t, 230, pots[0].Amount, "folded chips are still awarded")
	assert.Equal(t, []string{"b", "c"}, pots[0].Eligible, "folded players are never eligible")
}

func TestPotLayersTwoAllIns(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: "a", Seat: 0, TotalBet: 25, AllIn: true},
		{ID: "b", Seat: 1, TotalBet: 75, AllIn: true},
		{ID: "c", Seat: 2, TotalBet: 150},
		{ID: "d", Seat: 3, TotalBet: 150},
	}

	pots := potLayers(players)
	require.Len(t, pots, 3)

	assert.Equal(t, 100, pots[0].Amount) // 25 x 4
	assert.Equal(t, []string{"a", "b", "c", "d"}, pots[0].Eligible)
	assert.Equal(t, 150, pots[1].Amount) // 50 x 3
	assert.Equal(t, []string{"b", "c", "d"}, pots[1].Eligible)
	assert.Equal(t, 150, pots[2].Amount) // 75 x 2
	assert.Equal(t, []string{"c", "d"}, pots[2].Eligible)

	total := 0
	for _, pot := range pots {
		total += pot.Amount
	}
	assert.Equal(t, potTotal(players), total, "layers must partition the pot exactly")
}

func TestPotLayersEmpty(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: "a", Seat: 0},
		{ID: "b", Seat: 1},
	}
	assert.Nil(t, potLayers(players))
}
