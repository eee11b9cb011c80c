// Package evaluator finds the best 5-card poker hand among 5 to 7 cards.
//
// Evaluation enumerates every 5-card subset of the input (21 subsets in
// the common 7-card case), scores each independently and keeps the
// maximum, so the result is exact for any mix of hole and community cards.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/cardroom/holdem/deck"
)

// InsufficientCardsError reports an evaluation request with fewer than
// five cards. This is a programmer error in the caller, not a
// player-facing condition.
type InsufficientCardsError struct {
	Got int
}

func (e *InsufficientCardsError) Error() string {
	return fmt.Sprintf("hand evaluation requires at least 5 cards, got %d", e.Got)
}

// Evaluate returns the best Ranking achievable with the given cards.
// len(cards) must be between 5 and 7 inclusive.
func Evaluate(cards []deck.Card) (Ranking, error) {
	if len(cards) < 5 {
		return Ranking{}, &InsufficientCardsError{Got: len(cards)}
	}
	if len(cards) > 7 {
		return Ranking{}, fmt.Errorf("hand evaluation takes at most 7 cards, got %d", len(cards))
	}

	var best Ranking
	first := true
	combo := [5]deck.Card{}
	forEachCombination(len(cards), func(idx [5]int) {
		for i, ci := range idx {
			combo[i] = cards[ci]
		}
		candidate := scoreFive(combo)
		if first || candidate.Compare(best) > 0 {
			best = candidate
			first = false
		}
	})
	return best, nil
}

// forEachCombination visits every 5-element index combination of n items.
func forEachCombination(n int, visit func([5]int)) {
	var idx [5]int
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == 5 {
			visit(idx)
			return
		}
		for i := start; i <= n-(5-depth); i++ {
			idx[depth] = i
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
}

// scoreFive ranks exactly five cards.
func scoreFive(cards [5]deck.Card) Ranking {
	sorted := cards[:]
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank > sorted[j].Rank })

	rankCounts := map[deck.Rank]int{}
	suitCounts := map[deck.Suit]int{}
	for _, c := range sorted {
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
	}

	isFlush := len(suitCounts) == 1
	straightHigh, isStraight := straightHighValue(sorted)

	if isFlush && isStraight {
		best := straightOrder(sorted, straightHigh)
		if straightHigh == deck.Ace.Value() {
			return Ranking{Category: RoyalFlush, Tiebreak: []int{straightHigh}, BestFive: best}
		}
		return Ranking{Category: StraightFlush, Tiebreak: []int{straightHigh}, BestFive: best}
	}

	groups := groupRanks(rankCounts)

	switch {
	case groups[0].count == 4:
		return Ranking{
			Category: FourOfAKind,
			Tiebreak: []int{groups[0].rank.Value(), groups[1].rank.Value()},
			BestFive: groupedOrder(sorted, groups),
		}
	case groups[0].count == 3 && groups[1].count == 2:
		return Ranking{
			Category: FullHouse,
			Tiebreak: []int{groups[0].rank.Value(), groups[1].rank.Value()},
			BestFive: groupedOrder(sorted, groups),
		}
	case isFlush:
		return Ranking{Category: Flush, Tiebreak: rankValues(sorted), BestFive: sorted}
	case isStraight:
		return Ranking{Category: Straight, Tiebreak: []int{straightHigh}, BestFive: straightOrder(sorted, straightHigh)}
	case groups[0].count == 3:
		return Ranking{
			Category: ThreeOfAKind,
			Tiebreak: groupValues(groups),
			BestFive: groupedOrder(sorted, groups),
		}
	case groups[0].count == 2 && groups[1].count == 2:
		return Ranking{
			Category: TwoPair,
			Tiebreak: groupValues(groups),
			BestFive: groupedOrder(sorted, groups),
		}
	case groups[0].count == 2:
		return Ranking{
			Category: OnePair,
			Tiebreak: groupValues(groups),
			BestFive: groupedOrder(sorted, groups),
		}
	default:
		return Ranking{Category: HighCard, Tiebreak: rankValues(sorted), BestFive: sorted}
	}
}

type rankGroup struct {
	rank  deck.Rank
	count int
}

// groupRanks orders rank groups by count then rank, so the quad/trip/pair
// ranks come before kickers.
func groupRanks(rankCounts map[deck.Rank]int) []rankGroup {
	groups := make([]rankGroup, 0, len(rankCounts))
	for rank, count := range rankCounts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

func groupValues(groups []rankGroup) []int {
	values := make([]int, len(groups))
	for i, g := range groups {
		values[i] = g.rank.Value()
	}
	return values
}

func rankValues(cards []deck.Card) []int {
	values := make([]int, len(cards))
	for i, c := range cards {
		values[i] = c.Rank.Value()
	}
	return values
}

// groupedOrder arranges the five cards by group significance: the
// quad/trip/pair cards first, then kickers in descending rank.
func groupedOrder(sorted []deck.Card, groups []rankGroup) []deck.Card {
	out := make([]deck.Card, 0, 5)
	for _, g := range groups {
		for _, c := range sorted {
			if c.Rank == g.rank {
				out = append(out, c)
			}
		}
	}
	return out
}

// straightHighValue reports whether the five distinct-rank cards form a
// straight and, if so, the value of its high card. The wheel
// (A-2-3-4-5) is special-cased: the Ace plays low and the straight is
// 5-high, ranking below a 6-high straight even though Ace is worth 14
// everywhere else.
func straightHighValue(sorted []deck.Card) (int, bool) {
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rank == sorted[i-1].Rank {
			return 0, false
		}
	}

	// Wheel: A 5 4 3 2 in descending order.
	if sorted[0].Rank == deck.Ace &&
		sorted[1].Rank == deck.Five &&
		sorted[2].Rank == deck.Four &&
		sorted[3].Rank == deck.Three &&
		sorted[4].Rank == deck.Two {
		return deck.Five.Value(), true
	}

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Rank.Value()-sorted[i].Rank.Value() != 1 {
			return 0, false
		}
	}
	return sorted[0].Rank.Value(), true
}

// straightOrder arranges straight cards high-to-low; the wheel is
// rendered 5-4-3-2-A with the Ace last.
func straightOrder(sorted []deck.Card, highValue int) []deck.Card {
	if highValue == deck.Five.Value() && sorted[0].Rank == deck.Ace {
		out := make([]deck.Card, 0, 5)
		out = append(out, sorted[1:]...)
		out = append(out, sorted[0])
		return out
	}
	return sorted
}
