package game

import "sort"

// Pot is one pot layer: an amount and the players eligible to win it,
// in seat order. Players all-in for less than the table's maximum
// commitment only contest layers up to their own commitment level.
type Pot struct {
	Amount   int
	Eligible []string
}

// potLayers partitions the chips committed this hand into pot layers
// using the classic side-pot algorithm: one layer per distinct
// commitment level, folded players' chips counted into the amounts but
// never into eligibility. Adjacent layers with identical eligibility are
// merged so callers see one main pot plus one side pot per short all-in.
func potLayers(players []*Player) []Pot {
	levels := commitmentLevels(players)
	if len(levels) == 0 {
		return nil
	}

	pots := make([]Pot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		amount := 0
		var eligible []string
		for _, p := range players {
			contribution := min(p.TotalBet, level) - prev
			if contribution > 0 {
				amount += contribution
			}
			if !p.Folded && p.TotalBet >= level {
				eligible = append(eligible, p.ID)
			}
		}
		prev = level
		if amount == 0 {
			continue
		}

		// Merge with the previous layer when the eligible set is the same.
		if n := len(pots); n > 0 && equalIDs(pots[n-1].Eligible, eligible) {
			pots[n-1].Amount += amount
			continue
		}
		pots = append(pots, Pot{Amount: amount, Eligible: eligible})
	}
	return pots
}

// commitmentLevels returns the distinct non-zero TotalBet values in
// ascending order.
func commitmentLevels(players []*Player) []int {
	seen := make(map[int]struct{}, len(players))
	levels := make([]int, 0, len(players))
	for _, p := range players {
		if p.TotalBet == 0 {
			continue
		}
		if _, ok := seen[p.TotalBet]; ok {
			continue
		}
		seen[p.TotalBet] = struct{}{}
		levels = append(levels, p.TotalBet)
	}
	sort.Ints(levels)
	return levels
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// potTotal returns the chips committed to the hand so far
func potTotal(players []*Player) int {
	total := 0
	for _, p := range players {
		total += p.TotalBet
	}
	return total
}
