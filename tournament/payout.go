package tournament

// Payout is one row of the projected payout table
type Payout struct {
	Position int
	Percent  int
	Amount   int
}

// payoutAmounts splits a prize pool across the configured tiers using
// integer division. The remainder goes to position 1, so the amounts
// always sum to the pool exactly.
func payoutAmounts(pool int, tiers []PayoutTier) []Payout {
	out := make([]Payout, len(tiers))
	paid := 0
	for i, tier := range tiers {
		amount := pool * tier.Percent / 100
		out[i] = Payout{Position: tier.Position, Percent: tier.Percent, Amount: amount}
		paid += amount
	}
	if len(out) > 0 {
		out[0].Amount += pool - paid
	}
	return out
}

// payoutForPosition returns the payout for one finishing position, or
// zero when the position is not paid.
func payoutForPosition(pool int, tiers []PayoutTier, position int) int {
	for _, p := range payoutAmounts(pool, tiers) {
		if p.Position == position {
			return p.Amount
		}
	}
	return 0
}
