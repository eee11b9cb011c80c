package deck

import (
	rand "math/rand/v2"
)

// New returns the 52 canonical cards in fixed (suit, rank) enumeration
// order. Every suit and rank combination appears exactly once.
func New() []Card {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle returns a new slice holding a uniformly random permutation of
// cards (Fisher-Yates). The input slice is never mutated, so callers can
// keep a reference to the pre-shuffle ordering.
func Shuffle(rng *rand.Rand, cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Deck is an ordered sequence of cards owned by the hand currently being
// dealt. It is discarded and recreated at the start of every hand.
type Deck struct {
	cards []Card
	next  int
}

// NewShuffled creates a full deck shuffled with the provided RNG.
func NewShuffled(rng *rand.Rand) *Deck {
	return &Deck{cards: Shuffle(rng, New())}
}

// FromCards creates a deck dealing the given cards in order. Used by
// tests to rig exact deals.
func FromCards(cards []Card) *Deck {
	out := make([]Card, len(cards))
	copy(out, cards)
	return &Deck{cards: out}
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, bool) {
	if d.next >= len(d.cards) {
		return Card{}, false
	}
	card := d.cards[d.next]
	d.next++
	return card, true
}

// DrawN deals n cards from the top of the deck, or nil if the deck is short
func (d *Deck) DrawN(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
