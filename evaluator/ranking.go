package evaluator

import (
	"strings"

	"github.com/cardroom/holdem/deck"
)

// Category is the ordinal class of a 5-card poker hand. Higher beats lower.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Ranking is the result of evaluating a hand: the category of the best
// 5-card combination, the rank values used to break ties within the
// category (descending, most significant first), and the five cards
// actually used.
type Ranking struct {
	Category Category
	Tiebreak []int
	BestFive []deck.Card
}

// Compare orders two rankings: category first, then tiebreak ranks in
// sequence. Returns >0 if r beats other, <0 if it loses, 0 on an exact tie.
func (r Ranking) Compare(other Ranking) int {
	if r.Category != other.Category {
		return int(r.Category) - int(other.Category)
	}
	n := min(len(r.Tiebreak), len(other.Tiebreak))
	for i := 0; i < n; i++ {
		if r.Tiebreak[i] != other.Tiebreak[i] {
			return r.Tiebreak[i] - other.Tiebreak[i]
		}
	}
	return len(r.Tiebreak) - len(other.Tiebreak)
}

// String renders the ranking for logs and hand summaries, e.g.
// "Full House [Ks Kh Kd 2s 2c]"
func (r Ranking) String() string {
	tokens := make([]string, len(r.BestFive))
	for i, c := range r.BestFive {
		tokens[i] = c.Token()
	}
	return r.Category.String() + " [" + strings.Join(tokens, " ") + "]"
}
