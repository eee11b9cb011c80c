package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Initial returns the single-letter initial of the suit used in tokens
func (s Suit) Initial() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. The underlying value is the rank's
// comparison value: Two is 2, Ten is 10, Ace is high at 14.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankChars = map[Rank]string{
	Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7",
	Eight: "8", Nine: "9", Ten: "T", Jack: "J", Queen: "Q", King: "K", Ace: "A",
}

// String returns the single-character representation of a rank
func (r Rank) String() string {
	if s, ok := rankChars[r]; ok {
		return s
	}
	return "?"
}

// Value returns the comparison value of the rank, 2 through 14 with
// Ace high. This is the sole ordering key for kicker comparisons.
func (r Rank) Value() int {
	return int(r)
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the display representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Token returns the compact two-character encoding of the card:
// rank character followed by the suit initial (e.g., "As", "Td").
// The encoding is a bijection over all 52 cards.
func (c Card) Token() string {
	return c.Rank.String() + c.Suit.Initial()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ParseToken decodes a two-character card token. Decoding is
// case-insensitive, so "as", "AS" and "As" all parse to the ace of spades.
func ParseToken(token string) (Card, error) {
	if len(token) != 2 {
		return Card{}, fmt.Errorf("card token must be 2 characters, got %q", token)
	}

	var rank Rank
	switch strings.ToUpper(token[:1]) {
	case "2":
		rank = Two
	case "3":
		rank = Three
	case "4":
		rank = Four
	case "5":
		rank = Five
	case "6":
		rank = Six
	case "7":
		rank = Seven
	case "8":
		rank = Eight
	case "9":
		rank = Nine
	case "T":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		return Card{}, fmt.Errorf("unknown rank %q in card token %q", token[:1], token)
	}

	var suit Suit
	switch strings.ToLower(token[1:]) {
	case "s":
		suit = Spades
	case "h":
		suit = Hearts
	case "d":
		suit = Diamonds
	case "c":
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("unknown suit %q in card token %q", token[1:], token)
	}

	return Card{Suit: suit, Rank: rank}, nil
}

// ParseTokens decodes a space-separated list of card tokens, e.g. "As Kd 7c"
func ParseTokens(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		card, err := ParseToken(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
