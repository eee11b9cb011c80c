package deck

import (
	"testing"

	"github.com/cardroom/holdem/internal/randutil"
)

func TestNewDeckIntegrity(t *testing.T) {
	t.Parallel()

	cards := New()
	if len(cards) != 52 {
		t.Fatalf("Expected 52 cards, got %d", len(cards))
	}

	seen := make(map[Card]bool, 52)
	for _, c := range cards {
		if seen[c] {
			t.Errorf("Duplicate card %s in fresh deck", c)
		}
		seen[c] = true
	}

	// Every suit/rank combination must be present exactly once
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			if !seen[NewCard(suit, rank)] {
				t.Errorf("Missing card %s", NewCard(suit, rank))
			}
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	t.Parallel()

	original := New()
	before := make([]Card, len(original))
	copy(before, original)

	shuffled := Shuffle(randutil.New(42), original)

	// Input must be untouched
	for i, c := range original {
		if c != before[i] {
			t.Fatalf("Shuffle mutated its input at index %d", i)
		}
	}

	if len(shuffled) != 52 {
		t.Fatalf("Shuffled deck has %d cards, want 52", len(shuffled))
	}

	counts := make(map[Card]int, 52)
	for _, c := range shuffled {
		counts[c]++
	}
	for _, c := range original {
		if counts[c] != 1 {
			t.Errorf("Card %s appears %d times after shuffle", c, counts[c])
		}
	}
}

func TestShuffleDeterministicUnderSeed(t *testing.T) {
	t.Parallel()

	a := Shuffle(randutil.New(7), New())
	b := Shuffle(randutil.New(7), New())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Same seed produced different orderings at index %d", i)
		}
	}
}

func TestDeckDraw(t *testing.T) {
	t.Parallel()

	d := NewShuffled(randutil.New(42))
	if d.Remaining() != 52 {
		t.Fatalf("Expected 52 cards remaining, got %d", d.Remaining())
	}

	seen := make(map[Card]bool, 52)
	for i := 0; i < 52; i++ {
		card, ok := d.Draw()
		if !ok {
			t.Fatalf("Draw failed at card %d", i+1)
		}
		if seen[card] {
			t.Errorf("Drew duplicate card %s", card)
		}
		seen[card] = true
	}

	if _, ok := d.Draw(); ok {
		t.Error("Draw should fail on an exhausted deck")
	}
}

func TestDeckDrawN(t *testing.T) {
	t.Parallel()

	d := NewShuffled(randutil.New(42))
	flop := d.DrawN(3)
	if len(flop) != 3 {
		t.Fatalf("Expected 3 cards, got %d", len(flop))
	}
	if d.Remaining() != 49 {
		t.Errorf("Expected 49 cards remaining, got %d", d.Remaining())
	}

	if cards := d.DrawN(50); cards != nil {
		t.Error("DrawN past the end of the deck should return nil")
	}
}

func TestFromCards(t *testing.T) {
	t.Parallel()

	rigged := []Card{
		{Suit: Spades, Rank: Ace},
		{Suit: Hearts, Rank: King},
	}
	d := FromCards(rigged)

	first, _ := d.Draw()
	if first != rigged[0] {
		t.Errorf("First card should be %s, got %s", rigged[0], first)
	}

	// Mutating the source slice must not affect the deck
	rigged[1] = Card{Suit: Clubs, Rank: Two}
	second, _ := d.Draw()
	if second != (Card{Suit: Hearts, Rank: King}) {
		t.Errorf("Deck should own a copy of its cards, got %s", second)
	}
}
