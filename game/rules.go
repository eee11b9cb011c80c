package game

import "sort"

// Pure seat-position rules, separated from the hand state machine so they
// can be tested in isolation. All functions take the ascending list of
// seats that are dealt into the hand; they return -1 when it is empty.

// NextDealer returns the seat that receives the button after current.
// The button moves clockwise to the next occupied seat; with current set
// to -1 (no hand played yet) the lowest seat gets the button.
func NextDealer(current int, activeSeats []int) int {
	if len(activeSeats) == 0 {
		return -1
	}
	seats := sortedSeats(activeSeats)
	for _, s := range seats {
		if s > current {
			return s
		}
	}
	return seats[0]
}

// SmallBlindSeat returns the seat posting the small blind for the given
// dealer. Heads-up the dealer posts the small blind.
func SmallBlindSeat(dealer int, activeSeats []int) int {
	if len(activeSeats) == 0 {
		return -1
	}
	if len(activeSeats) == 2 {
		return dealer
	}
	return seatAfter(dealer, activeSeats)
}

// BigBlindSeat returns the seat posting the big blind for the given
// dealer: the first occupied seat after the small blind.
func BigBlindSeat(dealer int, activeSeats []int) int {
	sb := SmallBlindSeat(dealer, activeSeats)
	if sb == -1 {
		return -1
	}
	return seatAfter(sb, activeSeats)
}

// seatAfter returns the next occupied seat clockwise from seat
func seatAfter(seat int, activeSeats []int) int {
	if len(activeSeats) == 0 {
		return -1
	}
	seats := sortedSeats(activeSeats)
	for _, s := range seats {
		if s > seat {
			return s
		}
	}
	return seats[0]
}

func sortedSeats(seats []int) []int {
	out := make([]int, len(seats))
	copy(out, seats)
	sort.Ints(out)
	return out
}
