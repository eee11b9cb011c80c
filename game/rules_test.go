package game

import "testing"

func TestNextDealer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		current  int
		seats    []int
		expected int
	}{
		{"first hand goes to lowest seat", -1, []int{0, 1, 2}, 0},
		{"rotates clockwise", 0, []int{0, 1, 2}, 1},
		{"wraps around", 2, []int{0, 1, 2}, 0},
		{"skips empty seats", 1, []int{0, 1, 4, 7}, 4},
		{"dealer eliminated between hands", 2, []int{0, 4}, 4},
		{"unsorted input", 0, []int{2, 1, 0}, 1},
		{"no seats", 0, nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextDealer(tt.current, tt.seats); got != tt.expected {
				t.Errorf("NextDealer(%d, %v) = %d, want %d", tt.current, tt.seats, got, tt.expected)
			}
		})
	}
}

func TestBlindSeats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		dealer int
		seats  []int
		sb     int
		bb     int
	}{
		{"three handed", 0, []int{0, 1, 2}, 1, 2},
		{"blinds wrap past dealer", 2, []int{0, 1, 2}, 0, 1},
		{"sparse seats", 1, []int{1, 4, 7}, 4, 7},
		{"heads-up dealer posts small blind", 0, []int{0, 1}, 0, 1},
		{"heads-up other seat dealing", 1, []int{0, 1}, 1, 0},
		{"full ring", 3, []int{0, 1, 2, 3, 4, 5}, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if sb := SmallBlindSeat(tt.dealer, tt.seats); sb != tt.sb {
				t.Errorf("SmallBlindSeat(%d, %v) = %d, want %d", tt.dealer, tt.seats, sb, tt.sb)
			}
			if bb := BigBlindSeat(tt.dealer, tt.seats); bb != tt.bb {
				t.Errorf("BigBlindSeat(%d, %v) = %d, want %d", tt.dealer, tt.seats, bb, tt.bb)
			}
		})
	}
}
