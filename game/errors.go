package game

import (
	"errors"
	"fmt"
)

// Rule violations are values returned to the caller, never panics. Every
// failed operation leaves the table and hand state exactly as it was.
var (
	// ErrNotYourTurn is returned when an action is submitted by a seat
	// other than the one currently due to act.
	ErrNotYourTurn = errors.New("not your turn to act")

	// ErrPlayerNotFound is returned when an action references a player
	// id unknown to the table.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrHandInProgress is returned when StartHand is called while a
	// hand is still being played.
	ErrHandInProgress = errors.New("hand already in progress")

	// ErrNoHandInProgress is returned when an action arrives with no
	// hand being played.
	ErrNoHandInProgress = errors.New("no hand in progress")

	// ErrNotEnoughPlayers is returned when a hand cannot start because
	// fewer than two seated players have chips.
	ErrNotEnoughPlayers = errors.New("at least 2 players with chips required")

	// ErrSeatTaken is returned when a player id is already seated.
	ErrSeatTaken = errors.New("player already seated")

	// ErrTableFull is returned when the table has no free seats.
	ErrTableFull = errors.New("table is full")
)

// IllegalActionError reports an action outside the legal set for the
// acting player, with enough detail to explain which constraint failed.
type IllegalActionError struct {
	Action ActionType
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action %s: %s", e.Action, e.Reason)
}

func illegalAction(action ActionType, format string, args ...any) error {
	return &IllegalActionError{Action: action, Reason: fmt.Sprintf(format, args...)}
}
