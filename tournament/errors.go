package tournament

import "errors"

// Lifecycle precondition failures. All are recoverable: the caller is
// told why the request was rejected and tournament state is unchanged.
var (
	ErrRegistrationClosed = errors.New("registration is closed")
	ErrTournamentFull     = errors.New("tournament is full")
	ErrAlreadyRegistered  = errors.New("player is already registered")
	ErrInvalidRebuyWindow = errors.New("rebuy window is not open")
	ErrInvalidAddonWindow = errors.New("addon window is not open")
	ErrAlreadyAddedOn     = errors.New("player has already added on")
	ErrPlayerHasChips     = errors.New("rebuy requires a zero chip stack")
	ErrNotRunning         = errors.New("tournament is not running")
	ErrAlreadyStarted     = errors.New("tournament has already started")
	ErrNotPaused          = errors.New("tournament is not paused")
	ErrAlreadyPaused      = errors.New("tournament is already paused")
	ErrPaused             = errors.New("tournament is paused")
	ErrTableNotFound      = errors.New("table not found")
	ErrTournamentOver     = errors.New("tournament has finished")
)
