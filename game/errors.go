package game

import "errors"

// Umbrella errors. Every error returned by a World or handle operation wraps one of
// these, so callers can classify failures with errors.Is.
var (
	// ErrInvalidArgument marks a rejected input value. No state was changed.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIllegalAction marks an operation the game rules do not allow right now.
	// No state was changed.
	ErrIllegalAction = errors.New("illegal action")
)

// Invalid arguments.
var (
	ErrInvalidPosition = wrap(ErrInvalidArgument, "position must be finite")
	ErrInvalidName     = wrap(ErrInvalidArgument, "invalid name")
	ErrInvalidRadius   = wrap(ErrInvalidArgument, "invalid radius")
	ErrInvalidAP       = wrap(ErrInvalidArgument, "action points out of range")
	ErrInvalidYield    = wrap(ErrInvalidArgument, "propulsion yield must be in [0, 100]")
	ErrInvalidTimeStep = wrap(ErrInvalidArgument, "time step must be positive and finite")
	ErrInvalidAngle    = wrap(ErrInvalidArgument, "angle must be finite")
	ErrNoTerrain       = wrap(ErrInvalidArgument, "world needs a terrain")
)

// Illegal actions.
var (
	ErrInsufficientAP  = wrap(ErrIllegalAction, "not enough action points")
	ErrCannotMove      = wrap(ErrIllegalAction, "worm cannot move")
	ErrCannotJump      = wrap(ErrIllegalAction, "worm cannot jump")
	ErrCannotShoot     = wrap(ErrIllegalAction, "worm cannot shoot")
	ErrNotInWorld      = wrap(ErrIllegalAction, "entity is not in the world")
	ErrStillAlive      = wrap(ErrIllegalAction, "entity is still alive")
	ErrTeamLimit       = wrap(ErrIllegalAction, "team limit reached")
	ErrPlacementFailed = wrap(ErrIllegalAction, "no valid position found")
)

// kindError is a sentinel that also matches its umbrella.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func wrap(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}
