package match

import "errors"

// Named failures returned by the engine and the queries. The HTTP layer
// maps these to status codes with errors.Is; anything else coming out of
// an operation is a storage failure.
var (
	// Not found
	ErrMatchNotFound = errors.New("match not found")
	ErrMapNotFound   = errors.New("map not found")

	// Conflict
	ErrAlreadyInMatch   = errors.New("player already joined this match")
	ErrMatchNotJoinable = errors.New("match is not joinable")
	ErrSlotTaken        = errors.New("side is already occupied")

	// Forbidden
	ErrNotParticipant = errors.New("player is not a participant of this match")

	// Bad request
	ErrInvalidSide = errors.New("invalid side")
	ErrInvalidTurn = errors.New("turn rejected by validator")

	// ErrDuplicateCode is returned by Repository.CreateMatch when the
	// join code is already allocated. The engine recovers by retrying
	// with a fresh code; it never reaches a caller.
	ErrDuplicateCode = errors.New("join code already in use")

	// ErrCodeSpaceExhausted means the creation retry loop gave up. This
	// is a liveness failure of the code space, not a logic error.
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique join code")
)
