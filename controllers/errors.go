package controllers

import (
	"errors"
	"net/http"

	"vanguard/services/match"
)

// statusFromError maps the engine's named failures to HTTP statuses.
// Anything unrecognized is a storage-side failure.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, match.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, match.ErrMapNotFound),
		errors.Is(err, match.ErrInvalidSide),
		errors.Is(err, match.ErrInvalidTurn):
		return http.StatusBadRequest
	case errors.Is(err, match.ErrAlreadyInMatch),
		errors.Is(err, match.ErrMatchNotJoinable),
		errors.Is(err, match.ErrSlotTaken):
		return http.StatusConflict
	case errors.Is(err, match.ErrNotParticipant):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
