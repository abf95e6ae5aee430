package common

import (
	"errors"
	"net/http"
)

// Domain failure kinds. Handlers map these onto HTTP statuses with
// HTTPStatus; everything else is reported as a plain 400.
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotOwner        = errors.New("booking does not belong to the requesting user")
	ErrDatesConflict   = errors.New("room is already booked for the selected dates")
	ErrInvalidRange    = errors.New("check-out date must be after check-in date")
	ErrCheckInPast     = errors.New("check-in date must not be before today")
	ErrNegativeRate    = errors.New("nightly rate must not be negative")
	ErrBadTransition   = errors.New("invalid booking status transition")
	ErrNotCancellable  = errors.New("only pending bookings can be cancelled")
)

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, ErrDatesConflict):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
