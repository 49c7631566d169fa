package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, negative capacity).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDuplicate is returned when a city or train name is already registered.
var ErrDuplicate = errors.New("already exists")

// ErrInvalidInterval is returned when a trip's arrival is not after its departure.
var ErrInvalidInterval = errors.New("invalid interval")

// ErrTripConflict is returned when a new trip overlaps an active trip of the
// same train. The concrete error is a *TripConflictError.
var ErrTripConflict = errors.New("trip conflict")

// ErrInvalidDelay is returned when a negative delay is applied to a trip.
var ErrInvalidDelay = errors.New("invalid delay")

// ErrReservation is returned for booking and ticket cancellation failures:
// booking on a cancelled trip, a blank passenger name, or cancelling a ticket
// that is foreign to the trip or already cancelled.
var ErrReservation = errors.New("reservation error")

// ErrInvalidState is returned when a trip is cancelled twice.
var ErrInvalidState = errors.New("invalid state")

// TripConflictError names the active trip a candidate trip collided with.
// errors.Is(err, ErrTripConflict) reports true for it.
type TripConflictError struct {
	Conflicting *Trip
}

func (e *TripConflictError) Error() string {
	return fmt.Sprintf("%s: train %q already runs trip %s between %s and %s",
		ErrTripConflict, e.Conflicting.Train().Name, e.Conflicting.ID(),
		e.Conflicting.RealDepartureTime().Format("2006-01-02T15:04Z07:00"),
		e.Conflicting.RealArrivalTime().Format("2006-01-02T15:04Z07:00"))
}

func (e *TripConflictError) Unwrap() error {
	return ErrTripConflict
}
