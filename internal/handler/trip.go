package handler

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	iso8601 "github.com/senseyeio/duration"

	"github.com/pkordes/train-reservation/internal/domain"
)

// Trip is the JSON representation of a trip.
// Delays are ISO-8601 durations; real times already include them.
type Trip struct {
	ID                 uuid.UUID         `json:"id"`
	Origin             string            `json:"origin"`
	Destination        string            `json:"destination"`
	Train              string            `json:"train"`
	Status             domain.TripStatus `json:"status"`
	ScheduledDeparture time.Time         `json:"scheduled_departure"`
	ScheduledArrival   time.Time         `json:"scheduled_arrival"`
	DepartureDelay     string            `json:"departure_delay"`
	ArrivalDelay       string            `json:"arrival_delay"`
	RealDeparture      time.Time         `json:"real_departure"`
	RealArrival        time.Time         `json:"real_arrival"`
	BookedTickets      int               `json:"booked_tickets"`
}

// CreateTripRequest is the body of POST /trips.
// Origin, destination and train are looked up by name in the directory.
type CreateTripRequest struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Train       string    `json:"train"`
	Departure   time.Time `json:"departure"`
	Arrival     time.Time `json:"arrival"`
}

// DelayTripRequest is the body of POST /trips/{id}/delay.
// Each field is an optional ISO-8601 duration such as "PT1H30M".
type DelayTripRequest struct {
	Departure *string `json:"departure,omitempty"`
	Arrival   *string `json:"arrival,omitempty"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	if body.Departure.IsZero() || body.Arrival.IsZero() {
		badRequest(w, "departure and arrival are required")
		return
	}

	ctx := r.Context()
	origin, err := s.cities.GetByName(ctx, body.Origin)
	if err != nil {
		writeError(w, r, err)
		return
	}
	destination, err := s.cities.GetByName(ctx, body.Destination)
	if err != nil {
		writeError(w, r, err)
		return
	}
	train, err := s.trains.GetByName(ctx, body.Train)
	if err != nil {
		writeError(w, r, err)
		return
	}

	trip, err := s.reservations.CreateTrip(origin, destination, train, body.Departure, body.Arrival)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, s.tripToResponse(trip))
}

// ListTrips handles GET /trips. Only active trips are listed, in creation order.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	s.listTrips(w, r, s.reservations.AllTrips())
}

// ListCancelledTrips handles GET /trips/cancelled.
func (s *Server) ListCancelledTrips(w http.ResponseWriter, r *http.Request) {
	s.listTrips(w, r, s.reservations.AllCancelledTrips())
}

func (s *Server) listTrips(w http.ResponseWriter, r *http.Request, trips []*domain.Trip) {
	params, err := paginationParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newPage(trips, params, s.tripToResponse))
}

// GetTrip handles GET /trips/{id}. Cancelled trips are returned too.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.tripToResponse(trip))
}

// CancelTrip handles POST /trips/{id}/cancel.
func (s *Server) CancelTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	if err := s.reservations.CancelTrip(trip); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tripToResponse(trip))
}

// DelayTrip handles POST /trips/{id}/delay.
// Both durations are parsed before either is applied, so a malformed body
// leaves the trip untouched.
func (s *Server) DelayTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}

	var body DelayTripRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	if body.Departure == nil && body.Arrival == nil {
		badRequest(w, "departure or arrival delay is required")
		return
	}

	var depDelay, arrDelay time.Duration
	if body.Departure != nil {
		d, err := parseDelay("departure", *body.Departure, trip.RealDepartureTime())
		if err != nil {
			writeError(w, r, err)
			return
		}
		depDelay = d
	}
	if body.Arrival != nil {
		d, err := parseDelay("arrival", *body.Arrival, trip.RealArrivalTime())
		if err != nil {
			writeError(w, r, err)
			return
		}
		arrDelay = d
	}

	if body.Departure != nil {
		if err := s.reservations.DelayTripDeparture(trip, depDelay); err != nil {
			writeError(w, r, err)
			return
		}
	}
	if body.Arrival != nil {
		if err := s.reservations.DelayTripArrival(trip, arrDelay); err != nil {
			writeError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, s.tripToResponse(trip))
}

// GetPreviousTrip handles GET /trips/{id}/previous: the same train's active
// trip departing most recently before this one.
func (s *Server) GetPreviousTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	prev, found := s.reservations.PreviousTripOfTrain(trip.Train(), trip)
	if !found {
		notFound(w, "no previous trip for this train")
		return
	}
	writeJSON(w, http.StatusOK, s.tripToResponse(prev))
}

// GetNextTrip handles GET /trips/{id}/next: the same train's active trip
// departing soonest after this one.
func (s *Server) GetNextTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	next, found := s.reservations.NextTripOfTrain(trip.Train(), trip)
	if !found {
		notFound(w, "no next trip for this train")
		return
	}
	writeJSON(w, http.StatusOK, s.tripToResponse(next))
}

// --- helpers -----------------------------------------------------------------

// lookupTrip resolves the {id} path parameter. On failure it writes the error
// response itself and returns false.
func (s *Server) lookupTrip(w http.ResponseWriter, r *http.Request) (*domain.Trip, bool) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return nil, false
	}
	trip, err := s.reservations.TripByID(id)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return trip, true
}

// parseDelay converts an ISO-8601 duration into a time.Duration measured from
// ref, so calendar units (days, months) resolve against the real time they
// shift. Negative durations and ones too long for time.Duration are
// domain.ErrInvalidDelay; anything unparsable is domain.ErrValidation.
func parseDelay(field, s string, ref time.Time) (time.Duration, error) {
	if strings.HasPrefix(strings.TrimSpace(s), "-") {
		return 0, fmt.Errorf("%w: %s delay %q is negative", domain.ErrInvalidDelay, field, s)
	}
	d, err := iso8601.ParseISO8601(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s delay %q is not an ISO-8601 duration", domain.ErrValidation, field, s)
	}
	shifted := d.Shift(ref)
	delay := shifted.Sub(ref)
	// Sub saturates instead of overflowing.
	if delay == time.Duration(math.MaxInt64) || shifted.Before(ref) {
		return 0, fmt.Errorf("%w: %s delay %q is too long", domain.ErrInvalidDelay, field, s)
	}
	return delay, nil
}

// formatDelay renders d as an ISO-8601 duration in whole hours, minutes and
// seconds. Sub-second remainders are truncated; the real_* times carry the
// exact value. Delays parsed from requests are always whole seconds.
func formatDelay(d time.Duration) string {
	total := int(d / time.Second)
	return iso8601.Duration{
		TH: total / 3600,
		TM: total % 3600 / 60,
		TS: total % 60,
	}.String()
}

// tripToResponse converts a domain trip into its JSON representation.
func (s *Server) tripToResponse(t *domain.Trip) Trip {
	return Trip{
		ID:                 t.ID(),
		Origin:             t.Origin().Name,
		Destination:        t.Destination().Name,
		Train:              t.Train().Name,
		Status:             t.Status(),
		ScheduledDeparture: t.ScheduledDeparture().In(s.loc),
		ScheduledArrival:   t.ScheduledArrival().In(s.loc),
		DepartureDelay:     formatDelay(t.DepartureDelay()),
		ArrivalDelay:       formatDelay(t.ArrivalDelay()),
		RealDeparture:      t.RealDepartureTime().In(s.loc),
		RealArrival:        t.RealArrivalTime().In(s.loc),
		BookedTickets:      len(t.BookedTickets()),
	}
}
