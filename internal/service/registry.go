// Package service contains the business logic for the train reservation API.
// Registry owns every trip and ticket and enforces the invariants that span
// trips. CityService and TrainService validate directory input and orchestrate
// repo calls. No SQL lives here; services depend on repo interfaces.
package service

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/train-reservation/internal/domain"
)

// Registry is the single authority over trips and the tickets booked on them.
//
// Mutations (create, delay, cancel, book, cancel ticket) are serialized by a
// write lock so the overlap check and the append that follows it happen as one
// step. Queries share a read lock. Registry operations never block on I/O and
// take no context.
//
// Mutations only accept trips the registry created; any other trip is
// domain.ErrNotFound.
//
// Delays are applied without re-checking overlap against the other trips of the
// same train, so a delay can leave two active trips overlapping. Only trip
// creation enforces the no-overlap rule.
type Registry struct {
	mu    sync.RWMutex
	trips []*domain.Trip
	log   *slog.Logger
}

// NewRegistry constructs an empty Registry. A nil logger discards log output.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Registry{log: log}
}

// CreateTrip validates and records a new ACTIVE trip.
// Returns domain.ErrInvalidInterval if arrival is not after departure, or a
// *domain.TripConflictError (matching domain.ErrTripConflict) if an active trip
// of the same train overlaps the new one. Origin and destination may be equal.
func (r *Registry) CreateTrip(origin, destination domain.City, train domain.Train, departure, arrival time.Time) (*domain.Trip, error) {
	trip, err := domain.NewTrip(origin, destination, train, departure, arrival)
	if err != nil {
		return nil, fmt.Errorf("service.Registry.CreateTrip: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.trips {
		if existing.IsActive() && existing.OverlapsWith(trip) {
			return nil, fmt.Errorf("service.Registry.CreateTrip: %w", &domain.TripConflictError{Conflicting: existing})
		}
	}
	r.trips = append(r.trips, trip)

	r.log.Info("trip created",
		"trip_id", trip.ID(),
		"train", train.Name,
		"origin", origin.Name,
		"destination", destination.Name,
		"departure", departure,
		"arrival", arrival,
	)
	return trip, nil
}

// DelayTripDeparture adds d to the trip's departure delay.
// Returns domain.ErrInvalidDelay for a negative d.
func (r *Registry) DelayTripDeparture(trip *domain.Trip, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.owns(trip); err != nil {
		return fmt.Errorf("service.Registry.DelayTripDeparture: %w", err)
	}
	if err := trip.DelayDeparture(d); err != nil {
		return fmt.Errorf("service.Registry.DelayTripDeparture: %w", err)
	}
	r.log.Info("trip departure delayed", "trip_id", trip.ID(), "delay", d, "real_departure", trip.RealDepartureTime())
	return nil
}

// DelayTripArrival adds d to the trip's arrival delay.
// Returns domain.ErrInvalidDelay for a negative d.
func (r *Registry) DelayTripArrival(trip *domain.Trip, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.owns(trip); err != nil {
		return fmt.Errorf("service.Registry.DelayTripArrival: %w", err)
	}
	if err := trip.DelayArrival(d); err != nil {
		return fmt.Errorf("service.Registry.DelayTripArrival: %w", err)
	}
	r.log.Info("trip arrival delayed", "trip_id", trip.ID(), "delay", d, "real_arrival", trip.RealArrivalTime())
	return nil
}

// CancelTrip moves an ACTIVE trip to CANCELLED. Its tickets are untouched.
// Returns domain.ErrInvalidState if the trip is already cancelled.
func (r *Registry) CancelTrip(trip *domain.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.owns(trip); err != nil {
		return fmt.Errorf("service.Registry.CancelTrip: %w", err)
	}
	if err := trip.Cancel(); err != nil {
		return fmt.Errorf("service.Registry.CancelTrip: %w", err)
	}
	r.log.Info("trip cancelled", "trip_id", trip.ID(), "booked_tickets", len(trip.BookedTickets()))
	return nil
}

// BookTicket books a ticket for passenger on trip.
// Returns domain.ErrReservation if the trip is cancelled or the name is blank.
func (r *Registry) BookTicket(trip *domain.Trip, passenger string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.owns(trip); err != nil {
		return nil, fmt.Errorf("service.Registry.BookTicket: %w", err)
	}
	ticket, err := trip.BookTicket(passenger)
	if err != nil {
		return nil, fmt.Errorf("service.Registry.BookTicket: %w", err)
	}
	r.log.Debug("ticket booked", "trip_id", trip.ID(), "ticket_id", ticket.ID())
	return ticket, nil
}

// CancelTicket cancels a ticket booked on trip.
// Returns domain.ErrReservation if the ticket belongs to another trip or is
// already cancelled.
func (r *Registry) CancelTicket(trip *domain.Trip, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.owns(trip); err != nil {
		return fmt.Errorf("service.Registry.CancelTicket: %w", err)
	}
	if err := trip.CancelTicket(ticket); err != nil {
		return fmt.Errorf("service.Registry.CancelTicket: %w", err)
	}
	r.log.Debug("ticket cancelled", "trip_id", trip.ID(), "ticket_id", ticket.ID())
	return nil
}

// AllTrips returns every ACTIVE trip in creation order.
// Always returns a non-nil slice so callers can safely range over it.
func (r *Registry) AllTrips() []*domain.Trip {
	return r.tripsWhere(func(t *domain.Trip) bool { return t.IsActive() })
}

// AllCancelledTrips returns every CANCELLED trip in creation order.
func (r *Registry) AllCancelledTrips() []*domain.Trip {
	return r.tripsWhere(func(t *domain.Trip) bool { return !t.IsActive() })
}

// AllBookedTickets returns the BOOKED tickets of every trip ever created,
// cancelled trips included. Order is trip creation order, then booking order.
func (r *Registry) AllBookedTickets() []*domain.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*domain.Ticket{}
	for _, trip := range r.trips {
		out = append(out, trip.BookedTickets()...)
	}
	return out
}

// AllCancelledTickets returns the CANCELLED tickets of every trip ever created,
// in the same order as AllBookedTickets.
func (r *Registry) AllCancelledTickets() []*domain.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*domain.Ticket{}
	for _, trip := range r.trips {
		out = append(out, trip.CancelledTickets()...)
	}
	return out
}

// PreviousTripOfTrain returns the active trip of train, other than trip, whose
// effective departure is the latest one strictly before trip's.
func (r *Registry) PreviousTripOfTrain(train domain.Train, trip *domain.Trip) (*domain.Trip, bool) {
	ref := trip.RealDepartureTime()
	var (
		best     *domain.Trip
		bestTime time.Time
	)
	for _, candidate := range r.OrderedTripsOfTrain(train) {
		if candidate == trip {
			continue
		}
		dep := candidate.RealDepartureTime()
		if dep.Before(ref) && (best == nil || dep.After(bestTime)) {
			best, bestTime = candidate, dep
		}
	}
	return best, best != nil
}

// NextTripOfTrain returns the active trip of train, other than trip, whose
// effective departure is the earliest one strictly after trip's.
func (r *Registry) NextTripOfTrain(train domain.Train, trip *domain.Trip) (*domain.Trip, bool) {
	ref := trip.RealDepartureTime()
	for _, candidate := range r.OrderedTripsOfTrain(train) {
		if candidate != trip && candidate.RealDepartureTime().After(ref) {
			return candidate, true
		}
	}
	return nil, false
}

// OrderedTripsOfTrain returns the active trips of train sorted by effective
// departure. Trips departing at the same instant keep creation order.
func (r *Registry) OrderedTripsOfTrain(train domain.Train) []*domain.Trip {
	trips := r.tripsWhere(func(t *domain.Trip) bool {
		return t.IsActive() && t.Train().Is(train)
	})
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].RealDepartureTime().Before(trips[j].RealDepartureTime())
	})
	return trips
}

// PossibleExchanges returns the active trips a ticket holder could move to:
// same origin and destination as the ticket's trip, a different effective
// departure, any train. The ticket's own trip is never included.
func (r *Registry) PossibleExchanges(ticket *domain.Ticket) []*domain.Trip {
	own := ticket.Trip()
	dep := own.RealDepartureTime()
	return r.tripsWhere(func(t *domain.Trip) bool {
		return t != own &&
			t.IsActive() &&
			t.SameRoute(own) &&
			!t.RealDepartureTime().Equal(dep)
	})
}

// TripByID looks a trip up by ID, active or cancelled.
// Returns domain.ErrNotFound if no trip has that ID.
func (r *Registry) TripByID(id uuid.UUID) (*domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, trip := range r.trips {
		if trip.ID() == id {
			return trip, nil
		}
	}
	return nil, fmt.Errorf("service.Registry.TripByID: trip %s: %w", id, domain.ErrNotFound)
}

// TicketByID looks a ticket up by ID across all trips.
// Returns domain.ErrNotFound if no ticket has that ID.
func (r *Registry) TicketByID(id uuid.UUID) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, trip := range r.trips {
		for _, ticket := range trip.Tickets() {
			if ticket.ID() == id {
				return ticket, nil
			}
		}
	}
	return nil, fmt.Errorf("service.Registry.TicketByID: ticket %s: %w", id, domain.ErrNotFound)
}

// Manifest returns one ManifestRow per ticket across all trips, in creation
// order. Trips with no tickets contribute one row with empty ticket fields.
func (r *Registry) Manifest() []domain.ManifestRow {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := []domain.ManifestRow{}
	for _, trip := range r.trips {
		base := domain.ManifestRow{
			TripID:        trip.ID().String(),
			TripStatus:    trip.Status(),
			Train:         trip.Train().Name,
			Origin:        trip.Origin().Name,
			Destination:   trip.Destination().Name,
			RealDeparture: trip.RealDepartureTime(),
			RealArrival:   trip.RealArrivalTime(),
		}
		tickets := trip.Tickets()
		if len(tickets) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, ticket := range tickets {
			row := base
			row.TicketID = ticket.ID().String()
			row.Passenger = ticket.PassengerName()
			row.TicketStatus = ticket.Status()
			rows = append(rows, row)
		}
	}
	return rows
}

// owns returns domain.ErrNotFound unless trip was created by this registry.
// Callers hold r.mu.
func (r *Registry) owns(trip *domain.Trip) error {
	for _, t := range r.trips {
		if t == trip {
			return nil
		}
	}
	if trip == nil {
		return fmt.Errorf("nil trip: %w", domain.ErrNotFound)
	}
	return fmt.Errorf("trip %s: %w", trip.ID(), domain.ErrNotFound)
}

// tripsWhere returns the trips matching keep, in creation order.
func (r *Registry) tripsWhere(keep func(*domain.Trip) bool) []*domain.Trip {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*domain.Trip{}
	for _, trip := range r.trips {
		if keep(trip) {
			out = append(out, trip)
		}
	}
	return out
}
