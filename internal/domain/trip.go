package domain

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	TripActive    TripStatus = "ACTIVE"
	TripCancelled TripStatus = "CANCELLED"
)

// Trip is one scheduled run of a train from an origin city to a destination city.
//
// The scheduled times never change after creation. Delays accumulate separately
// and the effective ("real") times are always derived from both. A trip owns the
// tickets booked against it; cancelled tickets stay in the list for history.
//
// Trips are compared by identity: two trips with identical fields are still
// distinct if they came from different creation calls.
type Trip struct {
	id          uuid.UUID
	origin      City
	destination City
	train       Train
	departure   time.Time
	arrival     time.Time

	mu             sync.RWMutex
	departureDelay time.Duration
	arrivalDelay   time.Duration
	status         TripStatus
	tickets        []*Ticket
}

// NewTrip builds an ACTIVE trip with no delays and no tickets.
// Returns ErrInvalidInterval if arrival is not strictly after departure.
// Overlap with other trips of the same train is not checked here; the
// registry that owns the trip does that before accepting it.
func NewTrip(origin, destination City, train Train, departure, arrival time.Time) (*Trip, error) {
	if !arrival.After(departure) {
		return nil, fmt.Errorf("%w: arrival %s must be after departure %s",
			ErrInvalidInterval, arrival.Format(time.RFC3339), departure.Format(time.RFC3339))
	}
	return &Trip{
		id:          uuid.New(),
		origin:      origin,
		destination: destination,
		train:       train,
		departure:   departure,
		arrival:     arrival,
		status:      TripActive,
	}, nil
}

func (t *Trip) ID() uuid.UUID                 { return t.id }
func (t *Trip) Origin() City                  { return t.origin }
func (t *Trip) Destination() City             { return t.destination }
func (t *Trip) Train() Train                  { return t.train }
func (t *Trip) ScheduledDeparture() time.Time { return t.departure }
func (t *Trip) ScheduledArrival() time.Time   { return t.arrival }

// DepartureDelay returns the accumulated departure delay.
func (t *Trip) DepartureDelay() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.departureDelay
}

// ArrivalDelay returns the accumulated arrival delay.
func (t *Trip) ArrivalDelay() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.arrivalDelay
}

// RealDepartureTime returns the scheduled departure plus all departure delay.
func (t *Trip) RealDepartureTime() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.departure.Add(t.departureDelay)
}

// RealArrivalTime returns the scheduled arrival plus all arrival delay.
func (t *Trip) RealArrivalTime() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.arrival.Add(t.arrivalDelay)
}

// Status returns the current lifecycle state.
func (t *Trip) Status() TripStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// IsActive reports whether the trip has not been cancelled.
func (t *Trip) IsActive() bool {
	return t.Status() == TripActive
}

// DelayDeparture pushes the effective departure back by d.
// Delays only accumulate forward; a negative d, or one that would overflow the
// accumulated delay, returns ErrInvalidDelay.
func (t *Trip) DelayDeparture(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: departure delay %s is negative", ErrInvalidDelay, d)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.departureDelay > math.MaxInt64-d {
		return fmt.Errorf("%w: departure delay would exceed %s", ErrInvalidDelay, time.Duration(math.MaxInt64))
	}
	t.departureDelay += d
	return nil
}

// DelayArrival pushes the effective arrival back by d.
// A negative or overflowing d returns ErrInvalidDelay.
func (t *Trip) DelayArrival(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: arrival delay %s is negative", ErrInvalidDelay, d)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.arrivalDelay > math.MaxInt64-d {
		return fmt.Errorf("%w: arrival delay would exceed %s", ErrInvalidDelay, time.Duration(math.MaxInt64))
	}
	t.arrivalDelay += d
	return nil
}

// Cancel moves the trip from ACTIVE to CANCELLED.
// Booked tickets are left as they are.
// Returns ErrInvalidState if the trip is already cancelled.
func (t *Trip) Cancel() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != TripActive {
		return fmt.Errorf("%w: trip %s is already cancelled", ErrInvalidState, t.id)
	}
	t.status = TripCancelled
	return nil
}

// BookTicket creates a BOOKED ticket for passenger and appends it to the trip.
// Returns ErrReservation if the trip is cancelled or the passenger name is blank.
func (t *Trip) BookTicket(passenger string) (*Ticket, error) {
	if strings.TrimSpace(passenger) == "" {
		return nil, fmt.Errorf("%w: passenger name is required", ErrReservation)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != TripActive {
		return nil, fmt.Errorf("%w: trip %s is cancelled", ErrReservation, t.id)
	}
	ticket := newTicket(passenger, t)
	t.tickets = append(t.tickets, ticket)
	return ticket, nil
}

// CancelTicket flips a ticket booked on this trip to CANCELLED.
// The ticket stays in the trip's list.
// Returns ErrReservation if the ticket belongs to another trip or is already cancelled.
func (t *Trip) CancelTicket(ticket *Ticket) error {
	if ticket == nil || ticket.trip != t {
		return fmt.Errorf("%w: ticket does not belong to trip %s", ErrReservation, t.id)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if ticket.status != TicketBooked {
		return fmt.Errorf("%w: ticket %s is already cancelled", ErrReservation, ticket.id)
	}
	ticket.status = TicketCancelled
	return nil
}

// Tickets returns every ticket ever booked on the trip, in booking order.
func (t *Trip) Tickets() []*Ticket {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Ticket, len(t.tickets))
	copy(out, t.tickets)
	return out
}

// BookedTickets returns the tickets still in BOOKED state, in booking order.
func (t *Trip) BookedTickets() []*Ticket {
	return t.ticketsWithStatus(TicketBooked)
}

// CancelledTickets returns the cancelled tickets, in booking order.
func (t *Trip) CancelledTickets() []*Ticket {
	return t.ticketsWithStatus(TicketCancelled)
}

func (t *Trip) ticketsWithStatus(status TicketStatus) []*Ticket {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []*Ticket{}
	for _, ticket := range t.tickets {
		if ticket.status == status {
			out = append(out, ticket)
		}
	}
	return out
}

// OverlapsWith reports whether t and other use the same train and their
// effective [departure, arrival) intervals intersect. A trip arriving exactly
// when the other departs does not overlap it.
func (t *Trip) OverlapsWith(other *Trip) bool {
	if other == nil || !t.train.Is(other.train) {
		return false
	}
	return t.RealDepartureTime().Before(other.RealArrivalTime()) &&
		other.RealDepartureTime().Before(t.RealArrivalTime())
}

// SameRoute reports whether t and other share origin and destination.
func (t *Trip) SameRoute(other *Trip) bool {
	return t.origin.Is(other.origin) && t.destination.Is(other.destination)
}
