package domain

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus is the lifecycle state of a ticket.
type TicketStatus string

const (
	TicketBooked    TicketStatus = "BOOKED"
	TicketCancelled TicketStatus = "CANCELLED"
)

// Ticket is one passenger's booking on a trip.
// The owning trip is fixed at creation; tickets are only created through
// Trip.BookTicket. Status is guarded by the owning trip's lock.
type Ticket struct {
	id        uuid.UUID
	passenger string
	trip      *Trip
	bookedAt  time.Time
	status    TicketStatus
}

func newTicket(passenger string, trip *Trip) *Ticket {
	return &Ticket{
		id:        uuid.New(),
		passenger: passenger,
		trip:      trip,
		bookedAt:  time.Now().UTC(),
		status:    TicketBooked,
	}
}

func (t *Ticket) ID() uuid.UUID         { return t.id }
func (t *Ticket) PassengerName() string { return t.passenger }
func (t *Ticket) BookedAt() time.Time   { return t.bookedAt }

// Trip returns the trip the ticket was booked on. The ticket does not own it.
func (t *Ticket) Trip() *Trip { return t.trip }

// Status returns the current lifecycle state.
func (t *Ticket) Status() TicketStatus {
	t.trip.mu.RLock()
	defer t.trip.mu.RUnlock()
	return t.status
}

// IsBooked reports whether the ticket has not been cancelled.
func (t *Ticket) IsBooked() bool {
	return t.Status() == TicketBooked
}
