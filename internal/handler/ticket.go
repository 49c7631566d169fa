package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/train-reservation/internal/domain"
)

// Ticket is the JSON representation of a ticket.
type Ticket struct {
	ID            uuid.UUID           `json:"id"`
	TripID        uuid.UUID           `json:"trip_id"`
	PassengerName string              `json:"passenger_name"`
	Status        domain.TicketStatus `json:"status"`
	BookedAt      time.Time           `json:"booked_at"`
}

// BookTicketRequest is the body of POST /trips/{id}/tickets.
type BookTicketRequest struct {
	PassengerName string `json:"passenger_name"`
}

// BookTicket handles POST /trips/{id}/tickets.
func (s *Server) BookTicket(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}

	var body BookTicketRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}

	ticket, err := s.reservations.BookTicket(trip, body.PassengerName)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, s.ticketToResponse(ticket))
}

// CancelTicket handles POST /trips/{id}/tickets/{ticketId}/cancel.
// A ticket ID that exists but belongs to another trip is a reservation error,
// not a 404.
func (s *Server) CancelTicket(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	ticketID, err := pathUUID(r, "ticketId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	ticket, err := s.reservations.TicketByID(ticketID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.reservations.CancelTicket(trip, ticket); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s.ticketToResponse(ticket))
}

// ListTickets handles GET /tickets?status=booked|cancelled.
// Status defaults to booked.
func (s *Server) ListTickets(w http.ResponseWriter, r *http.Request) {
	params, err := paginationParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var tickets []*domain.Ticket
	switch status := r.URL.Query().Get("status"); status {
	case "", "booked":
		tickets = s.reservations.AllBookedTickets()
	case "cancelled":
		tickets = s.reservations.AllCancelledTickets()
	default:
		badRequest(w, "status must be one of: booked, cancelled")
		return
	}

	writeJSON(w, http.StatusOK, newPage(tickets, params, s.ticketToResponse))
}

// GetTicket handles GET /tickets/{id}.
func (s *Server) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, ok := s.lookupTicket(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.ticketToResponse(ticket))
}

// ListExchanges handles GET /tickets/{id}/exchanges: active trips on the same
// route as the ticket's trip that depart at a different time.
func (s *Server) ListExchanges(w http.ResponseWriter, r *http.Request) {
	ticket, ok := s.lookupTicket(w, r)
	if !ok {
		return
	}

	trips := s.reservations.PossibleExchanges(ticket)
	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = s.tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, data)
}

// lookupTicket resolves the {id} path parameter as a ticket. On failure it
// writes the error response itself and returns false.
func (s *Server) lookupTicket(w http.ResponseWriter, r *http.Request) (*domain.Ticket, bool) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return nil, false
	}
	ticket, err := s.reservations.TicketByID(id)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return ticket, true
}

func (s *Server) ticketToResponse(t *domain.Ticket) Ticket {
	return Ticket{
		ID:            t.ID(),
		TripID:        t.Trip().ID(),
		PassengerName: t.PassengerName(),
		Status:        t.Status(),
		BookedAt:      t.BookedAt().In(s.loc),
	}
}
