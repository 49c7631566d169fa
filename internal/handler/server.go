// Package handler implements the HTTP handlers for the train reservation API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (health.go, trip.go, ticket.go, etc.) but share the same Server struct
// so they can reach its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/train-reservation/internal/domain"
)

// CityServicer defines the city directory operations the handlers depend on.
type CityServicer interface {
	Create(ctx context.Context, city domain.City) (domain.City, error)
	GetByName(ctx context.Context, name string) (domain.City, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.City, int64, error)
}

// TrainServicer defines the train directory operations the handlers depend on.
type TrainServicer interface {
	Create(ctx context.Context, train domain.Train) (domain.Train, error)
	GetByName(ctx context.Context, name string) (domain.Train, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Train, int64, error)
}

// Reservations defines the trip and ticket operations the handlers depend on.
// *service.Registry satisfies it.
type Reservations interface {
	CreateTrip(origin, destination domain.City, train domain.Train, departure, arrival time.Time) (*domain.Trip, error)
	DelayTripDeparture(trip *domain.Trip, d time.Duration) error
	DelayTripArrival(trip *domain.Trip, d time.Duration) error
	CancelTrip(trip *domain.Trip) error
	BookTicket(trip *domain.Trip, passenger string) (*domain.Ticket, error)
	CancelTicket(trip *domain.Trip, ticket *domain.Ticket) error

	AllTrips() []*domain.Trip
	AllCancelledTrips() []*domain.Trip
	AllBookedTickets() []*domain.Ticket
	AllCancelledTickets() []*domain.Ticket
	PreviousTripOfTrain(train domain.Train, trip *domain.Trip) (*domain.Trip, bool)
	NextTripOfTrain(train domain.Train, trip *domain.Trip) (*domain.Trip, bool)
	OrderedTripsOfTrain(train domain.Train) []*domain.Trip
	PossibleExchanges(ticket *domain.Ticket) []*domain.Trip

	TripByID(id uuid.UUID) (*domain.Trip, error)
	TicketByID(id uuid.UUID) (*domain.Ticket, error)
	Manifest() []domain.ManifestRow
}

// Server holds the dependencies of every endpoint.
// Wire it in main.go via Routes.
type Server struct {
	cities       CityServicer
	trains       TrainServicer
	reservations Reservations

	// loc is the zone times are rendered in.
	loc *time.Location
}

// NewServer constructs the Server with all its dependencies.
// A nil loc renders times in UTC.
func NewServer(cities CityServicer, trains TrainServicer, reservations Reservations, loc *time.Location) *Server {
	if loc == nil {
		loc = time.UTC
	}
	return &Server{cities: cities, trains: trains, reservations: reservations, loc: loc}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes returns a chi router with every endpoint mounted.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/cities", func(r chi.Router) {
		r.Post("/", s.CreateCity)
		r.Get("/", s.ListCities)
	})

	r.Route("/trains", func(r chi.Router) {
		r.Post("/", s.CreateTrain)
		r.Get("/", s.ListTrains)
		r.Get("/{name}/trips", s.ListTrainTrips)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Get("/cancelled", s.ListCancelledTrips)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Post("/cancel", s.CancelTrip)
			r.Post("/delay", s.DelayTrip)
			r.Get("/previous", s.GetPreviousTrip)
			r.Get("/next", s.GetNextTrip)
			r.Post("/tickets", s.BookTicket)
			r.Post("/tickets/{ticketId}/cancel", s.CancelTicket)
		})
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Get("/", s.ListTickets)
		r.Get("/{id}", s.GetTicket)
		r.Get("/{id}/exchanges", s.ListExchanges)
	})

	r.Get("/export", s.GetExport)

	return r
}
