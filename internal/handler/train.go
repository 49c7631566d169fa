package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/train-reservation/internal/domain"
)

// Train is the JSON representation of a registered train.
type Train struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTrainRequest is the body of POST /trains.
type CreateTrainRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// CreateTrain handles POST /trains.
func (s *Server) CreateTrain(w http.ResponseWriter, r *http.Request) {
	var body CreateTrainRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}

	created, err := s.trains.Create(r.Context(), domain.Train{Name: body.Name, Capacity: body.Capacity})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, s.trainToResponse(created))
}

// ListTrains handles GET /trains.
func (s *Server) ListTrains(w http.ResponseWriter, r *http.Request) {
	params, err := paginationParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	trains, total, err := s.trains.ListPaged(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]Train, len(trains))
	for i, tr := range trains {
		data[i] = s.trainToResponse(tr)
	}
	writeJSON(w, http.StatusOK, Page[Train]{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

// ListTrainTrips handles GET /trains/{name}/trips.
// Returns the train's active trips ordered by effective departure.
func (s *Server) ListTrainTrips(w http.ResponseWriter, r *http.Request) {
	name, err := pathString(r, "name")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	train, err := s.trains.GetByName(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	trips := s.reservations.OrderedTripsOfTrain(train)
	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = s.tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) trainToResponse(tr domain.Train) Train {
	return Train{ID: tr.ID, Name: tr.Name, Capacity: tr.Capacity, CreatedAt: tr.CreatedAt.In(s.loc)}
}
