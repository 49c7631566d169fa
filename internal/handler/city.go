package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/train-reservation/internal/domain"
)

// City is the JSON representation of a registered city.
type City struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCityRequest is the body of POST /cities.
type CreateCityRequest struct {
	Name string `json:"name"`
}

// CreateCity handles POST /cities.
func (s *Server) CreateCity(w http.ResponseWriter, r *http.Request) {
	var body CreateCityRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}

	created, err := s.cities.Create(r.Context(), domain.City{Name: body.Name})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, s.cityToResponse(created))
}

// ListCities handles GET /cities.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListCities(w http.ResponseWriter, r *http.Request) {
	params, err := paginationParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	cities, total, err := s.cities.ListPaged(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]City, len(cities))
	for i, c := range cities {
		data[i] = s.cityToResponse(c)
	}
	writeJSON(w, http.StatusOK, Page[City]{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

func (s *Server) cityToResponse(c domain.City) City {
	return City{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt.In(s.loc)}
}
