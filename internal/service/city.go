package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/train-reservation/internal/domain"
	"github.com/pkordes/train-reservation/internal/repo"
)

// CityService implements business logic for the city directory.
type CityService struct {
	repo repo.CityRepo
}

// NewCityService constructs a CityService backed by the provided CityRepo.
func NewCityService(r repo.CityRepo) *CityService {
	return &CityService{repo: r}
}

// Create validates and registers a new city.
// Returns domain.ErrValidation for a blank name and domain.ErrDuplicate if the
// name is already registered.
func (s *CityService) Create(ctx context.Context, city domain.City) (domain.City, error) {
	city.Name = strings.TrimSpace(city.Name)
	if city.Name == "" {
		return domain.City{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	result, err := s.repo.Create(ctx, city)
	if err != nil {
		return domain.City{}, fmt.Errorf("service.CityService.Create: %w", err)
	}
	return result, nil
}

// GetByName returns the city registered under name.
// Returns domain.ErrNotFound if there is none.
func (s *CityService) GetByName(ctx context.Context, name string) (domain.City, error) {
	result, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return domain.City{}, fmt.Errorf("service.CityService.GetByName: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of cities and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CityService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.City, int64, error) {
	cities, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CityService.ListPaged: %w", err)
	}
	if cities == nil {
		return []domain.City{}, total, nil
	}
	return cities, total, nil
}
