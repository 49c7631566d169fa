package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/train-reservation/internal/domain"
	"github.com/pkordes/train-reservation/internal/repo"
)

// TrainService implements business logic for the train directory.
type TrainService struct {
	repo repo.TrainRepo
}

// NewTrainService constructs a TrainService backed by the provided TrainRepo.
func NewTrainService(r repo.TrainRepo) *TrainService {
	return &TrainService{repo: r}
}

// Create validates and registers a new train.
// Returns domain.ErrValidation if input violates business rules and
// domain.ErrDuplicate if the name is already registered.
func (s *TrainService) Create(ctx context.Context, train domain.Train) (domain.Train, error) {
	train.Name = strings.TrimSpace(train.Name)
	if err := validateTrain(train); err != nil {
		return domain.Train{}, err
	}
	result, err := s.repo.Create(ctx, train)
	if err != nil {
		return domain.Train{}, fmt.Errorf("service.TrainService.Create: %w", err)
	}
	return result, nil
}

// GetByName returns the train registered under name.
// Returns domain.ErrNotFound if there is none.
func (s *TrainService) GetByName(ctx context.Context, name string) (domain.Train, error) {
	result, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return domain.Train{}, fmt.Errorf("service.TrainService.GetByName: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trains and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TrainService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Train, int64, error) {
	trains, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TrainService.ListPaged: %w", err)
	}
	if trains == nil {
		return []domain.Train{}, total, nil
	}
	return trains, total, nil
}

// validateTrain enforces the directory rules for a train.
//   - Name must be non-empty.
//   - Capacity must not be negative. It is advisory and never enforced per seat.
func validateTrain(train domain.Train) error {
	if train.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if train.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", domain.ErrValidation)
	}
	return nil
}
