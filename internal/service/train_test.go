package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/train-reservation/internal/domain"
	"github.com/pkordes/train-reservation/internal/repo"
	"github.com/pkordes/train-reservation/internal/service"
)

// mockTrainRepo is a hand-written test double for repo.TrainRepo.
type mockTrainRepo struct {
	create    func(ctx context.Context, train domain.Train) (domain.Train, error)
	getByName func(ctx context.Context, name string) (domain.Train, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Train, int64, error)
}

func (m *mockTrainRepo) Create(ctx context.Context, train domain.Train) (domain.Train, error) {
	return m.create(ctx, train)
}
func (m *mockTrainRepo) GetByName(ctx context.Context, name string) (domain.Train, error) {
	return m.getByName(ctx, name)
}
func (m *mockTrainRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Train, int64, error) {
	return m.listPaged(ctx, p)
}

var _ repo.TrainRepo = (*mockTrainRepo)(nil)

func TestTrainService_Create_OK(t *testing.T) {
	svc := service.NewTrainService(&mockTrainRepo{
		create: func(_ context.Context, tr domain.Train) (domain.Train, error) {
			return tr, nil
		},
	})

	got, err := svc.Create(context.Background(), domain.Train{Name: "Train1", Capacity: 100})

	require.NoError(t, err)
	assert.Equal(t, 100, got.Capacity)
}

func TestTrainService_Create_Validation(t *testing.T) {
	svc := service.NewTrainService(&mockTrainRepo{})

	for name, input := range map[string]domain.Train{
		"blank name":        {Name: " ", Capacity: 10},
		"negative capacity": {Name: "Train1", Capacity: -1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTrainService_GetByName_TrimsInput(t *testing.T) {
	svc := service.NewTrainService(&mockTrainRepo{
		getByName: func(_ context.Context, name string) (domain.Train, error) {
			assert.Equal(t, "Train2", name)
			return domain.Train{Name: name}, nil
		},
	})

	got, err := svc.GetByName(context.Background(), " Train2 ")

	require.NoError(t, err)
	assert.Equal(t, "Train2", got.Name)
}
