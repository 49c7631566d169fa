package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/train-reservation/internal/domain"
	"github.com/pkordes/train-reservation/internal/repo"
	"github.com/pkordes/train-reservation/internal/service"
)

// ---- mock repo -------------------------------------------------------------

// mockCityRepo is a hand-written test double for repo.CityRepo.
// Set only the function fields your test needs.
type mockCityRepo struct {
	create    func(ctx context.Context, city domain.City) (domain.City, error)
	getByName func(ctx context.Context, name string) (domain.City, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.City, int64, error)
}

func (m *mockCityRepo) Create(ctx context.Context, city domain.City) (domain.City, error) {
	return m.create(ctx, city)
}
func (m *mockCityRepo) GetByName(ctx context.Context, name string) (domain.City, error) {
	return m.getByName(ctx, name)
}
func (m *mockCityRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.City, int64, error) {
	return m.listPaged(ctx, p)
}

// compile-time check: mockCityRepo must satisfy repo.CityRepo.
var _ repo.CityRepo = (*mockCityRepo)(nil)

// ---- Create ----------------------------------------------------------------

func TestCityService_Create_OK(t *testing.T) {
	svc := service.NewCityService(&mockCityRepo{
		create: func(_ context.Context, c domain.City) (domain.City, error) {
			assert.Equal(t, "Isfahan", c.Name, "name should be trimmed before persisting")
			return c, nil
		},
	})

	got, err := svc.Create(context.Background(), domain.City{Name: "  Isfahan "})

	require.NoError(t, err)
	assert.Equal(t, "Isfahan", got.Name)
}

func TestCityService_Create_NameRequired(t *testing.T) {
	svc := service.NewCityService(&mockCityRepo{})

	_, err := svc.Create(context.Background(), domain.City{Name: "   "})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCityService_Create_Duplicate(t *testing.T) {
	svc := service.NewCityService(&mockCityRepo{
		create: func(_ context.Context, _ domain.City) (domain.City, error) {
			return domain.City{}, domain.ErrDuplicate
		},
	})

	_, err := svc.Create(context.Background(), domain.City{Name: "Tehran"})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ---- GetByName -------------------------------------------------------------

func TestCityService_GetByName_NotFound(t *testing.T) {
	svc := service.NewCityService(&mockCityRepo{
		getByName: func(_ context.Context, _ string) (domain.City, error) {
			return domain.City{}, domain.ErrNotFound
		},
	})

	_, err := svc.GetByName(context.Background(), "Atlantis")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListPaged -------------------------------------------------------------

func TestCityService_ListPaged_ReturnsEmptySlice(t *testing.T) {
	svc := service.NewCityService(&mockCityRepo{
		listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.City, int64, error) {
			return nil, 0, nil
		},
	})

	got, total, err := svc.ListPaged(context.Background(), domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, total)
}

func TestCityService_ListPaged_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	svc := service.NewCityService(&mockCityRepo{
		listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.City, int64, error) {
			return nil, 0, repoErr
		},
	})

	_, _, err := svc.ListPaged(context.Background(), domain.NewPaginationParams(nil, nil))

	assert.ErrorIs(t, err, repoErr)
}
