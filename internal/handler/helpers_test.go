package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/train-reservation/internal/domain"
	"github.com/pkordes/train-reservation/internal/handler"
	"github.com/pkordes/train-reservation/internal/service"
)

// ---- mock directory services -----------------------------------------------

// mockCityServicer is a test double for handler.CityServicer.
// Set only the method fields your test needs.
type mockCityServicer struct {
	create    func(ctx context.Context, city domain.City) (domain.City, error)
	getByName func(ctx context.Context, name string) (domain.City, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.City, int64, error)
}

func (m *mockCityServicer) Create(ctx context.Context, c domain.City) (domain.City, error) {
	return m.create(ctx, c)
}
func (m *mockCityServicer) GetByName(ctx context.Context, name string) (domain.City, error) {
	return m.getByName(ctx, name)
}
func (m *mockCityServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.City, int64, error) {
	return m.listPaged(ctx, p)
}

// mockTrainServicer is a test double for handler.TrainServicer.
type mockTrainServicer struct {
	create    func(ctx context.Context, train domain.Train) (domain.Train, error)
	getByName func(ctx context.Context, name string) (domain.Train, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Train, int64, error)
}

func (m *mockTrainServicer) Create(ctx context.Context, tr domain.Train) (domain.Train, error) {
	return m.create(ctx, tr)
}
func (m *mockTrainServicer) GetByName(ctx context.Context, name string) (domain.Train, error) {
	return m.getByName(ctx, name)
}
func (m *mockTrainServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Train, int64, error) {
	return m.listPaged(ctx, p)
}

// compile-time checks.
var (
	_ handler.CityServicer  = (*mockCityServicer)(nil)
	_ handler.TrainServicer = (*mockTrainServicer)(nil)
	_ handler.Reservations  = (*service.Registry)(nil)
)

// ---- fixtures --------------------------------------------------------------

var departure = time.Date(2022, 5, 12, 12, 0, 0, 0, time.UTC)

// directory returns mocks that resolve any name to a city or train of that
// name, or domain.ErrNotFound for names starting with "unknown".
func directory() (*mockCityServicer, *mockTrainServicer) {
	cities := &mockCityServicer{
		getByName: func(_ context.Context, name string) (domain.City, error) {
			if strings.HasPrefix(name, "unknown") {
				return domain.City{}, domain.ErrNotFound
			}
			return domain.City{Name: name}, nil
		},
	}
	trains := &mockTrainServicer{
		getByName: func(_ context.Context, name string) (domain.Train, error) {
			if strings.HasPrefix(name, "unknown") {
				return domain.Train{}, domain.ErrNotFound
			}
			return domain.Train{Name: name, Capacity: 100}, nil
		},
	}
	return cities, trains
}

// newTestServer wires a real in-memory Registry behind the router, with
// directory mocks resolving names. It mirrors how main.go wires production.
func newTestServer() (http.Handler, *service.Registry) {
	cities, trains := directory()
	registry := service.NewRegistry(nil)
	return handler.NewServer(cities, trains, registry, time.UTC).Routes(), registry
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// do sends a request through h and returns the recorder.
func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, jsonBody(t, body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}
