package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/train-reservation/internal/domain"
)

// CityRepo defines the persistence operations for Cities.
// The service layer depends on this interface, not the Postgres implementation.
type CityRepo interface {
	// Create inserts a new city and returns the persisted record.
	// Returns domain.ErrDuplicate if the name is already taken.
	Create(ctx context.Context, city domain.City) (domain.City, error)

	// GetByName retrieves a city by its unique name.
	// Returns domain.ErrNotFound if no city has that name.
	GetByName(ctx context.Context, name string) (domain.City, error)

	// ListPaged returns one page of cities ordered by name and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.City, int64, error)
}

// pgCityRepo is the Postgres implementation of CityRepo.
type pgCityRepo struct {
	db db
}

// NewCityRepo constructs a CityRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCityRepo(db db) CityRepo {
	return &pgCityRepo{db: db}
}

func (r *pgCityRepo) Create(ctx context.Context, city domain.City) (domain.City, error) {
	const q = `
		INSERT INTO cities (name)
		VALUES (@name)
		RETURNING id, name, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": city.Name})
	result, err := scanCity(row)
	if err != nil {
		return domain.City{}, fmt.Errorf("repo.CityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCityRepo) GetByName(ctx context.Context, name string) (domain.City, error) {
	const q = `
		SELECT id, name, created_at
		FROM cities
		WHERE name = @name`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name})
	result, err := scanCity(row)
	if err != nil {
		return domain.City{}, fmt.Errorf("repo.CityRepo.GetByName: %w", err)
	}
	return result, nil
}

// ListPaged runs the page query and the count query separately; the count is
// cheap on a table this size and keeps the page query simple.
func (r *pgCityRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.City, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM cities`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.CityRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT id, name, created_at
		FROM cities
		ORDER BY name
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CityRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var cities []domain.City
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.CityRepo.ListPaged: scan: %w", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.CityRepo.ListPaged: rows: %w", err)
	}

	return cities, total, nil
}

// scanCity maps a single database row into a domain.City.
func scanCity(s scanner) (domain.City, error) {
	var (
		c  domain.City
		id pgtype.UUID
	)
	if err := s.Scan(&id, &c.Name, &c.CreatedAt); err != nil {
		return domain.City{}, mapError(err)
	}
	c.ID = uuid.UUID(id.Bytes)
	return c, nil
}
