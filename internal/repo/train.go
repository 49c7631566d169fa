package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/train-reservation/internal/domain"
)

// TrainRepo defines the persistence operations for Trains.
type TrainRepo interface {
	// Create inserts a new train and returns the persisted record.
	// Returns domain.ErrDuplicate if the name is already taken.
	Create(ctx context.Context, train domain.Train) (domain.Train, error)

	// GetByName retrieves a train by its unique name.
	// Returns domain.ErrNotFound if no train has that name.
	GetByName(ctx context.Context, name string) (domain.Train, error)

	// ListPaged returns one page of trains ordered by name and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Train, int64, error)
}

// pgTrainRepo is the Postgres implementation of TrainRepo.
type pgTrainRepo struct {
	db db
}

// NewTrainRepo constructs a TrainRepo backed by the provided db connection.
func NewTrainRepo(db db) TrainRepo {
	return &pgTrainRepo{db: db}
}

func (r *pgTrainRepo) Create(ctx context.Context, train domain.Train) (domain.Train, error) {
	const q = `
		INSERT INTO trains (name, capacity)
		VALUES (@name, @capacity)
		RETURNING id, name, capacity, created_at`

	args := pgx.NamedArgs{
		"name":     train.Name,
		"capacity": train.Capacity,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrain(row)
	if err != nil {
		return domain.Train{}, fmt.Errorf("repo.TrainRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTrainRepo) GetByName(ctx context.Context, name string) (domain.Train, error) {
	const q = `
		SELECT id, name, capacity, created_at
		FROM trains
		WHERE name = @name`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name})
	result, err := scanTrain(row)
	if err != nil {
		return domain.Train{}, fmt.Errorf("repo.TrainRepo.GetByName: %w", err)
	}
	return result, nil
}

func (r *pgTrainRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Train, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trains`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TrainRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT id, name, capacity, created_at
		FROM trains
		ORDER BY name
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TrainRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var trains []domain.Train
	for rows.Next() {
		tr, err := scanTrain(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TrainRepo.ListPaged: scan: %w", err)
		}
		trains = append(trains, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TrainRepo.ListPaged: rows: %w", err)
	}

	return trains, total, nil
}

// scanTrain maps a single database row into a domain.Train.
func scanTrain(s scanner) (domain.Train, error) {
	var (
		tr domain.Train
		id pgtype.UUID
	)
	if err := s.Scan(&id, &tr.Name, &tr.Capacity, &tr.CreatedAt); err != nil {
		return domain.Train{}, mapError(err)
	}
	tr.ID = uuid.UUID(id.Bytes)
	return tr, nil
}
