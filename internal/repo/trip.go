package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/driverlog/backend/internal/domain"
)

// TripRepo defines the persistence operations for trips.
// Every read and write is scoped by the acting user's membership in the
// trip's owner set; rows the user does not own behave as if they do not
// exist (domain.ErrNotFound).
type TripRepo interface {
	// Create inserts a new trip and attaches ownerID as its first owner,
	// atomically in a single statement.
	Create(ctx context.Context, trip domain.Trip, ownerID uuid.UUID) (domain.Trip, error)

	// GetByID retrieves a trip by primary key, scoped to ownerID.
	// This doubles as the ownership gate for every trip-scoped resource.
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of the user's trips ordered by start_date
	// descending, plus the total count of trips the user owns.
	ListPaged(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of a trip, scoped to ownerID.
	Update(ctx context.Context, trip domain.Trip, ownerID uuid.UUID) (domain.Trip, error)

	// Delete removes a trip by ID, scoped to ownerID. Trip details, log
	// details, log books, and activity logs cascade at the schema level.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts the trip and its first owner in one data-modifying CTE, so
// no trip row can ever exist without an owner — not even transiently.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip, ownerID uuid.UUID) (domain.Trip, error) {
	const q = `
		WITH t AS (
			INSERT INTO trips (start_date, end_date, from_place, to_place)
			VALUES (@start_date, @end_date, @from_place, @to_place)
			RETURNING id, start_date, end_date, from_place, to_place, created_at, updated_at
		), o AS (
			INSERT INTO trip_owners (trip_id, user_id)
			SELECT t.id, @owner_id FROM t
		)
		SELECT id, start_date, end_date, from_place, to_place, created_at, updated_at FROM t`

	args := pgx.NamedArgs{
		"start_date": trip.StartDate,
		"end_date":   trip.EndDate,
		"from_place": trip.FromPlace,
		"to_place":   trip.ToPlace,
		"owner_id":   ownerID,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT t.id, t.start_date, t.end_date, t.from_place, t.to_place, t.created_at, t.updated_at
		FROM trips t
		JOIN trip_owners o ON o.trip_id = t.id
		WHERE t.id = @id AND o.user_id = @owner_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListPaged(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const countQ = `
		SELECT count(*)
		FROM trips t
		JOIN trip_owners o ON o.trip_id = t.id
		WHERE o.user_id = @owner_id`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"owner_id": ownerID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT t.id, t.start_date, t.end_date, t.from_place, t.to_place, t.created_at, t.updated_at
		FROM trips t
		JOIN trip_owners o ON o.trip_id = t.id
		WHERE o.user_id = @owner_id
		ORDER BY t.start_date DESC, t.created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"owner_id": ownerID,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	return trips, total, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip, ownerID uuid.UUID) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET start_date = @start_date,
		    end_date   = @end_date,
		    from_place = @from_place,
		    to_place   = @to_place,
		    updated_at = now()
		WHERE id = @id
		  AND EXISTS (SELECT 1 FROM trip_owners WHERE trip_id = @id AND user_id = @owner_id)
		RETURNING id, start_date, end_date, from_place, to_place, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":         trip.ID,
		"start_date": trip.StartDate,
		"end_date":   trip.EndDate,
		"from_place": trip.FromPlace,
		"to_place":   trip.ToPlace,
		"owner_id":   ownerID,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	const q = `
		DELETE FROM trips
		WHERE id = @id
		  AND EXISTS (SELECT 1 FROM trip_owners WHERE trip_id = @id AND user_id = @owner_id)`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t     domain.Trip
		id    pgtype.UUID
		start pgtype.Date
		end   pgtype.Date
	)

	err := s.Scan(&id, &start, &end, &t.FromPlace, &t.ToPlace, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Trip{}, translateScanErr(err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time
	return t, nil
}
