package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/driverlog/backend/internal/domain"
)

// LocationRepo defines the persistence operations for deduplicated locations.
type LocationRepo interface {
	// Resolve upserts a location keyed on (latitude, longitude) and returns
	// the persisted row. Resolving the same coordinates twice — in either
	// input form — returns the same row; the address supplied by the first
	// creator is preserved on conflict. The upsert is a single atomic
	// statement, so concurrent identical resolves cannot create duplicates.
	Resolve(ctx context.Context, in domain.LocationInput) (domain.Location, error)

	// GetByID retrieves a location by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Location, error)

	// DeleteUnreferenced deletes each listed location that is no longer
	// referenced by any trip detail via any of the three location roles.
	// Locations still referenced elsewhere are left alone.
	DeleteUnreferenced(ctx context.Context, ids []uuid.UUID) error
}

// pgLocationRepo is the Postgres implementation of LocationRepo.
type pgLocationRepo struct {
	db db
}

// NewLocationRepo constructs a LocationRepo backed by the provided db connection.
func NewLocationRepo(db db) LocationRepo {
	return &pgLocationRepo{db: db}
}

// Resolve inserts a location or returns the existing row on coordinate
// conflict. The DO UPDATE SET trick forces the RETURNING clause to fire even
// when the conflict handler skips the insert — without it, RETURNING returns
// nothing on DO NOTHING conflicts.
func (r *pgLocationRepo) Resolve(ctx context.Context, in domain.LocationInput) (domain.Location, error) {
	const q = `
		INSERT INTO locations (latitude, longitude, address)
		VALUES (@latitude, @longitude, @address)
		ON CONFLICT (latitude, longitude) DO UPDATE SET latitude = EXCLUDED.latitude
		RETURNING id, latitude, longitude, address, created_at, updated_at`

	var address *string
	if in.Address != "" {
		address = &in.Address
	}

	args := pgx.NamedArgs{
		"latitude":  in.Latitude,
		"longitude": in.Longitude,
		"address":   address, // nil becomes NULL
	}

	result, err := scanLocation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.Resolve: %w", err)
	}
	return result, nil
}

func (r *pgLocationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Location, error) {
	const q = `
		SELECT id, latitude, longitude, address, created_at, updated_at
		FROM locations
		WHERE id = @id`

	result, err := scanLocation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.GetByID: %w", err)
	}
	return result, nil
}

// DeleteUnreferenced garbage-collects locations by counting references with a
// query rather than a stored counter, so it is always consistent with the
// trip_details table it runs against.
func (r *pgLocationRepo) DeleteUnreferenced(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	const q = `
		DELETE FROM locations l
		WHERE l.id = ANY(@ids)
		  AND NOT EXISTS (
			SELECT 1 FROM trip_details d
			WHERE d.pickup_location_id  = l.id
			   OR d.dropoff_location_id = l.id
			   OR d.current_location_id = l.id
		  )`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"ids": ids}); err != nil {
		return fmt.Errorf("repo.LocationRepo.DeleteUnreferenced: %w", err)
	}
	return nil
}

// scanLocation maps a single database row into a domain.Location.
func scanLocation(s scanner) (domain.Location, error) {
	var (
		l       domain.Location
		id      pgtype.UUID
		address pgtype.Text
	)
	err := s.Scan(&id, &l.Latitude, &l.Longitude, &address, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return domain.Location{}, translateScanErr(err)
	}
	l.ID = uuid.UUID(id.Bytes)
	if address.Valid {
		l.Address = address.String
	}
	return l, nil
}
