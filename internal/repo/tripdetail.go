package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/driverlog/backend/internal/domain"
)

// TripDetailRepo defines the persistence operations for trip details.
// A trip has at most one detail row, enforced by a unique constraint on
// trip_id; the repos translate that violation to domain.ErrConflict.
type TripDetailRepo interface {
	// Create inserts a new trip detail. The caller supplies resolved
	// locations (Pickup/Dropoff/Current with IDs populated).
	// Returns domain.ErrConflict if the trip already has a detail.
	Create(ctx context.Context, detail domain.TripDetail) (domain.TripDetail, error)

	// GetByTripID retrieves a trip's detail with its locations hydrated.
	GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.TripDetail, error)

	// Update overwrites the location references of a trip's detail.
	Update(ctx context.Context, detail domain.TripDetail) (domain.TripDetail, error)

	// DeleteByTripID removes a trip's detail row. Referenced locations are
	// left in place — the caller garbage-collects them afterwards.
	DeleteByTripID(ctx context.Context, tripID uuid.UUID) error
}

// pgTripDetailRepo is the Postgres implementation of TripDetailRepo.
type pgTripDetailRepo struct {
	db db
}

// NewTripDetailRepo constructs a TripDetailRepo backed by the provided db connection.
func NewTripDetailRepo(db db) TripDetailRepo {
	return &pgTripDetailRepo{db: db}
}

func (r *pgTripDetailRepo) Create(ctx context.Context, detail domain.TripDetail) (domain.TripDetail, error) {
	const q = `
		INSERT INTO trip_details (trip_id, pickup_location_id, dropoff_location_id, current_location_id)
		VALUES (@trip_id, @pickup, @dropoff, @current)
		RETURNING id, trip_id, pickup_location_id, dropoff_location_id, current_location_id, created_at, updated_at`

	args := pgx.NamedArgs{
		"trip_id": detail.TripID,
		"pickup":  locationID(detail.Pickup),
		"dropoff": locationID(detail.Dropoff),
		"current": locationID(detail.Current),
	}

	row, err := scanTripDetailRow(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.TripDetail{}, fmt.Errorf("repo.TripDetailRepo.Create: %w", domain.ErrConflict)
		}
		return domain.TripDetail{}, fmt.Errorf("repo.TripDetailRepo.Create: %w", err)
	}

	result, err := r.hydrate(ctx, row)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripDetailRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripDetailRepo) GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.TripDetail, error) {
	const q = `
		SELECT id, trip_id, pickup_location_id, dropoff_location_id, current_location_id, created_at, updated_at
		FROM trip_details
		WHERE trip_id = @trip_id`

	row, err := scanTripDetailRow(r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}))
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripDetailRepo.GetByTripID: %w", err)
	}

	result, err := r.hydrate(ctx, row)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripDetailRepo.GetByTripID: %w", err)
	}
	return result, nil
}

func (r *pgTripDetailRepo) Update(ctx context.Context, detail domain.TripDetail) (domain.TripDetail, error) {
	const q = `
		UPDATE trip_details
		SET pickup_location_id  = @pickup,
		    dropoff_location_id = @dropoff,
		    current_location_id = @current,
		    updated_at          = now()
		WHERE trip_id = @trip_id
		RETURNING id, trip_id, pickup_location_id, dropoff_location_id, current_location_id, created_at, updated_at`

	args := pgx.NamedArgs{
		"trip_id": detail.TripID,
		"pickup":  locationID(detail.Pickup),
		"dropoff": locationID(detail.Dropoff),
		"current": locationID(detail.Current),
	}

	row, err := scanTripDetailRow(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripDetailRepo.Update: %w", err)
	}

	result, err := r.hydrate(ctx, row)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripDetailRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripDetailRepo) DeleteByTripID(ctx context.Context, tripID uuid.UUID) error {
	const q = `DELETE FROM trip_details WHERE trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.TripDetailRepo.DeleteByTripID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripDetailRepo.DeleteByTripID: %w", domain.ErrNotFound)
	}
	return nil
}

// tripDetailRow is the raw trip_details row before location hydration.
type tripDetailRow struct {
	detail  domain.TripDetail
	pickup  *uuid.UUID
	dropoff *uuid.UUID
	current *uuid.UUID
}

func scanTripDetailRow(s scanner) (tripDetailRow, error) {
	var (
		row     tripDetailRow
		id      pgtype.UUID
		tripID  pgtype.UUID
		pickup  pgtype.UUID
		dropoff pgtype.UUID
		current pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &pickup, &dropoff, &current, &row.detail.CreatedAt, &row.detail.UpdatedAt)
	if err != nil {
		return tripDetailRow{}, translateScanErr(err)
	}

	row.detail.ID = uuid.UUID(id.Bytes)
	row.detail.TripID = uuid.UUID(tripID.Bytes)
	row.pickup = uuidPtr(pickup)
	row.dropoff = uuidPtr(dropoff)
	row.current = uuidPtr(current)
	return row, nil
}

// hydrate fetches the referenced locations in one query and attaches them to
// the detail under their respective roles.
func (r *pgTripDetailRepo) hydrate(ctx context.Context, row tripDetailRow) (domain.TripDetail, error) {
	var ids []uuid.UUID
	for _, ref := range []*uuid.UUID{row.pickup, row.dropoff, row.current} {
		if ref != nil {
			ids = append(ids, *ref)
		}
	}
	if len(ids) == 0 {
		return row.detail, nil
	}

	const q = `
		SELECT id, latitude, longitude, address, created_at, updated_at
		FROM locations
		WHERE id = ANY(@ids)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("hydrate locations: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]domain.Location, len(ids))
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return domain.TripDetail{}, fmt.Errorf("hydrate locations: scan: %w", err)
		}
		byID[loc.ID] = loc
	}
	if err := rows.Err(); err != nil {
		return domain.TripDetail{}, fmt.Errorf("hydrate locations: rows: %w", err)
	}

	attach := func(ref *uuid.UUID) *domain.Location {
		if ref == nil {
			return nil
		}
		if loc, ok := byID[*ref]; ok {
			return &loc
		}
		return nil
	}

	detail := row.detail
	detail.Pickup = attach(row.pickup)
	detail.Dropoff = attach(row.dropoff)
	detail.Current = attach(row.current)
	return detail, nil
}

// locationID extracts a nullable FK value from an optional location.
func locationID(loc *domain.Location) *uuid.UUID {
	if loc == nil {
		return nil
	}
	id := loc.ID
	return &id
}

// uuidPtr converts a nullable pgtype.UUID into a *uuid.UUID.
func uuidPtr(v pgtype.UUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	id := uuid.UUID(v.Bytes)
	return &id
}
