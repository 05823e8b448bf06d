package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/driverlog/backend/internal/domain"
)

// LogDetailRepo defines the persistence operations for log details.
// Log details are many-per-trip; ownership checks go through the owning
// trip, so reads here are unscoped and the service layer gates access.
type LogDetailRepo interface {
	// Create inserts a new log detail under its trip.
	Create(ctx context.Context, detail domain.LogDetail) (domain.LogDetail, error)

	// GetByID retrieves a log detail by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (domain.LogDetail, error)

	// ListByTripID returns all log details for a trip ordered by start_date.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.LogDetail, error)

	// Update overwrites the mutable fields of a log detail.
	Update(ctx context.Context, detail domain.LogDetail) (domain.LogDetail, error)

	// Delete removes a log detail; its log book and activity logs cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgLogDetailRepo is the Postgres implementation of LogDetailRepo.
type pgLogDetailRepo struct {
	db db
}

// NewLogDetailRepo constructs a LogDetailRepo backed by the provided db connection.
func NewLogDetailRepo(db db) LogDetailRepo {
	return &pgLogDetailRepo{db: db}
}

const logDetailColumns = `id, trip_id, start_date, total_miles_driven, name_of_carrier,
		main_office_address, name_of_codriver, shipping_document_number, created_at, updated_at`

func (r *pgLogDetailRepo) Create(ctx context.Context, detail domain.LogDetail) (domain.LogDetail, error) {
	const q = `
		INSERT INTO log_details (trip_id, start_date, total_miles_driven, name_of_carrier,
			main_office_address, name_of_codriver, shipping_document_number)
		VALUES (@trip_id, @start_date, @total_miles_driven, @name_of_carrier,
			@main_office_address, @name_of_codriver, @shipping_document_number)
		RETURNING ` + logDetailColumns

	result, err := scanLogDetail(r.db.QueryRow(ctx, q, logDetailArgs(detail)))
	if err != nil {
		return domain.LogDetail{}, fmt.Errorf("repo.LogDetailRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgLogDetailRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.LogDetail, error) {
	const q = `SELECT ` + logDetailColumns + ` FROM log_details WHERE id = @id`

	result, err := scanLogDetail(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.LogDetail{}, fmt.Errorf("repo.LogDetailRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgLogDetailRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.LogDetail, error) {
	const q = `SELECT ` + logDetailColumns + `
		FROM log_details
		WHERE trip_id = @trip_id
		ORDER BY start_date, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.LogDetailRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	details := []domain.LogDetail{}
	for rows.Next() {
		d, err := scanLogDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LogDetailRepo.ListByTripID: scan: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LogDetailRepo.ListByTripID: rows: %w", err)
	}
	return details, nil
}

func (r *pgLogDetailRepo) Update(ctx context.Context, detail domain.LogDetail) (domain.LogDetail, error) {
	const q = `
		UPDATE log_details
		SET start_date               = @start_date,
		    total_miles_driven       = @total_miles_driven,
		    name_of_carrier          = @name_of_carrier,
		    main_office_address      = @main_office_address,
		    name_of_codriver         = @name_of_codriver,
		    shipping_document_number = @shipping_document_number,
		    updated_at               = now()
		WHERE id = @id
		RETURNING ` + logDetailColumns

	args := logDetailArgs(detail)
	args["id"] = detail.ID

	result, err := scanLogDetail(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.LogDetail{}, fmt.Errorf("repo.LogDetailRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgLogDetailRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM log_details WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.LogDetailRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LogDetailRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func logDetailArgs(detail domain.LogDetail) pgx.NamedArgs {
	var codriver *string
	if detail.NameOfCodriver != "" {
		codriver = &detail.NameOfCodriver
	}
	return pgx.NamedArgs{
		"trip_id":                  detail.TripID,
		"start_date":               detail.StartDate,
		"total_miles_driven":       detail.TotalMilesDriven,
		"name_of_carrier":          detail.NameOfCarrier,
		"main_office_address":      detail.MainOfficeAddress,
		"name_of_codriver":         codriver, // nil becomes NULL
		"shipping_document_number": detail.ShippingDocumentNumber,
	}
}

// scanLogDetail maps a single database row into a domain.LogDetail.
func scanLogDetail(s scanner) (domain.LogDetail, error) {
	var (
		d        domain.LogDetail
		id       pgtype.UUID
		tripID   pgtype.UUID
		start    pgtype.Date
		codriver pgtype.Text
	)

	err := s.Scan(&id, &tripID, &start, &d.TotalMilesDriven, &d.NameOfCarrier,
		&d.MainOfficeAddress, &codriver, &d.ShippingDocumentNumber, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.LogDetail{}, translateScanErr(err)
	}

	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(tripID.Bytes)
	d.StartDate = start.Time
	if codriver.Valid {
		d.NameOfCodriver = codriver.String
	}
	return d, nil
}
