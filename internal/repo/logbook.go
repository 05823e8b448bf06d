package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/driverlog/backend/internal/domain"
)

// LogBookRepo defines the persistence operations for log books.
// A log book is keyed by its owning log detail (one-to-one), and its date
// is unique across ALL log books — both constraints live in the schema, so
// a concurrent duplicate insert loses with domain.ErrConflict instead of
// succeeding silently.
type LogBookRepo interface {
	// Create inserts a new log book under its log detail.
	// Returns domain.ErrConflict if the log detail already has a book or
	// the date is taken by any other log book system-wide.
	Create(ctx context.Context, book domain.LogBook) (domain.LogBook, error)

	// GetByLogDetailID retrieves the log book owned by a log detail.
	GetByLogDetailID(ctx context.Context, logDetailID uuid.UUID) (domain.LogBook, error)

	// Update changes the date of a log detail's book.
	// Returns domain.ErrConflict if the new date is taken.
	Update(ctx context.Context, book domain.LogBook) (domain.LogBook, error)

	// DeleteByLogDetailID removes a log detail's book; activity logs cascade.
	DeleteByLogDetailID(ctx context.Context, logDetailID uuid.UUID) error
}

// pgLogBookRepo is the Postgres implementation of LogBookRepo.
type pgLogBookRepo struct {
	db db
}

// NewLogBookRepo constructs a LogBookRepo backed by the provided db connection.
func NewLogBookRepo(db db) LogBookRepo {
	return &pgLogBookRepo{db: db}
}

func (r *pgLogBookRepo) Create(ctx context.Context, book domain.LogBook) (domain.LogBook, error) {
	const q = `
		INSERT INTO log_books (log_detail_id, date)
		VALUES (@log_detail_id, @date)
		RETURNING id, log_detail_id, date, created_at, updated_at`

	args := pgx.NamedArgs{
		"log_detail_id": book.LogDetailID,
		"date":          book.Date,
	}

	result, err := scanLogBook(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.LogBook{}, fmt.Errorf("repo.LogBookRepo.Create: %w", domain.ErrConflict)
		}
		return domain.LogBook{}, fmt.Errorf("repo.LogBookRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgLogBookRepo) GetByLogDetailID(ctx context.Context, logDetailID uuid.UUID) (domain.LogBook, error) {
	const q = `
		SELECT id, log_detail_id, date, created_at, updated_at
		FROM log_books
		WHERE log_detail_id = @log_detail_id`

	result, err := scanLogBook(r.db.QueryRow(ctx, q, pgx.NamedArgs{"log_detail_id": logDetailID}))
	if err != nil {
		return domain.LogBook{}, fmt.Errorf("repo.LogBookRepo.GetByLogDetailID: %w", err)
	}
	return result, nil
}

func (r *pgLogBookRepo) Update(ctx context.Context, book domain.LogBook) (domain.LogBook, error) {
	const q = `
		UPDATE log_books
		SET date       = @date,
		    updated_at = now()
		WHERE log_detail_id = @log_detail_id
		RETURNING id, log_detail_id, date, created_at, updated_at`

	args := pgx.NamedArgs{
		"log_detail_id": book.LogDetailID,
		"date":          book.Date,
	}

	result, err := scanLogBook(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.LogBook{}, fmt.Errorf("repo.LogBookRepo.Update: %w", domain.ErrConflict)
		}
		return domain.LogBook{}, fmt.Errorf("repo.LogBookRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgLogBookRepo) DeleteByLogDetailID(ctx context.Context, logDetailID uuid.UUID) error {
	const q = `DELETE FROM log_books WHERE log_detail_id = @log_detail_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"log_detail_id": logDetailID})
	if err != nil {
		return fmt.Errorf("repo.LogBookRepo.DeleteByLogDetailID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LogBookRepo.DeleteByLogDetailID: %w", domain.ErrNotFound)
	}
	return nil
}

// scanLogBook maps a single database row into a domain.LogBook.
func scanLogBook(s scanner) (domain.LogBook, error) {
	var (
		b        domain.LogBook
		id       pgtype.UUID
		detailID pgtype.UUID
		date     pgtype.Date
	)

	err := s.Scan(&id, &detailID, &date, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return domain.LogBook{}, translateScanErr(err)
	}

	b.ID = uuid.UUID(id.Bytes)
	b.LogDetailID = uuid.UUID(detailID.Bytes)
	b.Date = date.Time
	return b, nil
}
