package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/driverlog/backend/internal/domain"
)

// ActivityLogRepo defines the persistence operations for activity-log entries.
// Entries are scoped by logBookID on every call; there is deliberately no
// uniqueness constraint on the slot within a book.
type ActivityLogRepo interface {
	// Create inserts a new entry into a log book.
	Create(ctx context.Context, entry domain.ActivityLog) (domain.ActivityLog, error)

	// Delete removes an entry by ID, scoped to the given log book.
	// Returns domain.ErrNotFound if the entry does not belong to that book.
	Delete(ctx context.Context, logBookID, entryID uuid.UUID) error

	// ListByLogBookID returns all entries of a log book ordered by slot
	// ascending; entries sharing a slot keep insertion order.
	ListByLogBookID(ctx context.Context, logBookID uuid.UUID) ([]domain.ActivityLog, error)
}

// pgActivityLogRepo is the Postgres implementation of ActivityLogRepo.
type pgActivityLogRepo struct {
	db db
}

// NewActivityLogRepo constructs an ActivityLogRepo backed by the provided db connection.
func NewActivityLogRepo(db db) ActivityLogRepo {
	return &pgActivityLogRepo{db: db}
}

func (r *pgActivityLogRepo) Create(ctx context.Context, entry domain.ActivityLog) (domain.ActivityLog, error) {
	const q = `
		INSERT INTO activity_logs (log_book_id, x_datapoint, activity, remark)
		VALUES (@log_book_id, @x_datapoint, @activity, @remark)
		RETURNING id, log_book_id, x_datapoint, activity, remark, created_at`

	var remark *string
	if entry.Remark != "" {
		remark = &entry.Remark
	}

	args := pgx.NamedArgs{
		"log_book_id": entry.LogBookID,
		"x_datapoint": entry.Slot,
		"activity":    string(entry.Activity),
		"remark":      remark, // nil becomes NULL
	}

	result, err := scanActivityLog(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ActivityLog{}, fmt.Errorf("repo.ActivityLogRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityLogRepo) Delete(ctx context.Context, logBookID, entryID uuid.UUID) error {
	const q = `
		DELETE FROM activity_logs
		WHERE id = @id AND log_book_id = @log_book_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": entryID, "log_book_id": logBookID})
	if err != nil {
		return fmt.Errorf("repo.ActivityLogRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityLogRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgActivityLogRepo) ListByLogBookID(ctx context.Context, logBookID uuid.UUID) ([]domain.ActivityLog, error) {
	const q = `
		SELECT id, log_book_id, x_datapoint, activity, remark, created_at
		FROM activity_logs
		WHERE log_book_id = @log_book_id
		ORDER BY x_datapoint, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"log_book_id": logBookID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityLogRepo.ListByLogBookID: %w", err)
	}
	defer rows.Close()

	entries := []domain.ActivityLog{}
	for rows.Next() {
		e, err := scanActivityLog(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityLogRepo.ListByLogBookID: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityLogRepo.ListByLogBookID: rows: %w", err)
	}
	return entries, nil
}

// scanActivityLog maps a single database row into a domain.ActivityLog.
func scanActivityLog(s scanner) (domain.ActivityLog, error) {
	var (
		e      domain.ActivityLog
		id     pgtype.UUID
		bookID pgtype.UUID
		remark pgtype.Text
	)

	err := s.Scan(&id, &bookID, &e.Slot, &e.Activity, &remark, &e.CreatedAt)
	if err != nil {
		return domain.ActivityLog{}, translateScanErr(err)
	}

	e.ID = uuid.UUID(id.Bytes)
	e.LogBookID = uuid.UUID(bookID.Bytes)
	if remark.Valid {
		e.Remark = remark.String
	}
	return e, nil
}
