package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/repo"
)

// LogBookService implements the log-book and activity-log operations: the
// day grid's write path and the per-day summary. All operations are keyed
// by the owning log detail's ID and gated on trip ownership.
type LogBookService struct {
	trips   repo.TripRepo
	details repo.LogDetailRepo
	books   repo.LogBookRepo
	entries repo.ActivityLogRepo
	policy  domain.GapPolicy
}

// NewLogBookService constructs a LogBookService. policy controls how the
// summary accounts for slots with no entry; see domain.GapPolicy.
func NewLogBookService(trips repo.TripRepo, details repo.LogDetailRepo, books repo.LogBookRepo, entries repo.ActivityLogRepo, policy domain.GapPolicy) *LogBookService {
	return &LogBookService{trips: trips, details: details, books: books, entries: entries, policy: policy}
}

// CreateBook creates the log book for a log detail. Returns
// domain.ErrConflict if the detail already has a book or the date is taken
// by any log book system-wide — the date uniqueness is global, not scoped
// to the user or trip.
func (s *LogBookService) CreateBook(ctx context.Context, userID, logDetailID uuid.UUID, book domain.LogBook) (domain.LogBook, error) {
	if _, err := s.ownedDetail(ctx, userID, logDetailID); err != nil {
		return domain.LogBook{}, fmt.Errorf("service.LogBookService.CreateBook: %w", err)
	}
	if book.Date.IsZero() {
		return domain.LogBook{}, domain.FieldErrors{"date": "date is required"}
	}

	book.LogDetailID = logDetailID
	result, err := s.books.Create(ctx, book)
	if err != nil {
		return domain.LogBook{}, fmt.Errorf("service.LogBookService.CreateBook: %w", err)
	}
	return result, nil
}

// GetBook returns the log book of a log detail.
func (s *LogBookService) GetBook(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogBook, error) {
	if _, err := s.ownedDetail(ctx, userID, logDetailID); err != nil {
		return domain.LogBook{}, fmt.Errorf("service.LogBookService.GetBook: %w", err)
	}
	result, err := s.books.GetByLogDetailID(ctx, logDetailID)
	if err != nil {
		return domain.LogBook{}, fmt.Errorf("service.LogBookService.GetBook: %w", err)
	}
	return result, nil
}

// UpdateBook changes the date of a log detail's book, subject to the same
// global date uniqueness as CreateBook.
func (s *LogBookService) UpdateBook(ctx context.Context, userID, logDetailID uuid.UUID, book domain.LogBook) (domain.LogBook, error) {
	if _, err := s.ownedDetail(ctx, userID, logDetailID); err != nil {
		return domain.LogBook{}, fmt.Errorf("service.LogBookService.UpdateBook: %w", err)
	}
	if book.Date.IsZero() {
		return domain.LogBook{}, domain.FieldErrors{"date": "date is required"}
	}

	book.LogDetailID = logDetailID
	result, err := s.books.Update(ctx, book)
	if err != nil {
		return domain.LogBook{}, fmt.Errorf("service.LogBookService.UpdateBook: %w", err)
	}
	return result, nil
}

// DeleteBook removes a log detail's book; activity logs cascade.
func (s *LogBookService) DeleteBook(ctx context.Context, userID, logDetailID uuid.UUID) error {
	if _, err := s.ownedDetail(ctx, userID, logDetailID); err != nil {
		return fmt.Errorf("service.LogBookService.DeleteBook: %w", err)
	}
	if err := s.books.DeleteByLogDetailID(ctx, logDetailID); err != nil {
		return fmt.Errorf("service.LogBookService.DeleteBook: %w", err)
	}
	return nil
}

// CreateEntry validates the slot and activity against the day grid and
// appends an entry to the log book owned by logDetailID. Multiple entries
// may share a slot.
func (s *LogBookService) CreateEntry(ctx context.Context, userID, logDetailID uuid.UUID, slot int, activity string, remark string) (domain.ActivityLog, error) {
	book, err := s.ownedBook(ctx, userID, logDetailID)
	if err != nil {
		return domain.ActivityLog{}, fmt.Errorf("service.LogBookService.CreateEntry: %w", err)
	}

	fields := domain.FieldErrors{}
	if !domain.ValidSlot(slot) {
		fields["x_datapoint"] = fmt.Sprintf("must be between %d and %d, got %d", domain.SlotMin, domain.SlotMax, slot)
	}
	parsed, err := domain.ParseActivity(activity)
	if err != nil {
		fields["activity"] = fmt.Sprintf("must be one of OFF_DUTY, SLEEPER_BERTH, DRIVING, ON_DUTY; got %q", activity)
	}
	if len(fields) > 0 {
		return domain.ActivityLog{}, fields
	}

	result, err := s.entries.Create(ctx, domain.ActivityLog{
		LogBookID: book.ID,
		Slot:      slot,
		Activity:  parsed,
		Remark:    remark,
	})
	if err != nil {
		return domain.ActivityLog{}, fmt.Errorf("service.LogBookService.CreateEntry: %w", err)
	}
	return result, nil
}

// DeleteEntry removes one entry from the log book owned by logDetailID.
// Returns domain.ErrNotFound if the entry does not belong to that book.
func (s *LogBookService) DeleteEntry(ctx context.Context, userID, logDetailID, entryID uuid.UUID) error {
	book, err := s.ownedBook(ctx, userID, logDetailID)
	if err != nil {
		return fmt.Errorf("service.LogBookService.DeleteEntry: %w", err)
	}
	if err := s.entries.Delete(ctx, book.ID, entryID); err != nil {
		return fmt.Errorf("service.LogBookService.DeleteEntry: %w", err)
	}
	return nil
}

// ListEntries returns the log book's entries ordered by slot ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LogBookService) ListEntries(ctx context.Context, userID, logDetailID uuid.UUID) ([]domain.ActivityLog, error) {
	book, err := s.ownedBook(ctx, userID, logDetailID)
	if err != nil {
		return nil, fmt.Errorf("service.LogBookService.ListEntries: %w", err)
	}
	entries, err := s.entries.ListByLogBookID(ctx, book.ID)
	if err != nil {
		return nil, fmt.Errorf("service.LogBookService.ListEntries: %w", err)
	}
	if entries == nil {
		entries = []domain.ActivityLog{}
	}
	return entries, nil
}

// Summary composes the per-day roll-up: carrier metadata and miles from the
// log detail, per-category minute totals under the configured gap policy,
// and the entry list with slots resolved to wall-clock times.
func (s *LogBookService) Summary(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogSummary, error) {
	detail, err := s.ownedDetail(ctx, userID, logDetailID)
	if err != nil {
		return domain.LogSummary{}, fmt.Errorf("service.LogBookService.Summary: %w", err)
	}
	book, err := s.books.GetByLogDetailID(ctx, logDetailID)
	if err != nil {
		return domain.LogSummary{}, fmt.Errorf("service.LogBookService.Summary: %w", err)
	}
	entries, err := s.entries.ListByLogBookID(ctx, book.ID)
	if err != nil {
		return domain.LogSummary{}, fmt.Errorf("service.LogBookService.Summary: %w", err)
	}

	summary, err := domain.Summarize(book, detail, entries, s.policy)
	if err != nil {
		return domain.LogSummary{}, fmt.Errorf("service.LogBookService.Summary: %w", err)
	}
	return summary, nil
}

// ownedDetail fetches a log detail and verifies userID owns its trip.
func (s *LogBookService) ownedDetail(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogDetail, error) {
	detail, err := s.details.GetByID(ctx, logDetailID)
	if err != nil {
		return domain.LogDetail{}, err
	}
	if _, err := s.trips.GetByID(ctx, detail.TripID, userID); err != nil {
		return domain.LogDetail{}, err
	}
	return detail, nil
}

// ownedBook resolves logDetailID to its log book after the ownership check.
func (s *LogBookService) ownedBook(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogBook, error) {
	if _, err := s.ownedDetail(ctx, userID, logDetailID); err != nil {
		return domain.LogBook{}, err
	}
	return s.books.GetByLogDetailID(ctx, logDetailID)
}
