package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/repo"
)

// LogDetailService implements business logic for log details.
// It holds the trip repo because every operation must verify the acting
// user owns the trip the log detail belongs to.
type LogDetailService struct {
	trips   repo.TripRepo
	details repo.LogDetailRepo
}

// NewLogDetailService constructs a LogDetailService.
func NewLogDetailService(trips repo.TripRepo, details repo.LogDetailRepo) *LogDetailService {
	return &LogDetailService{trips: trips, details: details}
}

// Create validates the payload, verifies the parent trip is owned by
// userID, then persists. A trip may hold any number of log details.
func (s *LogDetailService) Create(ctx context.Context, userID, tripID uuid.UUID, detail domain.LogDetail) (domain.LogDetail, error) {
	if _, err := s.trips.GetByID(ctx, tripID, userID); err != nil {
		return domain.LogDetail{}, fmt.Errorf("service.LogDetailService.Create: %w", err)
	}
	if err := validateLogDetail(detail); err != nil {
		return domain.LogDetail{}, err
	}

	detail.TripID = tripID
	result, err := s.details.Create(ctx, detail)
	if err != nil {
		return domain.LogDetail{}, fmt.Errorf("service.LogDetailService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a log detail, provided userID owns its trip.
func (s *LogDetailService) GetByID(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogDetail, error) {
	result, err := s.ownedDetail(ctx, userID, logDetailID)
	if err != nil {
		return domain.LogDetail{}, fmt.Errorf("service.LogDetailService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all log details of a trip owned by userID.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LogDetailService) ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.LogDetail, error) {
	if _, err := s.trips.GetByID(ctx, tripID, userID); err != nil {
		return nil, fmt.Errorf("service.LogDetailService.ListByTripID: %w", err)
	}
	details, err := s.details.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.LogDetailService.ListByTripID: %w", err)
	}
	if details == nil {
		details = []domain.LogDetail{}
	}
	return details, nil
}

// Update validates and persists changes to an existing log detail.
func (s *LogDetailService) Update(ctx context.Context, userID uuid.UUID, detail domain.LogDetail) (domain.LogDetail, error) {
	existing, err := s.ownedDetail(ctx, userID, detail.ID)
	if err != nil {
		return domain.LogDetail{}, fmt.Errorf("service.LogDetailService.Update: %w", err)
	}
	if err := validateLogDetail(detail); err != nil {
		return domain.LogDetail{}, err
	}

	detail.TripID = existing.TripID
	result, err := s.details.Update(ctx, detail)
	if err != nil {
		return domain.LogDetail{}, fmt.Errorf("service.LogDetailService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a log detail; its log book and activity logs cascade.
func (s *LogDetailService) Delete(ctx context.Context, userID, logDetailID uuid.UUID) error {
	if _, err := s.ownedDetail(ctx, userID, logDetailID); err != nil {
		return fmt.Errorf("service.LogDetailService.Delete: %w", err)
	}
	if err := s.details.Delete(ctx, logDetailID); err != nil {
		return fmt.Errorf("service.LogDetailService.Delete: %w", err)
	}
	return nil
}

// ownedDetail fetches a log detail and verifies userID owns its trip.
// Both a missing detail and an unowned trip surface as domain.ErrNotFound.
func (s *LogDetailService) ownedDetail(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogDetail, error) {
	detail, err := s.details.GetByID(ctx, logDetailID)
	if err != nil {
		return domain.LogDetail{}, err
	}
	if _, err := s.trips.GetByID(ctx, detail.TripID, userID); err != nil {
		return domain.LogDetail{}, err
	}
	return detail, nil
}

// validateLogDetail enforces business rules common to Create and Update.
func validateLogDetail(detail domain.LogDetail) error {
	fields := domain.FieldErrors{}
	if detail.StartDate.IsZero() {
		fields["start_date"] = "start_date is required"
	}
	if detail.TotalMilesDriven < 0 {
		fields["total_miles_driven"] = "total_miles_driven must not be negative"
	}
	if strings.TrimSpace(detail.NameOfCarrier) == "" {
		fields["name_of_carrier"] = "name_of_carrier is required"
	}
	if strings.TrimSpace(detail.MainOfficeAddress) == "" {
		fields["main_office_address"] = "main_office_address is required"
	}
	if strings.TrimSpace(detail.ShippingDocumentNumber) == "" {
		fields["shipping_document_number"] = "shipping_document_number is required"
	}
	if len(fields) > 0 {
		return fields
	}
	return nil
}
