package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/repo"
)

// TripService implements business logic for trip operations.
// Every operation acts on behalf of a user; trips the user does not own
// are reported as domain.ErrNotFound.
type TripService struct {
	trips repo.TripRepo
	uow   repo.UnitOfWork
}

// NewTripService constructs a TripService. The unit of work is used by
// Delete, which must remove the trip and garbage-collect its locations in
// one transaction.
func NewTripService(trips repo.TripRepo, uow repo.UnitOfWork) *TripService {
	return &TripService{trips: trips, uow: uow}
}

// Create validates and persists a new trip with userID as its first owner.
func (s *TripService) Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Create(ctx, trip, userID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip owned by userID.
func (s *TripService) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, tripID, userID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of the user's trips plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListPaged(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and persists changes to an existing trip.
func (s *TripService) Update(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Update(ctx, trip, userID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip. The trip detail, log details, log books, and
// activity logs cascade at the schema level; locations referenced by the
// trip detail are garbage-collected in the same transaction.
func (s *TripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		var orphans []uuid.UUID
		detail, err := r.TripDetails.GetByTripID(ctx, tripID)
		switch {
		case err == nil:
			orphans = detail.LocationIDs()
		case errors.Is(err, domain.ErrNotFound):
			// No detail — nothing to collect.
		default:
			return err
		}

		if err := r.Trips.Delete(ctx, tripID, userID); err != nil {
			return err
		}
		return r.Locations.DeleteUnreferenced(ctx, orphans)
	})
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - from_place and to_place must be non-empty.
//   - start_date and end_date must be set, with start_date <= end_date.
func validateTrip(trip domain.Trip) error {
	fields := domain.FieldErrors{}
	if strings.TrimSpace(trip.FromPlace) == "" {
		fields["from_place"] = "from_place is required"
	}
	if strings.TrimSpace(trip.ToPlace) == "" {
		fields["to_place"] = "to_place is required"
	}
	switch {
	case trip.StartDate.IsZero():
		fields["start_date"] = "start_date is required"
	case trip.EndDate.IsZero():
		fields["end_date"] = "end_date is required"
	case trip.EndDate.Before(trip.StartDate):
		fields["end_date"] = "end_date must not be before start_date"
	}
	if len(fields) > 0 {
		return fields
	}
	return nil
}
