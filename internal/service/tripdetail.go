package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/repo"
)

// TripDetailInput carries the caller-supplied waypoints for a create or
// update. Pickup and Dropoff are required on create; Current is optional.
// On update, a nil role keeps the existing location for that role.
type TripDetailInput struct {
	Pickup  *domain.LocationInput
	Dropoff *domain.LocationInput
	Current *domain.LocationInput
}

// TripDetailService implements business logic for trip details.
// Creating or changing a detail resolves locations through the dedup
// registry and garbage-collects locations that lost their last reference,
// all inside one transaction.
type TripDetailService struct {
	trips repo.TripRepo
	uow   repo.UnitOfWork
}

// NewTripDetailService constructs a TripDetailService.
func NewTripDetailService(trips repo.TripRepo, uow repo.UnitOfWork) *TripDetailService {
	return &TripDetailService{trips: trips, uow: uow}
}

// Create verifies ownership of the parent trip, resolves the supplied
// locations, and persists the detail. Returns domain.ErrConflict if the
// trip already has a detail, domain.ErrNotFound if the trip is missing or
// not owned by userID.
func (s *TripDetailService) Create(ctx context.Context, userID, tripID uuid.UUID, in TripDetailInput) (domain.TripDetail, error) {
	if _, err := s.trips.GetByID(ctx, tripID, userID); err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripDetailService.Create: %w", err)
	}

	fields := domain.FieldErrors{}
	if in.Pickup == nil {
		fields["pickup_location"] = "pickup_location is required"
	}
	if in.Dropoff == nil {
		fields["dropoff_location"] = "dropoff_location is required"
	}
	if len(fields) > 0 {
		return domain.TripDetail{}, fields
	}

	var result domain.TripDetail
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		detail := domain.TripDetail{TripID: tripID}
		var err error
		if detail.Pickup, err = resolveRole(ctx, r.Locations, in.Pickup); err != nil {
			return err
		}
		if detail.Dropoff, err = resolveRole(ctx, r.Locations, in.Dropoff); err != nil {
			return err
		}
		if detail.Current, err = resolveRole(ctx, r.Locations, in.Current); err != nil {
			return err
		}

		result, err = r.TripDetails.Create(ctx, detail)
		return err
	})
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripDetailService.Create: %w", err)
	}
	return result, nil
}

// Get returns the detail of a trip owned by userID.
func (s *TripDetailService) Get(ctx context.Context, userID, tripID uuid.UUID) (domain.TripDetail, error) {
	if _, err := s.trips.GetByID(ctx, tripID, userID); err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripDetailService.Get: %w", err)
	}

	var result domain.TripDetail
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		var err error
		result, err = r.TripDetails.GetByTripID(ctx, tripID)
		return err
	})
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripDetailService.Get: %w", err)
	}
	return result, nil
}

// Update replaces the roles supplied in the input and keeps the rest.
// Locations that lost their last reference are deleted in the same
// transaction.
func (s *TripDetailService) Update(ctx context.Context, userID, tripID uuid.UUID, in TripDetailInput) (domain.TripDetail, error) {
	if _, err := s.trips.GetByID(ctx, tripID, userID); err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripDetailService.Update: %w", err)
	}

	var result domain.TripDetail
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		existing, err := r.TripDetails.GetByTripID(ctx, tripID)
		if err != nil {
			return err
		}
		previous := existing.LocationIDs()

		next := existing
		if in.Pickup != nil {
			if next.Pickup, err = resolveRole(ctx, r.Locations, in.Pickup); err != nil {
				return err
			}
		}
		if in.Dropoff != nil {
			if next.Dropoff, err = resolveRole(ctx, r.Locations, in.Dropoff); err != nil {
				return err
			}
		}
		if in.Current != nil {
			if next.Current, err = resolveRole(ctx, r.Locations, in.Current); err != nil {
				return err
			}
		}

		if result, err = r.TripDetails.Update(ctx, next); err != nil {
			return err
		}
		return r.Locations.DeleteUnreferenced(ctx, previous)
	})
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripDetailService.Update: %w", err)
	}
	return result, nil
}

// Delete removes the trip's detail and garbage-collects its locations.
func (s *TripDetailService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, tripID, userID); err != nil {
		return fmt.Errorf("service.TripDetailService.Delete: %w", err)
	}

	err := s.uow.Do(ctx, func(r repo.Repos) error {
		existing, err := r.TripDetails.GetByTripID(ctx, tripID)
		if err != nil {
			return err
		}
		if err := r.TripDetails.DeleteByTripID(ctx, tripID); err != nil {
			return err
		}
		return r.Locations.DeleteUnreferenced(ctx, existing.LocationIDs())
	})
	if err != nil {
		return fmt.Errorf("service.TripDetailService.Delete: %w", err)
	}
	return nil
}

// resolveRole resolves one optional location input through the registry.
func resolveRole(ctx context.Context, locations repo.LocationRepo, in *domain.LocationInput) (*domain.Location, error) {
	if in == nil {
		return nil, nil
	}
	loc, err := locations.Resolve(ctx, *in)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}
