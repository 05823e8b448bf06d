package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/repo"
	"github.com/pkordes/driverlog/backend/internal/service"
)

func validTrip() domain.Trip {
	return domain.Trip{
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		FromPlace: "Boston, MA",
		ToPlace:   "Chicago, IL",
	}
}

// echoTripRepo echoes whatever it receives back — useful for Create/Update
// tests that only care about validation logic, not what the DB returns.
func echoTripRepo() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, trip domain.Trip, _ uuid.UUID) (domain.Trip, error) {
			return trip, nil
		},
		update: func(_ context.Context, trip domain.Trip, _ uuid.UUID) (domain.Trip, error) {
			return trip, nil
		},
	}
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), nil)

	got, err := svc.Create(context.Background(), uuid.New(), validTrip())

	require.NoError(t, err)
	assert.Equal(t, "Boston, MA", got.FromPlace)
}

func TestTripService_Create_OwnerForwarded(t *testing.T) {
	owner := uuid.New()
	var gotOwner uuid.UUID
	trips := &mockTripRepo{
		create: func(_ context.Context, trip domain.Trip, ownerID uuid.UUID) (domain.Trip, error) {
			gotOwner = ownerID
			return trip, nil
		},
	}
	svc := service.NewTripService(trips, nil)

	_, err := svc.Create(context.Background(), owner, validTrip())

	require.NoError(t, err)
	assert.Equal(t, owner, gotOwner)
}

func TestTripService_Create_MissingPlaces(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), nil)

	trip := validTrip()
	trip.FromPlace = "   "
	trip.ToPlace = ""

	_, err := svc.Create(context.Background(), uuid.New(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)

	var fields domain.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "from_place")
	assert.Contains(t, fields, "to_place")
}

func TestTripService_Create_EndBeforeStart(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), nil)

	trip := validTrip()
	trip.EndDate = trip.StartDate.AddDate(0, 0, -1)

	_, err := svc.Create(context.Background(), uuid.New(), trip)

	var fields domain.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "end_date")
}

func TestTripService_Create_SameDayTrip(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), nil)

	trip := validTrip()
	trip.EndDate = trip.StartDate

	_, err := svc.Create(context.Background(), uuid.New(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	trips := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, repoErr
		},
	}
	svc := service.NewTripService(trips, nil)

	_, err := svc.Create(context.Background(), uuid.New(), validTrip())

	assert.ErrorIs(t, err, repoErr)
}

// ---- GetByID tests ---------------------------------------------------------

func TestTripService_GetByID_NotOwned(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(trips, nil)

	_, err := svc.GetByID(context.Background(), uuid.New(), uuid.New())

	// Someone else's trip looks exactly like a missing one.
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListPaged tests -------------------------------------------------------

func TestTripService_ListPaged(t *testing.T) {
	trips := &mockTripRepo{
		listPaged: func(_ context.Context, _ uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			assert.Equal(t, 2, p.Page)
			return []domain.Trip{validTrip()}, 21, nil
		},
	}
	svc := service.NewTripService(trips, nil)

	got, total, err := svc.ListPaged(context.Background(), uuid.New(), domain.PaginationParams{Page: 2, Limit: 20})

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.EqualValues(t, 21, total)
}

func TestTripService_ListPaged_Empty(t *testing.T) {
	trips := &mockTripRepo{
		listPaged: func(_ context.Context, _ uuid.UUID, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
			return nil, 0, nil
		},
	}
	svc := service.NewTripService(trips, nil)

	got, _, err := svc.ListPaged(context.Background(), uuid.New(), domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	// Empty slice, not nil — callers can safely range over it.
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Delete tests ----------------------------------------------------------

func TestTripService_Delete_CollectsLocations(t *testing.T) {
	tripID := uuid.New()
	owner := uuid.New()
	pickupID, dropoffID := uuid.New(), uuid.New()

	var deletedTrip uuid.UUID
	var collected []uuid.UUID

	repos := repo.Repos{
		Trips: &mockTripRepo{
			delete: func(_ context.Context, id, ownerID uuid.UUID) error {
				assert.Equal(t, owner, ownerID)
				deletedTrip = id
				return nil
			},
		},
		TripDetails: &mockTripDetailRepo{
			getByTripID: func(_ context.Context, _ uuid.UUID) (domain.TripDetail, error) {
				return domain.TripDetail{
					TripID:  tripID,
					Pickup:  &domain.Location{ID: pickupID},
					Dropoff: &domain.Location{ID: dropoffID},
				}, nil
			},
		},
		Locations: &mockLocationRepo{
			deleteUnreferenced: func(_ context.Context, ids []uuid.UUID) error {
				collected = ids
				return nil
			},
		},
	}
	svc := service.NewTripService(repos.Trips, &fakeUnitOfWork{repos: repos})

	require.NoError(t, svc.Delete(context.Background(), owner, tripID))
	assert.Equal(t, tripID, deletedTrip)
	assert.ElementsMatch(t, []uuid.UUID{pickupID, dropoffID}, collected)
}

func TestTripService_Delete_NoDetail(t *testing.T) {
	repos := repo.Repos{
		Trips: &mockTripRepo{
			delete: func(_ context.Context, _, _ uuid.UUID) error { return nil },
		},
		TripDetails: &mockTripDetailRepo{
			getByTripID: func(_ context.Context, _ uuid.UUID) (domain.TripDetail, error) {
				return domain.TripDetail{}, domain.ErrNotFound
			},
		},
		Locations: &mockLocationRepo{
			deleteUnreferenced: func(_ context.Context, ids []uuid.UUID) error {
				assert.Empty(t, ids)
				return nil
			},
		},
	}
	svc := service.NewTripService(repos.Trips, &fakeUnitOfWork{repos: repos})

	// A trip without a detail deletes cleanly.
	assert.NoError(t, svc.Delete(context.Background(), uuid.New(), uuid.New()))
}

func TestTripService_Delete_NotOwned(t *testing.T) {
	repos := repo.Repos{
		Trips: &mockTripRepo{
			delete: func(_ context.Context, _, _ uuid.UUID) error { return domain.ErrNotFound },
		},
		TripDetails: &mockTripDetailRepo{
			getByTripID: func(_ context.Context, _ uuid.UUID) (domain.TripDetail, error) {
				return domain.TripDetail{}, domain.ErrNotFound
			},
		},
	}
	svc := service.NewTripService(repos.Trips, &fakeUnitOfWork{repos: repos})

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New(), uuid.New()), domain.ErrNotFound)
}
