package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"github.com/pkordes/driverlog/backend/internal/domain"
)

// resolveLocation is a shorthand for creating a location fixture.
func resolveLocation(t *testing.T, r testRepos, lat, lng float64) domain.Location {
	t.Helper()
	loc, err := r.locations.Resolve(context.Background(), domain.LocationInput{Latitude: lat, Longitude: lng})
	require.NoError(t, err, "resolve location fixture")
	return loc
}

func TestTripDetailRepo_Create(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	owner := createUser(t, r)
	trip := createTrip(t, r, owner.ID)
	pickup := resolveLocation(t, r, 42.36, -71.05)
	dropoff := resolveLocation(t, r, 41.88, -87.62)

	got, err := r.details.Create(ctx, domain.TripDetail{
		TripID:  trip.ID,
		Pickup:  &pickup,
		Dropoff: &dropoff,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.UUID{}, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, trip.ID, got.TripID)
	require.NotNil(t, got.Pickup, "pickup should be hydrated")
	assert.Equal(t, pickup.ID, got.Pickup.ID)
	assert.Equal(t, pickup.Latitude, got.Pickup.Latitude)
	require.NotNil(t, got.Dropoff, "dropoff should be hydrated")
	assert.Equal(t, dropoff.ID, got.Dropoff.ID)
	assert.Nil(t, got.Current, "current location was not provided")
}

func TestTripDetailRepo_Create_Duplicate(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	owner := createUser(t, r)
	trip := createTrip(t, r, owner.ID)
	pickup := resolveLocation(t, r, 1, 2)

	_, err := r.details.Create(ctx, domain.TripDetail{TripID: trip.ID, Pickup: &pickup})
	require.NoError(t, err)

	// One detail per trip.
	_, err = r.details.Create(ctx, domain.TripDetail{TripID: trip.ID, Pickup: &pickup})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTripDetailRepo_GetByTripID(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	owner := createUser(t, r)
	trip := createTrip(t, r, owner.ID)
	pickup := resolveLocation(t, r, 3, 4)
	current := resolveLocation(t, r, 5, 6)

	created, err := r.details.Create(ctx, domain.TripDetail{
		TripID:  trip.ID,
		Pickup:  &pickup,
		Current: &current,
	})
	require.NoError(t, err)

	got, err := r.details.GetByTripID(ctx, trip.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.Pickup)
	assert.Equal(t, pickup.ID, got.Pickup.ID)
	require.NotNil(t, got.Current)
	assert.Equal(t, current.ID, got.Current.ID)
	assert.Nil(t, got.Dropoff)
}

func TestTripDetailRepo_GetByTripID_NotFound(t *testing.T) {
	r := newTestRepos(t)

	_, err := r.details.GetByTripID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripDetailRepo_Update(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	owner := createUser(t, r)
	trip := createTrip(t, r, owner.ID)
	pickup := resolveLocation(t, r, 7, 8)
	_, err := r.details.Create(ctx, domain.TripDetail{TripID: trip.ID, Pickup: &pickup})
	require.NoError(t, err)

	replacement := resolveLocation(t, r, 9, 10)
	got, err := r.details.Update(ctx, domain.TripDetail{
		TripID: trip.ID,
		Pickup: &replacement,
	})

	require.NoError(t, err)
	require.NotNil(t, got.Pickup)
	assert.Equal(t, replacement.ID, got.Pickup.ID)
	assert.Nil(t, got.Dropoff, "update overwrites all three roles")
}

func TestTripDetailRepo_DeleteByTripID(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	owner := createUser(t, r)
	trip := createTrip(t, r, owner.ID)
	pickup := resolveLocation(t, r, 11, 12)
	_, err := r.details.Create(ctx, domain.TripDetail{TripID: trip.ID, Pickup: &pickup})
	require.NoError(t, err)

	require.NoError(t, r.details.DeleteByTripID(ctx, trip.ID))

	_, err = r.details.GetByTripID(ctx, trip.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Location rows are left behind for the caller to garbage-collect.
	_, err = r.locations.GetByID(ctx, pickup.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, r.details.DeleteByTripID(ctx, trip.ID), domain.ErrNotFound)
}
