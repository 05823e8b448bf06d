package repo_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/repo"
	"github.com/pkordes/driverlog/backend/testutil"
)

// testRepos bundles every repo, all backed by one transaction that is
// rolled back when the test finishes — free per-test isolation, no cleanup
// SQL needed.
type testRepos struct {
	users      repo.UserRepo
	tokens     repo.TokenRepo
	trips      repo.TripRepo
	details    repo.TripDetailRepo
	locations  repo.LocationRepo
	logDetails repo.LogDetailRepo
	books      repo.LogBookRepo
	entries    repo.ActivityLogRepo
}

// newTestRepos opens a transaction against the test database and returns
// repos backed by it. Requires TEST_DATABASE_URL to be set; migrations are
// applied by TestMain.
func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return testRepos{
		users:      repo.NewUserRepo(tx),
		tokens:     repo.NewTokenRepo(tx),
		trips:      repo.NewTripRepo(tx),
		details:    repo.NewTripDetailRepo(tx),
		locations:  repo.NewLocationRepo(tx),
		logDetails: repo.NewLogDetailRepo(tx),
		books:      repo.NewLogBookRepo(tx),
		entries:    repo.NewActivityLogRepo(tx),
	}
}

// createUser inserts a user with a unique username and email.
func createUser(t *testing.T, r testRepos) domain.User {
	t.Helper()
	suffix := uuid.NewString()[:8]
	user, err := r.users.Create(context.Background(), domain.User{
		Username:     "driver-" + suffix,
		Email:        "driver-" + suffix + "@example.com",
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhash",
	})
	require.NoError(t, err, "create user fixture")
	return user
}

// createTrip inserts a trip owned by ownerID.
func createTrip(t *testing.T, r testRepos, ownerID uuid.UUID) domain.Trip {
	t.Helper()
	trip, err := r.trips.Create(context.Background(), domain.Trip{
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		FromPlace: "Boston, MA",
		ToPlace:   "Chicago, IL",
	}, ownerID)
	require.NoError(t, err, "create trip fixture")
	return trip
}

// createLogDetail inserts a log detail under tripID.
func createLogDetail(t *testing.T, r testRepos, tripID uuid.UUID) domain.LogDetail {
	t.Helper()
	detail, err := r.logDetails.Create(context.Background(), domain.LogDetail{
		TripID:                 tripID,
		StartDate:              time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
		TotalMilesDriven:       500,
		NameOfCarrier:          "Acme Freight",
		MainOfficeAddress:      "1 Depot Way",
		ShippingDocumentNumber: "BOL-4711",
	})
	require.NoError(t, err, "create log detail fixture")
	return detail
}

// createLogBook inserts a log book with a random date so concurrent test
// packages sharing the database cannot trip the global date uniqueness.
func createLogBook(t *testing.T, r testRepos, logDetailID uuid.UUID) domain.LogBook {
	t.Helper()
	book, err := r.books.Create(context.Background(), domain.LogBook{
		LogDetailID: logDetailID,
		Date:        randomDate(),
	})
	require.NoError(t, err, "create log book fixture")
	return book
}

// randomDate picks a day in a ten-thousand-year window.
func randomDate() time.Time {
	base := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, rand.Intn(3_650_000))
}
