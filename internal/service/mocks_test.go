package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field — set only the ones your test needs; an unset method
// panics, which immediately points at the missing stub. They are shared by
// all service tests in this package, so they live in one file.

type mockUserRepo struct {
	create        func(ctx context.Context, user domain.User) (domain.User, error)
	getByUsername func(ctx context.Context, username string) (domain.User, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return m.getByUsername(ctx, username)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockTokenRepo struct {
	create  func(ctx context.Context, token domain.AuthToken) error
	getUser func(ctx context.Context, token string) (domain.User, error)
	delete  func(ctx context.Context, token string) error
}

func (m *mockTokenRepo) Create(ctx context.Context, token domain.AuthToken) error {
	return m.create(ctx, token)
}
func (m *mockTokenRepo) GetUser(ctx context.Context, token string) (domain.User, error) {
	return m.getUser(ctx, token)
}
func (m *mockTokenRepo) Delete(ctx context.Context, token string) error {
	return m.delete(ctx, token)
}

var _ repo.TokenRepo = (*mockTokenRepo)(nil)

type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip, ownerID uuid.UUID) (domain.Trip, error)
	getByID   func(ctx context.Context, id, ownerID uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip, ownerID uuid.UUID) (domain.Trip, error)
	delete    func(ctx context.Context, id, ownerID uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip, ownerID uuid.UUID) (domain.Trip, error) {
	return m.create(ctx, trip, ownerID)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id, ownerID)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, ownerID, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip, ownerID uuid.UUID) (domain.Trip, error) {
	return m.update(ctx, trip, ownerID)
}
func (m *mockTripRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.delete(ctx, id, ownerID)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockTripDetailRepo struct {
	create         func(ctx context.Context, detail domain.TripDetail) (domain.TripDetail, error)
	getByTripID    func(ctx context.Context, tripID uuid.UUID) (domain.TripDetail, error)
	update         func(ctx context.Context, detail domain.TripDetail) (domain.TripDetail, error)
	deleteByTripID func(ctx context.Context, tripID uuid.UUID) error
}

func (m *mockTripDetailRepo) Create(ctx context.Context, detail domain.TripDetail) (domain.TripDetail, error) {
	return m.create(ctx, detail)
}
func (m *mockTripDetailRepo) GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.TripDetail, error) {
	return m.getByTripID(ctx, tripID)
}
func (m *mockTripDetailRepo) Update(ctx context.Context, detail domain.TripDetail) (domain.TripDetail, error) {
	return m.update(ctx, detail)
}
func (m *mockTripDetailRepo) DeleteByTripID(ctx context.Context, tripID uuid.UUID) error {
	return m.deleteByTripID(ctx, tripID)
}

var _ repo.TripDetailRepo = (*mockTripDetailRepo)(nil)

type mockLocationRepo struct {
	resolve            func(ctx context.Context, in domain.LocationInput) (domain.Location, error)
	getByID            func(ctx context.Context, id uuid.UUID) (domain.Location, error)
	deleteUnreferenced func(ctx context.Context, ids []uuid.UUID) error
}

func (m *mockLocationRepo) Resolve(ctx context.Context, in domain.LocationInput) (domain.Location, error) {
	return m.resolve(ctx, in)
}
func (m *mockLocationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Location, error) {
	return m.getByID(ctx, id)
}
func (m *mockLocationRepo) DeleteUnreferenced(ctx context.Context, ids []uuid.UUID) error {
	return m.deleteUnreferenced(ctx, ids)
}

var _ repo.LocationRepo = (*mockLocationRepo)(nil)

type mockLogDetailRepo struct {
	create       func(ctx context.Context, detail domain.LogDetail) (domain.LogDetail, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.LogDetail, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.LogDetail, error)
	update       func(ctx context.Context, detail domain.LogDetail) (domain.LogDetail, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockLogDetailRepo) Create(ctx context.Context, detail domain.LogDetail) (domain.LogDetail, error) {
	return m.create(ctx, detail)
}
func (m *mockLogDetailRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.LogDetail, error) {
	return m.getByID(ctx, id)
}
func (m *mockLogDetailRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.LogDetail, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockLogDetailRepo) Update(ctx context.Context, detail domain.LogDetail) (domain.LogDetail, error) {
	return m.update(ctx, detail)
}
func (m *mockLogDetailRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.LogDetailRepo = (*mockLogDetailRepo)(nil)

type mockLogBookRepo struct {
	create              func(ctx context.Context, book domain.LogBook) (domain.LogBook, error)
	getByLogDetailID    func(ctx context.Context, logDetailID uuid.UUID) (domain.LogBook, error)
	update              func(ctx context.Context, book domain.LogBook) (domain.LogBook, error)
	deleteByLogDetailID func(ctx context.Context, logDetailID uuid.UUID) error
}

func (m *mockLogBookRepo) Create(ctx context.Context, book domain.LogBook) (domain.LogBook, error) {
	return m.create(ctx, book)
}
func (m *mockLogBookRepo) GetByLogDetailID(ctx context.Context, logDetailID uuid.UUID) (domain.LogBook, error) {
	return m.getByLogDetailID(ctx, logDetailID)
}
func (m *mockLogBookRepo) Update(ctx context.Context, book domain.LogBook) (domain.LogBook, error) {
	return m.update(ctx, book)
}
func (m *mockLogBookRepo) DeleteByLogDetailID(ctx context.Context, logDetailID uuid.UUID) error {
	return m.deleteByLogDetailID(ctx, logDetailID)
}

var _ repo.LogBookRepo = (*mockLogBookRepo)(nil)

type mockActivityLogRepo struct {
	create          func(ctx context.Context, entry domain.ActivityLog) (domain.ActivityLog, error)
	delete          func(ctx context.Context, logBookID, entryID uuid.UUID) error
	listByLogBookID func(ctx context.Context, logBookID uuid.UUID) ([]domain.ActivityLog, error)
}

func (m *mockActivityLogRepo) Create(ctx context.Context, entry domain.ActivityLog) (domain.ActivityLog, error) {
	return m.create(ctx, entry)
}
func (m *mockActivityLogRepo) Delete(ctx context.Context, logBookID, entryID uuid.UUID) error {
	return m.delete(ctx, logBookID, entryID)
}
func (m *mockActivityLogRepo) ListByLogBookID(ctx context.Context, logBookID uuid.UUID) ([]domain.ActivityLog, error) {
	return m.listByLogBookID(ctx, logBookID)
}

var _ repo.ActivityLogRepo = (*mockActivityLogRepo)(nil)

// fakeUnitOfWork runs the callback immediately against the supplied repos.
// Transactional boundaries are exercised by the repo integration tests;
// here the unit of work is just function application.
type fakeUnitOfWork struct {
	repos repo.Repos
}

func (f *fakeUnitOfWork) Do(_ context.Context, fn func(r repo.Repos) error) error {
	return fn(f.repos)
}

var _ repo.UnitOfWork = (*fakeUnitOfWork)(nil)
