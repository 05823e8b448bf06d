package handler_test

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/handler"
	"github.com/pkordes/driverlog/backend/internal/middleware"
	"github.com/pkordes/driverlog/backend/internal/service"
)

// Test doubles for the handler's servicer interfaces. Set only the method
// fields your test needs; an unset method panics, which immediately points
// at the missing stub.

type mockAuthServicer struct {
	register func(ctx context.Context, username, email, password string) (domain.User, error)
	login    func(ctx context.Context, username, password string) (string, domain.User, error)
	logout   func(ctx context.Context, token string) error
}

func (m *mockAuthServicer) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	return m.register(ctx, username, email, password)
}
func (m *mockAuthServicer) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	return m.login(ctx, username, password)
}
func (m *mockAuthServicer) Logout(ctx context.Context, token string) error {
	return m.logout(ctx, token)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

type mockTripServicer struct {
	create    func(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, userID, tripID uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, userID, trip)
}
func (m *mockTripServicer) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, tripID)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, userID, p)
}
func (m *mockTripServicer) Update(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, userID, trip)
}
func (m *mockTripServicer) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	return m.delete(ctx, userID, tripID)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockTripDetailServicer struct {
	create func(ctx context.Context, userID, tripID uuid.UUID, in service.TripDetailInput) (domain.TripDetail, error)
	get    func(ctx context.Context, userID, tripID uuid.UUID) (domain.TripDetail, error)
	update func(ctx context.Context, userID, tripID uuid.UUID, in service.TripDetailInput) (domain.TripDetail, error)
	delete func(ctx context.Context, userID, tripID uuid.UUID) error
}

func (m *mockTripDetailServicer) Create(ctx context.Context, userID, tripID uuid.UUID, in service.TripDetailInput) (domain.TripDetail, error) {
	return m.create(ctx, userID, tripID, in)
}
func (m *mockTripDetailServicer) Get(ctx context.Context, userID, tripID uuid.UUID) (domain.TripDetail, error) {
	return m.get(ctx, userID, tripID)
}
func (m *mockTripDetailServicer) Update(ctx context.Context, userID, tripID uuid.UUID, in service.TripDetailInput) (domain.TripDetail, error) {
	return m.update(ctx, userID, tripID, in)
}
func (m *mockTripDetailServicer) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	return m.delete(ctx, userID, tripID)
}

var _ handler.TripDetailServicer = (*mockTripDetailServicer)(nil)

type mockLogDetailServicer struct {
	create       func(ctx context.Context, userID, tripID uuid.UUID, detail domain.LogDetail) (domain.LogDetail, error)
	getByID      func(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogDetail, error)
	listByTripID func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.LogDetail, error)
	update       func(ctx context.Context, userID uuid.UUID, detail domain.LogDetail) (domain.LogDetail, error)
	delete       func(ctx context.Context, userID, logDetailID uuid.UUID) error
}

func (m *mockLogDetailServicer) Create(ctx context.Context, userID, tripID uuid.UUID, detail domain.LogDetail) (domain.LogDetail, error) {
	return m.create(ctx, userID, tripID, detail)
}
func (m *mockLogDetailServicer) GetByID(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogDetail, error) {
	return m.getByID(ctx, userID, logDetailID)
}
func (m *mockLogDetailServicer) ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.LogDetail, error) {
	return m.listByTripID(ctx, userID, tripID)
}
func (m *mockLogDetailServicer) Update(ctx context.Context, userID uuid.UUID, detail domain.LogDetail) (domain.LogDetail, error) {
	return m.update(ctx, userID, detail)
}
func (m *mockLogDetailServicer) Delete(ctx context.Context, userID, logDetailID uuid.UUID) error {
	return m.delete(ctx, userID, logDetailID)
}

var _ handler.LogDetailServicer = (*mockLogDetailServicer)(nil)

type mockLogBookServicer struct {
	createBook  func(ctx context.Context, userID, logDetailID uuid.UUID, book domain.LogBook) (domain.LogBook, error)
	getBook     func(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogBook, error)
	updateBook  func(ctx context.Context, userID, logDetailID uuid.UUID, book domain.LogBook) (domain.LogBook, error)
	deleteBook  func(ctx context.Context, userID, logDetailID uuid.UUID) error
	createEntry func(ctx context.Context, userID, logDetailID uuid.UUID, slot int, activity, remark string) (domain.ActivityLog, error)
	listEntries func(ctx context.Context, userID, logDetailID uuid.UUID) ([]domain.ActivityLog, error)
	deleteEntry func(ctx context.Context, userID, logDetailID, entryID uuid.UUID) error
	summary     func(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogSummary, error)
}

func (m *mockLogBookServicer) CreateBook(ctx context.Context, userID, logDetailID uuid.UUID, book domain.LogBook) (domain.LogBook, error) {
	return m.createBook(ctx, userID, logDetailID, book)
}
func (m *mockLogBookServicer) GetBook(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogBook, error) {
	return m.getBook(ctx, userID, logDetailID)
}
func (m *mockLogBookServicer) UpdateBook(ctx context.Context, userID, logDetailID uuid.UUID, book domain.LogBook) (domain.LogBook, error) {
	return m.updateBook(ctx, userID, logDetailID, book)
}
func (m *mockLogBookServicer) DeleteBook(ctx context.Context, userID, logDetailID uuid.UUID) error {
	return m.deleteBook(ctx, userID, logDetailID)
}
func (m *mockLogBookServicer) CreateEntry(ctx context.Context, userID, logDetailID uuid.UUID, slot int, activity, remark string) (domain.ActivityLog, error) {
	return m.createEntry(ctx, userID, logDetailID, slot, activity, remark)
}
func (m *mockLogBookServicer) ListEntries(ctx context.Context, userID, logDetailID uuid.UUID) ([]domain.ActivityLog, error) {
	return m.listEntries(ctx, userID, logDetailID)
}
func (m *mockLogBookServicer) DeleteEntry(ctx context.Context, userID, logDetailID, entryID uuid.UUID) error {
	return m.deleteEntry(ctx, userID, logDetailID, entryID)
}
func (m *mockLogBookServicer) Summary(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogSummary, error) {
	return m.summary(ctx, userID, logDetailID)
}

var _ handler.LogBookServicer = (*mockLogBookServicer)(nil)

// ---- harness ---------------------------------------------------------------

// testUser is the user every authenticated test request acts as.
var testUser = domain.User{ID: uuid.MustParse("7f8b0d3e-1c2a-4b5d-9e6f-0a1b2c3d4e5f"), Username: "ada"}

// testToken is the only bearer token stubAuth accepts.
const testToken = "test-token"

type stubAuth struct{}

func (stubAuth) Authenticate(_ context.Context, token string) (domain.User, error) {
	if token != testToken {
		return domain.User{}, domain.ErrUnauthorized
	}
	return testUser, nil
}

// serverOverrides lets each test plug in just the servicers it exercises.
type serverOverrides struct {
	auth        handler.AuthServicer
	trips       handler.TripServicer
	tripDetails handler.TripDetailServicer
	logDetails  handler.LogDetailServicer
	logBooks    handler.LogBookServicer
}

// newHTTPHandler wires a Server with the given mocks into a chi router
// behind the real bearer-auth middleware. This mirrors how main.go wires
// it in production.
func newHTTPHandler(o serverOverrides) http.Handler {
	srv := handler.NewServer(o.auth, o.trips, o.tripDetails, o.logDetails, o.logBooks)
	return srv.Routes(middleware.NewBearerAuth(stubAuth{}))
}

// authed adds the test bearer token to a request.
func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}
