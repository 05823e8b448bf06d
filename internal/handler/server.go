// Package handler implements the HTTP handlers for the driver log API.
// Methods are split into domain-specific files (auth.go, trip.go, etc.) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/service"
)

// AuthServicer defines the account operations the auth handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type AuthServicer interface {
	Register(ctx context.Context, username, email, password string) (domain.User, error)
	Login(ctx context.Context, username, password string) (string, domain.User, error)
	Logout(ctx context.Context, token string) error
}

// TripServicer defines the business operations the trip handler depends on.
type TripServicer interface {
	Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

// TripDetailServicer defines the operations the trip detail handler depends on.
type TripDetailServicer interface {
	Create(ctx context.Context, userID, tripID uuid.UUID, in service.TripDetailInput) (domain.TripDetail, error)
	Get(ctx context.Context, userID, tripID uuid.UUID) (domain.TripDetail, error)
	Update(ctx context.Context, userID, tripID uuid.UUID, in service.TripDetailInput) (domain.TripDetail, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

// LogDetailServicer defines the operations the log detail handler depends on.
type LogDetailServicer interface {
	Create(ctx context.Context, userID, tripID uuid.UUID, detail domain.LogDetail) (domain.LogDetail, error)
	GetByID(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogDetail, error)
	ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.LogDetail, error)
	Update(ctx context.Context, userID uuid.UUID, detail domain.LogDetail) (domain.LogDetail, error)
	Delete(ctx context.Context, userID, logDetailID uuid.UUID) error
}

// LogBookServicer defines the log book and activity grid operations the
// log book handler depends on.
type LogBookServicer interface {
	CreateBook(ctx context.Context, userID, logDetailID uuid.UUID, book domain.LogBook) (domain.LogBook, error)
	GetBook(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogBook, error)
	UpdateBook(ctx context.Context, userID, logDetailID uuid.UUID, book domain.LogBook) (domain.LogBook, error)
	DeleteBook(ctx context.Context, userID, logDetailID uuid.UUID) error
	CreateEntry(ctx context.Context, userID, logDetailID uuid.UUID, slot int, activity, remark string) (domain.ActivityLog, error)
	ListEntries(ctx context.Context, userID, logDetailID uuid.UUID) ([]domain.ActivityLog, error)
	DeleteEntry(ctx context.Context, userID, logDetailID, entryID uuid.UUID) error
	Summary(ctx context.Context, userID, logDetailID uuid.UUID) (domain.LogSummary, error)
}

// Server holds the service dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	auth        AuthServicer
	trips       TripServicer
	tripDetails TripDetailServicer
	logDetails  LogDetailServicer
	logBooks    LogBookServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(auth AuthServicer, trips TripServicer, tripDetails TripDetailServicer, logDetails LogDetailServicer, logBooks LogBookServicer) *Server {
	return &Server{
		auth:        auth,
		trips:       trips,
		tripDetails: tripDetails,
		logDetails:  logDetails,
		logBooks:    logBooks,
	}
}

// Routes mounts all endpoints on a chi router. requireAuth guards every
// route except registration, login, and the health check.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.HealthCheck)
	r.Post("/auth/register", s.Register)
	r.Post("/auth/login", s.Login)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/auth/logout", s.Logout)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)
			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)

				r.Route("/detail", func(r chi.Router) {
					r.Post("/", s.CreateTripDetail)
					r.Get("/", s.GetTripDetail)
					r.Put("/", s.UpdateTripDetail)
					r.Delete("/", s.DeleteTripDetail)
				})

				r.Route("/log-details", func(r chi.Router) {
					r.Post("/", s.CreateLogDetail)
					r.Get("/", s.ListLogDetails)
				})
			})
		})

		r.Route("/log-details/{logDetailID}", func(r chi.Router) {
			r.Get("/", s.GetLogDetail)
			r.Put("/", s.UpdateLogDetail)
			r.Delete("/", s.DeleteLogDetail)

			r.Route("/log-book", func(r chi.Router) {
				r.Post("/", s.CreateLogBook)
				r.Get("/", s.GetLogBook)
				r.Put("/", s.UpdateLogBook)
				r.Delete("/", s.DeleteLogBook)

				r.Post("/activity-logs", s.CreateActivityLog)
				r.Get("/activity-logs", s.ListActivityLogs)
				r.Delete("/activity-logs/{activityLogID}", s.DeleteActivityLog)

				r.Get("/summary", s.GetLogSummary)
			})
		})
	})

	return r
}

// pathID extracts and parses a UUID path parameter. A malformed ID is
// treated the same as an unknown one so the error surface is a plain 404.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}
