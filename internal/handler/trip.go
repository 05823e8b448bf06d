package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/middleware"
)

// TripRequest is the create/update body for a trip. Dates travel as
// YYYY-MM-DD strings.
type TripRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	FromPlace string `json:"from_place"`
	ToPlace   string `json:"to_place"`
}

// TripResponse is the wire representation of a trip.
type TripResponse struct {
	ID        uuid.UUID `json:"id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	FromPlace string    `json:"from_place"`
	ToPlace   string    `json:"to_place"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pagination echoes the paging parameters alongside the total row count.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripListResponse is the GET /trips payload.
type TripListResponse struct {
	Data       []TripResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	trip, err := decodeTrip(r)
	if err != nil {
		writeError(r.Context(), w, err, "trip")
		return
	}

	created, err := s.trips.Create(r.Context(), user.ID, trip)
	if err != nil {
		writeError(r.Context(), w, err, "trip")
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	trips, total, err := s.trips.ListPaged(r.Context(), user.ID, params)
	if err != nil {
		writeError(r.Context(), w, err, "trip")
		return
	}

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripListResponse{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	tripID, err := pathID(r, "tripID")
	if err != nil {
		writeError(r.Context(), w, err, "trip")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), user.ID, tripID)
	if err != nil {
		writeError(r.Context(), w, err, "trip")
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	tripID, err := pathID(r, "tripID")
	if err != nil {
		writeError(r.Context(), w, err, "trip")
		return
	}

	trip, err := decodeTrip(r)
	if err != nil {
		writeError(r.Context(), w, err, "trip")
		return
	}
	trip.ID = tripID

	updated, err := s.trips.Update(r.Context(), user.ID, trip)
	if err != nil {
		writeError(r.Context(), w, err, "trip")
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	tripID, err := pathID(r, "tripID")
	if err != nil {
		writeError(r.Context(), w, err, "trip")
		return
	}

	if err := s.trips.Delete(r.Context(), user.ID, tripID); err != nil {
		writeError(r.Context(), w, err, "trip")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// decodeTrip converts a TripRequest body into a domain.Trip. Date parse
// failures surface as field-keyed validation errors.
func decodeTrip(r *http.Request) (domain.Trip, error) {
	var req TripRequest
	if err := decodeJSON(r, &req); err != nil {
		return domain.Trip{}, domain.FieldErrors{"body": "invalid request body"}
	}

	fields := domain.FieldErrors{}
	t := domain.Trip{
		StartDate: parseDate(fields, "start_date", req.StartDate),
		EndDate:   parseDate(fields, "end_date", req.EndDate),
		FromPlace: req.FromPlace,
		ToPlace:   req.ToPlace,
	}
	if len(fields) > 0 {
		return domain.Trip{}, fields
	}
	return t, nil
}

// tripToResponse converts a domain.Trip into its wire representation.
func tripToResponse(t domain.Trip) TripResponse {
	return TripResponse{
		ID:        t.ID,
		StartDate: formatDate(t.StartDate),
		EndDate:   formatDate(t.EndDate),
		FromPlace: t.FromPlace,
		ToPlace:   t.ToPlace,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// queryInt parses an optional integer query parameter, nil when absent or
// malformed so pagination falls back to its defaults.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
