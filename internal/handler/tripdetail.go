package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/middleware"
	"github.com/pkordes/driverlog/backend/internal/service"
)

// TripDetailRequest is the create/update body for a trip's detail.
// Each location accepts either a "lat,lng" string or a structured object.
type TripDetailRequest struct {
	Pickup  *domain.LocationInput `json:"pickup_location"`
	Dropoff *domain.LocationInput `json:"dropoff_location"`
	Current *domain.LocationInput `json:"current_location"`
}

// CreateTripDetail handles POST /trips/{tripID}/detail.
func (s *Server) CreateTripDetail(w http.ResponseWriter, r *http.Request) {
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

	in, err := decodeTripDetail(r)
	if err != nil {
		writeError(r.Context(), w, err, "trip detail")
		return
	}

	detail, err := s.tripDetails.Create(r.Context(), user.ID, tripID, in)
	if err != nil {
		writeError(r.Context(), w, err, "trip detail")
		return
	}

	writeJSON(w, http.StatusCreated, detail)
}

// GetTripDetail handles GET /trips/{tripID}/detail.
func (s *Server) GetTripDetail(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	tripID, err := pathID(r, "tripID")
	if err != nil {
		writeError(r.Context(), w, err, "trip detail")
		return
	}

	detail, err := s.tripDetails.Get(r.Context(), user.ID, tripID)
	if err != nil {
		writeError(r.Context(), w, err, "trip detail")
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// UpdateTripDetail handles PUT /trips/{tripID}/detail.
// Omitted locations keep their current value.
func (s *Server) UpdateTripDetail(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	tripID, err := pathID(r, "tripID")
	if err != nil {
		writeError(r.Context(), w, err, "trip detail")
		return
	}

	in, err := decodeTripDetail(r)
	if err != nil {
		writeError(r.Context(), w, err, "trip detail")
		return
	}

	detail, err := s.tripDetails.Update(r.Context(), user.ID, tripID, in)
	if err != nil {
		writeError(r.Context(), w, err, "trip detail")
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// DeleteTripDetail handles DELETE /trips/{tripID}/detail.
func (s *Server) DeleteTripDetail(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	tripID, err := pathID(r, "tripID")
	if err != nil {
		writeError(r.Context(), w, err, "trip detail")
		return
	}

	if err := s.tripDetails.Delete(r.Context(), user.ID, tripID); err != nil {
		writeError(r.Context(), w, err, "trip detail")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func decodeTripDetail(r *http.Request) (service.TripDetailInput, error) {
	var req TripDetailRequest
	if err := decodeJSON(r, &req); err != nil {
		var fields domain.FieldErrors
		if errors.As(err, &fields) {
			return service.TripDetailInput{}, fields
		}
		return service.TripDetailInput{}, domain.FieldErrors{"body": "invalid request body"}
	}
	return service.TripDetailInput{
		Pickup:  req.Pickup,
		Dropoff: req.Dropoff,
		Current: req.Current,
	}, nil
}
