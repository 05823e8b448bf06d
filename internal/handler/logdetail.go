package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/middleware"
)

// LogDetailRequest is the create/update body for a daily log detail.
type LogDetailRequest struct {
	StartDate              string `json:"start_date"`
	TotalMilesDriven       int    `json:"total_miles_driven"`
	NameOfCarrier          string `json:"name_of_carrier"`
	MainOfficeAddress      string `json:"main_office_address"`
	NameOfCodriver         string `json:"name_of_codriver"`
	ShippingDocumentNumber string `json:"shipping_document_number"`
}

// LogDetailResponse is the wire representation of a log detail.
type LogDetailResponse struct {
	ID                     uuid.UUID `json:"id"`
	TripID                 uuid.UUID `json:"trip_id"`
	StartDate              string    `json:"start_date"`
	TotalMilesDriven       int       `json:"total_miles_driven"`
	NameOfCarrier          string    `json:"name_of_carrier"`
	MainOfficeAddress      string    `json:"main_office_address"`
	NameOfCodriver         string    `json:"name_of_codriver,omitempty"`
	ShippingDocumentNumber string    `json:"shipping_document_number"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// CreateLogDetail handles POST /trips/{tripID}/log-details.
func (s *Server) CreateLogDetail(w http.ResponseWriter, r *http.Request) {
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

	detail, err := decodeLogDetail(r)
	if err != nil {
		writeError(r.Context(), w, err, "log detail")
		return
	}

	created, err := s.logDetails.Create(r.Context(), user.ID, tripID, detail)
	if err != nil {
		writeError(r.Context(), w, err, "log detail")
		return
	}

	writeJSON(w, http.StatusCreated, logDetailToResponse(created))
}

// ListLogDetails handles GET /trips/{tripID}/log-details.
func (s *Server) ListLogDetails(w http.ResponseWriter, r *http.Request) {
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

	details, err := s.logDetails.ListByTripID(r.Context(), user.ID, tripID)
	if err != nil {
		writeError(r.Context(), w, err, "log detail")
		return
	}

	data := make([]LogDetailResponse, len(details))
	for i, d := range details {
		data[i] = logDetailToResponse(d)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetLogDetail handles GET /log-details/{logDetailID}.
func (s *Server) GetLogDetail(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	logDetailID, err := pathID(r, "logDetailID")
	if err != nil {
		writeError(r.Context(), w, err, "log detail")
		return
	}

	detail, err := s.logDetails.GetByID(r.Context(), user.ID, logDetailID)
	if err != nil {
		writeError(r.Context(), w, err, "log detail")
		return
	}

	writeJSON(w, http.StatusOK, logDetailToResponse(detail))
}

// UpdateLogDetail handles PUT /log-details/{logDetailID}.
func (s *Server) UpdateLogDetail(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	logDetailID, err := pathID(r, "logDetailID")
	if err != nil {
		writeError(r.Context(), w, err, "log detail")
		return
	}

	detail, err := decodeLogDetail(r)
	if err != nil {
		writeError(r.Context(), w, err, "log detail")
		return
	}
	detail.ID = logDetailID

	updated, err := s.logDetails.Update(r.Context(), user.ID, detail)
	if err != nil {
		writeError(r.Context(), w, err, "log detail")
		return
	}

	writeJSON(w, http.StatusOK, logDetailToResponse(updated))
}

// DeleteLogDetail handles DELETE /log-details/{logDetailID}.
func (s *Server) DeleteLogDetail(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	logDetailID, err := pathID(r, "logDetailID")
	if err != nil {
		writeError(r.Context(), w, err, "log detail")
		return
	}

	if err := s.logDetails.Delete(r.Context(), user.ID, logDetailID); err != nil {
		writeError(r.Context(), w, err, "log detail")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func decodeLogDetail(r *http.Request) (domain.LogDetail, error) {
	var req LogDetailRequest
	if err := decodeJSON(r, &req); err != nil {
		return domain.LogDetail{}, domain.FieldErrors{"body": "invalid request body"}
	}

	fields := domain.FieldErrors{}
	d := domain.LogDetail{
		StartDate:              parseDate(fields, "start_date", req.StartDate),
		TotalMilesDriven:       req.TotalMilesDriven,
		NameOfCarrier:          req.NameOfCarrier,
		MainOfficeAddress:      req.MainOfficeAddress,
		NameOfCodriver:         req.NameOfCodriver,
		ShippingDocumentNumber: req.ShippingDocumentNumber,
	}
	if len(fields) > 0 {
		return domain.LogDetail{}, fields
	}
	return d, nil
}

func logDetailToResponse(d domain.LogDetail) LogDetailResponse {
	return LogDetailResponse{
		ID:                     d.ID,
		TripID:                 d.TripID,
		StartDate:              formatDate(d.StartDate),
		TotalMilesDriven:       d.TotalMilesDriven,
		NameOfCarrier:          d.NameOfCarrier,
		MainOfficeAddress:      d.MainOfficeAddress,
		NameOfCodriver:         d.NameOfCodriver,
		ShippingDocumentNumber: d.ShippingDocumentNumber,
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}
}
