package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/middleware"
)

// LogBookRequest is the create/update body for a log book.
type LogBookRequest struct {
	Date string `json:"date"`
}

// LogBookResponse is the wire representation of a log book.
type LogBookResponse struct {
	ID          uuid.UUID `json:"id"`
	LogDetailID uuid.UUID `json:"log_detail_id"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ActivityLogRequest is the POST body for a grid entry.
type ActivityLogRequest struct {
	XDatapoint int    `json:"x_datapoint"`
	Activity   string `json:"activity"`
	Remark     string `json:"remark"`
}

// LogSummaryResponse is the aggregated daily log payload.
type LogSummaryResponse struct {
	Date                   string                  `json:"date"`
	NameOfCarrier          string                  `json:"name_of_carrier"`
	MainOfficeAddress      string                  `json:"main_office_address"`
	NameOfCodriver         string                  `json:"name_of_codriver,omitempty"`
	ShippingDocumentNumber string                  `json:"shipping_document_number"`
	TotalMilesDriven       int                     `json:"total_miles_driven"`
	Minutes                map[domain.Activity]int `json:"minutes"`
	Entries                []domain.SummaryEntry   `json:"entries"`
}

// CreateLogBook handles POST /log-details/{logDetailID}/log-book.
func (s *Server) CreateLogBook(w http.ResponseWriter, r *http.Request) {
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

	book, err := decodeLogBook(r)
	if err != nil {
		writeError(r.Context(), w, err, "log book")
		return
	}

	created, err := s.logBooks.CreateBook(r.Context(), user.ID, logDetailID, book)
	if err != nil {
		writeError(r.Context(), w, err, "log book")
		return
	}

	writeJSON(w, http.StatusCreated, logBookToResponse(created))
}

// GetLogBook handles GET /log-details/{logDetailID}/log-book.
func (s *Server) GetLogBook(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	logDetailID, err := pathID(r, "logDetailID")
	if err != nil {
		writeError(r.Context(), w, err, "log book")
		return
	}

	book, err := s.logBooks.GetBook(r.Context(), user.ID, logDetailID)
	if err != nil {
		writeError(r.Context(), w, err, "log book")
		return
	}

	writeJSON(w, http.StatusOK, logBookToResponse(book))
}

// UpdateLogBook handles PUT /log-details/{logDetailID}/log-book.
func (s *Server) UpdateLogBook(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	logDetailID, err := pathID(r, "logDetailID")
	if err != nil {
		writeError(r.Context(), w, err, "log book")
		return
	}

	book, err := decodeLogBook(r)
	if err != nil {
		writeError(r.Context(), w, err, "log book")
		return
	}

	updated, err := s.logBooks.UpdateBook(r.Context(), user.ID, logDetailID, book)
	if err != nil {
		writeError(r.Context(), w, err, "log book")
		return
	}

	writeJSON(w, http.StatusOK, logBookToResponse(updated))
}

// DeleteLogBook handles DELETE /log-details/{logDetailID}/log-book.
// Grid entries go with it.
func (s *Server) DeleteLogBook(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	logDetailID, err := pathID(r, "logDetailID")
	if err != nil {
		writeError(r.Context(), w, err, "log book")
		return
	}

	if err := s.logBooks.DeleteBook(r.Context(), user.ID, logDetailID); err != nil {
		writeError(r.Context(), w, err, "log book")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateActivityLog handles POST /log-details/{logDetailID}/log-book/activity-logs.
func (s *Server) CreateActivityLog(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	logDetailID, err := pathID(r, "logDetailID")
	if err != nil {
		writeError(r.Context(), w, err, "log book")
		return
	}

	var req ActivityLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, "invalid request body")
		return
	}

	entry, err := s.logBooks.CreateEntry(r.Context(), user.ID, logDetailID, req.XDatapoint, req.Activity, req.Remark)
	if err != nil {
		writeError(r.Context(), w, err, "activity log")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// ListActivityLogs handles GET /log-details/{logDetailID}/log-book/activity-logs.
// Entries come back ordered by slot.
func (s *Server) ListActivityLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	logDetailID, err := pathID(r, "logDetailID")
	if err != nil {
		writeError(r.Context(), w, err, "log book")
		return
	}

	entries, err := s.logBooks.ListEntries(r.Context(), user.ID, logDetailID)
	if err != nil {
		writeError(r.Context(), w, err, "activity log")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// DeleteActivityLog handles DELETE /log-details/{logDetailID}/log-book/activity-logs/{activityLogID}.
func (s *Server) DeleteActivityLog(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	logDetailID, err := pathID(r, "logDetailID")
	if err != nil {
		writeError(r.Context(), w, err, "log book")
		return
	}

	entryID, err := pathID(r, "activityLogID")
	if err != nil {
		writeError(r.Context(), w, err, "activity log")
		return
	}

	if err := s.logBooks.DeleteEntry(r.Context(), user.ID, logDetailID, entryID); err != nil {
		writeError(r.Context(), w, err, "activity log")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetLogSummary handles GET /log-details/{logDetailID}/log-book/summary.
func (s *Server) GetLogSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "user")
		return
	}

	logDetailID, err := pathID(r, "logDetailID")
	if err != nil {
		writeError(r.Context(), w, err, "log book")
		return
	}

	summary, err := s.logBooks.Summary(r.Context(), user.ID, logDetailID)
	if err != nil {
		writeError(r.Context(), w, err, "log book")
		return
	}

	writeJSON(w, http.StatusOK, summaryToResponse(summary))
}

// --- mapping helpers --------------------------------------------------------

func decodeLogBook(r *http.Request) (domain.LogBook, error) {
	var req LogBookRequest
	if err := decodeJSON(r, &req); err != nil {
		return domain.LogBook{}, domain.FieldErrors{"body": "invalid request body"}
	}

	fields := domain.FieldErrors{}
	b := domain.LogBook{Date: parseDate(fields, "date", req.Date)}
	if len(fields) > 0 {
		return domain.LogBook{}, fields
	}
	return b, nil
}

func logBookToResponse(b domain.LogBook) LogBookResponse {
	return LogBookResponse{
		ID:          b.ID,
		LogDetailID: b.LogDetailID,
		Date:        formatDate(b.Date),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func summaryToResponse(s domain.LogSummary) LogSummaryResponse {
	return LogSummaryResponse{
		Date:                   formatDate(s.Date),
		NameOfCarrier:          s.NameOfCarrier,
		MainOfficeAddress:      s.MainOfficeAddress,
		NameOfCodriver:         s.NameOfCodriver,
		ShippingDocumentNumber: s.ShippingDocumentNumber,
		TotalMilesDriven:       s.TotalMilesDriven,
		Minutes:                s.Minutes,
		Entries:                s.Entries,
	}
}
