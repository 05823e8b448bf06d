package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pkordes/driverlog/backend/internal/domain"
)

// ErrorDetail is the machine-readable error payload: a stable code, a
// human-readable message, and — for validation failures — a field→message map.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse wraps ErrorDetail under an "error" key.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates a domain error into the HTTP error contract:
// validation → 400 (with per-field messages when available), not found →
// 404, conflict → 409, auth → 401. Anything else is logged and surfaced
// as an opaque 500 — raw internal errors never reach the caller.
//
// resource names what was being looked up (e.g. "trip"), because the
// handler is the layer that knows.
func writeError(ctx context.Context, w http.ResponseWriter, err error, resource string) {
	var fields domain.FieldErrors
	switch {
	case errors.As(err, &fields):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{
			Code: "validation_error", Message: "invalid input", Fields: fields,
		}})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{
			Code: "validation_error", Message: err.Error(),
		}})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorDetail{
			Code: "not_found", Message: resource + " not found",
		}})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: ErrorDetail{
			Code: "conflict", Message: resource + " already exists",
		}})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorDetail{
			Code: "unauthorized", Message: "invalid credentials",
		}})
	default:
		slog.ErrorContext(ctx, "request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
			Code: "internal_error", Message: "internal server error",
		}})
	}
}

// writeRequestError rejects a request before it reaches the service layer
// (missing or malformed body).
func writeRequestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{
		Code: "validation_error", Message: message,
	}})
}

// decodeJSON decodes the request body into dst. Custom unmarshalers may
// return domain.FieldErrors, which callers pass to writeError to keep the
// field-keyed contract.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
