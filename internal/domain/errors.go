package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist — or exists but is not owned by the acting user.
// Ownership failures deliberately map to ErrNotFound so non-owners cannot
// probe for resource existence. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. slot outside the grid, malformed location string).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when an insert collides with a uniqueness
// constraint (duplicate trip detail, duplicate log book date).
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned on bad credentials or a missing, expired, or
// revoked token. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// FieldErrors carries per-field validation messages so the API can surface
// a field→message mapping to callers. It satisfies errors.Is against
// ErrValidation, so callers can check either the concrete type or the sentinel.
type FieldErrors map[string]string

// Error renders fields in a stable order so log lines are deterministic.
func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, f[k]))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// Is reports whether target is ErrValidation, letting
// errors.Is(err, ErrValidation) succeed for wrapped FieldErrors.
func (f FieldErrors) Is(target error) bool {
	return target == ErrValidation
}
