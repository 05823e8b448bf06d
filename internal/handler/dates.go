package handler

import (
	"time"

	"github.com/pkordes/driverlog/backend/internal/domain"
)

// dateLayout is the wire format for calendar dates. Timestamps stay RFC 3339.
const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD field, recording a failure under key.
// An empty value is left to the service layer's required-field checks.
func parseDate(fields domain.FieldErrors, key, raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		fields[key] = "must be a date in YYYY-MM-DD format"
		return time.Time{}
	}
	return t
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
