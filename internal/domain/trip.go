// Package domain contains the core data types for the driver log backend.
// This package has no dependency on the storage or HTTP layers and is
// imported by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single multi-day journey record.
// A trip is the top-level aggregate; trip details, log details, log books,
// and activity logs all hang off a trip. A trip always has at least one
// owner — the creating user is attached at creation time.
type Trip struct {
	ID        uuid.UUID `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	FromPlace string    `json:"from_place"`
	ToPlace   string    `json:"to_place"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
