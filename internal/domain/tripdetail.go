package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripDetail holds the geospatial waypoints for a trip: pickup, dropoff,
// and current location. Exactly one trip detail may exist per trip.
// Pickup and Dropoff are required at creation time; Current is optional.
// All three are nullable at the storage level, so reads use pointers.
type TripDetail struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Pickup    *Location `json:"pickup_location,omitempty"`
	Dropoff   *Location `json:"dropoff_location,omitempty"`
	Current   *Location `json:"current_location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationIDs returns the IDs of the locations this detail references.
// Used by the location garbage collector after a detail is updated or removed.
func (d TripDetail) LocationIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, loc := range []*Location{d.Pickup, d.Dropoff, d.Current} {
		if loc != nil {
			ids = append(ids, loc.ID)
		}
	}
	return ids
}
