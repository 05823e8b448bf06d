package domain

import (
	"time"

	"github.com/google/uuid"
)

// LogDetail is the regulatory shipment/carrier metadata for a trip.
// A trip may have any number of log details (one per daily log sheet);
// each log detail anchors at most one log book.
type LogDetail struct {
	ID                     uuid.UUID `json:"id"`
	TripID                 uuid.UUID `json:"trip_id"`
	StartDate              time.Time `json:"start_date"`
	TotalMilesDriven       int       `json:"total_miles_driven"`
	NameOfCarrier          string    `json:"name_of_carrier"`
	MainOfficeAddress      string    `json:"main_office_address"`
	NameOfCodriver         string    `json:"name_of_codriver,omitempty"`
	ShippingDocumentNumber string    `json:"shipping_document_number"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}
