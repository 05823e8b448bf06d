package domain

import (
	"time"

	"github.com/google/uuid"
)

// LogBook is a single calendar day's driving-hours record, one-to-one with
// a log detail. Date is unique across ALL log books system-wide, not per
// user or per trip — the storage layer enforces this with a constraint.
type LogBook struct {
	ID          uuid.UUID `json:"id"`
	LogDetailID uuid.UUID `json:"log_detail_id"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ActivityLog is one categorized quarter-hour entry within a log book.
// Slot is the 1-based x_datapoint index into the 96-slot day grid.
// Multiple entries may share a slot; listings order by slot ascending.
type ActivityLog struct {
	ID        uuid.UUID `json:"id"`
	LogBookID uuid.UUID `json:"log_book_id"`
	Slot      int       `json:"x_datapoint"`
	Activity  Activity  `json:"activity"`
	Remark    string    `json:"remark,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
