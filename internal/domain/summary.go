package domain

import (
	"fmt"
	"time"
)

// GapPolicy controls how the aggregator accounts for slots with no entry.
// Activity-log entries are point samples, not intervals with end times, so
// a gap between two entries is ambiguous.
type GapPolicy string

const (
	// GapContinuation treats each entry as lasting until the next entry's
	// slot; the final entry covers a single slot. This matches how a paper
	// log sheet is read: the pen stays on a line until the next status change.
	GapContinuation GapPolicy = "continuation"

	// GapStrict counts exactly one 15-minute slot per entry, leaving gap
	// slots unaccounted.
	GapStrict GapPolicy = "strict"
)

// ParseGapPolicy validates a raw gap policy value.
func ParseGapPolicy(raw string) (GapPolicy, error) {
	switch GapPolicy(raw) {
	case GapContinuation, GapStrict:
		return GapPolicy(raw), nil
	default:
		return "", fmt.Errorf("%w: gap policy must be %q or %q, got %q", ErrValidation, GapContinuation, GapStrict, raw)
	}
}

// SummaryEntry is one activity-log entry rendered for the summary view,
// with the slot resolved to its wall-clock time.
type SummaryEntry struct {
	Slot     int      `json:"x_datapoint"`
	Time     string   `json:"time"`
	Activity Activity `json:"activity"`
	Remark   string   `json:"remark,omitempty"`
}

// LogSummary is the per-day roll-up of a log book: carrier metadata from
// the owning log detail, total miles, minutes spent per activity category,
// and the resolved entry list.
type LogSummary struct {
	Date                   time.Time        `json:"date"`
	NameOfCarrier          string           `json:"name_of_carrier"`
	MainOfficeAddress      string           `json:"main_office_address"`
	NameOfCodriver         string           `json:"name_of_codriver,omitempty"`
	ShippingDocumentNumber string           `json:"shipping_document_number"`
	TotalMilesDriven       int              `json:"total_miles_driven"`
	Minutes                map[Activity]int `json:"minutes"`
	Entries                []SummaryEntry   `json:"entries"`
}

// Summarize composes a log book, its owning log detail, and its activity
// entries into a LogSummary. Entries must already be ordered ascending by
// slot, which is the order the repo returns them in.
//
// Under GapContinuation an entry spans from its slot up to (but excluding)
// the next entry's slot, and the final entry spans one slot. Two entries
// sharing a slot are both kept in the entry list, but the earlier one
// contributes zero minutes — it was superseded within the same slot.
// Under GapStrict every entry contributes exactly SlotMinutes.
func Summarize(book LogBook, detail LogDetail, entries []ActivityLog, policy GapPolicy) (LogSummary, error) {
	minutes := make(map[Activity]int, 4)
	for _, a := range Activities() {
		minutes[a] = 0
	}

	out := make([]SummaryEntry, 0, len(entries))
	for i, e := range entries {
		clock, err := SlotTime(e.Slot)
		if err != nil {
			return LogSummary{}, fmt.Errorf("domain.Summarize: %w", err)
		}
		out = append(out, SummaryEntry{Slot: e.Slot, Time: clock, Activity: e.Activity, Remark: e.Remark})

		span := 1
		if policy == GapContinuation && i < len(entries)-1 {
			span = entries[i+1].Slot - e.Slot
			if span < 0 {
				span = 0
			}
		}
		minutes[e.Activity] += span * SlotMinutes
	}

	return LogSummary{
		Date:                   book.Date,
		NameOfCarrier:          detail.NameOfCarrier,
		MainOfficeAddress:      detail.MainOfficeAddress,
		NameOfCodriver:         detail.NameOfCodriver,
		ShippingDocumentNumber: detail.ShippingDocumentNumber,
		TotalMilesDriven:       detail.TotalMilesDriven,
		Minutes:                minutes,
		Entries:                out,
	}, nil
}
