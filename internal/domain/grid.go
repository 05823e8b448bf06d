package domain

import "fmt"

// The day grid is fixed-resolution: 96 quarter-hour slots indexing a
// 24-hour day, 1-based. Slot 1 covers 00:00–00:15, slot 96 covers
// 23:45–24:00. Slot arithmetic is pure integer math — no timezone and no
// DST adjustment, which keeps it independent of any calendar library.
const (
	SlotMin     = 1
	SlotMax     = 96
	SlotMinutes = 15
)

// ValidSlot reports whether slot is inside the day grid.
func ValidSlot(slot int) bool {
	return slot >= SlotMin && slot <= SlotMax
}

// SlotTime converts a slot index to the "HH:MM" time-of-day at which the
// slot begins. Returns a FieldErrors wrapping ErrValidation when slot is
// outside [1, 96].
func SlotTime(slot int) (string, error) {
	if !ValidSlot(slot) {
		return "", FieldErrors{"x_datapoint": fmt.Sprintf("must be between %d and %d, got %d", SlotMin, SlotMax, slot)}
	}
	minutes := (slot - 1) * SlotMinutes
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

// Activity is a driving-hours activity category.
type Activity string

const (
	ActivityOffDuty      Activity = "OFF_DUTY"
	ActivitySleeperBerth Activity = "SLEEPER_BERTH"
	ActivityDriving      Activity = "DRIVING"
	ActivityOnDuty       Activity = "ON_DUTY"
)

// Activities returns the four categories in log-sheet row order.
// The order is stable so summary output is deterministic.
func Activities() []Activity {
	return []Activity{ActivityOffDuty, ActivitySleeperBerth, ActivityDriving, ActivityOnDuty}
}

// ParseActivity validates a raw activity value.
// Returns a FieldErrors wrapping ErrValidation for anything outside the enum.
func ParseActivity(raw string) (Activity, error) {
	switch Activity(raw) {
	case ActivityOffDuty, ActivitySleeperBerth, ActivityDriving, ActivityOnDuty:
		return Activity(raw), nil
	default:
		return "", FieldErrors{"activity": fmt.Sprintf("must be one of OFF_DUTY, SLEEPER_BERTH, DRIVING, ON_DUTY; got %q", raw)}
	}
}
