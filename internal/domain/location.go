package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Location is a deduplicated geographic point. Identity is determined by
// the (Latitude, Longitude) pair; Address preserves whatever the first
// creator supplied. A location is owned by whichever trip details reference
// it and is garbage-collected once nothing does.
type Location struct {
	ID        uuid.UUID `json:"id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationInput is the normalized form of a caller-supplied location.
// The API accepts two wire representations — a "lat,lng" string and a
// structured {latitude, longitude, address?} object — and both funnel
// through this one type, so nothing downstream inspects the raw shape.
type LocationInput struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// ParseLocationString parses the "lat,lng" string form.
// Returns a FieldErrors wrapping ErrValidation on the wrong field count or
// non-numeric coordinates.
func ParseLocationString(s string) (LocationInput, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return LocationInput{}, FieldErrors{"location": fmt.Sprintf("expected \"lat,lng\", got %q", s)}
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return LocationInput{}, FieldErrors{"location": fmt.Sprintf("latitude %q is not a number", strings.TrimSpace(parts[0]))}
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return LocationInput{}, FieldErrors{"location": fmt.Sprintf("longitude %q is not a number", strings.TrimSpace(parts[1]))}
	}

	return LocationInput{Latitude: lat, Longitude: lng}, nil
}

// UnmarshalJSON accepts either a JSON string ("40.0,-70.0") or an object
// ({"latitude": 40.0, "longitude": -70.0, "address": "..."}).
// Both forms resolve to the same LocationInput, which is what makes
// cross-form deduplication work.
func (li *LocationInput) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parsed, err := ParseLocationString(raw)
		if err != nil {
			return err
		}
		*li = parsed
		return nil
	}

	// Pointers distinguish "missing" from a legitimate zero coordinate.
	var obj struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Address   string   `json:"address"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	fields := FieldErrors{}
	if obj.Latitude == nil {
		fields["latitude"] = "latitude is required"
	}
	if obj.Longitude == nil {
		fields["longitude"] = "longitude is required"
	}
	if len(fields) > 0 {
		return fields
	}

	*li = LocationInput{Latitude: *obj.Latitude, Longitude: *obj.Longitude, Address: obj.Address}
	return nil
}
