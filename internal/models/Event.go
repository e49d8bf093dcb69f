package models

import (
	"time"

	json "github.com/goccy/go-json"
)

// TimeLayout is the wire format of Event.Dt: UTC with millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Location is a coarse geolocation snapshot. Lat and Lon are rounded to two
// decimal places before they are stored.
type Location struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	AccuracyM int     `json:"accuracy_m"`
}

// Event is a single journal entry. Optional fields are pointers so that an
// absent value is stored and serialised as null instead of being omitted.
type Event struct {
	ID        string    `json:"id"`
	Dt        time.Time `json:"dt"`
	Type      string    `json:"type"`
	Intensity int       `json:"intensity"`
	Emotion   *string   `json:"emotion"`
	Sleep     *float64  `json:"sleep"`
	Stress    *float64  `json:"stress"`
	State     *string   `json:"state"`
	Notes     *string   `json:"notes"`
	Loc       *Location `json:"loc"`
}

// eventWire mirrors Event with dt rendered in TimeLayout; field order is the
// export order.
type eventWire struct {
	ID        string    `json:"id"`
	Dt        string    `json:"dt"`
	Type      string    `json:"type"`
	Intensity int       `json:"intensity"`
	Emotion   *string   `json:"emotion"`
	Sleep     *float64  `json:"sleep"`
	Stress    *float64  `json:"stress"`
	State     *string   `json:"state"`
	Notes     *string   `json:"notes"`
	Loc       *Location `json:"loc"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventWire{
		ID:        e.ID,
		Dt:        e.Dt.UTC().Format(TimeLayout),
		Type:      e.Type,
		Intensity: e.Intensity,
		Emotion:   e.Emotion,
		Sleep:     e.Sleep,
		Stress:    e.Stress,
		State:     e.State,
		Notes:     e.Notes,
		Loc:       e.Loc,
	})
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var w eventWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	dt, err := time.Parse(time.RFC3339Nano, w.Dt)
	if err != nil {
		return &ValidationError{Field: "dt", Message: "must be an RFC3339 timestamp"}
	}
	*e = Event{
		ID:        w.ID,
		Dt:        dt.UTC(),
		Type:      w.Type,
		Intensity: w.Intensity,
		Emotion:   w.Emotion,
		Sleep:     w.Sleep,
		Stress:    w.Stress,
		State:     w.State,
		Notes:     w.Notes,
		Loc:       w.Loc,
	}
	return nil
}

// StringOrEmpty dereferences an optional text field, treating nil as "".
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
