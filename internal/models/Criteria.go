package models

import "time"

// Criteria narrows a list of events. Zero values match everything.
// DateFrom and DateTo are calendar dates; their Location defines where the
// day starts and ends.
type Criteria struct {
	Text         string
	Type         string
	MinIntensity *float64
	DateFrom     *time.Time
	DateTo       *time.Time
}
