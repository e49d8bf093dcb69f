package query

import (
	"cerebro/internal/models"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseCriteria reads q, type, minIntensity, from and to. A malformed
// minIntensity means no bound; malformed dates are rejected.
func ParseCriteria(values url.Values, loc *time.Location) (models.Criteria, error) {
	c := models.Criteria{
		Text: strings.TrimSpace(values.Get("q")),
		Type: values.Get("type"),
	}
	c.MinIntensity = ParseOptionalNumber(values.Get("minIntensity"))

	var err error
	if c.DateFrom, err = parseDate("from", values.Get("from"), loc); err != nil {
		return models.Criteria{}, err
	}
	if c.DateTo, err = parseDate("to", values.Get("to"), loc); err != nil {
		return models.Criteria{}, err
	}
	return c, nil
}

// ParseOptionalNumber returns nil for empty, malformed or non-finite input.
func ParseOptionalNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

func parseDate(field, s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return nil, &models.ValidationError{Field: field, Message: "must be a date in YYYY-MM-DD format"}
	}
	return &d, nil
}
