// Package query filters and orders an in-memory event list.
package query

import (
	"cerebro/internal/models"
	"slices"
	"strings"
	"time"
)

// Filter returns the events matching every predicate in c, most recent first.
// The sort is stable, so events with equal dt keep their input order. The
// input slice is not modified.
func Filter(events []models.Event, c models.Criteria) []models.Event {
	from, to := dayBounds(c.DateFrom, c.DateTo)
	q := strings.ToLower(c.Text)

	out := make([]models.Event, 0, len(events))
	for _, ev := range events {
		if !matchesText(ev, q) {
			continue
		}
		if c.Type != "" && ev.Type != c.Type {
			continue
		}
		if c.MinIntensity != nil && float64(ev.Intensity) < *c.MinIntensity {
			continue
		}
		if !from.IsZero() && ev.Dt.Before(from) {
			continue
		}
		if !to.IsZero() && ev.Dt.After(to) {
			continue
		}
		out = append(out, ev)
	}

	SortByDtDesc(out)
	return out
}

// SortByDtDesc orders events newest first, in place and stably.
func SortByDtDesc(events []models.Event) {
	slices.SortStableFunc(events, func(a, b models.Event) int {
		return b.Dt.Compare(a.Dt)
	})
}

func matchesText(ev models.Event, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	hay := strings.Join([]string{
		ev.Type,
		models.StringOrEmpty(ev.Emotion),
		models.StringOrEmpty(ev.State),
		models.StringOrEmpty(ev.Notes),
	}, " ")
	return strings.Contains(strings.ToLower(hay), lowerQuery)
}

// dayBounds widens the calendar dates to 00:00:00 of from and 23:59:59 of to,
// in each date's own location.
func dayBounds(from, to *time.Time) (time.Time, time.Time) {
	var start, end time.Time
	if from != nil {
		y, m, d := from.Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, from.Location())
	}
	if to != nil {
		y, m, d := to.Date()
		end = time.Date(y, m, d, 23, 59, 59, 0, to.Location())
	}
	return start, end
}
