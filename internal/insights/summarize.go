// Package insights computes summary statistics over the full event set.
package insights

import (
	"cerebro/internal/models"
	"cerebro/internal/query"
	"math"
	"time"
)

const (
	RecentWindow = 7 * 24 * time.Hour
	RecentLimit  = 5
)

// Summarize is recomputed from scratch on every call; there is no
// incremental state.
func Summarize(events []models.Event, now time.Time) models.Insights {
	cutoff := now.Add(-RecentWindow)

	res := models.Insights{
		Total:        len(events),
		CountsByType: make(map[string]int),
		RecentFive:   make([]models.Event, 0, RecentLimit),
	}

	sum := 0
	for _, ev := range events {
		if !ev.Dt.Before(cutoff) {
			res.Last7Days++
		}
		sum += ev.Intensity
		res.CountsByType[ev.Type]++
	}
	if res.Total > 0 {
		res.AverageIntensity = RoundTenths(float64(sum) / float64(res.Total))
	}

	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	query.SortByDtDesc(sorted)
	if len(sorted) > RecentLimit {
		sorted = sorted[:RecentLimit]
	}
	res.RecentFive = append(res.RecentFive, sorted...)

	return res
}

// RoundTenths rounds to one decimal place, halves rounding up (toward +Inf).
func RoundTenths(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
