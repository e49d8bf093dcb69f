package models

import "sort"

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Insights is the summary computed over the full, unfiltered event set.
type Insights struct {
	Total            int            `json:"total"`
	Last7Days        int            `json:"last7Days"`
	AverageIntensity float64        `json:"averageIntensity"`
	CountsByType     map[string]int `json:"countsByType"`
	RecentFive       []Event        `json:"recentFive"`
}

// SortedTypes returns CountsByType ordered by count descending, ties by type.
func (i Insights) SortedTypes() []TypeCount {
	out := make([]TypeCount, 0, len(i.CountsByType))
	for t, c := range i.CountsByType {
		out = append(out, TypeCount{Type: t, Count: c})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return out[a].Type < out[b].Type
	})
	return out
}
