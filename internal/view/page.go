// Package view turns journal events and insights into a render-ready page
// model. It performs no I/O.
package view

import (
	"cerebro/internal/models"
	"strconv"
	"time"
)

// PrettyLayout is the human-readable timestamp shown in lists.
const PrettyLayout = "2006-01-02 15:04"

type Item struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Intensity int    `json:"intensity"`
	When      string `json:"when"`
	Emotion   string `json:"emotion,omitempty"`
	Sleep     string `json:"sleep,omitempty"`
	Stress    string `json:"stress,omitempty"`
	State     string `json:"state,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Location  string `json:"location,omitempty"`
}

type Tile struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Page struct {
	Items  []Item `json:"items"`
	Empty  bool   `json:"empty"`
	Tiles  []Tile `json:"tiles"`
	Types  []Row  `json:"types"`
	Recent []Row  `json:"recent"`
	NoData bool   `json:"noData"`
}

// Build renders events, already filtered and ordered by the caller, next to
// insights computed over the whole journal. Times are shown in loc.
func Build(events []models.Event, in models.Insights, loc *time.Location) Page {
	if loc == nil {
		loc = time.UTC
	}

	page := Page{
		Items:  make([]Item, 0, len(events)),
		Types:  []Row{},
		Recent: []Row{},
		Tiles: []Tile{
			{Label: "Total", Value: strconv.Itoa(in.Total)},
			{Label: "Last 7 days", Value: strconv.Itoa(in.Last7Days)},
			{Label: "Avg intensity", Value: formatNumber(in.AverageIntensity)},
		},
	}

	for _, ev := range events {
		page.Items = append(page.Items, buildItem(ev, loc))
	}
	page.Empty = len(page.Items) == 0

	for _, tc := range in.SortedTypes() {
		page.Types = append(page.Types, Row{Label: tc.Type, Value: strconv.Itoa(tc.Count)})
	}
	for _, ev := range in.RecentFive {
		page.Recent = append(page.Recent, Row{
			Label: ev.Type + " • " + ev.Dt.In(loc).Format(PrettyLayout),
			Value: strconv.Itoa(ev.Intensity),
		})
	}
	page.NoData = in.Total == 0

	return page
}

func buildItem(ev models.Event, loc *time.Location) Item {
	item := Item{
		ID:        ev.ID,
		Type:      ev.Type,
		Intensity: ev.Intensity,
		When:      ev.Dt.In(loc).Format(PrettyLayout),
		Emotion:   models.StringOrEmpty(ev.Emotion),
		State:     models.StringOrEmpty(ev.State),
		Notes:     models.StringOrEmpty(ev.Notes),
	}
	if ev.Sleep != nil {
		item.Sleep = formatNumber(*ev.Sleep) + "/10"
	}
	if ev.Stress != nil {
		item.Stress = formatNumber(*ev.Stress) + "/10"
	}
	if ev.Loc != nil {
		item.Location = formatNumber(ev.Loc.Lat) + ", " + formatNumber(ev.Loc.Lon) +
			" (±" + strconv.Itoa(ev.Loc.AccuracyM) + "m)"
	}
	return item
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
