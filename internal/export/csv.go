package export

import (
	"cerebro/internal/models"
	"encoding/csv"
	"io"
	"strconv"
)

var CSVHeader = []string{
	"id", "dt", "type", "intensity", "emotion", "sleep", "stress", "state", "notes", "lat", "lon", "accuracy_m",
}

// CSV writes one header row and one row per event. Nulls and a missing
// location render as empty cells; fields holding a comma, quote or newline
// are quoted with inner quotes doubled.
func CSV(w io.Writer, events []models.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, ev := range events {
		if err := cw.Write(csvRow(ev)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(ev models.Event) []string {
	lat, lon, acc := "", "", ""
	if ev.Loc != nil {
		lat = formatFloat(&ev.Loc.Lat)
		lon = formatFloat(&ev.Loc.Lon)
		acc = strconv.Itoa(ev.Loc.AccuracyM)
	}
	return []string{
		ev.ID,
		ev.Dt.UTC().Format(models.TimeLayout),
		ev.Type,
		strconv.Itoa(ev.Intensity),
		models.StringOrEmpty(ev.Emotion),
		formatFloat(ev.Sleep),
		formatFloat(ev.Stress),
		models.StringOrEmpty(ev.State),
		models.StringOrEmpty(ev.Notes),
		lat,
		lon,
		acc,
	}
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
