package export

import (
	"cerebro/internal/models"
	"io"

	json "github.com/goccy/go-json"
)

// JSON writes the events as a pretty-printed array. Absent optional fields
// are kept as null.
func JSON(w io.Writer, events []models.Event) error {
	if events == nil {
		events = []models.Event{}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
