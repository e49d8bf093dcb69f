// Package export serialises the full event set for download.
package export

import (
	"cerebro/internal/models"
	"fmt"
	"io"
	"time"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts "json" and "csv"; empty means json.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", &models.ValidationError{Field: "format", Message: fmt.Sprintf("unsupported export format %q", s)}
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// FileName is the download name for an export produced at now.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("cerebro-journal-%s.%s", now.UTC().Format("2006-01-02"), f)
}

// Write renders events in format f.
func Write(w io.Writer, f Format, events []models.Event) error {
	switch f {
	case FormatJSON:
		return JSON(w, events)
	case FormatCSV:
		return CSV(w, events)
	}
	return fmt.Errorf("unsupported export format %q", f)
}
