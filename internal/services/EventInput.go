package services

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"
)

// FormValue is a form field that may arrive as a JSON string, number or null.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = FormValue(n.String())
	return nil
}

func FormNumber(f float64) FormValue {
	return FormValue(strconv.FormatFloat(f, 'f', -1, 64))
}

type LocationInput struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	AccuracyM float64 `json:"accuracy_m"`
}

// EventInput is the raw entry form. Dt accepts RFC3339 or the datetime-local
// layout YYYY-MM-DDTHH:MM; empty means now.
type EventInput struct {
	Dt              string         `json:"dt"`
	Type            string         `json:"type" validate:"required|maxLen:64"`
	Intensity       FormValue      `json:"intensity"`
	Emotion         string         `json:"emotion"`
	Sleep           FormValue      `json:"sleep"`
	Stress          FormValue      `json:"stress"`
	State           string         `json:"state"`
	Notes           string         `json:"notes"`
	CaptureLocation bool           `json:"captureLocation"`
	Loc             *LocationInput `json:"loc"`
}
