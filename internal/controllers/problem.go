package controllers

import (
	"cerebro/internal/models"
	"cerebro/internal/providers"
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
)

type problem struct {
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	writeJSONBody(w, status, body)
}

func writeProblem(w http.ResponseWriter, status int, detail string, fields map[string]string) {
	w.Header().Set("Content-Type", "application/problem+json")
	writeJSONBody(w, status, problem{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
		Errors: fields,
	})
}

func writeJSONBody(w http.ResponseWriter, status int, body any) {
	gson, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// writeError maps domain errors onto status codes. Storage failures are
// logged with the request path and reported without internals.
func writeError(w http.ResponseWriter, r *http.Request, logger providers.Logger, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeProblem(w, http.StatusBadRequest, verr.Error(), map[string]string{verr.Field: verr.Message})
	case errors.Is(err, models.ErrEventNotFound):
		writeProblem(w, http.StatusNotFound, err.Error(), nil)
	default:
		logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s failed: %s", r.Method, r.URL.Path, err)
		writeProblem(w, http.StatusInternalServerError, "storage unavailable", nil)
	}
}
