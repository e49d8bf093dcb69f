package controllers

import (
	"bytes"
	"cerebro/internal/export"
	"cerebro/internal/models"
	"cerebro/internal/providers"
	"cerebro/internal/query"
	"cerebro/internal/services"
	"cerebro/internal/view"
	"fmt"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type EventController struct {
	logger  providers.Logger
	service services.JournalServiceInterface
	cache   providers.CacheProviderInterface
	now     func() time.Time
}

func NewEventController(logger providers.Logger, service services.JournalServiceInterface, cache providers.CacheProviderInterface) *EventController {
	return &EventController{
		logger:  logger,
		service: service,
		cache:   cache,
		now:     time.Now,
	}
}

// serveFromCacheOrCompute keys entries by journal revision, so a write makes
// every earlier entry unreachable.
func (ec *EventController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, key string, compute func() (any, error)) {
	cacheKey := fmt.Sprintf("%s:%d", key, ec.service.Revision())
	if data, ok := ec.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, r, ec.logger, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ec.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ec *EventController) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var in services.EventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "malformed request body", nil)
		return
	}

	ev, err := ec.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, ec.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (ec *EventController) List(w http.ResponseWriter, r *http.Request) {
	c, err := query.ParseCriteria(r.URL.Query(), ec.service.Location())
	if err != nil {
		writeError(w, r, ec.logger, err)
		return
	}
	events, err := ec.service.List(r.Context(), c)
	if err != nil {
		writeError(w, r, ec.logger, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (ec *EventController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	ev, err := ec.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, ec.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// Delete answers 204 whether or not the id existed.
func (ec *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := ec.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, ec.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Insights adds the stored event count to the cache key so that writes made
// by another process against the same database are picked up.
func (ec *EventController) Insights(w http.ResponseWriter, r *http.Request) {
	n, err := ec.service.Count(r.Context())
	if err != nil {
		writeError(w, r, ec.logger, err)
		return
	}
	ec.serveFromCacheOrCompute(w, r, fmt.Sprintf("insights:%d", n), func() (any, error) {
		return ec.service.Insights(r.Context())
	})
}

func (ec *EventController) View(w http.ResponseWriter, r *http.Request) {
	c, err := query.ParseCriteria(r.URL.Query(), ec.service.Location())
	if err != nil {
		writeError(w, r, ec.logger, err)
		return
	}
	events, err := ec.service.List(r.Context(), c)
	if err != nil {
		writeError(w, r, ec.logger, err)
		return
	}
	summary, err := ec.service.Insights(r.Context())
	if err != nil {
		writeError(w, r, ec.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Build(events, summary, ec.service.Location()))
}

// Export renders into memory first so a storage failure can still be
// reported as a problem response.
func (ec *EventController) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, ec.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := ec.service.Export(r.Context(), &buf, format); err != nil {
		writeError(w, r, ec.logger, err)
		return
	}

	name := export.FileName(format, ec.now())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeProblem(w, http.StatusBadRequest, "id: is required", map[string]string{"id": "is required"})
		return "", false
	}
	return id, true
}
