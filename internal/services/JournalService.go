package services

import (
	"cerebro/internal/export"
	"cerebro/internal/geo"
	"cerebro/internal/insights"
	"cerebro/internal/models"
	"cerebro/internal/providers"
	"cerebro/internal/query"
	"cerebro/internal/storage"
	"cerebro/internal/structures"
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"
	"go.uber.org/atomic"
)

var inputTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

type JournalServiceInterface interface {
	Create(ctx context.Context, in EventInput) (models.Event, error)
	List(ctx context.Context, c models.Criteria) ([]models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]models.Event, error)
	Count(ctx context.Context) (int, error)
	Insights(ctx context.Context) (models.Insights, error)
	Export(ctx context.Context, w io.Writer, f export.Format) error
	Import(ctx context.Context, events []models.Event) (int, error)
	Revision() uint64
	Location() *time.Location
}

type JournalService struct {
	store    storage.EventStoreInterface
	locator  geo.Locator
	logger   providers.Logger
	loc      *time.Location
	timeout  time.Duration
	revision *atomic.Uint64
	now      func() time.Time
}

func NewJournalService(conf *structures.Config, store storage.EventStoreInterface, locator geo.Locator, logger providers.Logger) JournalServiceInterface {
	return &JournalService{
		store:    store,
		locator:  locator,
		logger:   logger,
		loc:      conf.TimeLocation(),
		timeout:  conf.Location.Timeout,
		revision: atomic.NewUint64(0),
		now:      time.Now,
	}
}

// Revision changes after every successful write and is used as a cache key.
func (js *JournalService) Revision() uint64 {
	return js.revision.Load()
}

func (js *JournalService) Location() *time.Location {
	return js.loc
}

func (js *JournalService) Create(ctx context.Context, in EventInput) (models.Event, error) {
	ev, err := js.buildEvent(ctx, in)
	if err != nil {
		return models.Event{}, err
	}
	if err := js.store.Put(ctx, ev); err != nil {
		js.logger.Errorf(providers.TypeApp, "Unable to store event %s: %s", ev.ID, err)
		return models.Event{}, err
	}
	js.revision.Inc()
	js.logger.Debugf(providers.TypeApp, "Stored event %s (%s)", ev.ID, ev.Type)
	return ev, nil
}

func (js *JournalService) List(ctx context.Context, c models.Criteria) ([]models.Event, error) {
	all, err := js.All(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(all, c), nil
}

func (js *JournalService) Get(ctx context.Context, id string) (*models.Event, error) {
	return js.store.Get(ctx, id)
}

func (js *JournalService) Delete(ctx context.Context, id string) error {
	if err := js.store.Delete(ctx, id); err != nil {
		js.logger.Errorf(providers.TypeApp, "Unable to delete event %s: %s", id, err)
		return err
	}
	js.revision.Inc()
	return nil
}

func (js *JournalService) All(ctx context.Context) ([]models.Event, error) {
	all, err := js.store.GetAll(ctx)
	if err != nil {
		js.logger.Errorf(providers.TypeApp, "Unable to read events: %s", err)
		return nil, err
	}
	return all, nil
}

func (js *JournalService) Count(ctx context.Context) (int, error) {
	return js.store.Count(ctx)
}

func (js *JournalService) Insights(ctx context.Context) (models.Insights, error) {
	all, err := js.All(ctx)
	if err != nil {
		return models.Insights{}, err
	}
	return insights.Summarize(all, js.now()), nil
}

// Export always covers the full store, never a filtered view.
func (js *JournalService) Export(ctx context.Context, w io.Writer, f export.Format) error {
	all, err := js.All(ctx)
	if err != nil {
		return err
	}
	query.SortByDtDesc(all)
	return export.Write(w, f, all)
}

// Import puts every event as-is. It stops at the first invalid event or
// storage failure and reports how many were written.
func (js *JournalService) Import(ctx context.Context, events []models.Event) (int, error) {
	written := 0
	for _, ev := range events {
		if strings.TrimSpace(ev.ID) == "" {
			return written, &models.ValidationError{Field: "id", Message: "is required"}
		}
		if strings.TrimSpace(ev.Type) == "" {
			return written, &models.ValidationError{Field: "type", Message: "is required"}
		}
		if ev.Dt.IsZero() {
			return written, &models.ValidationError{Field: "dt", Message: "is required"}
		}
		if err := js.store.Put(ctx, ev); err != nil {
			return written, err
		}
		written++
	}
	if written > 0 {
		js.revision.Inc()
	}
	return written, nil
}

func (js *JournalService) buildEvent(ctx context.Context, in EventInput) (models.Event, error) {
	in.Type = strings.TrimSpace(in.Type)
	v := validate.Struct(&in)
	if !v.Validate() {
		return models.Event{}, &models.ValidationError{Field: "type", Message: v.Errors.One()}
	}

	dt, err := js.parseDt(in.Dt)
	if err != nil {
		return models.Event{}, err
	}

	intensity := query.ParseOptionalNumber(string(in.Intensity))
	if intensity == nil {
		return models.Event{}, &models.ValidationError{Field: "intensity", Message: "must be a number"}
	}
	rounded := math.Round(*intensity)
	if rounded > math.MaxInt32 || rounded < math.MinInt32 {
		return models.Event{}, &models.ValidationError{Field: "intensity", Message: "is out of range"}
	}

	ev := models.Event{
		ID:        uuid.NewString(),
		Dt:        dt,
		Type:      in.Type,
		Intensity: int(rounded),
		Emotion:   optionalText(in.Emotion, false),
		Sleep:     query.ParseOptionalNumber(string(in.Sleep)),
		Stress:    query.ParseOptionalNumber(string(in.Stress)),
		State:     optionalText(in.State, true),
		Notes:     optionalText(in.Notes, true),
	}

	switch {
	case in.Loc != nil:
		fix := geo.Fix{Lat: in.Loc.Lat, Lon: in.Loc.Lon, AccuracyM: in.Loc.AccuracyM}
		if fix.Valid() {
			loc := geo.Coarsen(fix)
			ev.Loc = &loc
		}
	case in.CaptureLocation:
		ev.Loc = geo.Capture(ctx, js.locator, js.timeout)
		if ev.Loc == nil {
			js.logger.Debugf(providers.TypeApp, "Location unavailable, storing event without it")
		}
	}

	return ev, nil
}

// parseDt returns the UTC instant truncated to milliseconds.
func (js *JournalService) parseDt(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return js.now().UTC().Truncate(time.Millisecond), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Truncate(time.Millisecond), nil
	}
	for _, layout := range inputTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, js.loc); err == nil {
			return t.UTC().Truncate(time.Millisecond), nil
		}
	}
	return time.Time{}, &models.ValidationError{Field: "dt", Message: fmt.Sprintf("unrecognised timestamp %q", s)}
}

func optionalText(s string, trim bool) *string {
	if trim {
		s = strings.TrimSpace(s)
	}
	if s == "" {
		return nil
	}
	return &s
}
