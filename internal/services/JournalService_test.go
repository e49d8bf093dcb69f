package services

import (
	"bytes"
	"cerebro/internal/export"
	"cerebro/internal/geo"
	"cerebro/internal/models"
	"cerebro/internal/structures"
	"cerebro/internal/testutil"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 9, 15, 30, 123_456_789, time.UTC)

func newTestService(store *testutil.MemoryStore, locator geo.Locator) *JournalService {
	conf := &structures.Config{
		Timezone: "UTC",
		Location: structures.LocationConfig{Timeout: 100 * time.Millisecond},
	}
	js := NewJournalService(conf, store, locator, &testutil.MockLogger{}).(*JournalService)
	js.now = func() time.Time { return fixedNow }
	return js
}

func TestCreate_DefaultsAndNulls(t *testing.T) {
	store := testutil.NewMemoryStore()
	js := newTestService(store, geo.NoopLocator{})

	ev, err := js.Create(context.Background(), EventInput{Type: " mood ", Intensity: "5"})
	require.NoError(t, err)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "mood", ev.Type)
	assert.Equal(t, 5, ev.Intensity)
	assert.Equal(t, fixedNow.Truncate(time.Millisecond), ev.Dt)
	assert.Nil(t, ev.Emotion)
	assert.Nil(t, ev.Sleep)
	assert.Nil(t, ev.Stress)
	assert.Nil(t, ev.State)
	assert.Nil(t, ev.Notes)
	assert.Nil(t, ev.Loc)

	stored, err := store.Get(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev, *stored)
	assert.Equal(t, uint64(1), js.Revision())
}

func TestCreate_CoercesMalformedOptionalNumbers(t *testing.T) {
	js := newTestService(testutil.NewMemoryStore(), geo.NoopLocator{})

	ev, err := js.Create(context.Background(), EventInput{
		Type:      "sleep",
		Intensity: "7",
		Sleep:     "lots",
		Stress:    "3.5",
		State:     "   ",
		Notes:     "  slept badly  ",
		Emotion:   "tired",
	})
	require.NoError(t, err)

	assert.Nil(t, ev.Sleep)
	require.NotNil(t, ev.Stress)
	assert.Equal(t, 3.5, *ev.Stress)
	assert.Nil(t, ev.State)
	assert.Equal(t, "slept badly", *ev.Notes)
	assert.Equal(t, "tired", *ev.Emotion)
}

func TestCreate_ParsesLocalDatetime(t *testing.T) {
	js := newTestService(testutil.NewMemoryStore(), geo.NoopLocator{})
	js.loc = time.FixedZone("UTC+2", 2*60*60)

	ev, err := js.Create(context.Background(), EventInput{Dt: "2026-10-18T21:30", Type: "mood", Intensity: "4"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 18, 19, 30, 0, 0, time.UTC), ev.Dt)

	ev, err = js.Create(context.Background(), EventInput{Dt: "2026-10-18T21:30:00.5Z", Type: "mood", Intensity: "4"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 18, 21, 30, 0, 500_000_000, time.UTC), ev.Dt)
}

func TestCreate_ValidationErrors(t *testing.T) {
	store := testutil.NewMemoryStore()
	js := newTestService(store, geo.NoopLocator{})
	ctx := context.Background()

	cases := map[string]EventInput{
		"type":      {Type: "  ", Intensity: "3"},
		"intensity": {Type: "mood", Intensity: "very"},
		"dt":        {Type: "mood", Intensity: "3", Dt: "yesterday"},
	}
	for field, in := range cases {
		_, err := js.Create(ctx, in)
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr, field)
		assert.Equal(t, field, verr.Field)
	}

	_, err := js.Create(ctx, EventInput{Type: strings.Repeat("x", 65), Intensity: "3"})
	assert.Error(t, err)

	for _, huge := range []FormValue{"1e300", "-1e300", "2147483648"} {
		_, err = js.Create(ctx, EventInput{Type: "mood", Intensity: huge})
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr, string(huge))
		assert.Equal(t, "intensity", verr.Field)
	}

	n, _ := store.Count(ctx)
	assert.Equal(t, 0, n)
	assert.Equal(t, uint64(0), js.Revision())
}

func TestCreate_RoundsIntensity(t *testing.T) {
	js := newTestService(testutil.NewMemoryStore(), geo.NoopLocator{})
	ev, err := js.Create(context.Background(), EventInput{Type: "mood", Intensity: "6.6"})
	require.NoError(t, err)
	assert.Equal(t, 7, ev.Intensity)

	ev, err = js.Create(context.Background(), EventInput{Type: "mood", Intensity: "-2147483648"})
	require.NoError(t, err)
	assert.Equal(t, math.MinInt32, ev.Intensity)
}

func TestCreate_ProvidedLocationIsCoarsened(t *testing.T) {
	js := newTestService(testutil.NewMemoryStore(), geo.NoopLocator{})

	ev, err := js.Create(context.Background(), EventInput{
		Type:      "mood",
		Intensity: "2",
		Loc:       &LocationInput{Lat: 51.50735, Lon: -0.12776, AccuracyM: 12.4},
	})
	require.NoError(t, err)
	assert.Equal(t, &models.Location{Lat: 51.51, Lon: -0.13, AccuracyM: 12}, ev.Loc)
}

func TestCreate_CapturesLocation(t *testing.T) {
	js := newTestService(testutil.NewMemoryStore(), geo.StaticLocator{Fix: geo.Fix{Lat: 35.6762, Lon: 139.6503, AccuracyM: 800}})

	ev, err := js.Create(context.Background(), EventInput{Type: "mood", Intensity: "2", CaptureLocation: true})
	require.NoError(t, err)
	assert.Equal(t, &models.Location{Lat: 35.68, Lon: 139.65, AccuracyM: 800}, ev.Loc)
}

func TestCreate_LocationUnavailableDoesNotFail(t *testing.T) {
	js := newTestService(testutil.NewMemoryStore(), geo.NoopLocator{})

	ev, err := js.Create(context.Background(), EventInput{Type: "mood", Intensity: "2", CaptureLocation: true})
	require.NoError(t, err)
	assert.Nil(t, ev.Loc)
}

func TestCreate_StorageErrorPropagates(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.Err = errors.New("disk full")
	js := newTestService(store, geo.NoopLocator{})

	_, err := js.Create(context.Background(), EventInput{Type: "mood", Intensity: "2"})
	var storageErr *models.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "put", storageErr.Op)
	assert.Equal(t, uint64(0), js.Revision())
}

func sampleEvents() []models.Event {
	return []models.Event{
		{ID: "A", Dt: fixedNow.AddDate(0, 0, -3), Type: "mood", Intensity: 3},
		{ID: "B", Dt: fixedNow.AddDate(0, 0, -2), Type: "mood", Intensity: 8},
		{ID: "C", Dt: fixedNow.AddDate(0, 0, -1), Type: "sleep", Intensity: 5},
	}
}

func TestList_FiltersAndSorts(t *testing.T) {
	js := newTestService(testutil.NewMemoryStore(sampleEvents()...), geo.NoopLocator{})

	got, err := js.List(context.Background(), models.Criteria{Type: "mood"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].ID)
	assert.Equal(t, "A", got[1].ID)
}

func TestList_StorageErrorPropagates(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.Err = errors.New("locked")
	js := newTestService(store, geo.NoopLocator{})

	_, err := js.List(context.Background(), models.Criteria{})
	var storageErr *models.StorageError
	assert.ErrorAs(t, err, &storageErr)
}

func TestInsights(t *testing.T) {
	js := newTestService(testutil.NewMemoryStore(sampleEvents()...), geo.NoopLocator{})

	res, err := js.Insights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 3, res.Last7Days)
	assert.Equal(t, 5.3, res.AverageIntensity)
	assert.Equal(t, map[string]int{"mood": 2, "sleep": 1}, res.CountsByType)
}

func TestDelete_MissingIsNoop(t *testing.T) {
	js := newTestService(testutil.NewMemoryStore(sampleEvents()...), geo.NoopLocator{})

	require.NoError(t, js.Delete(context.Background(), "missing"))
	require.NoError(t, js.Delete(context.Background(), "A"))

	n, err := js.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, uint64(2), js.Revision())
}

func TestExport_UsesFullStore(t *testing.T) {
	js := newTestService(testutil.NewMemoryStore(sampleEvents()...), geo.NoopLocator{})

	var buf bytes.Buffer
	require.NoError(t, js.Export(context.Background(), &buf, export.FormatJSON))

	var back []models.Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back, 3)
	assert.Equal(t, "C", back[0].ID)

	buf.Reset()
	require.NoError(t, js.Export(context.Background(), &buf, export.FormatCSV))
	assert.Equal(t, 4, strings.Count(buf.String(), "\n"))
}

func TestImport(t *testing.T) {
	store := testutil.NewMemoryStore()
	js := newTestService(store, geo.NoopLocator{})

	n, err := js.Import(context.Background(), sampleEvents())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, uint64(1), js.Revision())

	n, err = js.Import(context.Background(), []models.Event{{ID: "", Type: "x", Dt: fixedNow}})
	assert.Equal(t, 0, n)
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestFormValue_UnmarshalJSON(t *testing.T) {
	var in EventInput
	require.NoError(t, json.Unmarshal([]byte(`{"type":"mood","intensity":7,"sleep":"6.5","stress":null}`), &in))
	assert.Equal(t, FormValue("7"), in.Intensity)
	assert.Equal(t, FormValue("6.5"), in.Sleep)
	assert.Equal(t, FormValue(""), in.Stress)

	assert.Error(t, json.Unmarshal([]byte(`{"intensity":true}`), &in))
	assert.Equal(t, FormValue("2.5"), FormNumber(2.5))
}
