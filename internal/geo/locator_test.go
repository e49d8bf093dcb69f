package geo

import (
	"cerebro/internal/models"
	"cerebro/internal/structures"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcLocator func(ctx context.Context) (Fix, error)

func (f funcLocator) Locate(ctx context.Context) (Fix, error) { return f(ctx) }

func TestCoarsen(t *testing.T) {
	got := Coarsen(Fix{Lat: 52.520008, Lon: 13.404954, AccuracyM: 35.6})
	assert.Equal(t, models.Location{Lat: 52.52, Lon: 13.4, AccuracyM: 36}, got)

	got = Coarsen(Fix{Lat: -33.8688, Lon: 151.2093, AccuracyM: 10})
	assert.Equal(t, models.Location{Lat: -33.87, Lon: 151.21, AccuracyM: 10}, got)
}

func TestCapture_StaticLocator(t *testing.T) {
	loc := Capture(context.Background(), StaticLocator{Fix: Fix{Lat: 48.8566, Lon: 2.3522, AccuracyM: 1000}}, time.Second)
	require.NotNil(t, loc)
	assert.Equal(t, 48.86, loc.Lat)
	assert.Equal(t, 2.35, loc.Lon)
}

func TestCapture_ErrorResolvesToNil(t *testing.T) {
	assert.Nil(t, Capture(context.Background(), NoopLocator{}, time.Second))
	assert.Nil(t, Capture(context.Background(), funcLocator(func(context.Context) (Fix, error) {
		return Fix{}, errors.New("permission denied")
	}), time.Second))
}

func TestCapture_TimeoutResolvesToNil(t *testing.T) {
	slow := funcLocator(func(ctx context.Context) (Fix, error) {
		select {
		case <-time.After(5 * time.Second):
			return Fix{Lat: 1, Lon: 1}, nil
		case <-ctx.Done():
			return Fix{}, ctx.Err()
		}
	})

	start := time.Now()
	assert.Nil(t, Capture(context.Background(), slow, 20*time.Millisecond))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestCapture_InvalidFixResolvesToNil(t *testing.T) {
	assert.Nil(t, Capture(context.Background(), StaticLocator{Fix: Fix{Lat: math.NaN()}}, time.Second))
	assert.Nil(t, Capture(context.Background(), StaticLocator{Fix: Fix{Lat: 95}}, time.Second))
}

func TestCapture_NilLocator(t *testing.T) {
	assert.Nil(t, Capture(context.Background(), nil, time.Second))
}

func TestNewLocator(t *testing.T) {
	assert.IsType(t, NoopLocator{}, NewLocator(&structures.Config{}))

	conf := &structures.Config{Location: structures.LocationConfig{Enabled: true, Lat: 10, Lon: 20, AccuracyM: 5}}
	l, ok := NewLocator(conf).(StaticLocator)
	require.True(t, ok)
	assert.Equal(t, Fix{Lat: 10, Lon: 20, AccuracyM: 5}, l.Fix)
}
