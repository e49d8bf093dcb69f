// Package geo captures an optional, deliberately coarse location snapshot.
package geo

import (
	"cerebro/internal/models"
	"cerebro/internal/structures"
	"context"
	"errors"
	"math"
	"time"
)

const DefaultTimeout = 4 * time.Second

var ErrLocationUnavailable = errors.New("location unavailable")

// Fix is a raw position as reported by a Locator.
type Fix struct {
	Lat       float64
	Lon       float64
	AccuracyM float64
}

type Locator interface {
	Locate(ctx context.Context) (Fix, error)
}

// StaticLocator always reports the same configured position.
type StaticLocator struct {
	Fix Fix
}

func (s StaticLocator) Locate(ctx context.Context) (Fix, error) {
	if err := ctx.Err(); err != nil {
		return Fix{}, err
	}
	return s.Fix, nil
}

type NoopLocator struct{}

func (NoopLocator) Locate(context.Context) (Fix, error) {
	return Fix{}, ErrLocationUnavailable
}

func NewLocator(conf *structures.Config) Locator {
	if !conf.Location.Enabled {
		return NoopLocator{}
	}
	return StaticLocator{Fix: Fix{
		Lat:       conf.Location.Lat,
		Lon:       conf.Location.Lon,
		AccuracyM: conf.Location.AccuracyM,
	}}
}

// Coarsen rounds latitude and longitude to two decimals (about 1km) and the
// accuracy to whole metres.
func Coarsen(f Fix) models.Location {
	return models.Location{
		Lat:       math.Round(f.Lat*100) / 100,
		Lon:       math.Round(f.Lon*100) / 100,
		AccuracyM: int(math.Round(f.AccuracyM)),
	}
}

// Valid reports whether the fix holds finite, in-range coordinates.
func (f Fix) Valid() bool {
	for _, v := range []float64{f.Lat, f.Lon, f.AccuracyM} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return f.Lat >= -90 && f.Lat <= 90 && f.Lon >= -180 && f.Lon <= 180 && f.AccuracyM >= 0
}

// Capture asks the locator for a fix, giving up after timeout. Any failure
// yields nil rather than an error.
func Capture(ctx context.Context, locator Locator, timeout time.Duration) *models.Location {
	if locator == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		fix Fix
		err error
	}
	done := make(chan result, 1)
	go func() {
		fix, err := locator.Locate(ctx)
		done <- result{fix: fix, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil
	case r := <-done:
		if r.err != nil || !r.fix.Valid() {
			return nil
		}
		loc := Coarsen(r.fix)
		return &loc
	}
}
