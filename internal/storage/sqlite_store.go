// Package storage persists journal events in a local SQLite database.
//
// The events table is keyed by event id and carries three secondary indexes
// (by_dt, by_type, by_intensity). Reads always return the full set; filtering
// happens in memory in the query package.
package storage

import (
	"cerebro/internal/models"
	"cerebro/internal/providers"
	"cerebro/internal/structures"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SchemaVersion is stored in PRAGMA user_version once the schema exists.
const SchemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	dt INTEGER NOT NULL,
	type TEXT NOT NULL,
	intensity INTEGER NOT NULL,
	emotion TEXT,
	sleep REAL,
	stress REAL,
	state TEXT,
	notes TEXT,
	lat REAL,
	lon REAL,
	accuracy_m INTEGER
);
CREATE INDEX IF NOT EXISTS by_dt ON events(dt);
CREATE INDEX IF NOT EXISTS by_type ON events(type);
CREATE INDEX IF NOT EXISTS by_intensity ON events(intensity);
`

// Dt is stored as unix nanoseconds, which covers these years.
var (
	minStoredDt = time.Date(1678, 1, 1, 0, 0, 0, 0, time.UTC)
	maxStoredDt = time.Date(2262, 1, 1, 0, 0, 0, 0, time.UTC)
)

var errDtOutOfRange = errors.New("dt outside the storable range")

const selectColumns = `SELECT id, dt, type, intensity, emotion, sleep, stress, state, notes, lat, lon, accuracy_m FROM events`

type EventStoreInterface interface {
	Put(ctx context.Context, event models.Event) error
	GetAll(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Close() error
}

type SQLiteStore struct {
	db      *sql.DB
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewSQLiteStore(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (EventStoreInterface, error) {
	path := conf.Storage.Path
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &models.StorageError{Op: "open", Err: fmt.Errorf("failed to create directory: %w", err)}
	}

	busy := conf.Storage.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", path, busy.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &models.StorageError{Op: "open", Err: err}
	}
	// SQLite allows a single writer; one connection keeps writes ordered.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, logger: logger, metrics: metrics}
	if err := store.initialize(context.Background()); err != nil {
		db.Close()
		return nil, &models.StorageError{Op: "init", Err: err}
	}

	logger.Infof(providers.TypeStorage, "Opened journal store %s (schema v%d)", path, SchemaVersion)
	return store, nil
}

// initialize creates the schema once per schema version.
func (s *SQLiteStore) initialize(ctx context.Context) error {
	version, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if version >= SchemaVersion {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Infof(providers.TypeStorage, "Created events schema v%d", SchemaVersion)
	return nil
}

func (s *SQLiteStore) schemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	return version, err
}

// observe records the operation duration and wraps a failure as StorageError.
func (s *SQLiteStore) observe(op string, start time.Time, err error) error {
	s.metrics.ObserveStorageDuration(op, time.Since(start))
	if err == nil {
		return nil
	}
	s.metrics.IncStorageErrors(op)
	s.logger.Errorf(providers.TypeStorage, "%s failed: %s", op, err)
	return &models.StorageError{Op: op, Err: err}
}

// Put upserts the event by id. Dt is stored as unix nanoseconds, so it
// reads back unchanged.
func (s *SQLiteStore) Put(ctx context.Context, event models.Event) error {
	start := time.Now()
	if event.Dt.Before(minStoredDt) || !event.Dt.Before(maxStoredDt) {
		return s.observe("put", start, errDtOutOfRange)
	}

	var lat, lon sql.NullFloat64
	var acc sql.NullInt64
	if event.Loc != nil {
		lat = sql.NullFloat64{Float64: event.Loc.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: event.Loc.Lon, Valid: true}
		acc = sql.NullInt64{Int64: int64(event.Loc.AccuracyM), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, dt, type, intensity, emotion, sleep, stress, state, notes, lat, lon, accuracy_m)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			dt = excluded.dt,
			type = excluded.type,
			intensity = excluded.intensity,
			emotion = excluded.emotion,
			sleep = excluded.sleep,
			stress = excluded.stress,
			state = excluded.state,
			notes = excluded.notes,
			lat = excluded.lat,
			lon = excluded.lon,
			accuracy_m = excluded.accuracy_m
	`,
		event.ID, event.Dt.UnixNano(), event.Type, event.Intensity,
		nullString(event.Emotion), nullFloat(event.Sleep), nullFloat(event.Stress),
		nullString(event.State), nullString(event.Notes),
		lat, lon, acc,
	)
	return s.observe("put", start, err)
}

func (s *SQLiteStore) GetAll(ctx context.Context) ([]models.Event, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, selectColumns)
	if err != nil {
		return nil, s.observe("get_all", start, err)
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, s.observe("get_all", start, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, s.observe("get_all", start, err)
	}

	s.metrics.SetEventsTotal(len(events))
	return events, s.observe("get_all", start, nil)
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*models.Event, error) {
	start := time.Now()

	ev, err := scanEvent(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		s.metrics.ObserveStorageDuration("get", time.Since(start))
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, s.observe("get", start, err)
	}
	return &ev, s.observe("get", start, nil)
}

// Delete removes the event; a missing id is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	start := time.Now()
	_, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	return s.observe("delete", start, err)
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n)
	return n, s.observe("count", start, err)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var (
		ev                    models.Event
		dt                    int64
		emotion, state, notes sql.NullString
		sleep, stress         sql.NullFloat64
		lat, lon              sql.NullFloat64
		acc                   sql.NullInt64
	)
	err := row.Scan(&ev.ID, &dt, &ev.Type, &ev.Intensity, &emotion, &sleep, &stress, &state, &notes, &lat, &lon, &acc)
	if err != nil {
		return models.Event{}, err
	}

	ev.Dt = time.Unix(0, dt).UTC()
	ev.Emotion = stringPtr(emotion)
	ev.State = stringPtr(state)
	ev.Notes = stringPtr(notes)
	ev.Sleep = floatPtr(sleep)
	ev.Stress = floatPtr(stress)
	if lat.Valid && lon.Valid {
		ev.Loc = &models.Location{Lat: lat.Float64, Lon: lon.Float64, AccuracyM: int(acc.Int64)}
	}
	return ev, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
