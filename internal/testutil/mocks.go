package testutil

import (
	"cerebro/internal/models"
	"cerebro/internal/providers"
	"context"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns the number of recorded entries at the given level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu             sync.Mutex
	StorageOps     map[string]int
	StorageErrors  map[string]int
	BackupCalls    int
	EventsTotal    int
	CacheHits      int
	CacheMisses    int
	RequestsByPath map[string]int
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RequestsByPath == nil {
		m.RequestsByPath = make(map[string]int)
	}
	m.RequestsByPath[endpoint]++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObserveStorageDuration(op string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StorageOps == nil {
		m.StorageOps = make(map[string]int)
	}
	m.StorageOps[op]++
}
func (m *MockMetrics) IncStorageErrors(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StorageErrors == nil {
		m.StorageErrors = make(map[string]int)
	}
	m.StorageErrors[op]++
}
func (m *MockMetrics) ObserveBackupDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BackupCalls++
}
func (m *MockMetrics) SetEventsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EventsTotal = count
}

// MemoryStore implements storage.EventStoreInterface in memory. Err, when
// set, is returned from every operation.
type MemoryStore struct {
	mu     sync.Mutex
	Events map[string]models.Event
	Order  []string
	Err    error
	Closed bool
}

func NewMemoryStore(events ...models.Event) *MemoryStore {
	s := &MemoryStore{Events: make(map[string]models.Event)}
	for _, ev := range events {
		_ = s.Put(context.Background(), ev)
	}
	return s
}

func (s *MemoryStore) Put(_ context.Context, event models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return &models.StorageError{Op: "put", Err: s.Err}
	}
	if _, ok := s.Events[event.ID]; !ok {
		s.Order = append(s.Order, event.ID)
	}
	s.Events[event.ID] = event
	return nil
}

func (s *MemoryStore) GetAll(_ context.Context) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, &models.StorageError{Op: "get_all", Err: s.Err}
	}
	out := make([]models.Event, 0, len(s.Order))
	for _, id := range s.Order {
		if ev, ok := s.Events[id]; ok {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, &models.StorageError{Op: "get", Err: s.Err}
	}
	ev, ok := s.Events[id]
	if !ok {
		return nil, models.ErrEventNotFound
	}
	return &ev, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return &models.StorageError{Op: "delete", Err: s.Err}
	}
	if _, ok := s.Events[id]; !ok {
		return nil
	}
	delete(s.Events, id)
	for i, v := range s.Order {
		if v == id {
			s.Order = append(s.Order[:i], s.Order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, &models.StorageError{Op: "count", Err: s.Err}
	}
	return len(s.Events), nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// Str and Num build optional event fields.
func Str(s string) *string { return &s }

func Num(f float64) *float64 { return &f }
