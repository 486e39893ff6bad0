package storage

import (
	"context"
	"sync"
	"time"
)

// ScheduleStatus records the timer bookkeeping for one schedule.
type ScheduleStatus struct {
	Last        time.Time `json:"last"`         // scheduled time of the last run
	Next        time.Time `json:"next"`         // next expected trigger
	LastUpdated time.Time `json:"last_updated"` // wall clock of the last save
}

// StatusStore persists schedule status between process restarts.
type StatusStore interface {
	Load(ctx context.Context, schedule string) (ScheduleStatus, error)
	Save(ctx context.Context, schedule string, st ScheduleStatus) error
	Ping(ctx context.Context) error
}

// MemoryStore is a process-local StatusStore.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]ScheduleStatus
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]ScheduleStatus{}}
}

func (m *MemoryStore) Load(_ context.Context, schedule string) (ScheduleStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[schedule], nil
}

func (m *MemoryStore) Save(_ context.Context, schedule string, st ScheduleStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st.LastUpdated = time.Now().UTC()
	m.data[schedule] = st
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}
