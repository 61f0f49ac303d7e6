package appstate

import (
	"context"
	"sync"
	"time"
)

// Manager owns one Store per user, hydrating it from the persisted snapshot
// on first access within a process lifetime.
type Manager struct {
	mu        sync.Mutex
	stores    map[uint]*Store
	snapshots *SnapshotStore
	notifTTL  time.Duration
	emit      func(ToastEvent)
}

// NewManager builds a store registry. emit is passed through to every store
// it creates.
func NewManager(snapshots *SnapshotStore, notifTTL time.Duration, emit func(ToastEvent)) *Manager {
	return &Manager{
		stores:    map[uint]*Store{},
		snapshots: snapshots,
		notifTTL:  notifTTL,
		emit:      emit,
	}
}

// Get returns the user's store, creating and hydrating it on first access.
func (m *Manager) Get(ctx context.Context, userID uint) (*Store, error) {
	m.mu.Lock()
	if st, ok := m.stores[userID]; ok {
		m.mu.Unlock()
		return st, nil
	}
	m.mu.Unlock()

	// Hydrate outside the registry lock; snapshot loads hit Redis.
	var snap *Snapshot
	if m.snapshots != nil {
		loaded, err := m.snapshots.Load(ctx, userID)
		if err != nil {
			return nil, err
		}
		snap = loaded
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stores[userID]; ok {
		// Another request hydrated concurrently; keep the first store.
		return st, nil
	}
	st := NewStore(userID, m.notifTTL, m.emit)
	if snap != nil {
		st.Restore(*snap)
	}
	m.stores[userID] = st
	return st, nil
}

// Persist writes the user's current snapshot if a store exists.
func (m *Manager) Persist(ctx context.Context, userID uint) error {
	m.mu.Lock()
	st, ok := m.stores[userID]
	m.mu.Unlock()
	if !ok || m.snapshots == nil {
		return nil
	}
	return m.snapshots.Save(ctx, userID, st.Snapshot())
}

// Drop discards the in-memory store and cancels its timers. The persisted
// snapshot is left in place so the session state survives the next login.
func (m *Manager) Drop(userID uint) {
	m.mu.Lock()
	st, ok := m.stores[userID]
	delete(m.stores, userID)
	m.mu.Unlock()
	if ok {
		st.Close()
	}
}
