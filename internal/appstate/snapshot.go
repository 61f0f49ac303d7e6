package appstate

import (
	"context"
	"encoding/json"
	"errors"

	"trenai/internal/cache"
	"trenai/internal/models"

	"github.com/redis/go-redis/v9"
)

// snapshotVersion tags the persisted schema. Snapshots with an unknown
// version are discarded rather than partially decoded.
const snapshotVersion = 1

// Snapshot is the explicit allow-list of session state that survives
// reloads: identity, the auth flag, bookmarks, generation history, and
// analyses. Trends, filter criteria, loading flags, and the notification
// queue are ephemeral and always rebuilt fresh.
type Snapshot struct {
	Version       int                       `json:"version"`
	Identity      *models.Identity          `json:"identity,omitempty"`
	Authenticated bool                      `json:"authenticated"`
	Bookmarks     []string                  `json:"bookmarks,omitempty"`
	History       []models.GeneratedContent `json:"history,omitempty"`
	Analyses      []models.UserAnalysis     `json:"analyses,omitempty"`
}

// Snapshot captures the persistable slice of the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Version:       snapshotVersion,
		Authenticated: s.authenticated,
		History:       append([]models.GeneratedContent(nil), s.history...),
		Analyses:      append([]models.UserAnalysis(nil), s.analyses...),
	}
	if s.identity != nil {
		cp := *s.identity
		snap.Identity = &cp
	}
	for id := range s.bookmarks {
		snap.Bookmarks = append(snap.Bookmarks, id)
	}
	return snap
}

// Restore rebuilds the persistable slice from a snapshot. Ephemeral state is
// left untouched. Snapshots from a different schema version are ignored.
func (s *Store) Restore(snap Snapshot) {
	if snap.Version != snapshotVersion {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Identity != nil {
		cp := *snap.Identity
		s.identity = &cp
		s.authenticated = snap.Authenticated
	}
	s.bookmarks = make(map[string]struct{}, len(snap.Bookmarks))
	for _, id := range snap.Bookmarks {
		s.bookmarks[id] = struct{}{}
	}
	s.history = append([]models.GeneratedContent(nil), snap.History...)
	s.analyses = append([]models.UserAnalysis(nil), snap.Analyses...)
}

// SnapshotStore persists session snapshots in Redis under a bounded TTL.
type SnapshotStore struct {
	client *redis.Client
}

// NewSnapshotStore wraps a Redis client. A nil client disables persistence;
// all operations become no-ops.
func NewSnapshotStore(client *redis.Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

// Save writes a user's snapshot, refreshing the dormancy TTL.
func (ss *SnapshotStore) Save(ctx context.Context, userID uint, snap Snapshot) error {
	if ss.client == nil {
		return nil
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := ss.client.Set(ctx, cache.StateSnapshotKey(userID), payload, cache.StateSnapshotTTL).Err(); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Load reads a user's snapshot. Absent or unreadable snapshots return nil
// without error; a fresh session is always a valid fallback.
func (ss *SnapshotStore) Load(ctx context.Context, userID uint) (*Snapshot, error) {
	if ss.client == nil {
		return nil, nil
	}
	payload, err := ss.client.Get(ctx, cache.StateSnapshotKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, nil
	}
	if snap.Version != snapshotVersion {
		return nil, nil
	}
	return &snap, nil
}

// Delete drops a user's persisted snapshot.
func (ss *SnapshotStore) Delete(ctx context.Context, userID uint) {
	if ss.client == nil {
		return
	}
	ss.client.Del(ctx, cache.StateSnapshotKey(userID))
}
