package appstate

import (
	"context"
	"testing"
	"time"

	"trenai/internal/cache"
	"trenai/internal/models"
	"trenai/internal/trends"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSnapshotStore(t *testing.T) (*SnapshotStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSnapshotStore(client), mr
}

func TestSnapshot_AllowListOnly(t *testing.T) {
	t.Parallel()
	s := NewStore(1, time.Minute, nil)

	s.SetIdentity(&models.Identity{ID: 1, Name: "Sarah Johnson", Email: "sarah@example.com", Plan: models.PlanPro})
	s.LoadTrends(trends.Canonical())
	s.ApplyFilter(models.TrendFilter{Category: "Health & Fitness"})
	s.ToggleBookmark("2")
	s.RecordGeneratedContent(models.GeneratedContent{ID: "c1"})
	s.RecordAnalysis(models.UserAnalysis{ID: "a1"})
	s.SetGenerating(true)
	s.EnqueueNotification(KindInfo, "transient")

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Version)
	require.NotNil(t, snap.Identity)
	assert.True(t, snap.Authenticated)
	assert.Equal(t, []string{"2"}, snap.Bookmarks)
	require.Len(t, snap.History, 1)
	require.Len(t, snap.Analyses, 1)

	restored := NewStore(1, time.Minute, nil)
	restored.Restore(snap)

	id, authed := restored.Identity()
	assert.True(t, authed)
	assert.Equal(t, "Sarah Johnson", id.Name)
	assert.True(t, restored.Bookmarked("2"))
	assert.Equal(t, "c1", restored.History()[0].ID)
	assert.Equal(t, "a1", restored.Analyses()[0].ID)

	// Ephemeral state is rebuilt fresh, never restored.
	assert.Empty(t, restored.Trends())
	assert.True(t, restored.Filter().IsNeutral())
	assert.False(t, restored.Generating())
	assert.Empty(t, restored.Notifications())
}

func TestSnapshot_UnknownVersionIgnored(t *testing.T) {
	t.Parallel()
	s := NewStore(1, 0, nil)
	s.Restore(Snapshot{
		Version:  99,
		Identity: &models.Identity{ID: 1, Name: "Ghost"},
	})
	_, authed := s.Identity()
	assert.False(t, authed)
}

func TestSnapshotStore_RoundTrip(t *testing.T) {
	t.Parallel()
	ss, mr := newTestSnapshotStore(t)
	ctx := context.Background()

	snap := Snapshot{
		Version:       1,
		Identity:      &models.Identity{ID: 9, Name: "Alex Chen", Email: "alex@example.com", Plan: models.PlanStarter},
		Authenticated: true,
		Bookmarks:     []string{"1", "4"},
		History:       []models.GeneratedContent{{ID: "c1", Platform: "Blog"}},
	}
	require.NoError(t, ss.Save(ctx, 9, snap))

	got, err := ss.Load(ctx, 9)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alex Chen", got.Identity.Name)
	assert.Equal(t, []string{"1", "4"}, got.Bookmarks)

	ttl := mr.TTL(cache.StateSnapshotKey(9))
	assert.Equal(t, cache.StateSnapshotTTL, ttl)
}

func TestSnapshotStore_AbsentAndCorrupt(t *testing.T) {
	t.Parallel()
	ss, mr := newTestSnapshotStore(t)
	ctx := context.Background()

	got, err := ss.Load(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, got, "absent snapshot is a fresh session, not an error")

	require.NoError(t, mr.Set(cache.StateSnapshotKey(7), "{not json"))
	got, err = ss.Load(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, got, "corrupt snapshot falls back to a fresh session")

	require.NoError(t, mr.Set(cache.StateSnapshotKey(8), `{"version":99}`))
	got, err = ss.Load(ctx, 8)
	require.NoError(t, err)
	assert.Nil(t, got, "version mismatch falls back to a fresh session")
}

func TestSnapshotStore_Delete(t *testing.T) {
	t.Parallel()
	ss, _ := newTestSnapshotStore(t)
	ctx := context.Background()

	require.NoError(t, ss.Save(ctx, 5, Snapshot{Version: 1, Authenticated: true}))
	ss.Delete(ctx, 5)

	got, err := ss.Load(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotStore_NilClientIsNoop(t *testing.T) {
	t.Parallel()
	ss := NewSnapshotStore(nil)
	ctx := context.Background()

	require.NoError(t, ss.Save(ctx, 1, Snapshot{Version: 1}))
	got, err := ss.Load(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}
