package appstate

import (
	"context"
	"sync"
	"testing"
	"time"

	"trenai/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetIsStablePerUser(t *testing.T) {
	t.Parallel()
	m := NewManager(nil, time.Minute, nil)
	ctx := context.Background()

	s1, err := m.Get(ctx, 1)
	require.NoError(t, err)
	again, err := m.Get(ctx, 1)
	require.NoError(t, err)
	assert.Same(t, s1, again)

	s2, err := m.Get(ctx, 2)
	require.NoError(t, err)
	assert.NotSame(t, s1, s2)
}

func TestManager_ConcurrentGetYieldsOneStore(t *testing.T) {
	t.Parallel()
	m := NewManager(nil, time.Minute, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	stores := make([]*Store, 16)
	for i := range stores {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st, err := m.Get(ctx, 1)
			assert.NoError(t, err)
			stores[i] = st
		}(i)
	}
	wg.Wait()

	for _, st := range stores[1:] {
		assert.Same(t, stores[0], st)
	}
}

func TestManager_PersistAndRehydrate(t *testing.T) {
	t.Parallel()
	ss, _ := newTestSnapshotStore(t)
	ctx := context.Background()

	m := NewManager(ss, time.Minute, nil)
	st, err := m.Get(ctx, 3)
	require.NoError(t, err)
	st.SetIdentity(&models.Identity{ID: 3, Name: "Sarah Johnson", Plan: models.PlanPro})
	st.ToggleBookmark("2")
	st.RecordGeneratedContent(models.GeneratedContent{ID: "c1"})
	require.NoError(t, m.Persist(ctx, 3))

	// Simulate a process restart with a fresh manager over the same Redis.
	m2 := NewManager(ss, time.Minute, nil)
	st2, err := m2.Get(ctx, 3)
	require.NoError(t, err)
	assert.NotSame(t, st, st2)

	id, authed := st2.Identity()
	assert.True(t, authed)
	assert.Equal(t, "Sarah Johnson", id.Name)
	assert.True(t, st2.Bookmarked("2"))
	require.Len(t, st2.History(), 1)
}

func TestManager_PersistWithoutStoreIsNoop(t *testing.T) {
	t.Parallel()
	ss, mr := newTestSnapshotStore(t)
	m := NewManager(ss, time.Minute, nil)

	require.NoError(t, m.Persist(context.Background(), 999))
	assert.Empty(t, mr.Keys())
}

func TestManager_DropKeepsSnapshot(t *testing.T) {
	t.Parallel()
	ss, _ := newTestSnapshotStore(t)
	ctx := context.Background()

	m := NewManager(ss, time.Minute, nil)
	st, err := m.Get(ctx, 4)
	require.NoError(t, err)
	st.SetIdentity(&models.Identity{ID: 4, Name: "Alex Chen"})
	require.NoError(t, m.Persist(ctx, 4))

	m.Drop(4)

	st2, err := m.Get(ctx, 4)
	require.NoError(t, err)
	assert.NotSame(t, st, st2)
	_, authed := st2.Identity()
	assert.True(t, authed, "dropped session rehydrates from its snapshot")
}
