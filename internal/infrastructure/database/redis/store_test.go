package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/your-org/storefront-client/internal/infrastructure/kv"
	"github.com/your-org/storefront-client/internal/pkg/logger"
)

func newTestStore(t *testing.T, mr *miniredis.Miniredis) *Store {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store, err := NewStore(context.Background(), client, "test", "storage:changes", logger.Discard())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
		_ = client.Close()
	})
	return store
}

type recorder struct {
	mu     sync.Mutex
	events []kv.ChangeEvent
}

func (r *recorder) add(ev kv.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) snapshot() []kv.ChangeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]kv.ChangeEvent(nil), r.events...)
}

func TestStore_GetSetRemove(t *testing.T) {
	mr := miniredis.RunT(t)
	store := newTestStore(t, mr)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "auth_tokens")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "auth_tokens", `{"access":"a","refresh":"r"}`))

	raw, err := mr.Get("test:auth_tokens")
	require.NoError(t, err)
	assert.Equal(t, `{"access":"a","refresh":"r"}`, raw)

	value, found, err := store.Get(ctx, "auth_tokens")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"access":"a","refresh":"r"}`, value)

	require.NoError(t, store.Remove(ctx, "auth_tokens"))
	assert.False(t, mr.Exists("test:auth_tokens"))
}

func TestStore_ChangeNotificationAcrossSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	tab1 := newTestStore(t, mr)
	tab2 := newTestStore(t, mr)
	ctx := context.Background()

	var own, other recorder
	defer tab1.OnChange("auth_tokens", own.add)()
	defer tab2.OnChange("auth_tokens", other.add)()

	require.NoError(t, tab1.Set(ctx, "auth_tokens", `{"access":"a"}`))
	require.NoError(t, tab1.Remove(ctx, "auth_tokens"))

	require.Eventually(t, func() bool {
		return len(other.snapshot()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	events := other.snapshot()
	assert.Equal(t, kv.ChangeEvent{Key: "auth_tokens", NewValue: `{"access":"a"}`}, events[0])
	assert.Equal(t, kv.ChangeEvent{Key: "auth_tokens", Deleted: true}, events[1])

	// give the listener a moment to (not) deliver tab1's own writes
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, own.snapshot())
}

func TestStore_IgnoresMalformedMessages(t *testing.T) {
	mr := miniredis.RunT(t)
	tab1 := newTestStore(t, mr)
	tab2 := newTestStore(t, mr)

	var rec recorder
	defer tab2.OnChange("k", rec.add)()

	mr.Publish("test:storage:changes", "not json")
	require.NoError(t, tab1.Set(context.Background(), "k", "v"))

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStore_CloseStopsListener(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store, err := NewStore(context.Background(), client, "", "changes", logger.Discard())
	require.NoError(t, err)

	require.NoError(t, store.Close())
	require.NoError(t, client.Close())
}
