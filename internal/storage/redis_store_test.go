package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-trend-blogger/internal/config"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := DialRedis(config.RedisConfig{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb), mr
}

func TestRedisStoreMissingKey(t *testing.T) {
	s, _ := newTestRedisStore(t)

	st, err := s.Load(context.Background(), "weekly-blog")
	require.NoError(t, err)
	assert.Equal(t, ScheduleStatus{}, st)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedisStore(t)

	last := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	next := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(ctx, "weekly-blog", ScheduleStatus{Last: last, Next: next}))

	st, err := s.Load(ctx, "weekly-blog")
	require.NoError(t, err)
	assert.True(t, st.Last.Equal(last))
	assert.True(t, st.Next.Equal(next))
	assert.False(t, st.LastUpdated.IsZero())

	key := "blogger:schedule:weekly-blog"
	require.True(t, mr.Exists(key))
	assert.Equal(t, 90*24*time.Hour, mr.TTL(key))

	raw, err := mr.Get(key)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2026-03-09T09:00:00Z", doc["next"])
	assert.Equal(t, "2026-03-02T09:00:00Z", doc["last"])
}

func TestRedisStoreCorruptValue(t *testing.T) {
	s, mr := newTestRedisStore(t)
	require.NoError(t, mr.Set("blogger:schedule:weekly-blog", "not json"))

	_, err := s.Load(context.Background(), "weekly-blog")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage: decode status weekly-blog")
}

func TestRedisStorePing(t *testing.T) {
	s, _ := newTestRedisStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
