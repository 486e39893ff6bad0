package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	st, err := m.Load(ctx, "weekly-blog")
	require.NoError(t, err)
	assert.True(t, st.Next.IsZero(), "missing schedule loads as zero status")

	next := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, m.Save(ctx, "weekly-blog", ScheduleStatus{Next: next}))

	st, err = m.Load(ctx, "weekly-blog")
	require.NoError(t, err)
	assert.Equal(t, next, st.Next)
	assert.False(t, st.LastUpdated.IsZero())

	other, err := m.Load(ctx, "other")
	require.NoError(t, err)
	assert.True(t, other.Next.IsZero())

	assert.NoError(t, m.Ping(ctx))
}

func TestStatusKey(t *testing.T) {
	assert.Equal(t, "blogger:schedule:weekly-blog", statusKey("weekly-blog"))
}
