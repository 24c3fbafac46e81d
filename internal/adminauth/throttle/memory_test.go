package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_LocksAfterLimit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	th := NewInMemory(Config{MaxFailedAttempts: 3, Lockout: 10 * time.Minute}).
		WithClock(func() time.Time { return now })

	for i := 1; i <= 2; i++ {
		locked, err := th.RecordFailure(ctx, "ops@example.com")
		require.NoError(t, err)
		assert.False(t, locked, "attempt %d", i)
	}
	locked, err := th.RecordFailure(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.True(t, locked)

	isLocked, err := th.IsLocked(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.True(t, isLocked)

	other, err := th.IsLocked(ctx, "other@example.com")
	require.NoError(t, err)
	assert.False(t, other)
}

func TestInMemory_WindowExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	th := NewInMemory(Config{MaxFailedAttempts: 1, Lockout: time.Minute}).
		WithClock(func() time.Time { return now })

	_, _ = th.RecordFailure(ctx, "a@example.com")
	locked, _ := th.IsLocked(ctx, "a@example.com")
	assert.True(t, locked)

	now = now.Add(time.Minute)
	locked, _ = th.IsLocked(ctx, "a@example.com")
	assert.False(t, locked)
}

func TestInMemory_Reset(t *testing.T) {
	ctx := context.Background()
	th := NewInMemory(Config{MaxFailedAttempts: 1, Lockout: time.Hour})

	_, _ = th.RecordFailure(ctx, "a@example.com")
	require.NoError(t, th.Reset(ctx, "a@example.com"))

	locked, err := th.IsLocked(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, 5, cfg.MaxFailedAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Lockout)
}
