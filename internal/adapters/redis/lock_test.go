package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxfield/nsweep/internal/adapters/redis"
)

func TestLocker_LockUnlock(t *testing.T) {
	client := newTestClient(t)
	locker := redis.NewLocker(client, "nsweep:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "sweep-1", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))

	// Re-acquire after release must succeed immediately.
	unlock2, err := locker.Lock(ctx, "sweep-1", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestLocker_ContendedLockTimesOut(t *testing.T) {
	client := newTestClient(t)
	locker := redis.NewLocker(client, "nsweep:")

	unlock, err := locker.Lock(context.Background(), "sweep-busy", 30*time.Second)
	require.NoError(t, err)
	defer unlock(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, "sweep-busy", 30*time.Second)
	assert.ErrorIs(t, err, redis.ErrLockAcquire)
}

func TestLocker_IndependentKeys(t *testing.T) {
	client := newTestClient(t)
	locker := redis.NewLocker(client, "nsweep:")
	ctx := context.Background()

	unlockA, err := locker.Lock(ctx, "sweep-a", 5*time.Second)
	require.NoError(t, err)
	defer unlockA(ctx)

	// A lock on a different sweep is not blocked.
	unlockB, err := locker.Lock(ctx, "sweep-b", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlockB(ctx))
}
