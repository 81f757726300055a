package lock

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalGuard(t *testing.T) {
	guard := NewLocalGuard()
	ctx := context.Background()

	release, ok, err := guard.Acquire(ctx, "payroll:generate:emp-1:2024-05")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = guard.Acquire(ctx, "payroll:generate:emp-1:2024-05")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = guard.Acquire(ctx, "payroll:generate:emp-2:2024-05")
	require.NoError(t, err)
	assert.True(t, ok)

	release()
	release()
	_, ok, err = guard.Acquire(ctx, "payroll:generate:emp-1:2024-05")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisGuard(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	client, err := Connect(ctx, addr, os.Getenv("REDIS_PASSWORD"))
	require.NoError(t, err)
	defer client.Close()

	guard := NewRedisGuard(client, 10*time.Second)
	key := "test:lock:" + uuid.NewString()

	release, ok, err := guard.Acquire(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = guard.Acquire(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	release()
	release2, ok, err := guard.Acquire(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	release2()
}
