package cron

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	values map[string]string
}

func (m *memoryStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func TestRedisLock(t *testing.T) {
	store := &memoryStore{values: map[string]string{}}
	ctx := context.Background()

	first, err := NewRedisLock(store, "dp:lock:cron", time.Minute)
	require.NoError(t, err)
	second, err := NewRedisLock(store, "dp:lock:cron", time.Minute)
	require.NoError(t, err)

	ok, err := first.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, second.Release(ctx))
	assert.Contains(t, store.values, "dp:lock:cron")

	require.NoError(t, first.Release(ctx))
	assert.NotContains(t, store.values, "dp:lock:cron")

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRedisLockLeavesForeignOwner(t *testing.T) {
	store := &memoryStore{values: map[string]string{}}
	ctx := context.Background()

	lock, err := NewRedisLock(store, "k", 0)
	require.NoError(t, err)
	ok, err := lock.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	store.values["k"] = "someone-else"
	require.NoError(t, lock.Release(ctx))
	assert.Equal(t, "someone-else", store.values["k"])
}

func TestNewRedisLockValidates(t *testing.T) {
	_, err := NewRedisLock(nil, "k", time.Second)
	require.Error(t, err)
	_, err = NewRedisLock(&memoryStore{}, "", time.Second)
	require.Error(t, err)
}
