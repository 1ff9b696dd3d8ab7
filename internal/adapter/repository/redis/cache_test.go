package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/fundledger/internal/infrastructure/metrics"
	"github.com/iho/fundledger/internal/usecase"
)

func TestCacheSetAndGet(t *testing.T) {
	client, _ := newTestRedisClient(t)
	m := metrics.NewWith(prometheus.NewRegistry())
	cache := NewCache(client, m)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "interest_config:cfg-1", []byte(`{"id":"cfg-1"}`), time.Minute))

	val, err := cache.Get(ctx, "interest_config:cfg-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"cfg-1"}`, string(val))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheRequests.WithLabelValues("hit")))
}

func TestCacheMiss(t *testing.T) {
	client, _ := newTestRedisClient(t)
	m := metrics.NewWith(prometheus.NewRegistry())
	cache := NewCache(client, m)

	_, err := cache.Get(context.Background(), "absent")
	assert.True(t, errors.Is(err, usecase.ErrCacheMiss), "got %v", err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheRequests.WithLabelValues("miss")))
}

func TestCacheExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	cache := NewCache(client, nil)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	_, err := cache.Get(ctx, "short")
	assert.ErrorIs(t, err, usecase.ErrCacheMiss)
}

func TestCacheDelete(t *testing.T) {
	client, _ := newTestRedisClient(t)
	cache := NewCache(client, nil)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "foo", []byte("bar"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "foo"))

	_, err := cache.Get(ctx, "foo")
	assert.ErrorIs(t, err, usecase.ErrCacheMiss)
}

func TestCacheGetServerDown(t *testing.T) {
	client, mr := newTestRedisClient(t)
	cache := NewCache(client, nil)
	mr.Close()

	_, err := cache.Get(context.Background(), "foo")
	require.Error(t, err)
	assert.NotErrorIs(t, err, usecase.ErrCacheMiss)
}
