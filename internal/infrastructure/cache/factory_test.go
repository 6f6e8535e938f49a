package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bizledger/backend/internal/infrastructure/config"
)

// Port 1 on loopback refuses connections, so PING fails fast.
var unreachableRedis = config.RedisConfig{Host: "127.0.0.1", Port: 1}

func TestIdempotencyStoreFactory_MemoryDriver(t *testing.T) {
	f := NewIdempotencyStoreFactory(unreachableRedis)

	store, err := f.CreateStore(context.Background(), "memory")
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &InMemoryIdempotencyStore{}, store)
}

func TestIdempotencyStoreFactory_RedisFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := NewIdempotencyStoreFactory(unreachableRedis, WithLogger(zap.New(core)))

	store, err := f.CreateStore(context.Background(), "redis")
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	assert.Equal(t, 1, logs.FilterMessage("Redis unavailable, falling back to in-memory idempotency store").Len())
}

func TestIdempotencyStoreFactory_RedisRequired(t *testing.T) {
	f := NewIdempotencyStoreFactory(unreachableRedis, WithInMemoryFallback(false))

	_, err := f.CreateStore(context.Background(), "redis")
	assert.Error(t, err)
}
