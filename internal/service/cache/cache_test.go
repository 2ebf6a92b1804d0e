package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"SwingBasket/internal/domain/models"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetPutClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, ok, err := c.Get(ctx, "PETR4.SA")
	require.NoError(t, err)
	assert.False(t, ok)

	snap := models.MarketSnapshot{Ticker: "PETR4", ProviderTicker: "PETR4.SA", CurrentPrice: 20}
	require.NoError(t, c.Put(ctx, "PETR4.SA", snap))

	got, ok, err := c.Get(ctx, "petr4.sa")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snap, got)

	require.NoError(t, c.Clear(ctx))
	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = c.Put(ctx, "VALE3.SA", models.MarketSnapshot{CurrentPrice: float64(i)})
			_, _, _ = c.Get(ctx, "VALE3.SA")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, c.Len())
}

func TestRedisCache_Get(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheWithClient(db, "test")

	snap := models.MarketSnapshot{Ticker: "PETR4", ProviderTicker: "PETR4.SA", CurrentPrice: 20}
	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	t.Run("hit", func(t *testing.T) {
		mock.ExpectGet("test:PETR4.SA").SetVal(string(raw))

		got, ok, err := c.Get(ctx, "PETR4.SA")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, snap, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss", func(t *testing.T) {
		mock.ExpectGet("test:VALE3.SA").RedisNil()

		_, ok, err := c.Get(ctx, "VALE3.SA")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		mock.ExpectGet("test:ITUB4.SA").SetErr(errors.New("connection refused"))

		_, ok, err := c.Get(ctx, "ITUB4.SA")
		require.Error(t, err)
		assert.False(t, ok)
	})
}

func TestRedisCache_PutWithoutExpiry(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheWithClient(db, "test")

	snap := models.MarketSnapshot{Ticker: "PETR4", ProviderTicker: "PETR4.SA"}
	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	mock.ExpectSet("test:PETR4.SA", raw, 0).SetVal("OK")

	require.NoError(t, c.Put(ctx, "PETR4.SA", snap))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Clear(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheWithClient(db, "test")

	mock.ExpectScan(0, "test:*", 200).SetVal([]string{"test:PETR4.SA", "test:VALE3.SA"}, 7)
	mock.ExpectUnlink("test:PETR4.SA", "test:VALE3.SA").SetVal(2)
	mock.ExpectScan(7, "test:*", 200).SetVal(nil, 0)

	require.NoError(t, c.Clear(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
