package api_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/trustedhb/qc-server/internal/api"
	"github.com/trustedhb/qc-server/internal/api/mocks"
)

func TestFindAndCacheHit(t *testing.T) {
	cache := &mocks.MockCacher{
		GetFunc: func(ctx context.Context, key string, dest any) error {
			p, ok := dest.(*string)
			if !ok {
				return errors.New("unexpected destination type")
			}
			*p = "cached"
			return nil
		},
	}
	var sf singleflight.Group

	value, err := api.FindAndCache(context.Background(), cache, &sf, "key", time.Minute, zap.NewNop(),
		func(ctx context.Context) (string, error) {
			return "fetched", errors.New("fetch should not run on a hit")
		})

	require.NoError(t, err)
	assert.Equal(t, "cached", value)
}

func TestFindAndCacheMiss(t *testing.T) {
	t.Run("redis.Nil falls through to the fetcher", func(t *testing.T) {
		set := make(chan string, 1)
		cache := &mocks.MockCacher{
			GetFunc: func(ctx context.Context, key string, dest any) error {
				return redis.Nil
			},
			SetFunc: func(ctx context.Context, key string, value any, expiration time.Duration) error {
				set <- key
				return nil
			},
		}
		var sf singleflight.Group

		value, err := api.FindAndCache(context.Background(), cache, &sf, "key", time.Minute, zap.NewNop(),
			func(ctx context.Context) (string, error) {
				return "fetched", nil
			})

		require.NoError(t, err)
		assert.Equal(t, "fetched", value)

		select {
		case key := <-set:
			assert.Equal(t, "key", key)
		case <-time.After(2 * time.Second):
			t.Fatal("cache was never populated after the miss")
		}
	})

	t.Run("unexpected cache errors also count as misses", func(t *testing.T) {
		cache := &mocks.MockCacher{
			GetFunc: func(ctx context.Context, key string, dest any) error {
				return errors.New("connection refused")
			},
		}
		var sf singleflight.Group

		value, err := api.FindAndCache(context.Background(), cache, &sf, "key", time.Minute, zap.NewNop(),
			func(ctx context.Context) (string, error) {
				return "fetched", nil
			})

		require.NoError(t, err)
		assert.Equal(t, "fetched", value)
	})

	t.Run("fetch errors propagate", func(t *testing.T) {
		cache := &mocks.MockCacher{
			GetFunc: func(ctx context.Context, key string, dest any) error {
				return redis.Nil
			},
		}
		var sf singleflight.Group
		boom := errors.New("boom")

		_, err := api.FindAndCache(context.Background(), cache, &sf, "key", time.Minute, zap.NewNop(),
			func(ctx context.Context) (string, error) {
				return "", boom
			})

		assert.ErrorIs(t, err, boom)
	})
}

func TestFindAndCacheSingleflight(t *testing.T) {
	cache := &mocks.MockCacher{
		GetFunc: func(ctx context.Context, key string, dest any) error {
			return redis.Nil
		},
	}
	var sf singleflight.Group

	var fetches atomic.Int64
	release := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		fetches.Add(1)
		<-release
		return "fetched", nil
	}

	const callers = 5
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := api.FindAndCache(context.Background(), cache, &sf, "key", time.Minute, zap.NewNop(), fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// give every caller time to join the in-flight fetch
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), fetches.Load())
	for _, v := range results {
		assert.Equal(t, "fetched", v)
	}
}
