package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/edutube/internal/pkg/apperrors"
)

type entry struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func newHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheHelper(client, "test:"), mr
}

func TestCacheHelper_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c, mr := newHelper(t)

	require.NoError(t, c.Set(ctx, "u1", entry{ID: "u1", Role: "student"}, time.Minute))
	assert.True(t, mr.Exists("test:u1"))

	var got entry
	require.NoError(t, c.Get(ctx, "u1", &got))
	assert.Equal(t, entry{ID: "u1", Role: "student"}, got)

	require.NoError(t, c.Delete(ctx, "u1"))
	assert.ErrorIs(t, c.Get(ctx, "u1", &got), apperrors.ErrCacheNotFound)
}

func TestCacheHelper_TTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newHelper(t)

	require.NoError(t, c.Set(ctx, "u1", entry{ID: "u1"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var got entry
	assert.ErrorIs(t, c.Get(ctx, "u1", &got), apperrors.ErrCacheNotFound)
}

func TestCacheHelper_NilClientDegrades(t *testing.T) {
	ctx := context.Background()
	c := NewCacheHelper(nil, "test:")

	assert.False(t, c.Available())
	assert.NoError(t, c.Set(ctx, "k", entry{}, time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))

	var got entry
	assert.ErrorIs(t, c.Get(ctx, "k", &got), apperrors.ErrCacheNotAvailable)
}

func TestCacheOrExecute(t *testing.T) {
	ctx := context.Background()
	c, _ := newHelper(t)

	calls := 0
	load := func() (entry, error) {
		calls++
		return entry{ID: "u1", Role: "faculty"}, nil
	}

	first, err := CacheOrExecute(ctx, c, "u1", time.Minute, load)
	require.NoError(t, err)
	second, err := CacheOrExecute(ctx, c, "u1", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	_, err = CacheOrExecute(ctx, c, "u2", time.Minute, func() (entry, error) {
		return entry{}, errors.New("boom")
	})
	assert.Error(t, err)
}

func TestCacheOrExecute_WithoutRedis(t *testing.T) {
	c := NewCacheHelper(nil, "test:")
	calls := 0
	for i := 0; i < 2; i++ {
		_, err := CacheOrExecute(context.Background(), c, "k", time.Minute, func() (entry, error) {
			calls++
			return entry{ID: "k"}, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}
