package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shorturlproject/shorturl/internal/storage"
)

// runKVContract exercises the behaviour every KV backend must share.
func runKVContract(t *testing.T, newKV func(t *testing.T) storage.KV) {
	ctx := context.Background()

	t.Run("get set del", func(t *testing.T) {
		kv := newKV(t)

		_, err := kv.Get(ctx, "short:missing")
		assert.True(t, errors.Is(err, storage.ErrNotFound))

		require.NoError(t, kv.Set(ctx, "short:abc123", "https://example.com"))
		got, err := kv.Get(ctx, "short:abc123")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", got)

		require.NoError(t, kv.Set(ctx, "short:abc123", "https://example.org"))
		got, err = kv.Get(ctx, "short:abc123")
		require.NoError(t, err)
		assert.Equal(t, "https://example.org", got)

		require.NoError(t, kv.Del(ctx, "short:abc123"))
		_, err = kv.Get(ctx, "short:abc123")
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})

	t.Run("incr", func(t *testing.T) {
		kv := newKV(t)

		n, err := kv.Incr(ctx, "stats:abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		require.NoError(t, kv.Set(ctx, "stats:def456", "41"))
		n, err = kv.Incr(ctx, "stats:def456")
		require.NoError(t, err)
		assert.Equal(t, int64(42), n)

		got, err := kv.Get(ctx, "stats:def456")
		require.NoError(t, err)
		assert.Equal(t, "42", got)
	})

	t.Run("lists are most recent first", func(t *testing.T) {
		kv := newKV(t)

		for _, v := range []string{"a", "b", "c", "d"} {
			_, err := kv.LPush(ctx, "history:abc123", v)
			require.NoError(t, err)
		}

		all, err := kv.LRange(ctx, "history:abc123", 0, -1)
		require.NoError(t, err)
		assert.Equal(t, []string{"d", "c", "b", "a"}, all)

		head, err := kv.LRange(ctx, "history:abc123", 0, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"d", "c"}, head)

		empty, err := kv.LRange(ctx, "history:none", 0, -1)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("sets", func(t *testing.T) {
		kv := newKV(t)

		require.NoError(t, kv.SAdd(ctx, "user_links:alice", "abc123"))
		require.NoError(t, kv.SAdd(ctx, "user_links:alice", "def456"))
		require.NoError(t, kv.SAdd(ctx, "user_links:alice", "abc123"))

		members, err := kv.SMembers(ctx, "user_links:alice")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"abc123", "def456"}, members)

		require.NoError(t, kv.SRem(ctx, "user_links:alice", "abc123"))
		require.NoError(t, kv.SRem(ctx, "user_links:alice", "missing"))

		members, err = kv.SMembers(ctx, "user_links:alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"def456"}, members)
	})

	t.Run("keys by prefix", func(t *testing.T) {
		kv := newKV(t)

		require.NoError(t, kv.Set(ctx, "short:a", "1"))
		require.NoError(t, kv.Set(ctx, "short:b", "2"))
		require.NoError(t, kv.Set(ctx, "user:alice", "{}"))

		keys, err := kv.Keys(ctx, "short:")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"short:a", "short:b"}, keys)
	})

	t.Run("ping", func(t *testing.T) {
		kv := newKV(t)
		assert.NoError(t, kv.PingContext(ctx))
	})
}
