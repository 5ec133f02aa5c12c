package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shorturlproject/shorturl/internal/storage"
)

func TestMemoryStorage(t *testing.T) {
	runKVContract(t, func(t *testing.T) storage.KV {
		return storage.CreateMemoryStorage()
	})
}

func TestMemoryStorage_IncrNonInteger(t *testing.T) {
	mem := storage.CreateMemoryStorage()
	_ = mem.Set(context.Background(), "stats:x", "nope")

	_, err := mem.Incr(context.Background(), "stats:x")
	assert.Error(t, err)
}

func TestMemoryStorage_LRangeReturnsCopy(t *testing.T) {
	ctx := context.Background()
	mem := storage.CreateMemoryStorage()
	_, _ = mem.LPush(ctx, "l", "a")

	got, _ := mem.LRange(ctx, "l", 0, -1)
	got[0] = "mutated"

	again, _ := mem.LRange(ctx, "l", 0, -1)
	assert.Equal(t, []string{"a"}, again)
}
