// Package storage defines the key-value store the link service persists to and
// provides its in-memory and Redis backends.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable marks transient failures of the backing store.
	ErrUnavailable = errors.New("store unavailable")
)

// KV is the set of key-value primitives the link service relies on. Keys hold
// either a string value, a list (most recent first) or a set.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)

	// LPush prepends value to the list at key and returns the new length.
	LPush(ctx context.Context, key, value string) (int64, error)
	// LRange returns elements start..stop inclusive; stop -1 means the end.
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	SAdd(ctx context.Context, key, member string) error
	SRem(ctx context.Context, key, member string) error
	SMembers(ctx context.Context, key string) ([]string, error)

	// Keys lists the string keys starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	PingContext(ctx context.Context) error
	Close() error
}
