package link

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestRecord_Lifecycle(t *testing.T) {
	r := New("abc123", "alice", "https://example.com", t0)
	assert.Equal(t, Active{}, r.State())

	require.NoError(t, r.SoftDelete(t0.Add(time.Minute)))
	assert.Equal(t, SoftDeleted{DeletedAt: t0.Add(time.Minute)}, r.State())
	assert.False(t, r.Active)
	assert.Equal(t, t0.Add(time.Minute), r.UpdatedAt)

	err := r.SoftDelete(t0.Add(2 * time.Minute))
	assert.True(t, errors.Is(err, ErrInactive))
	assert.Equal(t, t0.Add(time.Minute), *r.DeletedAt, "second delete must not move deletedAt")

	require.NoError(t, r.Reactivate(t0.Add(3*time.Minute)))
	assert.Equal(t, Active{}, r.State())
	assert.Nil(t, r.DeletedAt)
	assert.Equal(t, "https://example.com", r.LongURL)
	assert.Equal(t, "abc123", r.Code)

	err = r.Reactivate(t0.Add(4 * time.Minute))
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestRecord_TouchIsMonotonic(t *testing.T) {
	r := New("abc123", "alice", "https://example.com", t0)

	r.Retarget("https://example.org", t0.Add(-time.Hour))

	assert.Equal(t, "https://example.org", r.LongURL)
	assert.Equal(t, t0, r.UpdatedAt)
}

func TestRecord_OwnedBy(t *testing.T) {
	r := New("abc123", "alice", "https://example.com", t0)

	assert.True(t, r.OwnedBy("alice", false))
	assert.False(t, r.OwnedBy("bob", false))
	assert.True(t, r.OwnedBy("bob", true))
	assert.False(t, r.OwnedBy("", false))
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("alice", "https://example.com")

	assert.Len(t, a, 64)
	assert.Equal(t, a, Fingerprint("alice", "https://example.com"))
	assert.NotEqual(t, a, Fingerprint("bob", "https://example.com"))
	assert.NotEqual(t, a, Fingerprint("alice", "https://example.com/"))
}
