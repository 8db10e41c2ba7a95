package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTLCache_SetGet_NoTTL(t *testing.T) {
	c := New[string, int]()
	c.Set("a", 1, 0)

	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, 1, c.Len())
}

func TestTTLCache_Expiry(t *testing.T) {
	c := New[uint, []uint]()

	base := time.Now()
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })

	c.Set(1, []uint{1, 2, 3}, time.Second)
	_, ok := c.Get(1)
	require.True(t, ok)

	base = base.Add(2 * time.Second)
	_, ok = c.Get(1)
	require.False(t, ok)

	c.PurgeExpired()
	require.Equal(t, 0, c.Len())
}

func TestTTLCache_DeleteClear(t *testing.T) {
	c := New[int, string]()
	c.Set(1, "a", 0)
	c.Set(2, "b", 0)

	c.Delete(1)
	_, ok := c.Get(1)
	require.False(t, ok)
	require.Equal(t, 1, c.Len())

	c.Clear()
	require.Equal(t, 0, c.Len())
}
