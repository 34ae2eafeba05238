package cache_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluminumlabs/incognito/pkg/cache"
)

func TestLRUCache_Basic(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		c := cache.NewLRUCache[string](30)

		require.NoError(t, c.Put("a", []byte("one")))
		require.NoError(t, c.Put("b", []byte("two")))
		require.NoError(t, c.Put("c", []byte("three")))

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, []byte("one"), val)

		val, ok = c.Get("c")
		assert.True(t, ok)
		assert.Equal(t, []byte("three"), val)

		assert.Equal(t, 3, c.Len())
		assert.Equal(t, int64(11), c.Size())
		assert.Equal(t, int64(30), c.Capacity())
	})

	t.Run("get non-existent", func(t *testing.T) {
		c := cache.NewLRUCache[string](10)

		val, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Nil(t, val)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("update existing adjusts size", func(t *testing.T) {
		c := cache.NewLRUCache[string](10)

		require.NoError(t, c.Put("a", []byte("1234")))
		require.NoError(t, c.Put("a", []byte("12")))

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, []byte("12"), val)
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, int64(2), c.Size())
	})

	t.Run("empty value", func(t *testing.T) {
		c := cache.NewLRUCache[string](1)

		require.NoError(t, c.Put("a", nil))
		_, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, int64(0), c.Size())
	})
}

func TestLRUCache_Eviction(t *testing.T) {
	t.Run("n plus one distinct keys evicts the first", func(t *testing.T) {
		c := cache.NewLRUCache[string](3)

		require.NoError(t, c.Put("a", []byte("1")))
		require.NoError(t, c.Put("b", []byte("2")))
		require.NoError(t, c.Put("c", []byte("3")))
		require.NoError(t, c.Put("d", []byte("4")))

		_, ok := c.Get("a")
		assert.False(t, ok, "a should have been evicted")

		for _, key := range []string{"b", "c", "d"} {
			_, ok := c.Get(key)
			assert.True(t, ok, key)
		}
		assert.Equal(t, 3, c.Len())
	})

	t.Run("get updates recency", func(t *testing.T) {
		c := cache.NewLRUCache[string](3)

		require.NoError(t, c.Put("a", []byte("1")))
		require.NoError(t, c.Put("b", []byte("2")))
		require.NoError(t, c.Put("c", []byte("3")))

		c.Get("a")
		require.NoError(t, c.Put("d", []byte("4")))

		_, ok := c.Get("b")
		assert.False(t, ok, "b should have been evicted")
		_, ok = c.Get("a")
		assert.True(t, ok)
	})

	t.Run("peek does not update recency", func(t *testing.T) {
		c := cache.NewLRUCache[string](2)

		require.NoError(t, c.Put("a", []byte("1")))
		require.NoError(t, c.Put("b", []byte("2")))

		_, ok := c.Peek("a")
		require.True(t, ok)
		require.NoError(t, c.Put("c", []byte("3")))

		_, ok = c.Peek("a")
		assert.False(t, ok)
	})

	t.Run("put updates recency", func(t *testing.T) {
		c := cache.NewLRUCache[string](3)

		require.NoError(t, c.Put("a", []byte("1")))
		require.NoError(t, c.Put("b", []byte("2")))
		require.NoError(t, c.Put("c", []byte("3")))
		require.NoError(t, c.Put("a", []byte("9")))
		require.NoError(t, c.Put("d", []byte("4")))

		_, ok := c.Get("b")
		assert.False(t, ok, "b should have been evicted")
		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, []byte("9"), val)
	})

	t.Run("large value evicts several entries", func(t *testing.T) {
		c := cache.NewLRUCache[string](10)

		require.NoError(t, c.Put("a", []byte("123")))
		require.NoError(t, c.Put("b", []byte("123")))
		require.NoError(t, c.Put("c", []byte("123")))
		require.NoError(t, c.Put("d", []byte("12345678")))

		assert.Equal(t, []string{"d"}, c.Keys())
		assert.Equal(t, int64(8), c.Size())
	})

	t.Run("growing overwrite evicts others", func(t *testing.T) {
		c := cache.NewLRUCache[string](10)

		require.NoError(t, c.Put("a", []byte("12345")))
		require.NoError(t, c.Put("b", []byte("12345")))
		require.NoError(t, c.Put("b", []byte("1234567")))

		assert.Equal(t, []string{"b"}, c.Keys())
		assert.Equal(t, int64(7), c.Size())
	})
}

func TestLRUCache_CapacityExceeded(t *testing.T) {
	t.Run("single value larger than capacity", func(t *testing.T) {
		c := cache.NewLRUCache[string](10)
		require.NoError(t, c.Put("keep", []byte("abc")))

		err := c.Put("big", []byte("123456789012"))
		assert.ErrorIs(t, err, cache.ErrCapacityExceeded)

		_, ok := c.Get("big")
		assert.False(t, ok)
		_, ok = c.Get("keep")
		assert.True(t, ok, "rejected put must not evict anything")
		assert.Equal(t, int64(3), c.Size())
	})

	t.Run("oversize overwrite drops the stale value", func(t *testing.T) {
		c := cache.NewLRUCache[string](10)
		require.NoError(t, c.Put("k", []byte("small")))

		err := c.Put("k", []byte("way too large!"))
		assert.ErrorIs(t, err, cache.ErrCapacityExceeded)

		_, ok := c.Get("k")
		assert.False(t, ok)
		assert.Equal(t, int64(0), c.Size())
	})

	t.Run("value exactly at capacity fits", func(t *testing.T) {
		c := cache.NewLRUCache[string](5)
		assert.NoError(t, c.Put("k", []byte("hello")))
		assert.Equal(t, int64(5), c.Size())
	})
}

func TestLRUCache_SizeNeverExceedsCapacity(t *testing.T) {
	const capacity = 64
	c := cache.NewLRUCache[string](capacity)
	rng := rand.New(rand.NewPCG(1, 2))

	for i := range 2000 {
		key := fmt.Sprintf("k%d", rng.IntN(40))
		value := make([]byte, rng.IntN(80))
		err := c.Put(key, value)
		if len(value) > capacity {
			require.ErrorIs(t, err, cache.ErrCapacityExceeded, "iteration %d", i)
		} else {
			require.NoError(t, err, "iteration %d", i)
		}
		if rng.IntN(3) == 0 {
			c.Get(fmt.Sprintf("k%d", rng.IntN(40)))
		}
		require.LessOrEqual(t, c.Size(), int64(capacity), "iteration %d", i)

		var sum int64
		for _, k := range c.Keys() {
			v, _ := c.Peek(k)
			sum += int64(len(v))
		}
		require.Equal(t, sum, c.Size(), "iteration %d", i)
	}
}

func TestLRUCache_EvictionCallback(t *testing.T) {
	c := cache.NewLRUCache[string](2)

	evicted := make(map[string]string)
	c.SetEvictCallback(func(key string, value []byte) {
		evicted[key] = string(value)
	})

	require.NoError(t, c.Put("a", []byte("1")))
	require.NoError(t, c.Put("b", []byte("2")))

	require.NoError(t, c.Put("c", []byte("3")))
	assert.Equal(t, "1", evicted["a"])

	c.Remove("b")
	_, ok := evicted["b"]
	assert.False(t, ok, "explicit remove is not an eviction")

	c.Clear()
	assert.Equal(t, "3", evicted["c"])
}

func TestLRUCache_Remove(t *testing.T) {
	c := cache.NewLRUCache[string](10)

	require.NoError(t, c.Put("a", []byte("1")))
	require.NoError(t, c.Put("b", []byte("22")))

	val, ok := c.Remove("b")
	assert.True(t, ok)
	assert.Equal(t, []byte("22"), val)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(1), c.Size())

	val, ok = c.Remove("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestLRUCache_Clear(t *testing.T) {
	c := cache.NewLRUCache[string](10)

	require.NoError(t, c.Put("a", []byte("1")))
	require.NoError(t, c.Put("b", []byte("2")))

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.Size())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestLRUCache_Keys(t *testing.T) {
	c := cache.NewLRUCache[string](10)

	require.NoError(t, c.Put("a", []byte("1")))
	require.NoError(t, c.Put("b", []byte("2")))
	require.NoError(t, c.Put("c", []byte("3")))
	c.Get("a")

	assert.Equal(t, []string{"a", "c", "b"}, c.Keys())
}

func TestLRUCache_EdgeCases(t *testing.T) {
	t.Run("panic on zero capacity", func(t *testing.T) {
		assert.Panics(t, func() {
			cache.NewLRUCache[string](0)
		})
	})

	t.Run("panic on negative capacity", func(t *testing.T) {
		assert.Panics(t, func() {
			cache.NewLRUCache[string](-1)
		})
	})
}

func BenchmarkLRUCache_Put(b *testing.B) {
	c := cache.NewLRUCache[int](1000)
	value := []byte("x")

	b.ResetTimer()
	for i := range b.N {
		_ = c.Put(i%2000, value)
	}
}

func BenchmarkLRUCache_Get(b *testing.B) {
	c := cache.NewLRUCache[int](1000)
	value := []byte("x")
	for i := range 1000 {
		_ = c.Put(i, value)
	}

	b.ResetTimer()
	for i := range b.N {
		c.Get(i % 1000)
	}
}
