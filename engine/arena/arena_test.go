package arena_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitlang/bit/engine/arena"
)

func TestPoolStoreStablePointers(t *testing.T) {
	a := arena.New(1 << 20)
	pool := arena.NewPool[int](a)

	p1 := pool.Store(1)
	p2 := pool.Store(2)

	require.Equal(t, 1, *p1)
	require.Equal(t, 2, *p2)
	require.NotEqual(t, p1, p2)
	require.Equal(t, 2, pool.Len())
}

func TestPoolGrowsAcrossChunks(t *testing.T) {
	a := arena.New(1 << 30)
	pool := arena.NewPool[int](a)

	var ptrs []*int
	for i := 0; i < 10000; i++ {
		ptrs = append(ptrs, pool.Store(i))
	}
	for i, p := range ptrs {
		require.Equal(t, i, *p)
	}
}

func TestArenaExhaustionPanics(t *testing.T) {
	a := arena.New(64)
	pool := arena.NewPool[[128]byte](a)

	require.Panics(t, func() {
		pool.Store([128]byte{})
	})
}

func TestSliceAndString(t *testing.T) {
	a := arena.New(1 << 20)

	src := []int{1, 2, 3}
	out := arena.Slice(a, src)
	require.Equal(t, src, out)

	src[0] = 99
	require.Equal(t, 1, out[0], "arena.Slice must copy, not alias")

	s := arena.String(a, "hello")
	require.Equal(t, "hello", s)
}

func TestGetReturnsSingleton(t *testing.T) {
	require.Same(t, arena.Get(), arena.Get())
}
