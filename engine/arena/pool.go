package arena

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// chunkSize is the number of elements allocated per growth step. Matches
// the spirit of the source's single pre-reserved region: growth is rare,
// the common path is a lock-free index claim.
const chunkSize = 4096

// Pool is a typed bump allocator: Store claims the next free slot via an
// atomic fetch-add (the Go analogue of the source's CAS-retry cursor, since
// atomic.Int64.Add is itself implemented as a compare-and-swap retry loop on
// most architectures) and returns a stable pointer into a pre-sized chunk.
// Chunks are ordinary Go slices, so the garbage collector scans them
// exactly like any other allocation; only the bookkeeping (single counter,
// shared byte budget, abort on exhaustion) is arena-like.
type Pool[T any] struct {
	arena  *Arena
	mu     sync.Mutex
	chunks [][]T
	next   atomic.Int64
}

// NewPool creates a Pool that charges growth against a.
func NewPool[T any](a *Arena) *Pool[T] {
	if a == nil {
		a = Get()
	}
	return &Pool[T]{arena: a}
}

// Store copies v into the pool and returns a stable, exclusive pointer to
// it — the Go analogue of the source's Arena.store, which "moves a value
// into the arena and returns an exclusive reference whose lifetime equals
// the arena's."
func (p *Pool[T]) Store(v T) *T {
	idx := p.next.Add(1) - 1
	chunk := idx / chunkSize
	slot := idx % chunkSize

	p.mu.Lock()
	for int64(len(p.chunks)) <= chunk {
		var zero T
		p.arena.reserve(int64(unsafe.Sizeof(zero)) * chunkSize)
		p.chunks = append(p.chunks, make([]T, chunkSize))
	}
	c := p.chunks[chunk]
	p.mu.Unlock()

	c[slot] = v
	return &c[slot]
}

// Len reports how many elements have been claimed so far.
func (p *Pool[T]) Len() int { return int(p.next.Load()) }

// Arena returns the Arena this pool charges its growth against.
func (p *Pool[T]) Arena() *Arena { return p.arena }
