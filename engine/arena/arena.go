// Package arena implements the bump allocator described in spec §4.1: a
// single shared byte budget, claimed by atomic fetch-add, that every node,
// value, symbol and token-list allocation in a compile is charged against.
// Exhaustion is fatal, matching the source's "Arena: could not allocate"
// panic.
//
// Grounded on original_source/rust/boot/arena.rs, adapted to Go's memory
// model: the Rust arena hands out raw pointers into a single mmap'd region,
// which is safe there because nothing but POD bytes ever lives in it. Go's
// garbage collector does not scan a []byte region for pointers, so aliasing
// arbitrary pointer-containing structs (strings, slices, Node graphs) on
// top of a raw byte buffer via unsafe.Pointer would silently break GC
// liveness. Pool instead keeps one ordinary, GC-visible Go slice per
// concrete type and charges its growth against the arena's shared budget,
// which preserves the spec's externally-observable contract (fixed budget,
// lock-free claim, abort on exhaustion) without the unsoundness.
package arena

import (
	"sync"
	"sync/atomic"

	"github.com/bitlang/bit/engine/diag"
	"github.com/bitlang/bit/engine/writer"
)

// DefaultSize is the default arena budget: 512 MB, matching DEFAULT_ARENA
// in the original source.
const DefaultSize = 512 << 20

// Arena tracks a single byte budget shared by every Pool derived from it.
type Arena struct {
	limit int64
	used  atomic.Int64
}

// New creates an Arena with the given byte budget. A non-positive size
// uses DefaultSize.
func New(size int64) *Arena {
	if size <= 0 {
		size = DefaultSize
	}
	return &Arena{limit: size}
}

var global = sync.OnceValue(func() *Arena { return New(DefaultSize) })

// Get returns the process-wide singleton arena (spec §9: the arena is a
// process-wide singleton in the source; callers that want an isolated
// budget per compile should construct their own with New).
func Get() *Arena { return global() }

// reserve charges n bytes against the arena's budget, aborting the process
// the way the source's Arena.alloc_layout does on exhaustion.
func (a *Arena) reserve(n int64) {
	used := a.used.Add(n)
	if used > a.limit {
		panic(diag.Newf(diag.ArenaExhausted, "arena: exhausted (requested %s, budget %s, used %s)",
			writer.ByteSize(n), writer.ByteSize(a.limit), writer.ByteSize(used)))
	}
}

// Used reports the number of bytes currently charged against the budget.
func (a *Arena) Used() int64 { return a.used.Load() }

// Limit reports the arena's total byte budget.
func (a *Arena) Limit() int64 { return a.limit }
