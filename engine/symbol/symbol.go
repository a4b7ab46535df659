// Package symbol implements the globally interned byte-string identifiers
// described in spec §3 and §4.1: a Symbol is only ever equal to itself,
// comparison is pointer identity, and ordering is lexicographic over the
// underlying bytes.
//
// Grounded on original_source/rust/boot/symbol.rs (the Symbol/SymbolCell
// pointer-identity design) and original_source/rust/boot/lexer.rs's
// SymbolTable (the fixed-capacity, open-addressed, random-seeded-hash probe
// sequence — "(fnv/random-state hash, probe step)" in spec §4.1). hash/maphash
// is the direct standard-library analogue of Rust's std::collections::hash_map::RandomState
// used by the original: both are non-cryptographic hashes reseeded per
// process to avoid hash-flooding, and no third-party package in the pack
// provides that pairing, so stdlib is used here deliberately (see DESIGN.md).
package symbol

import (
	"hash/maphash"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bitlang/bit/engine/diag"
)

// Symbol is an interned byte sequence. The zero value is the empty symbol.
type Symbol struct {
	data *data
}

type data struct {
	text string
}

// Empty is the interned symbol for the empty string.
var Empty = Symbol{}

// Text returns the symbol's underlying bytes as a string.
func (s Symbol) Text() string {
	if s.data == nil {
		return ""
	}
	return s.data.text
}

// Len returns the byte length of the symbol.
func (s Symbol) Len() int { return len(s.Text()) }

// IsEmpty reports whether this is the empty symbol.
func (s Symbol) IsEmpty() bool { return s.data == nil }

// Equal reports pointer identity, per spec invariant 4: "For any two
// Symbol::get(s) with byte-equal s, the resulting symbols are pointer-equal."
func (s Symbol) Equal(other Symbol) bool { return s.data == other.data }

// Compare orders symbols lexicographically over their bytes, as spec §3
// requires, short-circuiting on pointer identity first.
func (s Symbol) Compare(other Symbol) int {
	if s.data == other.data {
		return 0
	}
	return strings.Compare(s.Text(), other.Text())
}

func (s Symbol) String() string {
	if s.IsEmpty() {
		return "$"
	}
	return "$" + s.Text()
}

// table is the fixed-capacity, open-addressed intern map.
const (
	slots   = 1 << 16
	maxLoad = slots / 16 * 10
)

type table struct {
	mu      sync.Mutex
	count   atomic.Int64
	entries [slots]atomic.Pointer[data]
	seed    maphash.Seed
}

func newTable() *table {
	return &table{seed: maphash.MakeSeed()}
}

var global = sync.OnceValue(newTable)

// Get interns text, returning the canonical Symbol for its bytes. Repeated
// calls with byte-equal text return the identical Symbol (spec invariant 4).
func Get(text string) Symbol {
	if text == "" {
		return Empty
	}
	return global().intern(text)
}

func (t *table) hash(text string) uint64 {
	var h maphash.Hash
	h.SetSeed(t.seed)
	_, _ = h.WriteString(text)
	return h.Sum64()
}

func (t *table) intern(text string) Symbol {
	hash := t.hash(text)
	index := int(hash % slots)
	step := (int(hash>>16) % slots) | 1

	for tries := 0; tries < slots; tries++ {
		index = (index + step) % slots
		slot := &t.entries[index]
		if cur := slot.Load(); cur != nil {
			if cur.text == text {
				return Symbol{data: cur}
			}
			continue
		}

		t.mu.Lock()
		if cur := slot.Load(); cur != nil {
			t.mu.Unlock()
			if cur.text == text {
				return Symbol{data: cur}
			}
			continue
		}
		if t.count.Load() >= maxLoad {
			t.mu.Unlock()
			panic(diag.Newf(diag.SymbolTableFull, "symbol: table exceeds load factor (%d entries)", maxLoad))
		}
		entry := &data{text: strings.Clone(text)}
		slot.Store(entry)
		t.count.Add(1)
		t.mu.Unlock()
		return Symbol{data: entry}
	}
	panic(diag.Newf(diag.SymbolTableFull, "symbol: table exceeds load factor (%d entries)", maxLoad))
}

// Sorted sorts a slice of symbols lexicographically, in place.
func Sorted(syms []Symbol) {
	sort.Slice(syms, func(i, j int) bool { return syms[i].Compare(syms[j]) < 0 })
}
