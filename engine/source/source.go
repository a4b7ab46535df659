// Package source implements spec §3's immutable Source buffers and Span
// byte ranges, plus the Cursor used by the lexer to walk a source while
// tracking line, column and indentation.
//
// Grounded on original_source/rust/boot/source.rs, span.rs and cursor.rs.
package source

import (
	"sync/atomic"

	"golang.org/x/crypto/blake2b"
)

// DefaultTabSize is the tab width used when a Source doesn't specify one,
// matching DEFAULT_TAB_SIZE in the original source.
const DefaultTabSize = 4

// Source is an immutable, process-lifetime named text buffer. Equality is
// identity (spec §3): two Sources are equal only if they share the same
// underlying data, which SourceMap guarantees for repeated loads of the
// same canonical path (spec invariant 5).
type Source struct {
	d *data
}

type data struct {
	name    string
	text    string
	path    string // "" if this Source has no backing file
	hasPath bool
	tabSize int
	seq     int64 // creation order, used as a last-resort ordering tiebreak
	id      [32]byte
}

var seqCounter atomic.Int64

func newData(name, text, path string, hasPath bool, tabSize int) *data {
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}
	return &data{
		name:    name,
		text:    text,
		path:    path,
		hasPath: hasPath,
		tabSize: tabSize,
		seq:     seqCounter.Add(1),
		id:      blake2b.Sum256([]byte(text)),
	}
}

var empty = Source{d: &data{name: "", text: "", tabSize: DefaultTabSize}}

// EmptySource returns the canonical empty source.
func EmptySource() Source { return empty }

// Name returns the source's display name.
func (s Source) Name() string {
	if s.d == nil {
		return ""
	}
	return s.d.name
}

// Text returns the full source text.
func (s Source) Text() string {
	if s.d == nil {
		return ""
	}
	return s.d.text
}

// Len returns the byte length of the source text.
func (s Source) Len() int { return len(s.Text()) }

// Path returns the backing file path and whether the source has one.
func (s Source) Path() (string, bool) {
	if s.d == nil {
		return "", false
	}
	return s.d.path, s.d.hasPath
}

// TabSize returns the configured tab width for this source.
func (s Source) TabSize() int {
	if s.d == nil {
		return DefaultTabSize
	}
	return s.d.tabSize
}

// Identity returns a stable BLAKE2b-256 hash of the source text. It plays
// no role in Source equality, which remains pointer identity, and
// internal/debugdump's hashes are taken over its CBOR dumps, not over this.
func (s Source) Identity() [32]byte {
	if s.d == nil {
		return empty.d.id
	}
	return s.d.id
}

// Span returns the span covering the entire source.
func (s Source) Span() Span { return Span{src: s, start: 0, end: s.Len()} }

// Equal reports identity equality, per spec §3.
func (s Source) Equal(other Source) bool { return s.d == other.d }

func (s Source) String() string {
	if name := s.Name(); name != "" {
		return name
	}
	return "<empty>"
}

// Compare orders sources per spec §3: files before strings, then
// lexicographically; fallback to creation order.
func (s Source) Compare(other Source) int {
	if s.d == other.d {
		return 0
	}
	a, b := s.d, other.d
	if a.hasPath != b.hasPath {
		if a.hasPath {
			return -1
		}
		return 1
	}
	if a.hasPath && a.path != b.path {
		if a.path < b.path {
			return -1
		}
		return 1
	}
	if a.name != b.name {
		if a.name < b.name {
			return -1
		}
		return 1
	}
	if len(a.text) != len(b.text) {
		if len(a.text) < len(b.text) {
			return -1
		}
		return 1
	}
	if a.text != b.text {
		if a.text < b.text {
			return -1
		}
		return 1
	}
	if a.seq < b.seq {
		return -1
	}
	return 1
}
