package arena

import (
	"strings"
	"unsafe"
)

// Slice copies items into a freshly allocated, exclusively-owned slice and
// charges its size against the arena's budget — the Go analogue of the
// source's Arena.slice, which "copies an exact-sized iterator into a
// contiguous arena region."
func Slice[T any](a *Arena, items []T) []T {
	if len(items) == 0 {
		return nil
	}
	if a == nil {
		a = Get()
	}
	var zero T
	a.reserve(int64(len(items)) * int64(unsafe.Sizeof(zero)))
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// String interns a private copy of s in the arena, charging its byte
// length against the budget — the Go analogue of Arena.str.
func String(a *Arena, s string) string {
	if s == "" {
		return ""
	}
	if a == nil {
		a = Get()
	}
	a.reserve(int64(len(s)))
	return strings.Clone(s)
}
