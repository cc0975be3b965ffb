// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package fmtset defines a fixed-capacity bit set keyed by small
// ordinal enumerations. The layout packages use it for per-family
// format support tables.
package fmtset

// Cap is the exclusive upper bound of storable values.
const Cap = 256

// Set is a bit set over enumeration values in [0, Cap).
// The zero value is an empty set.
type Set[T ~int] struct {
	s [Cap / 64]uint64
}

// Of returns a Set containing the given values.
func Of[T ~int](vals ...T) Set[T] {
	var s Set[T]
	for _, v := range vals {
		s.Add(v)
	}
	return s
}

// Add inserts v into the set.
// It panics if v is outside [0, Cap).
func (s *Set[T]) Add(v T) { s.s[v>>6] |= 1 << (v & 63) }

// Has reports whether v is in the set.
// Values outside [0, Cap) are never in the set.
func (s *Set[T]) Has(v T) bool {
	if v < 0 || v >= Cap {
		return false
	}
	return s.s[v>>6]&(1<<(v&63)) != 0
}
