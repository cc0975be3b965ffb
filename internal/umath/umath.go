// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package umath provides small integer helpers shared by the
// layout calculators.
package umath

import "math/bits"

// Int is the set of integer types the helpers operate on.
type Int interface {
	~int | ~int32 | ~int64 | ~uint32 | ~uint64
}

// AlignPo2 rounds x up to the next multiple of align.
// align must be a power of two.
func AlignPo2[T Int](x, align T) T {
	return (x + align - 1) &^ (align - 1)
}

// DivRoundUp divides x by y, rounding up.
func DivRoundUp[T Int](x, y T) T {
	return (x + y - 1) / y
}

// IsPo2 reports whether x is a power of two.
func IsPo2[T Int](x T) bool {
	return x > 0 && x&(x-1) == 0
}

// FloorPo2 returns the largest power of two not greater than x,
// or zero if x is not positive.
func FloorPo2[T Int](x T) T {
	if x <= 0 {
		return 0
	}
	return T(1) << (bits.Len64(uint64(x)) - 1)
}
