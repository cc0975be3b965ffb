// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package pan defines the common vocabulary of the Mali image
// layout packages: the GPU architecture revision and the extent
// type shared by format, modifier and layout queries.
package pan

// Arch identifies a GPU architecture revision.
// Alignment rules and feature availability are keyed on this
// value, which callers resolve once per device: 4-5 (Midgard),
// 6-7 (Bifrost), 9-10 (Valhall) and 11 onward.
type Arch int

// Feature thresholds.
const (
	// MinArchAFRC is the first revision with fixed-rate
	// compression support.
	MinArchAFRC Arch = 10

	// MinArchWideFields is the first revision whose descriptors
	// store sizes and strides wider than 32 bits.
	MinArchWideFields Arch = 11
)

// MaxMipLevels is the number of mip levels needed to minify
// the largest expressible extent (1<<16 pixels per axis) down
// to a single pixel.
const MaxMipLevels = 17

// Extent is a three-dimensional size.
// Whether it is measured in pixels or format elements depends
// on context.
type Extent struct {
	Width, Height, Depth int
}

// Minify computes the extent of mip level l relative to e,
// which is the extent of level 0.
// Every axis halves per level and is floored at one, so the
// result never contains a zero.
func (e Extent) Minify(l int) Extent {
	return Extent{
		Width:  max(1, e.Width>>l),
		Height: max(1, e.Height>>l),
		Depth:  max(1, e.Depth>>l),
	}
}
