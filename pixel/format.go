// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package pixel describes the pixel formats known to the layout
// engine. It is a read-only oracle: every query is a table
// lookup, keyed by format and plane, answering what the layout
// calculators need to know (block geometry, bytes per block,
// channel sizes, colorspace, plane count).
package pixel

import (
	"iter"

	"github.com/gviegas/pan"
)

// Format identifies a pixel format.
type Format int

// Pixel formats.
const (
	FInvalid Format = iota

	// Color, 8-bit channels.
	R8un
	RG8un
	RGB8un
	RGBA8un
	BGRA8un
	RGBA8sRGB
	BGRA8sRGB

	// Color, packed.
	RGB565un
	RGBA4un
	RGB5A1un
	RGB10A2un

	// Color, 16/32-bit channels.
	R16un
	RG16un
	RGBA16f
	R32f
	RGBA32f

	// Depth/Stencil.
	D16un
	D24unS8ui
	D32f
	S8ui

	// Block-compressed.
	ETC2RGB8un
	ETC2RGBA8un
	ASTC4x4un
	ASTC5x5un

	// YUV, planar.
	NV12
	NV21
	P010
	YV12
	NV15

	// YUV, packed.
	YUYV
	VYUY

	nFormat
)

// Space is the colorspace of a format.
type Space int

// Colorspaces.
const (
	RGB Space = iota
	SRGB
	ZS
	YUV
)

// plane describes one plane of a format.
// Block dimensions are in plane-local pixels; sx/sy give the
// chroma subsampling used to derive the plane extent from the
// image extent.
type plane struct {
	bw, bh int8
	size   int8
	sx, sy int8
	nchan  int8
}

type desc struct {
	name   string
	space  Space
	compr  bool
	nplane int8
	nchan  int8
	bits   [4]int8
	planes [3]plane
}

// p1 builds the plane table of a single-plane format.
func p1(bw, bh, size, nchan int8) [3]plane {
	return [3]plane{{bw, bh, size, 1, 1, nchan}}
}

var descs = [nFormat]desc{
	// The invalid entry keeps 1x1 blocks and no subsampling so
	// that queries against it stay well defined.
	FInvalid: {name: "Invalid", planes: p1(1, 1, 0, 0)},

	R8un:      {"R8un", RGB, false, 1, 1, [4]int8{8}, p1(1, 1, 1, 1)},
	RG8un:     {"RG8un", RGB, false, 1, 2, [4]int8{8, 8}, p1(1, 1, 2, 2)},
	RGB8un:    {"RGB8un", RGB, false, 1, 3, [4]int8{8, 8, 8}, p1(1, 1, 3, 3)},
	RGBA8un:   {"RGBA8un", RGB, false, 1, 4, [4]int8{8, 8, 8, 8}, p1(1, 1, 4, 4)},
	BGRA8un:   {"BGRA8un", RGB, false, 1, 4, [4]int8{8, 8, 8, 8}, p1(1, 1, 4, 4)},
	RGBA8sRGB: {"RGBA8sRGB", SRGB, false, 1, 4, [4]int8{8, 8, 8, 8}, p1(1, 1, 4, 4)},
	BGRA8sRGB: {"BGRA8sRGB", SRGB, false, 1, 4, [4]int8{8, 8, 8, 8}, p1(1, 1, 4, 4)},

	RGB565un:  {"RGB565un", RGB, false, 1, 3, [4]int8{5, 6, 5}, p1(1, 1, 2, 3)},
	RGBA4un:   {"RGBA4un", RGB, false, 1, 4, [4]int8{4, 4, 4, 4}, p1(1, 1, 2, 4)},
	RGB5A1un:  {"RGB5A1un", RGB, false, 1, 4, [4]int8{5, 5, 5, 1}, p1(1, 1, 2, 4)},
	RGB10A2un: {"RGB10A2un", RGB, false, 1, 4, [4]int8{10, 10, 10, 2}, p1(1, 1, 4, 4)},

	R16un:   {"R16un", RGB, false, 1, 1, [4]int8{16}, p1(1, 1, 2, 1)},
	RG16un:  {"RG16un", RGB, false, 1, 2, [4]int8{16, 16}, p1(1, 1, 4, 2)},
	RGBA16f: {"RGBA16f", RGB, false, 1, 4, [4]int8{16, 16, 16, 16}, p1(1, 1, 8, 4)},
	R32f:    {"R32f", RGB, false, 1, 1, [4]int8{32}, p1(1, 1, 4, 1)},
	RGBA32f: {"RGBA32f", RGB, false, 1, 4, [4]int8{32, 32, 32, 32}, p1(1, 1, 16, 4)},

	D16un:     {"D16un", ZS, false, 1, 1, [4]int8{16}, p1(1, 1, 2, 1)},
	D24unS8ui: {"D24unS8ui", ZS, false, 1, 2, [4]int8{24, 8}, p1(1, 1, 4, 2)},
	D32f:      {"D32f", ZS, false, 1, 1, [4]int8{32}, p1(1, 1, 4, 1)},
	S8ui:      {"S8ui", ZS, false, 1, 1, [4]int8{8}, p1(1, 1, 1, 1)},

	ETC2RGB8un:  {"ETC2RGB8un", RGB, true, 1, 3, [4]int8{8, 8, 8}, p1(4, 4, 8, 3)},
	ETC2RGBA8un: {"ETC2RGBA8un", RGB, true, 1, 4, [4]int8{8, 8, 8, 8}, p1(4, 4, 16, 4)},
	ASTC4x4un:   {"ASTC4x4un", RGB, true, 1, 4, [4]int8{}, p1(4, 4, 16, 4)},
	ASTC5x5un:   {"ASTC5x5un", RGB, true, 1, 4, [4]int8{}, p1(5, 5, 16, 4)},

	NV12: {"NV12", YUV, false, 2, 3, [4]int8{8, 8, 8}, [3]plane{
		{1, 1, 1, 1, 1, 1},
		{1, 1, 2, 2, 2, 2},
	}},
	NV21: {"NV21", YUV, false, 2, 3, [4]int8{8, 8, 8}, [3]plane{
		{1, 1, 1, 1, 1, 1},
		{1, 1, 2, 2, 2, 2},
	}},
	P010: {"P010", YUV, false, 2, 3, [4]int8{10, 10, 10}, [3]plane{
		{1, 1, 2, 1, 1, 1},
		{1, 1, 4, 2, 2, 2},
	}},
	YV12: {"YV12", YUV, false, 3, 3, [4]int8{8, 8, 8}, [3]plane{
		{1, 1, 1, 1, 1, 1},
		{1, 1, 1, 2, 2, 1},
		{1, 1, 1, 2, 2, 1},
	}},
	// Four 10-bit samples packed tightly in five bytes.
	NV15: {"NV15", YUV, false, 2, 3, [4]int8{10, 10, 10}, [3]plane{
		{4, 1, 5, 1, 1, 1},
		{2, 1, 5, 2, 2, 2},
	}},

	YUYV: {"YUYV", YUV, false, 1, 3, [4]int8{8, 8, 8}, p1(2, 1, 4, 3)},
	VYUY: {"VYUY", YUV, false, 1, 3, [4]int8{8, 8, 8}, p1(2, 1, 4, 3)},
}

func fdesc(f Format) *desc {
	if f <= FInvalid || f >= nFormat {
		return &descs[FInvalid]
	}
	return &descs[f]
}

// Valid reports whether f names a defined format.
func (f Format) Valid() bool { return f > FInvalid && f < nFormat }

// String returns the name of the format.
func (f Format) String() string { return fdesc(f).name }

// Space returns the colorspace of f.
func (f Format) Space() Space { return fdesc(f).space }

// Compressed reports whether f is block-compressed.
func (f Format) Compressed() bool { return fdesc(f).compr }

// Planes returns the number of memory planes of f.
func (f Format) Planes() int { return int(fdesc(f).nplane) }

// NumChannels returns the number of channels of f.
func (f Format) NumChannels() int { return int(fdesc(f).nchan) }

// ChannelBits returns the per-channel bit sizes of f.
// Channels beyond NumChannels are zero. Block-compressed formats
// with content-dependent rates report all zeros.
func (f Format) ChannelBits() [4]int {
	d := fdesc(f)
	var b [4]int
	for i := range d.bits {
		b[i] = int(d.bits[i])
	}
	return b
}

// UniformChannelBits returns the common bit size of the channels
// of f. ok is false when the channels differ in size or f has no
// sized channels.
func (f Format) UniformChannelBits() (bits int, ok bool) {
	d := fdesc(f)
	if d.nchan == 0 || d.bits[0] == 0 {
		return 0, false
	}
	for i := range int(d.nchan) {
		if d.bits[i] != d.bits[0] {
			return 0, false
		}
	}
	return int(d.bits[0]), true
}

// PlaneBlock returns the block dimensions of the given plane,
// in plane-local pixels. Formats that are not block-based have
// 1x1x1 blocks.
func (f Format) PlaneBlock(plane int) pan.Extent {
	p := fdesc(f).plane(plane)
	return pan.Extent{Width: int(p.bw), Height: int(p.bh), Depth: 1}
}

// PlaneBlockSize returns the number of bytes of one block of the
// given plane.
func (f Format) PlaneBlockSize(plane int) int {
	return int(fdesc(f).plane(plane).size)
}

// PlaneChannels returns the number of channels stored in the
// given plane.
func (f Format) PlaneChannels(plane int) int {
	return int(fdesc(f).plane(plane).nchan)
}

// PlaneExtent converts an extent in image pixels into the pixel
// extent of the given plane, applying chroma subsampling.
// Depth is never subsampled.
func (f Format) PlaneExtent(plane int, px pan.Extent) pan.Extent {
	p := fdesc(f).plane(plane)
	return pan.Extent{
		Width:  (px.Width + int(p.sx) - 1) / int(p.sx),
		Height: (px.Height + int(p.sy) - 1) / int(p.sy),
		Depth:  px.Depth,
	}
}

func (d *desc) plane(i int) *plane {
	if i < 0 || i >= int(d.nplane) {
		// Out of range on purpose or on an invalid format;
		// either way the caller gets harmless zeros.
		return &descs[FInvalid].planes[0]
	}
	return &d.planes[i]
}

// All returns an iterator over every defined format.
func All() iter.Seq[Format] {
	return func(yield func(Format) bool) {
		for f := FInvalid + 1; f < nFormat; f++ {
			if !yield(f) {
				return
			}
		}
	}
}
