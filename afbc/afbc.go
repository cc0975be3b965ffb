// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package afbc answers geometry queries about Arm FrameBuffer
// Compression. AFBC stores an image as a grid of superblocks,
// each described by a 16-byte header that points into a payload
// body; headers may additionally be grouped into 8x8 tiles.
// Everything here is a pure function of the modifier, the format
// and the architecture revision.
package afbc

import (
	"github.com/gviegas/pan"
	"github.com/gviegas/pan/drm"
	"github.com/gviegas/pan/internal/umath"
	"github.com/gviegas/pan/pixel"
)

// HeaderSize is the size of one superblock header in bytes.
const HeaderSize = 16

// ValidBlockSize reports whether the superblock-size field of m
// holds one of the defined encodings.
func ValidBlockSize(m drm.Modifier) bool {
	switch m & drm.AFBCBlockMask {
	case drm.AFBC16x16, drm.AFBC32x8, drm.AFBC64x4:
		return true
	}
	return false
}

// SuperblockSize returns the superblock dimensions of m in
// pixels. It panics when the block-size field is undefined,
// so callers must validate the modifier first.
func SuperblockSize(m drm.Modifier) pan.Extent {
	switch m & drm.AFBCBlockMask {
	case drm.AFBC16x16:
		return pan.Extent{Width: 16, Height: 16, Depth: 1}
	case drm.AFBC32x8:
		return pan.Extent{Width: 32, Height: 8, Depth: 1}
	case drm.AFBC64x4:
		return pan.Extent{Width: 64, Height: 4, Depth: 1}
	}
	panic("afbc: undefined superblock size")
}

// RenderblockSize returns the superblock dimensions with the
// height rounded up to 16, the render tile granule that wide
// superblocks must still honor.
func RenderblockSize(m drm.Modifier) pan.Extent {
	s := SuperblockSize(m)
	s.Height = umath.AlignPo2(s.Height, 16)
	return s
}

// IsWide reports whether the superblock of m is wider than 16px.
func IsWide(m drm.Modifier) bool { return SuperblockSize(m).Width > 16 }

// TileSize returns the header tiling factor of m: headers group
// into 8x8 tiles when the tiled-header flag is set, and stand
// alone otherwise.
func TileSize(m drm.Modifier) int {
	if m&drm.AFBCTiled != 0 {
		return 8
	}
	return 1
}

// HeaderAlign returns the byte alignment of the header region.
// The body region uses the same alignment.
func HeaderAlign(arch pan.Arch, m drm.Modifier) int64 {
	switch {
	case m&drm.AFBCTiled != 0:
		return 4096
	case arch >= 6:
		return 128
	}
	return 64
}

// HeaderRowStrideAlign returns the byte alignment of the header
// row stride.
func HeaderRowStrideAlign(arch pan.Arch, f pixel.Format, m drm.Modifier) int64 {
	if arch >= 8 && m&drm.AFBCTiled != 0 {
		if f.PlaneBlockSize(0) <= 4 {
			return 1024
		}
		return 256
	}
	return 16
}

// SuperblockPayloadSize returns the worst-case body size of one
// superblock of the given plane, in bytes. Superblocks of block
// or packed formats span several format blocks.
func SuperblockPayloadSize(f pixel.Format, plane int, m drm.Modifier) int64 {
	sb := SuperblockSize(m)
	blk := f.PlaneBlock(plane)
	n := sb.Width / blk.Width * (sb.Height / blk.Height)
	return int64(n) * int64(f.PlaneBlockSize(plane))
}

// RowStride returns the unaligned header row stride spanning
// widthSB superblocks. With tiled headers a row covers eight
// superblock rows at once.
func RowStride(m drm.Modifier, widthSB int) int64 {
	return int64(widthSB) * int64(TileSize(m)) * HeaderSize
}

// RowSuperblocks is the inverse of RowStride.
func RowSuperblocks(m drm.Modifier, rowStrideB int64) int {
	return int(rowStrideB / (HeaderSize * int64(TileSize(m))))
}

// AlignedExtent rounds e up to the layout granule of m: the
// render block per axis, widened to eight whole superblocks
// when the header is tiled. Depth is not touched.
func AlignedExtent(m drm.Modifier, e pan.Extent) pan.Extent {
	rb := RenderblockSize(m)
	w, h := rb.Width, rb.Height
	if m&drm.AFBCTiled != 0 {
		sb := SuperblockSize(m)
		w = max(w, sb.Width*8)
		h = max(h, sb.Height*8)
	}
	return pan.Extent{
		Width:  umath.AlignPo2(e.Width, w),
		Height: umath.AlignPo2(e.Height, h),
		Depth:  e.Depth,
	}
}

// WSIPitch converts a header row stride into the row pitch
// exchanged with the window system: the payload bytes one pixel
// row contributes, assuming fully packed superblocks.
func WSIPitch(f pixel.Format, plane int, m drm.Modifier, headerRowStrideB int64) int64 {
	nsb := int64(RowSuperblocks(m, headerRowStrideB))
	return nsb * SuperblockPayloadSize(f, plane, m) / int64(SuperblockSize(m).Height)
}

// WSIPitchSuperblocks derives the per-row superblock count
// implied by a window-system pitch. ok is false when the pitch
// does not describe a whole number of packed superblocks.
func WSIPitchSuperblocks(f pixel.Format, plane int, m drm.Modifier, pitchB int64) (widthSB int, ok bool) {
	payload := SuperblockPayloadSize(f, plane, m)
	row := pitchB * int64(SuperblockSize(m).Height)
	return int(row / payload), row%payload == 0
}
