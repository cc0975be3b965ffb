// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package afrc answers geometry queries about Arm Fixed-Rate
// Compression, a lossy scheme that codes fixed-size pixel clumps
// into fixed-size coding units. Clumps group into paging tiles
// of 64, laid out in scan or rotation order. AFRC exists on
// architecture revision 10 onward.
package afrc

import (
	"github.com/gviegas/pan"
	"github.com/gviegas/pan/drm"
	"github.com/gviegas/pan/pixel"
)

// ClumpsPerTile is the number of clumps in one paging tile.
const ClumpsPerTile = 64

// ClumpSize returns the dimensions in pixels of one coding clump
// of the given plane. It depends only on the plane's component
// count, plus the layout order for single-component planes.
func ClumpSize(f pixel.Format, plane int, scan bool) pan.Extent {
	switch f.PlaneChannels(plane) {
	case 1:
		if scan {
			return pan.Extent{Width: 16, Height: 4, Depth: 1}
		}
		return pan.Extent{Width: 8, Height: 8, Depth: 1}
	case 2:
		return pan.Extent{Width: 8, Height: 4, Depth: 1}
	}
	return pan.Extent{Width: 4, Height: 4, Depth: 1}
}

// TileSize returns the dimensions in pixels of one paging tile:
// the clump size times the 16x4 (scan) or 8x8 (rotation) clump
// grid.
func TileSize(f pixel.Format, plane int, m drm.Modifier) pan.Extent {
	scan := m&drm.AFRCScan != 0
	c := ClumpSize(f, plane, scan)
	if scan {
		return pan.Extent{Width: c.Width * 16, Height: c.Height * 4, Depth: 1}
	}
	return pan.Extent{Width: c.Width * 8, Height: c.Height * 8, Depth: 1}
}

// CodingUnitSize returns the compressed size in bytes of one
// clump of the given plane: 16, 24 or 32. It returns zero when
// the modifier's field for that plane is undefined.
func CodingUnitSize(m drm.Modifier, plane int) int {
	fld := m
	if plane > 0 {
		fld >>= 4
	}
	switch fld & drm.AFRCCUMask {
	case drm.AFRCCU16:
		return 16
	case drm.AFRCCU24:
		return 24
	case drm.AFRCCU32:
		return 32
	}
	return 0
}

// BufferAlign returns the byte alignment required of strides and
// offsets in a buffer coded with the given plane's coding unit.
// Zero when the coding unit field is undefined.
func BufferAlign(m drm.Modifier, plane int) int64 {
	switch CodingUnitSize(m, plane) {
	case 16:
		return 1024
	case 24:
		return 512
	case 32:
		return 2048
	}
	return 0
}

// RowStride returns the byte stride of one row of paging tiles.
func RowStride(m drm.Modifier, plane int, widthTiles int) int64 {
	return int64(widthTiles) * int64(CodingUnitSize(m, plane)) * ClumpsPerTile
}
