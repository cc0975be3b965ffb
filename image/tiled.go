// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package image

import (
	"github.com/gviegas/pan"
	"github.com/gviegas/pan/drm"
	"github.com/gviegas/pan/internal/umath"
	"github.com/gviegas/pan/pixel"
)

// U-interleave tile span in format elements.
const (
	utileDim           = 16
	utileDimCompressed = 4
)

// utileSpan returns the tile shape of a u-interleaved layout of
// f, in elements per axis. Block-compressed formats tile whole
// blocks.
func utileSpan(f pixel.Format) int {
	if f.Compressed() {
		return utileDimCompressed
	}
	return utileDim
}

// tiledOrLinearFormat reports whether f can live in plain
// addressable memory.
func tiledOrLinearFormat(f pixel.Format) bool {
	return f.Valid() && !afbcOnlyFormats.Has(f)
}

// tiledAlign returns the slice offset alignment shared by the
// linear and u-interleaved families. Layouts the driver packs
// itself keep slices on cache-line boundaries.
func tiledAlign(a *sliceArgs) int64 {
	align := RowAlign(a.arch, a.props.Format, a.plane)
	if !a.explicit() {
		align = max(align, 64)
	}
	return align
}

// tiledSlice computes one linear or u-interleaved mip level with
// a tile of tileW by tileH elements.
func tiledSlice(a *sliceArgs, tileW, tileH int) (SliceLayout, error) {
	f := a.props.Format
	px := a.planeExtent()
	blk := f.PlaneBlock(a.plane)
	wEl := umath.DivRoundUp(px.Width, blk.Width)
	hEl := umath.DivRoundUp(px.Height, blk.Height)
	tileSize := int64(tileW*tileH) * int64(f.PlaneBlockSize(a.plane))
	rowAlign := RowAlign(a.arch, f, a.plane)

	s := SliceLayout{OffsetB: a.offsetB}
	if a.explicit() {
		rs := int64(a.wsi.WSIRowPitchB) * int64(tileH)
		var reason string
		switch {
		case rs%rowAlign != 0:
			reason = "unaligned WSI row pitch"
		case rs/tileSize*int64(tileW) < int64(wEl):
			reason = "WSI row pitch smaller than the row of tiles"
		}
		if reason != "" {
			return SliceLayout{}, a.errExplicit(reason)
		}
		s.RowStrideB = rs
		s.SurfaceStrideB = rs * int64(umath.DivRoundUp(hEl, tileH))
	} else {
		align := max(rowAlign, 64)
		s.RowStrideB = umath.AlignPo2(tileSize*int64(umath.DivRoundUp(wEl, tileW)), align)
		s.SurfaceStrideB = umath.AlignPo2(s.RowStrideB*int64(umath.DivRoundUp(hEl, tileH)), align)
	}
	s.SizeB = s.SurfaceStrideB * int64(px.Depth) * int64(a.props.NrSamples)
	if a.props.CRC {
		appendCRC(a, &s)
	}
	if err := checkFields(a.arch, &s); err != nil {
		return SliceLayout{}, err
	}
	return s, nil
}

// linearHandler lays rows out contiguously with no tiling.
type linearHandler struct{}

func (linearHandler) match(m drm.Modifier) bool {
	return m.Family() == drm.FamilyLinear
}

func (linearHandler) supportsFormat(_ pan.Arch, f pixel.Format, _ drm.Modifier, _ int) bool {
	return tiledOrLinearFormat(f)
}

func (linearHandler) alignB(a *sliceArgs) int64 { return tiledAlign(a) }

func (linearHandler) initSlice(a *sliceArgs) (SliceLayout, error) {
	return tiledSlice(a, 1, 1)
}

func (linearHandler) wsiRowPitch(_ *Props, l *Layout, _, level int) int64 {
	return l.Slices[level].RowStrideB
}

// utiledHandler lays 16x16 element blocks out in u-interleaved
// order.
type utiledHandler struct{}

func (utiledHandler) match(m drm.Modifier) bool {
	return m.Family() == drm.FamilyUTiled
}

func (utiledHandler) supportsFormat(_ pan.Arch, f pixel.Format, _ drm.Modifier, _ int) bool {
	return tiledOrLinearFormat(f)
}

func (utiledHandler) alignB(a *sliceArgs) int64 { return tiledAlign(a) }

func (utiledHandler) initSlice(a *sliceArgs) (SliceLayout, error) {
	d := utileSpan(a.props.Format)
	return tiledSlice(a, d, d)
}

func (utiledHandler) wsiRowPitch(props *Props, l *Layout, _, level int) int64 {
	return l.Slices[level].RowStrideB / int64(utileSpan(props.Format))
}
