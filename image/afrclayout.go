// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package image

import (
	"github.com/gviegas/pan"
	"github.com/gviegas/pan/afrc"
	"github.com/gviegas/pan/drm"
	"github.com/gviegas/pan/internal/umath"
	"github.com/gviegas/pan/pixel"
)

// afrcHandler lays out fixed-rate-compressed images: rows of paging
// tiles whose byte size follows from the coding unit alone, with
// strides and offsets kept at the coding unit's buffer alignment.
type afrcHandler struct{}

func (afrcHandler) match(m drm.Modifier) bool {
	return m.Family() == drm.FamilyAFRC
}

func (afrcHandler) supportsFormat(arch pan.Arch, f pixel.Format, m drm.Modifier, plane int) bool {
	switch {
	case arch < pan.MinArchAFRC:
		return false
	case !afrcFormats.Has(f):
		return false
	case afrc.CodingUnitSize(m, plane) == 0:
		return false
	}
	return true
}

func (afrcHandler) alignB(a *sliceArgs) int64 {
	return afrc.BufferAlign(a.props.Modifier, a.plane)
}

func (afrcHandler) initSlice(a *sliceArgs) (SliceLayout, error) {
	f, m := a.props.Format, a.props.Modifier
	px := a.planeExtent()
	tile := afrc.TileSize(f, a.plane, m)
	widthTiles := umath.DivRoundUp(px.Width, tile.Width)
	heightTiles := umath.DivRoundUp(px.Height, tile.Height)
	bufAlign := afrc.BufferAlign(m, a.plane)
	packed := umath.AlignPo2(afrc.RowStride(m, a.plane, widthTiles), bufAlign)

	s := SliceLayout{OffsetB: a.offsetB}
	if a.explicit() {
		rs := int64(a.wsi.WSIRowPitchB) * int64(tile.Height)
		rowTiles := rs / (int64(afrc.CodingUnitSize(m, a.plane)) * afrc.ClumpsPerTile)
		var reason string
		switch {
		case rs%bufAlign != 0:
			reason = "unaligned WSI row pitch"
		case rowTiles*int64(tile.Width) < int64(px.Width):
			reason = "WSI row pitch smaller than the row of paging tiles"
		}
		if reason != "" {
			return SliceLayout{}, a.errExplicit(reason)
		}
		if a.wsi.Strict {
			s.RowStrideB = rs
		} else {
			s.RowStrideB = packed
		}
	} else {
		s.RowStrideB = packed
	}

	s.SurfaceStrideB = s.RowStrideB * int64(heightTiles)
	s.SizeB = s.SurfaceStrideB * int64(px.Depth) * int64(a.props.NrSamples)
	if a.props.CRC {
		appendCRC(a, &s)
	}
	if err := checkFields(a.arch, &s); err != nil {
		return SliceLayout{}, err
	}
	return s, nil
}

func (afrcHandler) wsiRowPitch(props *Props, l *Layout, plane, level int) int64 {
	tile := afrc.TileSize(props.Format, plane, props.Modifier)
	return l.Slices[level].RowStrideB / int64(tile.Height)
}
