// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package image

import (
	"fmt"
	"math"

	"github.com/gviegas/pan"
	"github.com/gviegas/pan/afbc"
	"github.com/gviegas/pan/drm"
	"github.com/gviegas/pan/internal/umath"
	"github.com/gviegas/pan/pixel"
)

// afbcHandler lays out framebuffer-compressed images: a grid of
// 16-byte superblock headers pointing into a payload body that
// follows the header region at the body alignment. Header and
// body interleave per surface, for 3D depth slices and array
// elements alike.
type afbcHandler struct{}

func (afbcHandler) match(m drm.Modifier) bool {
	return m.Family() == drm.FamilyAFBC
}

func (afbcHandler) supportsFormat(arch pan.Arch, f pixel.Format, m drm.Modifier, _ int) bool {
	switch {
	case arch < 5:
		return false
	case !afbc.ValidBlockSize(m):
		return false
	case !afbcFormats.Has(f):
		return false
	case m&drm.AFBCTiled != 0 && arch < 7:
		return false
	case f.Space() == pixel.YUV && arch < 7:
		return false
	case m&drm.AFBCYTR != 0 && (f.Space() != pixel.RGB && f.Space() != pixel.SRGB || f.NumChannels() < 3):
		// The luma transform rotates color channels; it has no
		// meaning for YUV, depth or single-channel data.
		return false
	}
	return true
}

func (afbcHandler) alignB(a *sliceArgs) int64 {
	return afbc.HeaderAlign(a.arch, a.props.Modifier)
}

func (afbcHandler) initSlice(a *sliceArgs) (SliceLayout, error) {
	f, m := a.props.Format, a.props.Modifier
	px := a.planeExtent()
	sb := afbc.SuperblockSize(m)
	aligned := afbc.AlignedExtent(m, px)
	widthSB := aligned.Width / sb.Width
	heightSB := aligned.Height / sb.Height
	payload := afbc.SuperblockPayloadSize(f, a.plane, m)
	rsAlign := afbc.HeaderRowStrideAlign(a.arch, f, m)

	s := SliceLayout{OffsetB: a.offsetB}
	if a.explicit() {
		n, ok := afbc.WSIPitchSuperblocks(f, a.plane, m, int64(a.wsi.WSIRowPitchB))
		var reason string
		switch {
		case a.wsi.Strict && !ok:
			reason = "WSI row pitch does not cover whole superblocks"
		case n < widthSB:
			reason = "WSI row pitch smaller than the row of superblocks"
		case a.wsi.Strict && afbc.RowStride(m, n)%rsAlign != 0:
			reason = "unaligned WSI row pitch"
		}
		if reason != "" {
			return SliceLayout{}, a.errExplicit(reason)
		}
		if a.wsi.Strict {
			s.Header.RowStrideB = afbc.RowStride(m, n)
		} else {
			// Validated as a minimum only; the packed stride
			// is what the hardware walks.
			s.Header.RowStrideB = umath.AlignPo2(afbc.RowStride(m, widthSB), rsAlign)
		}
	} else {
		s.Header.RowStrideB = umath.AlignPo2(afbc.RowStride(m, widthSB), rsAlign)
	}

	s.Header.SurfaceSizeB = s.Header.RowStrideB * int64(heightSB/afbc.TileSize(m))
	// The header size field is 32 bits on every revision.
	if s.Header.SurfaceSizeB > math.MaxUint32 {
		return SliceLayout{}, fmt.Errorf("%w: header surface size exceeds 32 bits", ErrFieldOverflow)
	}
	bodyOffset := umath.AlignPo2(s.Header.SurfaceSizeB, afbc.HeaderAlign(a.arch, m))
	s.SurfaceStrideB = bodyOffset + int64(widthSB)*int64(heightSB)*payload
	s.SizeB = s.SurfaceStrideB * int64(px.Depth) * int64(a.props.NrSamples)
	if a.props.CRC {
		appendCRC(a, &s)
	}
	if err := checkFields(a.arch, &s); err != nil {
		return SliceLayout{}, err
	}
	return s, nil
}

func (afbcHandler) wsiRowPitch(props *Props, l *Layout, plane, level int) int64 {
	return afbc.WSIPitch(props.Format, plane, props.Modifier, l.Slices[level].Header.RowStrideB)
}
