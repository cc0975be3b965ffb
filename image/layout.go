// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package image

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/gviegas/pan"
	"github.com/gviegas/pan/internal/umath"
	"github.com/gviegas/pan/pixel"
)

// Layout describes the memory placement of one image plane.
// It is computed once and never mutated; reinterpreting an image
// means building a new Layout, not changing an existing one.
type Layout struct {
	// Slices holds one entry per mip level, level 0 first.
	// Entries past Props.NrSlices are zero.
	Slices [pan.MaxMipLevels]SliceLayout

	// ArrayStrideB is the byte distance between consecutive
	// array elements or cube faces of the whole mip chain.
	ArrayStrideB int64

	// DataSizeB is the total footprint: every array element for
	// layouts the driver packed itself, and the span from the
	// caller-given offset to the end of the payload for
	// explicitly placed ones.
	DataSizeB int64
}

// SliceLayout describes one mip level of one plane.
//
// RowStrideB and SurfaceStrideB describe the payload of linear,
// u-interleaved and AFRC slices. AFBC slices use Header together
// with SurfaceStrideB, which then spans one interleaved
// header+body surface. Which reading applies is decided by the
// image's modifier family, fixed at creation.
type SliceLayout struct {
	// OffsetB is the byte offset from the plane base.
	OffsetB int64
	// SizeB spans everything the level occupies, checksum
	// region included.
	SizeB int64

	RowStrideB     int64
	SurfaceStrideB int64

	// Header is the AFBC header geometry.
	Header AFBCHeader

	// CRC is the checksum tail region. Present only when
	// Props.CRC is set.
	CRC CRCLayout
}

// AFBCHeader is the header region geometry of an AFBC slice.
type AFBCHeader struct {
	RowStrideB int64
	// SurfaceSizeB is the unpadded header size of one surface.
	// The body follows at the body alignment.
	SurfaceSizeB int64
}

// CRCLayout is the transaction elimination checksum region of a
// slice: one 8-byte checksum per 16x16 pixel tile.
type CRCLayout struct {
	OffsetB int64
	StrideB int64
	SizeB   int64
}

// RowAlign returns the row stride alignment of linear and
// u-interleaved layouts for the given plane.
func RowAlign(arch pan.Arch, f pixel.Format, plane int) int64 {
	if arch >= 7 {
		// Fixed per-format table.
		switch f {
		case pixel.NV12, pixel.NV21, pixel.P010, pixel.YV12,
			pixel.YUYV, pixel.VYUY:
			return 16
		case pixel.NV15:
			return 1
		}
		return 64
	}
	// Older revisions derive the alignment from the channel
	// layout: uniform whole-byte channels align to the channel
	// size, anything else to the block size.
	if !f.Compressed() {
		if bits, ok := f.UniformChannelBits(); ok && bits%8 == 0 {
			return int64(bits / 8)
		}
	}
	return umath.FloorPo2(int64(f.PlaneBlockSize(plane)))
}

// sliceArgs carries the per-level inputs of a slice calculation.
type sliceArgs struct {
	arch    pan.Arch
	props   *Props
	plane   int
	level   int
	offsetB int64
	wsi     *LayoutConstraints
}

// planeExtent returns the pixel extent of the plane at the
// argument level.
func (a *sliceArgs) planeExtent() pan.Extent {
	mip := a.props.Extent.Minify(a.level)
	return a.props.Format.PlaneExtent(a.plane, mip)
}

func (a *sliceArgs) explicit() bool { return a.wsi.explicit() }

// errExplicit logs and wraps an explicit-layout violation.
// The log message is a diagnostic side effect; the contract with
// the caller is the returned error alone.
func (a *sliceArgs) errExplicit(reason string) error {
	Logger().Warn("rejecting explicit image layout",
		zap.Stringer("format", a.props.Format),
		zap.Stringer("modifier", a.props.Modifier),
		zap.Int("plane", a.plane),
		zap.Uint32("wsiRowPitchB", a.wsi.WSIRowPitchB),
		zap.Int64("offsetB", a.wsi.OffsetB),
		zap.String("reason", reason),
	)
	return fmt.Errorf("%w: %s", ErrExplicitLayout, reason)
}

// checkFields rejects slices whose geometry does not fit the
// descriptor fields of the target architecture. Descriptors
// store 32-bit sizes and strides before revision 11.
func checkFields(arch pan.Arch, s *SliceLayout) error {
	if arch >= pan.MinArchWideFields {
		return nil
	}
	for _, x := range [...]int64{s.SizeB, s.RowStrideB, s.SurfaceStrideB, s.Header.RowStrideB} {
		if x > math.MaxUint32 {
			return fmt.Errorf("%w: slice geometry exceeds 32 bits", ErrFieldOverflow)
		}
	}
	return nil
}

// crcGranularity returns the pixel granularity the checksum
// region is sized against.
func crcGranularity(arch pan.Arch) int {
	if arch >= 7 {
		return 64
	}
	return 32
}

// appendCRC grows s with the checksum tail region.
func appendCRC(a *sliceArgs, s *SliceLayout) {
	const tile = 16
	const bytesPerTile = 8
	g := crcGranularity(a.arch)
	px := a.planeExtent()
	w := umath.AlignPo2(px.Width, g)
	h := umath.AlignPo2(px.Height, g)
	stride := int64(w/tile) * bytesPerTile
	size := stride * int64(h/tile)
	off := umath.AlignPo2(s.OffsetB+s.SizeB, 64)
	s.CRC = CRCLayout{OffsetB: off, StrideB: stride, SizeB: size}
	s.SizeB = off + size - s.OffsetB
}

// InitLayout computes the layout of one plane of an image.
//
// wsi, when non-nil with a nonzero pitch, switches the
// calculation to explicit mode: the caller-given offset and
// window-system row pitch are validated against the modifier
// family's alignment and minimum-size rules and the layout is
// derived from them. Explicit placement exists for importing
// external buffers and so is limited to single-level,
// single-sample, non-arrayed, non-checksummed 2D images.
//
// InitLayout either returns a complete layout or fails without
// partial results. It is a pure function: identical inputs
// produce identical layouts.
func InitLayout(arch pan.Arch, props *Props, plane int, wsi *LayoutConstraints) (Layout, error) {
	var layout Layout
	if reason := validProps(props); reason != "" {
		return layout, fmt.Errorf("%w: %s", ErrUnsupported, reason)
	}
	if plane < 0 || plane >= props.Format.Planes() {
		return layout, fmt.Errorf("%w: plane %d of %s", ErrUnsupported, plane, props.Format)
	}
	hnd := lookup(props.Modifier)
	if hnd == nil {
		return layout, fmt.Errorf("%w: unknown modifier %s", ErrUnsupported, props.Modifier)
	}
	if !hnd.supportsFormat(arch, props.Format, props.Modifier, plane) {
		return layout, fmt.Errorf("%w: %s with %s on v%d", ErrUnsupported, props.Format, props.Modifier, arch)
	}

	a := sliceArgs{arch: arch, props: props, plane: plane, wsi: wsi}
	offset := int64(0)
	if a.explicit() {
		var reason string
		switch {
		case props.NrSlices != 1:
			reason = "explicit layout of a mipmapped image"
		case props.NrSamples != 1:
			reason = "explicit layout of a multi-sample image"
		case props.ArraySize != 1:
			reason = "explicit layout of an arrayed image"
		case props.Dim != Dim2D:
			reason = "explicit layout of a non-2D image"
		case props.CRC:
			reason = "explicit layout of a checksummed image"
		case wsi.OffsetB < 0, wsi.OffsetB%hnd.alignB(&a) != 0:
			reason = "unaligned plane offset"
		}
		if reason != "" {
			return layout, a.errExplicit(reason)
		}
		offset = wsi.OffsetB
	}

	for level := range props.NrSlices {
		a.level = level
		a.offsetB = umath.AlignPo2(offset, hnd.alignB(&a))
		slice, err := hnd.initSlice(&a)
		if err != nil {
			return Layout{}, err
		}
		layout.Slices[level] = slice
		offset = slice.OffsetB + slice.SizeB
	}

	layout.ArrayStrideB = umath.AlignPo2(offset-layout.Slices[0].OffsetB, 64)
	if a.explicit() {
		layout.DataSizeB = offset - wsi.OffsetB
	} else {
		layout.DataSizeB = umath.AlignPo2(layout.ArrayStrideB*int64(props.ArraySize), 4096)
	}
	if arch < pan.MinArchWideFields {
		for _, x := range [...]int64{layout.ArrayStrideB, layout.DataSizeB} {
			if x > math.MaxUint32 {
				return Layout{}, fmt.Errorf("%w: plane footprint exceeds 32 bits", ErrFieldOverflow)
			}
		}
	}
	return layout, nil
}
