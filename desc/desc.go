// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package desc bridges computed image layouts and hardware
// descriptor emission. It resolves one (level, layer, sample)
// triple into a Surface record holding everything a descriptor
// references: the surface's offset from the plane base, its
// strides and the block format tag telling the GPU how to read
// the payload.
//
// The exact descriptor bit layout is an architecture-specific
// packing owned by each backend, behind the Packer interface.
package desc

import (
	"iter"

	"github.com/gviegas/pan/afbc"
	"github.com/gviegas/pan/drm"
	"github.com/gviegas/pan/image"
	"github.com/gviegas/pan/internal/umath"
)

// BlockFormat tells the GPU how a surface's payload is encoded.
type BlockFormat int

// Block formats.
const (
	BlockLinear BlockFormat = iota
	BlockUTiled
	BlockAFBC
	BlockAFBCWide
	BlockAFRCScan
	BlockAFRCRotate
)

// String returns the name of the block format.
func (b BlockFormat) String() string {
	switch b {
	case BlockLinear:
		return "Linear"
	case BlockUTiled:
		return "UTiled"
	case BlockAFBC:
		return "AFBC"
	case BlockAFBCWide:
		return "AFBCWide"
	case BlockAFRCScan:
		return "AFRCScan"
	case BlockAFRCRotate:
		return "AFRCRotate"
	}
	return "InvalidBlockFormat"
}

// blockFormat derives the tag from a modifier already validated
// by image layout construction.
func blockFormat(m drm.Modifier) BlockFormat {
	switch m.Family() {
	case drm.FamilyUTiled:
		return BlockUTiled
	case drm.FamilyAFBC:
		if afbc.IsWide(m) {
			return BlockAFBCWide
		}
		return BlockAFBC
	case drm.FamilyAFRC:
		if m&drm.AFRCScan != 0 {
			return BlockAFRCScan
		}
		return BlockAFRCRotate
	}
	return BlockLinear
}

// Surface locates one addressable surface of an image plane:
// a single mip level of a single array layer or depth slice,
// at a single sample index.
type Surface struct {
	Level int
	// Layer is the array layer or cube face, and the depth
	// slice for 3D images.
	Layer  int
	Sample int

	Block BlockFormat

	// OffsetB is the byte offset of the surface from the
	// plane base. AFBC surfaces start at their header block.
	OffsetB int64

	// RowStrideB is the payload row stride, or the header row
	// stride for AFBC surfaces.
	RowStrideB     int64
	SurfaceStrideB int64

	// BodyOffsetB is the byte offset of the AFBC body from
	// the surface start. Zero for every other family.
	BodyOffsetB int64
}

// At resolves the surface of the given plane, level, layer and
// sample. Arguments must be within the bounds of the image's
// Props; At does not validate them.
func At(img *image.Image, plane, level, layer, sample int) Surface {
	props := img.Props()
	l := img.Plane(plane).Layout()
	s := &l.Slices[level]

	off := s.OffsetB
	if props.Dim == image.Dim3D {
		// Depth slices of a level are consecutive surfaces.
		off += s.SurfaceStrideB * int64(layer)
	} else {
		off += l.ArrayStrideB * int64(layer)
	}
	off += s.SurfaceStrideB * int64(sample)

	surf := Surface{
		Level:          level,
		Layer:          layer,
		Sample:         sample,
		Block:          blockFormat(props.Modifier),
		OffsetB:        off,
		RowStrideB:     s.RowStrideB,
		SurfaceStrideB: s.SurfaceStrideB,
	}
	if props.Modifier.Family() == drm.FamilyAFBC {
		surf.RowStrideB = s.Header.RowStrideB
		surf.BodyOffsetB = umath.AlignPo2(s.Header.SurfaceSizeB, afbc.HeaderAlign(img.Arch(), props.Modifier))
	}
	return surf
}

// Walk returns an iterator over every surface of the given
// plane, level-major: all layers and samples of level 0, then
// of level 1, and so on. 3D images walk the depth slices of
// each level in layer order.
func Walk(img *image.Image, plane int) iter.Seq[Surface] {
	props := img.Props()
	return func(yield func(Surface) bool) {
		for level := range props.NrSlices {
			layers := props.ArraySize
			if props.Dim == image.Dim3D {
				layers = props.Extent.Minify(level).Depth
			}
			for layer := range layers {
				for sample := range props.NrSamples {
					if !yield(At(img, plane, level, layer, sample)) {
						return
					}
				}
			}
		}
	}
}

// Packer packs surfaces into architecture-specific descriptor
// records. Each backend brings its own implementation; layout
// data reaches it exclusively through Surface values.
type Packer interface {
	// PackTexture packs a texture sampler descriptor.
	PackTexture(img *image.Image, plane int, s Surface)

	// PackRenderTarget packs a render target attachment
	// descriptor.
	PackRenderTarget(img *image.Image, plane int, s Surface)

	// PackZS packs a depth/stencil attachment descriptor.
	PackZS(img *image.Image, plane int, s Surface)
}

// Capture is a Packer that records every surface it is asked to
// pack, in call order. It backs layout inspection tools and
// tests; it writes no hardware records.
type Capture struct {
	Textures      []Surface
	RenderTargets []Surface
	ZS            []Surface
}

// PackTexture implements Packer.
func (c *Capture) PackTexture(_ *image.Image, _ int, s Surface) {
	c.Textures = append(c.Textures, s)
}

// PackRenderTarget implements Packer.
func (c *Capture) PackRenderTarget(_ *image.Image, _ int, s Surface) {
	c.RenderTargets = append(c.RenderTargets, s)
}

// PackZS implements Packer.
func (c *Capture) PackZS(_ *image.Image, _ int, s Surface) {
	c.ZS = append(c.ZS, s)
}
