// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package image computes the memory layout of Mali image
// resources: per-level offsets, strides and sizes for linear,
// u-interleaved, AFBC and AFRC storage, for images the driver
// packs itself as well as for images imported with explicit
// window-system placement.
//
// Layouts are pure data. Computing one performs no allocation on
// the device and no GPU work; the caller binds the result to
// memory it obtained elsewhere.
package image

import (
	"errors"
	"fmt"

	"github.com/gviegas/pan"
	"github.com/gviegas/pan/drm"
	"github.com/gviegas/pan/pixel"
)

const prefix = "image: "

// Layout construction failure classes.
// Every failure wraps one of these; callers discriminate with
// errors.Is. All of them are recoverable, typically by falling
// back to another modifier in a negotiation loop.
var (
	// ErrUnsupported means the architecture, format, modifier
	// and plane combination cannot exist.
	ErrUnsupported = errors.New(prefix + "unsupported configuration")

	// ErrExplicitLayout means caller-supplied placement
	// constraints violate the layout family's alignment or
	// minimum-size rules, or the image cannot use explicit
	// placement at all.
	ErrExplicitLayout = errors.New(prefix + "invalid explicit layout")

	// ErrFieldOverflow means a computed size or stride does not
	// fit the descriptor fields of the target architecture.
	ErrFieldOverflow = errors.New(prefix + "descriptor field overflow")
)

// Dimension is the dimensionality of an image.
type Dimension int

// Dimensionalities.
const (
	Dim1D Dimension = iota + 1
	Dim2D
	Dim3D
	DimCube
)

// String returns the name of the dimensionality.
func (d Dimension) String() string {
	switch d {
	case Dim1D:
		return "1D"
	case Dim2D:
		return "2D"
	case Dim3D:
		return "3D"
	case DimCube:
		return "Cube"
	}
	return "InvalidDim"
}

// Props describes an image resource.
// It is an immutable input: the layout engine never changes it,
// and changing a field after layout construction has no effect
// on the layouts already built from it.
type Props struct {
	Format   pixel.Format
	Modifier drm.Modifier
	// Extent of mip level 0 in pixels.
	Extent    pan.Extent
	Dim       Dimension
	NrSamples int
	// NrSlices is the number of mip levels.
	NrSlices  int
	ArraySize int
	// CRC appends a transaction elimination checksum region
	// to every slice.
	CRC bool
}

// LayoutConstraints carries the explicit placement of an
// externally imported plane, as exchanged over window-system
// protocols. A zero WSIRowPitchB leaves the driver free to pick
// its own packing.
//
// When Strict is unset, AFBC and AFRC layouts validate the pitch
// only as a minimum and then recompute the natural packed stride,
// discarding the given value. Older window-system consumers
// depend on this lenient behavior, so it is kept as is.
type LayoutConstraints struct {
	OffsetB      int64
	WSIRowPitchB uint32
	Strict       bool
}

func (c *LayoutConstraints) explicit() bool {
	return c != nil && c.WSIRowPitchB != 0
}

// MaxLevels returns the number of mip levels needed to minify e
// down to a single pixel.
func MaxLevels(e pan.Extent) int {
	n := 1
	for x := max(e.Width, e.Height, e.Depth); x > 1; x /= 2 {
		n++
	}
	return n
}

// maxExtent is the largest expressible size per axis, matching
// pan.MaxMipLevels.
const maxExtent = 1 << 16

// validProps checks props against the data model's invariants.
// It returns a non-empty reason on failure.
func validProps(props *Props) (reason string) {
	switch {
	case props == nil:
		reason = "nil props"
	case !props.Format.Valid():
		reason = "invalid format"
	case props.Extent.Width < 1, props.Extent.Height < 1, props.Extent.Depth < 1:
		reason = "invalid extent"
	case props.Extent.Width > maxExtent, props.Extent.Height > maxExtent, props.Extent.Depth > maxExtent:
		reason = "extent too big"
	case props.NrSamples < 1, props.NrSamples&(props.NrSamples-1) != 0:
		reason = "invalid sample count"
	case props.NrSamples > 1 && props.Extent.Depth != 1:
		reason = "multi-sample depth"
	case props.NrSamples > 1 && props.NrSlices > 1:
		reason = "multi-sample mipmap"
	case props.NrSlices < 1, props.NrSlices > MaxLevels(props.Extent):
		reason = "invalid level count"
	case props.ArraySize < 1:
		reason = "invalid array size"
	case props.Dim < Dim1D, props.Dim > DimCube:
		reason = "invalid dimensionality"
	case props.Dim == Dim1D && (props.Extent.Height != 1 || props.Extent.Depth != 1):
		reason = "1D extent"
	case props.Dim == Dim2D && props.Extent.Depth != 1:
		reason = "2D extent"
	case props.Dim == DimCube && (props.ArraySize%6 != 0 || props.Extent.Depth != 1):
		reason = "cube layout"
	case props.Dim == Dim3D && props.ArraySize != 1:
		reason = "3D array"
	}
	return
}

// Image is an image resource bound to a computed layout per
// format plane.
type Image struct {
	arch   pan.Arch
	props  Props
	hnd    handler
	planes []Plane
}

// Plane is one memory plane of an image.
type Plane struct {
	layout Layout
}

// Layout returns the plane's layout.
// The returned value is shared, read-only data; callers must
// not modify it.
func (p *Plane) Layout() *Layout { return &p.layout }

// New computes the layout of every plane of an image described
// by props and binds them to the returned Image.
//
// wsi carries per-plane explicit placement for imported images.
// It must either be nil, leaving the driver to choose every
// plane's packing, or hold exactly one entry per format plane.
func New(arch pan.Arch, props *Props, wsi []LayoutConstraints) (*Image, error) {
	reason := validProps(props)
	switch {
	case reason != "":
	case wsi != nil && len(wsi) != props.Format.Planes():
		reason = "constraints do not cover every plane"
	default:
		goto validParam
	}
	return nil, errors.New(prefix + reason)
validParam:
	t := &Image{
		arch:   arch,
		props:  *props,
		hnd:    lookup(props.Modifier),
		planes: make([]Plane, props.Format.Planes()),
	}
	if t.hnd == nil {
		return nil, fmt.Errorf("%w: unknown modifier %s", ErrUnsupported, props.Modifier)
	}
	for i := range t.planes {
		var c *LayoutConstraints
		if wsi != nil {
			c = &wsi[i]
		}
		layout, err := InitLayout(arch, props, i, c)
		if err != nil {
			return nil, err
		}
		t.planes[i].layout = layout
	}
	return t, nil
}

// Arch returns the architecture revision the image was laid out
// for.
func (t *Image) Arch() pan.Arch { return t.arch }

// Props returns the image description.
func (t *Image) Props() Props { return t.props }

// Family returns the storage layout family of the image's
// modifier.
func (t *Image) Family() drm.Family { return t.props.Modifier.Family() }

// Planes returns the number of memory planes.
func (t *Image) Planes() int { return len(t.planes) }

// Plane returns the given memory plane.
func (t *Image) Plane(i int) *Plane { return &t.planes[i] }

// WSIRowPitch returns the row pitch of the given plane and level
// as exchanged over window-system protocols. It is the inverse
// of explicit layout construction: importing an image with a
// strict pitch and asking it back returns the same value.
func (t *Image) WSIRowPitch(plane, level int) uint32 {
	return uint32(t.hnd.wsiRowPitch(&t.props, &t.planes[plane].layout, plane, level))
}

// WSIOffset returns the byte offset of the given plane and level
// from the plane base, as exchanged over window-system protocols.
func (t *Image) WSIOffset(plane, level int) int64 {
	return t.planes[plane].layout.Slices[level].OffsetB
}
