// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package image

import (
	"github.com/gviegas/pan"
	"github.com/gviegas/pan/drm"
	"github.com/gviegas/pan/internal/fmtset"
	"github.com/gviegas/pan/pixel"
)

// handler is the vtable of one storage layout family.
// The registry resolves a modifier to its handler once per
// image; nothing outside the handlers branches on modifier bits.
type handler interface {
	// match reports whether the handler owns m.
	match(m drm.Modifier) bool

	// supportsFormat reports whether the format, modifier and
	// plane combination exists on the given architecture.
	supportsFormat(arch pan.Arch, f pixel.Format, m drm.Modifier, plane int) bool

	// alignB returns the byte alignment of slice offsets.
	alignB(a *sliceArgs) int64

	// initSlice computes one mip level.
	initSlice(a *sliceArgs) (SliceLayout, error)

	// wsiRowPitch derives the window-system row pitch of a
	// level from its computed layout.
	wsiRowPitch(props *Props, l *Layout, plane, level int) int64
}

// handlers is ordered best match first, but since modifier
// ranges are disjoint the order does not matter for correctness.
var handlers = [...]handler{
	afbcHandler{},
	afrcHandler{},
	utiledHandler{},
	linearHandler{},
}

// lookup returns the handler owning m, or nil for modifiers of
// unknown or foreign layouts. Callers must treat nil as a hard
// configuration error.
func lookup(m drm.Modifier) handler {
	for _, h := range handlers {
		if h.match(m) {
			return h
		}
	}
	return nil
}

// SupportsModifier reports whether the given plane of a format
// can be laid out with modifier m on the given architecture.
func SupportsModifier(arch pan.Arch, f pixel.Format, m drm.Modifier, plane int) bool {
	if plane < 0 || plane >= f.Planes() {
		return false
	}
	h := lookup(m)
	return h != nil && h.supportsFormat(arch, f, m, plane)
}

// supportsAllPlanes reports whether every plane of f supports m.
func supportsAllPlanes(arch pan.Arch, f pixel.Format, m drm.Modifier) bool {
	for p := range f.Planes() {
		if !SupportsModifier(arch, f, m, p) {
			return false
		}
	}
	return true
}

// preferredMods is the negotiation order offered to allocators
// and window systems, best first.
var preferredMods = [...]drm.Modifier{
	drm.AFBC(drm.AFBC16x16 | drm.AFBCTiled | drm.AFBCYTR | drm.AFBCSparse),
	drm.AFBC(drm.AFBC16x16 | drm.AFBCTiled | drm.AFBCSparse),
	drm.AFBC(drm.AFBC16x16 | drm.AFBCYTR | drm.AFBCSparse),
	drm.AFBC(drm.AFBC16x16 | drm.AFBCSparse),
	drm.ModUTiled,
	drm.ModLinear,
}

// PreferredModifiers returns the modifiers usable for every
// plane of f on the given architecture, most preferred first.
// Callers negotiating an allocation try them in order; retrying
// is caller policy, never done here.
func PreferredModifiers(arch pan.Arch, f pixel.Format) []drm.Modifier {
	var mods []drm.Modifier
	for _, m := range preferredMods {
		if supportsAllPlanes(arch, f, m) {
			mods = append(mods, m)
		}
	}
	return mods
}

// Format support tables.
var (
	// Formats AFBC can compress.
	afbcFormats = fmtset.Of(
		pixel.R8un,
		pixel.RG8un,
		pixel.RGB8un,
		pixel.RGBA8un,
		pixel.BGRA8un,
		pixel.RGBA8sRGB,
		pixel.BGRA8sRGB,
		pixel.RGB565un,
		pixel.RGBA4un,
		pixel.RGB5A1un,
		pixel.RGB10A2un,
		pixel.D16un,
		pixel.D24unS8ui,
		pixel.NV12,
		pixel.NV21,
		pixel.YV12,
		pixel.NV15,
		pixel.YUYV,
		pixel.VYUY,
	)

	// Formats AFRC can code. Fixed-rate coding is lossy, so
	// only plain unorm color formats opt in.
	afrcFormats = fmtset.Of(
		pixel.R8un,
		pixel.RG8un,
		pixel.RGB8un,
		pixel.RGBA8un,
		pixel.BGRA8un,
		pixel.RGBA8sRGB,
		pixel.BGRA8sRGB,
		pixel.RGB565un,
		pixel.RGBA4un,
		pixel.RGB5A1un,
		pixel.RGB10A2un,
	)

	// Formats that exist only as AFBC payloads. The sampler
	// cannot address their packed texels in plain memory.
	afbcOnlyFormats = fmtset.Of(
		pixel.YUYV,
		pixel.VYUY,
	)
)
