// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package drm defines the 64-bit DRM format modifier tokens that
// identify Mali storage layouts, as exchanged through window
// system protocols (dma-buf import/export).
//
// The sub-field encoding follows the Linux drm_fourcc.h vendor
// namespace bit for bit. Tokens cross process and driver
// boundaries, so none of these values may change.
package drm

import "fmt"

// Modifier is a vendor-namespaced layout token.
// Bits 63:56 hold the vendor, bits 55:52 the ARM layout type and
// the low 52 bits the per-family payload.
type Modifier uint64

const (
	vendorShift = 56
	vendorARM   = 0x08

	typeShift = 52
	typeMask  = 0xf
	typeAFBC  = 0x00
	typeMisc  = 0x01
	typeAFRC  = 0x02

	payloadMask Modifier = 1<<typeShift - 1
)

// Tokens shared with the window system.
const (
	// ModLinear is the zero token: rows of pixels laid out
	// contiguously with no tiling or compression.
	ModLinear Modifier = 0

	// ModInvalid marks the absence of a negotiated modifier.
	ModInvalid Modifier = 1<<vendorShift - 1

	// ModUTiled selects 16x16-block u-interleaved tiling.
	ModUTiled Modifier = vendorARM<<vendorShift | typeMisc<<typeShift | 1
)

// AFBC modifier payload fields.
const (
	// Superblock size. Exactly one of the three encodings
	// must be present in an AFBC payload.
	AFBCBlockMask Modifier = 0xf
	AFBC16x16     Modifier = 1
	AFBC32x8      Modifier = 2
	AFBC64x4      Modifier = 3

	AFBCYTR    Modifier = 1 << 4  // luma transform
	AFBCSplit  Modifier = 1 << 5  // split block body
	AFBCSparse Modifier = 1 << 6  // sparse body allocation
	AFBCCBR    Modifier = 1 << 7  // copy-block restrict
	AFBCTiled  Modifier = 1 << 8  // 8x8 header tiling
	AFBCSC     Modifier = 1 << 9  // solid color blocks
	AFBCDB     Modifier = 1 << 10 // double-buffer
	AFBCBCH    Modifier = 1 << 11 // buffer content hints
	AFBCUSM    Modifier = 1 << 12 // uncompressed storage mode
)

// AFRC modifier payload fields.
const (
	// Coding unit size. The field occupies bits 3:0 for the
	// first plane and bits 7:4 for the remaining planes; see
	// AFRCP0 and AFRCP12.
	AFRCCUMask Modifier = 0xf
	AFRCCU16   Modifier = 1
	AFRCCU24   Modifier = 2
	AFRCCU32   Modifier = 3

	AFRCScan Modifier = 1 << 8 // scan order, rotation order otherwise
)

// armCode assembles an ARM-namespaced modifier.
func armCode(typ, payload Modifier) Modifier {
	return vendorARM<<vendorShift | typ<<typeShift | payload&payloadMask
}

// AFBC returns the AFBC modifier carrying the given payload of
// superblock-size and flag bits.
func AFBC(payload Modifier) Modifier { return armCode(typeAFBC, payload) }

// AFRC returns the AFRC modifier carrying the given payload of
// coding-unit-size and layout bits.
func AFRC(payload Modifier) Modifier { return armCode(typeAFRC, payload) }

// AFRCP0 places a coding unit size in the first plane's field.
func AFRCP0(cu Modifier) Modifier { return cu & AFRCCUMask }

// AFRCP12 places a coding unit size in the field shared by the
// second and third planes.
func AFRCP12(cu Modifier) Modifier { return cu & AFRCCUMask << 4 }

// Family is the storage layout family of a modifier.
type Family int

// Families.
const (
	FamilyUnknown Family = iota
	FamilyLinear
	FamilyUTiled
	FamilyAFBC
	FamilyAFRC
)

// String returns the name of the family.
func (f Family) String() string {
	switch f {
	case FamilyLinear:
		return "Linear"
	case FamilyUTiled:
		return "UTiled"
	case FamilyAFBC:
		return "AFBC"
	case FamilyAFRC:
		return "AFRC"
	}
	return "Unknown"
}

// Family classifies m by its vendor and type bits.
// Unrecognized tokens, ModInvalid included, classify as
// FamilyUnknown; callers must treat such modifiers as
// unsupported rather than guess a layout.
func (m Modifier) Family() Family {
	switch {
	case m == ModLinear:
		return FamilyLinear
	case m>>vendorShift != vendorARM:
		return FamilyUnknown
	}
	switch m >> typeShift & typeMask {
	case typeAFBC:
		return FamilyAFBC
	case typeMisc:
		if m == ModUTiled {
			return FamilyUTiled
		}
	case typeAFRC:
		return FamilyAFRC
	}
	return FamilyUnknown
}

// Payload returns the low 52 bits of m.
func (m Modifier) Payload() Modifier { return m & payloadMask }

// String decomposes m into a readable form.
func (m Modifier) String() string {
	switch m.Family() {
	case FamilyLinear:
		return "Linear"
	case FamilyUTiled:
		return "UTiled"
	case FamilyAFBC:
		s := "AFBC("
		switch m & AFBCBlockMask {
		case AFBC16x16:
			s += "16x16"
		case AFBC32x8:
			s += "32x8"
		case AFBC64x4:
			s += "64x4"
		default:
			s += "?"
		}
		flags := [...]struct {
			bit  Modifier
			name string
		}{
			{AFBCYTR, "YTR"},
			{AFBCSplit, "SPLIT"},
			{AFBCSparse, "SPARSE"},
			{AFBCCBR, "CBR"},
			{AFBCTiled, "TILED"},
			{AFBCSC, "SC"},
			{AFBCDB, "DB"},
			{AFBCBCH, "BCH"},
			{AFBCUSM, "USM"},
		}
		for i := range flags {
			if m&flags[i].bit != 0 {
				s += "," + flags[i].name
			}
		}
		return s + ")"
	case FamilyAFRC:
		cu := func(fld Modifier) string {
			switch fld {
			case AFRCCU16:
				return "16"
			case AFRCCU24:
				return "24"
			case AFRCCU32:
				return "32"
			}
			return "?"
		}
		s := "AFRC(P0=" + cu(m&AFRCCUMask)
		if fld := m >> 4 & AFRCCUMask; fld != 0 {
			s += ",P12=" + cu(fld)
		}
		if m&AFRCScan != 0 {
			s += ",SCAN"
		}
		return s + ")"
	}
	if m == ModInvalid {
		return "Invalid"
	}
	return fmt.Sprintf("Modifier(%#018x)", uint64(m))
}
