// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Pandump computes the memory layout of a Mali image and prints
// it, one line per mip level, plus the derived WSI values and,
// optionally, every walked surface. It exists to sanity-check
// stride and size regressions without driving a GPU.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gviegas/pan"
	"github.com/gviegas/pan/desc"
	"github.com/gviegas/pan/drm"
	"github.com/gviegas/pan/image"
	"github.com/gviegas/pan/pixel"
)

func main() {
	var (
		arch     = flag.Int("arch", 10, "Architecture revision")
		format   = flag.String("format", "RGBA8un", "Pixel format name")
		modifier = flag.String("modifier", "linear", "Storage modifier: linear, utiled or a numeric DRM token")
		width    = flag.Int("width", 1024, "Width in pixels")
		height   = flag.Int("height", 1024, "Height in pixels")
		depth    = flag.Int("depth", 1, "Depth in pixels")
		dim      = flag.String("dim", "2d", "Dimensionality: 1d, 2d, 3d or cube")
		levels   = flag.Int("levels", 1, "Mip levels")
		layers   = flag.Int("layers", 1, "Array layers; a multiple of 6 for cubes")
		samples  = flag.Int("samples", 1, "Sample count")
		crc      = flag.Bool("crc", false, "Append checksum regions")
		pitch    = flag.Uint("pitch", 0, "Explicit WSI row pitch in bytes; 0 picks the driver's packing")
		offset   = flag.Int64("offset", 0, "Explicit plane offset in bytes")
		strict   = flag.Bool("strict", false, "Trust the explicit pitch exactly instead of treating it as a minimum")
		surfaces = flag.Bool("surfaces", false, "Print every walked surface")
	)
	flag.Parse()

	image.SetLogger(zap.Must(zap.NewDevelopment()))

	props := image.Props{
		Extent:    pan.Extent{Width: *width, Height: *height, Depth: *depth},
		NrSamples: *samples,
		NrSlices:  *levels,
		ArraySize: *layers,
		CRC:       *crc,
	}
	var err error
	if props.Format, err = parseFormat(*format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if props.Modifier, err = parseModifier(*modifier); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if props.Dim, err = parseDim(*dim); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	var wsi []image.LayoutConstraints
	if *pitch != 0 {
		wsi = make([]image.LayoutConstraints, props.Format.Planes())
		for i := range wsi {
			wsi[i] = image.LayoutConstraints{
				OffsetB:      *offset,
				WSIRowPitchB: uint32(*pitch),
				Strict:       *strict,
			}
		}
	}

	if err := dump(pan.Arch(*arch), &props, wsi, *surfaces); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFormat(s string) (pixel.Format, error) {
	for f := range pixel.All() {
		if strings.EqualFold(f.String(), s) {
			return f, nil
		}
	}
	return pixel.FInvalid, fmt.Errorf("unknown format %q", s)
}

func parseModifier(s string) (drm.Modifier, error) {
	switch strings.ToLower(s) {
	case "linear":
		return drm.ModLinear, nil
	case "utiled":
		return drm.ModUTiled, nil
	}
	m, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return drm.ModInvalid, fmt.Errorf("bad modifier %q", s)
	}
	return drm.Modifier(m), nil
}

func parseDim(s string) (image.Dimension, error) {
	switch strings.ToLower(s) {
	case "1d":
		return image.Dim1D, nil
	case "2d":
		return image.Dim2D, nil
	case "3d":
		return image.Dim3D, nil
	case "cube":
		return image.DimCube, nil
	}
	return 0, fmt.Errorf("bad dimensionality %q", s)
}

func dump(arch pan.Arch, props *image.Props, wsi []image.LayoutConstraints, surfaces bool) error {
	img, err := image.New(arch, props, wsi)
	if err != nil {
		return err
	}

	fmt.Printf("%dx%dx%d %s %s v%d\n",
		props.Extent.Width, props.Extent.Height, props.Extent.Depth,
		props.Format, props.Modifier, arch)
	afbc := img.Family() == drm.FamilyAFBC
	for p := range img.Planes() {
		l := img.Plane(p).Layout()
		fmt.Printf("plane %d\n", p)
		for lv := range props.NrSlices {
			s := &l.Slices[lv]
			fmt.Printf("  level %-2d offset %-10d size %-10d", lv, s.OffsetB, s.SizeB)
			if afbc {
				fmt.Printf(" hdrRowStride %-8d hdrSurface %-10d", s.Header.RowStrideB, s.Header.SurfaceSizeB)
			} else {
				fmt.Printf(" rowStride %-8d", s.RowStrideB)
			}
			fmt.Printf(" surfaceStride %d\n", s.SurfaceStrideB)
			if props.CRC {
				fmt.Printf("           crc offset %d stride %d size %d\n",
					s.CRC.OffsetB, s.CRC.StrideB, s.CRC.SizeB)
			}
		}
		fmt.Printf("  arrayStride %d dataSize %d\n", l.ArrayStrideB, l.DataSizeB)
		fmt.Printf("  wsi pitch %d offset %d\n", img.WSIRowPitch(p, 0), img.WSIOffset(p, 0))
		if surfaces {
			for s := range desc.Walk(img, p) {
				fmt.Printf("  surface level %d layer %d sample %d: %s offset %d rowStride %d bodyOffset %d\n",
					s.Level, s.Layer, s.Sample, s.Block, s.OffsetB, s.RowStrideB, s.BodyOffsetB)
			}
		}
	}
	return nil
}
