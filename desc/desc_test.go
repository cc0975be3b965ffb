// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package desc

import (
	"testing"

	"github.com/gviegas/pan"
	"github.com/gviegas/pan/drm"
	"github.com/gviegas/pan/image"
	"github.com/gviegas/pan/pixel"
)

// newImage lays out an image or fails the test.
func newImage(t *testing.T, arch pan.Arch, props *image.Props) *image.Image {
	t.Helper()
	img, err := image.New(arch, props, nil)
	if err != nil {
		t.Fatalf("image.New: unexpected error:\n%#v", err)
	}
	return img
}

func TestAt3D(t *testing.T) {
	img := newImage(t, 5, &image.Props{
		Format:    pixel.RGBA8un,
		Modifier:  drm.AFBC(drm.AFBC16x16),
		Extent:    pan.Extent{Width: 8, Height: 32, Depth: 16},
		Dim:       image.Dim3D,
		NrSamples: 1,
		NrSlices:  1,
		ArraySize: 1,
	})
	for _, z := range [...]int{0, 5, 15} {
		s := At(img, 0, 0, z, 0)
		if x := int64(z) * 2112; s.OffsetB != x {
			t.Errorf("At(z %d): OffsetB\nhave %d\nwant %d", z, s.OffsetB, x)
		}
		if s.Block != BlockAFBC {
			t.Errorf("At(z %d): Block\nhave %v\nwant %v", z, s.Block, BlockAFBC)
		}
		if s.RowStrideB != 16 {
			t.Errorf("At(z %d): RowStrideB\nhave %d\nwant 16", z, s.RowStrideB)
		}
		if s.BodyOffsetB != 64 {
			t.Errorf("At(z %d): BodyOffsetB\nhave %d\nwant 64", z, s.BodyOffsetB)
		}
		if s.SurfaceStrideB != 2112 {
			t.Errorf("At(z %d): SurfaceStrideB\nhave %d\nwant 2112", z, s.SurfaceStrideB)
		}
	}
}

func TestAtArray(t *testing.T) {
	img := newImage(t, 7, &image.Props{
		Format:    pixel.RGBA8un,
		Modifier:  drm.ModLinear,
		Extent:    pan.Extent{Width: 64, Height: 64, Depth: 1},
		Dim:       image.Dim2D,
		NrSamples: 1,
		NrSlices:  3,
		ArraySize: 4,
	})
	l := img.Plane(0).Layout()
	if l.ArrayStrideB != 21504 {
		t.Fatalf("ArrayStrideB\nhave %d\nwant 21504", l.ArrayStrideB)
	}
	for _, c := range [...]struct {
		level, layer int
		offsetB      int64
		rowStrideB   int64
	}{
		{0, 0, 0, 256},
		{1, 2, 16384 + 2*21504, 128},
		{2, 3, 20480 + 3*21504, 64},
	} {
		s := At(img, 0, c.level, c.layer, 0)
		if s.OffsetB != c.offsetB {
			t.Errorf("At(%d, %d): OffsetB\nhave %d\nwant %d", c.level, c.layer, s.OffsetB, c.offsetB)
		}
		if s.RowStrideB != c.rowStrideB {
			t.Errorf("At(%d, %d): RowStrideB\nhave %d\nwant %d", c.level, c.layer, s.RowStrideB, c.rowStrideB)
		}
		if s.Block != BlockLinear {
			t.Errorf("At(%d, %d): Block\nhave %v\nwant %v", c.level, c.layer, s.Block, BlockLinear)
		}
	}
}

func TestAtMultiSample(t *testing.T) {
	img := newImage(t, 7, &image.Props{
		Format:    pixel.RGBA8un,
		Modifier:  drm.ModLinear,
		Extent:    pan.Extent{Width: 64, Height: 64, Depth: 1},
		Dim:       image.Dim2D,
		NrSamples: 4,
		NrSlices:  1,
		ArraySize: 1,
	})
	for sample := range 4 {
		s := At(img, 0, 0, 0, sample)
		if x := int64(sample) * 16384; s.OffsetB != x {
			t.Errorf("At(sample %d): OffsetB\nhave %d\nwant %d", sample, s.OffsetB, x)
		}
	}
}

func TestBlockFormats(t *testing.T) {
	for _, c := range [...]struct {
		arch  pan.Arch
		m     drm.Modifier
		block BlockFormat
	}{
		{7, drm.ModLinear, BlockLinear},
		{7, drm.ModUTiled, BlockUTiled},
		{7, drm.AFBC(drm.AFBC16x16), BlockAFBC},
		{7, drm.AFBC(drm.AFBC32x8), BlockAFBCWide},
		{10, drm.AFRC(drm.AFRCP0(drm.AFRCCU16) | drm.AFRCScan), BlockAFRCScan},
		{10, drm.AFRC(drm.AFRCP0(drm.AFRCCU24)), BlockAFRCRotate},
	} {
		img := newImage(t, c.arch, &image.Props{
			Format:    pixel.RGBA8un,
			Modifier:  c.m,
			Extent:    pan.Extent{Width: 64, Height: 64, Depth: 1},
			Dim:       image.Dim2D,
			NrSamples: 1,
			NrSlices:  1,
			ArraySize: 1,
		})
		if s := At(img, 0, 0, 0, 0); s.Block != c.block {
			t.Errorf("At (%s): Block\nhave %v\nwant %v", c.m, s.Block, c.block)
		}
	}
}

func TestWalk(t *testing.T) {
	img := newImage(t, 7, &image.Props{
		Format:    pixel.RGBA8un,
		Modifier:  drm.ModLinear,
		Extent:    pan.Extent{Width: 64, Height: 64, Depth: 1},
		Dim:       image.Dim2D,
		NrSamples: 1,
		NrSlices:  3,
		ArraySize: 2,
	})
	var got []Surface
	for s := range Walk(img, 0) {
		got = append(got, s)
	}
	if len(got) != 6 {
		t.Fatalf("len(surfaces)\nhave %d\nwant 6", len(got))
	}
	order := [...]struct{ level, layer int }{
		{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1},
	}
	for i, s := range got {
		if s.Level != order[i].level || s.Layer != order[i].layer {
			t.Errorf("surfaces[%d]\nhave level %d, layer %d\nwant level %d, layer %d",
				i, s.Level, s.Layer, order[i].level, order[i].layer)
		}
		want := At(img, 0, order[i].level, order[i].layer, 0)
		if s != want {
			t.Errorf("surfaces[%d]\nhave %v\nwant %v", i, s, want)
		}
	}

	// Walks of 3D images cover the minified depth per level.
	img = newImage(t, 5, &image.Props{
		Format:    pixel.RGBA8un,
		Modifier:  drm.AFBC(drm.AFBC16x16),
		Extent:    pan.Extent{Width: 8, Height: 32, Depth: 16},
		Dim:       image.Dim3D,
		NrSamples: 1,
		NrSlices:  2,
		ArraySize: 1,
	})
	got = got[:0]
	for s := range Walk(img, 0) {
		got = append(got, s)
	}
	if len(got) != 16+8 {
		t.Fatalf("len(surfaces)\nhave %d\nwant 24", len(got))
	}
	if s := got[16]; s.Level != 1 || s.Layer != 0 {
		t.Errorf("surfaces[16]\nhave level %d, layer %d\nwant level 1, layer 0", s.Level, s.Layer)
	}

	// Early stop must end the walk cleanly.
	n := 0
	for range Walk(img, 0) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("early stop\nhave %d surfaces\nwant 1", n)
	}
}

func TestCapture(t *testing.T) {
	img := newImage(t, 7, &image.Props{
		Format:    pixel.RGBA8un,
		Modifier:  drm.ModUTiled,
		Extent:    pan.Extent{Width: 64, Height: 64, Depth: 1},
		Dim:       image.Dim2D,
		NrSamples: 1,
		NrSlices:  2,
		ArraySize: 1,
	})
	var pk Capture
	var p Packer = &pk
	for s := range Walk(img, 0) {
		p.PackTexture(img, 0, s)
		p.PackRenderTarget(img, 0, s)
	}
	p.PackZS(img, 0, At(img, 0, 0, 0, 0))

	if len(pk.Textures) != 2 || len(pk.RenderTargets) != 2 || len(pk.ZS) != 1 {
		t.Fatalf("capture lengths\nhave %d, %d, %d\nwant 2, 2, 1",
			len(pk.Textures), len(pk.RenderTargets), len(pk.ZS))
	}
	if pk.Textures[1].Level != 1 {
		t.Errorf("Textures[1].Level\nhave %d\nwant 1", pk.Textures[1].Level)
	}
	if pk.ZS[0] != pk.Textures[0] {
		t.Errorf("ZS[0]\nhave %v\nwant %v", pk.ZS[0], pk.Textures[0])
	}
}
