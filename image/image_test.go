// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package image

import (
	"strings"
	"testing"

	"github.com/gviegas/pan"
	"github.com/gviegas/pan/drm"
	"github.com/gviegas/pan/pixel"
)

func TestNew(t *testing.T) {
	props := Props{
		Format:    pixel.RGBA8un,
		Modifier:  drm.ModLinear,
		Extent:    pan.Extent{Width: 256, Height: 256, Depth: 1},
		Dim:       Dim2D,
		NrSamples: 1,
		NrSlices:  1,
		ArraySize: 1,
	}
	img, err := New(7, &props, nil)
	if err != nil {
		t.Fatalf("New: unexpected error:\n%#v", err)
	}
	if x := img.Arch(); x != 7 {
		t.Errorf("img.Arch()\nhave %d\nwant 7", x)
	}
	if x := img.Props(); x != props {
		t.Errorf("img.Props()\nhave %v\nwant %v", x, props)
	}
	if x := img.Family(); x != drm.FamilyLinear {
		t.Errorf("img.Family()\nhave %v\nwant %v", x, drm.FamilyLinear)
	}
	if x := img.Planes(); x != 1 {
		t.Errorf("img.Planes()\nhave %d\nwant 1", x)
	}
	if x := img.Plane(0).Layout(); x.DataSizeB <= 0 {
		t.Errorf("img.Plane(0).Layout().DataSizeB\nhave %d\nwant > 0", x.DataSizeB)
	}

	props.Format = pixel.NV12
	img, err = New(7, &props, nil)
	if err != nil {
		t.Fatalf("New: unexpected error:\n%#v", err)
	}
	if x := img.Planes(); x != 2 {
		t.Errorf("img.Planes()\nhave %d\nwant 2", x)
	}

	props.Format = pixel.RGBA8un
	props.Dim = DimCube
	props.ArraySize = 6
	if _, err := New(7, &props, nil); err != nil {
		t.Fatalf("New: unexpected error:\n%#v", err)
	}
}

func TestNewValidation(t *testing.T) {
	// valid returns a mutable copy of a valid description.
	valid := func() Props {
		return Props{
			Format:    pixel.RGBA8un,
			Modifier:  drm.ModLinear,
			Extent:    pan.Extent{Width: 64, Height: 64, Depth: 1},
			Dim:       Dim2D,
			NrSamples: 1,
			NrSlices:  1,
			ArraySize: 1,
		}
	}

	// props must not be nil.
	_, err := New(7, nil, nil)
	switch {
	case err == nil:
		t.Error("New: unexpected success")
	case !strings.HasPrefix(err.Error(), prefix):
		t.Errorf("New: unexpected error:\n%#v", err)
	}

	for _, c := range [...]struct {
		name   string
		mutate func(*Props)
	}{
		{"invalid format", func(p *Props) { p.Format = pixel.FInvalid }},
		{"zero extent", func(p *Props) { p.Extent.Width = 0 }},
		{"extent too big", func(p *Props) { p.Extent.Height = 1<<16 + 1 }},
		{"non-power-of-two samples", func(p *Props) { p.NrSamples = 3 }},
		{"multi-sample mipmap", func(p *Props) { p.NrSamples = 2; p.NrSlices = 2 }},
		{
			"multi-sample depth",
			func(p *Props) { p.NrSamples = 2; p.Dim = Dim3D; p.Extent.Depth = 2 },
		},
		{"zero levels", func(p *Props) { p.NrSlices = 0 }},
		{"too many levels", func(p *Props) { p.NrSlices = 8 }},
		{"zero array size", func(p *Props) { p.ArraySize = 0 }},
		{"zero dimensionality", func(p *Props) { p.Dim = 0 }},
		{"1D with height", func(p *Props) { p.Dim = Dim1D; p.Extent.Height = 2 }},
		{"2D with depth", func(p *Props) { p.Extent.Depth = 2 }},
		{"cube of five faces", func(p *Props) { p.Dim = DimCube; p.ArraySize = 5 }},
		{"arrayed 3D", func(p *Props) { p.Dim = Dim3D; p.ArraySize = 2 }},
	} {
		props := valid()
		c.mutate(&props)
		_, err := New(7, &props, nil)
		switch {
		case err == nil:
			t.Errorf("%s: unexpected success", c.name)
		case !strings.HasPrefix(err.Error(), prefix):
			t.Errorf("%s: unexpected error:\n%#v", c.name, err)
		}
	}

	// wsi must cover every plane or none.
	props := valid()
	wsi := make([]LayoutConstraints, 2)
	_, err = New(7, &props, wsi)
	switch {
	case err == nil:
		t.Error("New: unexpected success")
	case !strings.HasPrefix(err.Error(), prefix):
		t.Errorf("New: unexpected error:\n%#v", err)
	}
}

func TestMaxLevels(t *testing.T) {
	for _, c := range [...]struct {
		extent pan.Extent
		want   int
	}{
		{pan.Extent{Width: 1, Height: 1, Depth: 1}, 1},
		{pan.Extent{Width: 256, Height: 256, Depth: 1}, 9},
		{pan.Extent{Width: 917, Height: 417, Depth: 1}, 10},
		{pan.Extent{Width: 2, Height: 1, Depth: 1}, 2},
		{pan.Extent{Width: 1, Height: 1, Depth: 4}, 3},
		{pan.Extent{Width: 65536, Height: 1, Depth: 1}, pan.MaxMipLevels},
	} {
		if got := MaxLevels(c.extent); got != c.want {
			t.Errorf("MaxLevels(%v)\nhave %d\nwant %d", c.extent, got, c.want)
		}
	}
}
