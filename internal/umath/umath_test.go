// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package umath

import "testing"

func TestAlignPo2(t *testing.T) {
	cases := []struct{ x, align, want int64 }{
		{0, 64, 0},
		{1, 64, 64},
		{63, 64, 64},
		{64, 64, 64},
		{65, 64, 128},
		{160, 64, 192},
		{32768, 4096, 32768},
		{32769, 4096, 36864},
		{100, 1, 100},
	}
	for _, c := range cases {
		if got := AlignPo2(c.x, c.align); got != c.want {
			t.Errorf("AlignPo2(%d, %d): have %d, want %d", c.x, c.align, got, c.want)
		}
	}
}

func TestDivRoundUp(t *testing.T) {
	cases := []struct{ x, y, want int }{
		{0, 4, 0},
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
		{50, 5, 10},
		{917, 16, 58},
		{417, 16, 27},
	}
	for _, c := range cases {
		if got := DivRoundUp(c.x, c.y); got != c.want {
			t.Errorf("DivRoundUp(%d, %d): have %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestPo2(t *testing.T) {
	for _, x := range []int64{1, 2, 64, 4096, 1 << 40} {
		if !IsPo2(x) {
			t.Errorf("IsPo2(%d): have false, want true", x)
		}
	}
	for _, x := range []int64{0, -1, 3, 65, 4097} {
		if IsPo2(x) {
			t.Errorf("IsPo2(%d): have true, want false", x)
		}
	}
	cases := []struct{ x, want int64 }{
		{0, 0},
		{-4, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 4},
		{5, 4},
		{1000, 512},
	}
	for _, c := range cases {
		if got := FloorPo2(c.x); got != c.want {
			t.Errorf("FloorPo2(%d): have %d, want %d", c.x, got, c.want)
		}
	}
}
