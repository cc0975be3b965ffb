// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package fmtset

import "testing"

type enum int

func TestSet(t *testing.T) {
	s := Of[enum](0, 1, 63, 64, 200, Cap-1)
	for _, v := range []enum{0, 1, 63, 64, 200, Cap - 1} {
		if !s.Has(v) {
			t.Errorf("Has(%d): have false, want true", v)
		}
	}
	for _, v := range []enum{2, 62, 65, 199, 201} {
		if s.Has(v) {
			t.Errorf("Has(%d): have true, want false", v)
		}
	}
	if s.Has(-1) || s.Has(Cap) || s.Has(Cap+100) {
		t.Error("Has out of range: have true, want false")
	}
	var empty Set[enum]
	for v := range enum(Cap) {
		if empty.Has(v) {
			t.Fatalf("empty set Has(%d): have true, want false", v)
		}
	}
}
