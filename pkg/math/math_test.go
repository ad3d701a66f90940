// pkg/math/math_test.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	"testing"
)

func TestMatrix3Inverse(t *testing.T) {
	matrices := []Matrix3{
		Identity3x3(),
		Identity3x3().Ortho(-2, 3, -1, 1),
		Identity3x3().Scale(3, -2).Translate(10, -20),
		Identity3x3().Ortho(0, 800, 0, 600).Scale(0.25, 0.25).Translate(-118, 34),
	}

	for _, m := range matrices {
		mi := m.PostMultiply(m.Inverse())
		id := Identity3x3()
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if Abs(mi[i][j]-id[i][j]) > 1e-4 {
					t.Errorf("%+v: inverse gives %+v, not identity", m, mi)
				}
			}
		}
	}
}

func TestMatrix3TransformRoundTrip(t *testing.T) {
	m := Identity3x3().Ortho(-180, 180, -90, 90).Scale(2, 2).Translate(-122.4, 37.6)
	mi := m.Inverse()

	pts := [][2]float32{{0, 0}, {-122.4, 37.6}, {140.4, 35.8}, {179.9, -85}}
	for _, p := range pts {
		q := mi.TransformPoint(m.TransformPoint(p))
		if Distance2f(p, q) > 1e-3 {
			t.Errorf("%v: round trip through transform gave %v", p, q)
		}
	}
}

func TestNMDistance2LL(t *testing.T) {
	jfk := Point2LL{-73.7789, 40.6398}
	lax := Point2LL{-118.4081, 33.9425}

	d := NMDistance2LL(jfk, lax)
	if d < 2125 || d > 2165 {
		t.Errorf("JFK-LAX: got %f nm, expected ~2145", d)
	}

	if d := NMDistance2LL(jfk, jfk); d != 0 {
		t.Errorf("JFK-JFK: got %f nm, expected 0", d)
	}
}

func TestLatLongStrings(t *testing.T) {
	p := Point2LL{-73.779, 40.639}
	// Format the expected values from the literals so that float32
	// rounding doesn't figure into the comparison; the latitude comes
	// first even though Point2LL stores it second.
	want := fmt.Sprintf("(%f, %f)", float32(40.639), float32(-73.779))
	if s := p.DDString(); s != want {
		t.Errorf("DDString: got %q, expected %q", s, want)
	}
	if s := p.DMSString(); s[0] != 'N' {
		t.Errorf("DMSString: expected northern latitude prefix, got %q", s)
	}
	q := Point2LL{151.177, -33.946} // Sydney
	if s := q.DMSString(); s[0] != 'S' {
		t.Errorf("DMSString: expected southern latitude prefix, got %q", s)
	}
}

func TestExtent2D(t *testing.T) {
	e := Extent2DFromPoints([][2]float32{{1, 1}, {3, 0}, {2, 5}})
	if e.P0 != [2]float32{1, 0} || e.P1 != [2]float32{3, 5} {
		t.Errorf("bounds: got %+v", e)
	}
	if !e.Inside([2]float32{2, 2}) {
		t.Errorf("(2,2) should be inside %+v", e)
	}
	if e.Inside([2]float32{0, 2}) {
		t.Errorf("(0,2) should be outside %+v", e)
	}

	f := Extent2DFromPoints([][2]float32{{2.5, 4}, {10, 10}})
	if !Overlaps(e, f) {
		t.Errorf("%+v and %+v should overlap", e, f)
	}
	g := Extent2DFromPoints([][2]float32{{4, 6}, {10, 10}})
	if Overlaps(e, g) {
		t.Errorf("%+v and %+v should not overlap", e, g)
	}
}
