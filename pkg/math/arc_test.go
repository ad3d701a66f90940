// pkg/math/arc_test.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestGreatCircleNoCrossing(t *testing.T) {
	jfk := Point2LL{-73.7789, 40.6398}
	lhr := Point2LL{-0.4543, 51.4700}

	route := GreatCircle(jfk, lhr, 100)
	if len(route) != 1 {
		t.Fatalf("JFK-LHR: got %d pieces, expected 1", len(route))
	}
	pts := route[0]
	if len(pts) != 101 {
		t.Errorf("JFK-LHR: got %d points, expected 101", len(pts))
	}
	if pts[0] != jfk || pts[len(pts)-1] != lhr {
		t.Errorf("endpoints %v %v don't match route ends %v %v",
			jfk, lhr, pts[0], pts[len(pts)-1])
	}

	// The great circle between these two goes well north of the rhumb line.
	maxLat := float32(0)
	for _, p := range pts {
		if p[1] > maxLat {
			maxLat = p[1]
		}
		if p[0] < -180 || p[0] > 180 {
			t.Errorf("%v: longitude out of range", p)
		}
	}
	if maxLat < 52 {
		t.Errorf("JFK-LHR: max latitude %f, expected north of both endpoints", maxLat)
	}
}

func TestGreatCircleAntimeridian(t *testing.T) {
	sfo := Point2LL{-122.3790, 37.6213}
	syd := Point2LL{151.1772, -33.9461}

	route := GreatCircle(sfo, syd, 100)
	if len(route) != 2 {
		t.Fatalf("SFO-SYD: got %d pieces, expected 2", len(route))
	}

	first, second := route[0], route[1]
	endLon := first[len(first)-1][0]
	startLon := second[0][0]
	if Abs(endLon) != 180 || Abs(startLon) != 180 {
		t.Errorf("cut longitudes %f / %f, expected +/-180", endLon, startLon)
	}
	if endLon == startLon {
		t.Errorf("both pieces cut on the same side of the antimeridian (%f)", endLon)
	}
	if lat0, lat1 := first[len(first)-1][1], second[0][1]; lat0 != lat1 {
		t.Errorf("crossing latitudes differ: %f vs %f", lat0, lat1)
	}

	// One point was added on each side of the cut.
	if n := len(first) + len(second); n != 103 {
		t.Errorf("got %d total points, expected 103", n)
	}
	if first[0] != sfo || second[len(second)-1] != syd {
		t.Errorf("route does not span the endpoints")
	}

	for _, piece := range route {
		if len(piece) < 2 {
			t.Errorf("piece with %d points", len(piece))
		}
	}
}

func TestGreatCircleCached(t *testing.T) {
	a := Point2LL{-122.3790, 37.6213}
	b := Point2LL{139.7798, 35.5494}

	r0 := GreatCircle(a, b, 64)
	r1 := GreatCircle(a, b, 64)
	if len(r0) != len(r1) {
		t.Fatalf("cache returned different route: %d vs %d pieces", len(r0), len(r1))
	}
	for i := range r0 {
		if &r0[i][0] != &r1[i][0] {
			t.Errorf("piece %d: cache did not return the shared slice", i)
		}
	}
}

func TestGreatCircleDegenerate(t *testing.T) {
	p := Point2LL{10, 10}
	route := GreatCircle(p, p, 50)
	if len(route) != 1 || len(route[0]) != 2 {
		t.Errorf("coincident endpoints: got %+v", route)
	}
}
