// pkg/math/arc.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Arc geometry is recomputed whenever the flight dataset is (re)loaded, so
// cache computed routes by their endpoints.
type arcKey struct {
	from, to Point2LL
	nsegs    int
}

var arcCache *lru.Cache[arcKey, [][]Point2LL]

func init() {
	arcCache, _ = lru.New[arcKey, [][]Point2LL](512)
}

// GreatCircle returns the great-circle route between the two given points,
// sampled at nsegs+1 points and split into separate coordinate lists
// wherever the route crosses the antimeridian; all returned longitudes are
// in [-180,180]. The returned slices may be shared with other callers and
// must not be mutated.
func GreatCircle(from, to Point2LL, nsegs int) [][]Point2LL {
	if nsegs < 1 {
		nsegs = 1
	}
	key := arcKey{from: from, to: to, nsegs: nsegs}
	if route, ok := arcCache.Get(key); ok {
		return route
	}

	route := splitAtAntimeridian(sampleGreatCircle(from, to, nsegs))
	arcCache.Add(key, route)
	return route
}

// sampleGreatCircle evaluates nsegs+1 points along the great circle using
// spherical linear interpolation between the endpoints' unit vectors.
func sampleGreatCircle(from, to Point2LL, nsegs int) []Point2LL {
	lat1, lon1 := float64(Radians(from[1])), float64(Radians(from[0]))
	lat2, lon2 := float64(Radians(to[1])), float64(Radians(to[0]))

	// Angular distance between the endpoints.
	x := Sqr(gomath.Sin((lat2-lat1)/2)) +
		gomath.Cos(lat1)*gomath.Cos(lat2)*Sqr(gomath.Sin((lon2-lon1)/2))
	d := 2 * gomath.Atan2(gomath.Sqrt(x), gomath.Sqrt(1-x))
	sind := gomath.Sin(d)
	if sind < 1e-8 {
		// Coincident (or numerically antipodal) endpoints; there's no
		// useful arc to interpolate.
		return []Point2LL{from, to}
	}

	pts := make([]Point2LL, nsegs+1)
	for i := 0; i <= nsegs; i++ {
		f := float64(i) / float64(nsegs)
		a := gomath.Sin((1-f)*d) / sind
		b := gomath.Sin(f*d) / sind

		x := a*gomath.Cos(lat1)*gomath.Cos(lon1) + b*gomath.Cos(lat2)*gomath.Cos(lon2)
		y := a*gomath.Cos(lat1)*gomath.Sin(lon1) + b*gomath.Cos(lat2)*gomath.Sin(lon2)
		z := a*gomath.Sin(lat1) + b*gomath.Sin(lat2)

		lat := gomath.Atan2(z, gomath.Sqrt(x*x+y*y))
		lon := gomath.Atan2(y, x)
		pts[i] = Point2LL{Degrees(float32(lon)), Degrees(float32(lat))}
	}
	// Keep the exact endpoints; interpolation is within float epsilon of
	// them anyway.
	pts[0], pts[nsegs] = from, to
	return pts
}

// splitAtAntimeridian cuts a sampled route into separate pieces wherever
// consecutive points wrap from one side of +/-180 longitude to the other,
// inserting a point at the crossing latitude on each side of the cut.
func splitAtAntimeridian(pts []Point2LL) [][]Point2LL {
	var route [][]Point2LL
	cur := []Point2LL{pts[0]}

	for i := 1; i < len(pts); i++ {
		p0, p1 := pts[i-1], pts[i]
		if Abs(p1[0]-p0[0]) > 180 {
			// The segment wraps. Find the latitude at which it crosses
			// +/-180 by unwrapping p1's longitude to p0's side.
			side := float32(1)
			if p0[0] < 0 {
				side = -1
			}
			lon1 := p1[0] + side*360
			t := (side*180 - p0[0]) / (lon1 - p0[0])
			lat := Lerp(t, p0[1], p1[1])

			cur = append(cur, Point2LL{side * 180, lat})
			if len(cur) >= 2 {
				route = append(route, cur)
			}
			cur = []Point2LL{{-side * 180, lat}}
		}
		cur = append(cur, p1)
	}
	if len(cur) >= 2 {
		route = append(route, cur)
	}
	return route
}
