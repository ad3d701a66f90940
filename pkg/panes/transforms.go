// pkg/panes/transforms.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package panes

import (
	"github.com/skyviz/arctrails/pkg/math"
	"github.com/skyviz/arctrails/pkg/renderer"
)

///////////////////////////////////////////////////////////////////////////
// MapTransforms

// MapTransforms bundles the matrices that translate between window
// coordinates and latitude-longitude for the equirectangular map view.
type MapTransforms struct {
	ndcFromLatLong                       math.Matrix3
	ndcFromWindow                        math.Matrix3
	latLongFromWindow, windowFromLatLong math.Matrix3
}

// GetMapTransforms returns a MapTransforms object corresponding to the
// given view center and vertical span in degrees of latitude. The center
// longitude is unbounded; the viewer may have panned across the
// antimeridian any number of times.
func GetMapTransforms(paneExtent math.Extent2D, center math.Point2LL, verticalSpan float32) MapTransforms {
	width, height := paneExtent.Width(), paneExtent.Height()
	aspect := width / height
	s := 2 / verticalSpan
	ndcFromLatLong := math.Identity3x3().
		// Orthographic projection including the effect of the window's
		// aspect ratio.
		Ortho(-aspect, aspect, -1, 1).
		// Equirectangular: degrees of longitude and latitude get the same
		// scale on screen.
		Scale(s, s).
		// Translate to center point
		Translate(-center[0], -center[1])

	ndcFromWindow := math.Identity3x3().
		Translate(-1, -1).
		Scale(2/width, 2/height)

	latLongFromNDC := ndcFromLatLong.Inverse()
	latLongFromWindow := latLongFromNDC.PostMultiply(ndcFromWindow)
	windowFromLatLong := latLongFromWindow.Inverse()

	return MapTransforms{
		ndcFromLatLong:    ndcFromLatLong,
		ndcFromWindow:     ndcFromWindow,
		latLongFromWindow: latLongFromWindow,
		windowFromLatLong: windowFromLatLong,
	}
}

// LoadLatLongViewingMatrices adds commands to the provided command buffer
// to load viewing matrices so that latitude-longitude positions can be
// provided for subsequent vertices.
func (mt *MapTransforms) LoadLatLongViewingMatrices(cb *renderer.CommandBuffer) {
	cb.LoadProjectionMatrix(mt.ndcFromLatLong)
	cb.LoadModelViewMatrix(math.Identity3x3())
}

// LoadWindowViewingMatrices adds commands to the provided command buffer
// to load viewing matrices so that window-coordinate positions can be
// provided for subsequent vertices.
func (mt *MapTransforms) LoadWindowViewingMatrices(cb *renderer.CommandBuffer) {
	cb.LoadProjectionMatrix(mt.ndcFromWindow)
	cb.LoadModelViewMatrix(math.Identity3x3())
}

// WindowFromLatLongP transforms a point given in latitude-longitude
// coordinates to window coordinates, snapped to a pixel center.
func (mt *MapTransforms) WindowFromLatLongP(p math.Point2LL) [2]float32 {
	pw := mt.windowFromLatLong.TransformPoint(p)
	pw[0], pw[1] = float32(int(pw[0]+0.5))+0.5, float32(int(pw[1]+0.5))+0.5
	return pw
}

// LatLongFromWindowP transforms a point p in window coordinates to
// latitude-longitude.
func (mt *MapTransforms) LatLongFromWindowP(p [2]float32) math.Point2LL {
	return mt.latLongFromWindow.TransformPoint(p)
}

// LatLongFromWindowV transforms a vector in window coordinates to a vector
// in latitude-longitude coordinates.
func (mt *MapTransforms) LatLongFromWindowV(v [2]float32) math.Point2LL {
	return mt.latLongFromWindow.TransformVector(v)
}

// DegreesPerPixel returns the space between adjacent pixels expressed in
// degrees of longitude and latitude.
func (mt *MapTransforms) DegreesPerPixel() [2]float32 {
	dx := mt.latLongFromWindow.TransformVector([2]float32{1, 0})
	dy := mt.latLongFromWindow.TransformVector([2]float32{0, 1})
	return [2]float32{math.Abs(dx[0]), math.Abs(dy[1])}
}
