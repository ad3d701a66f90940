// pkg/panes/panes_test.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package panes

import (
	"testing"
	"time"

	"github.com/skyviz/arctrails/pkg/math"
	"github.com/skyviz/arctrails/pkg/platform"

	"github.com/AllenDang/cimgui-go/imgui"
)

func testExtent() math.Extent2D {
	return math.Extent2DFromPoints([][2]float32{{0, 0}, {1000, 500}})
}

func TestMapTransformsRoundTrip(t *testing.T) {
	center := math.Point2LL{-40, 30}
	mt := GetMapTransforms(testExtent(), center, 60)

	// The view center lands at the center of the window.
	pw := mt.windowFromLatLong.TransformPoint(center)
	if math.Abs(pw[0]-500) > 0.01 || math.Abs(pw[1]-250) > 0.01 {
		t.Errorf("view center maps to window (%g, %g), expected (500, 250)", pw[0], pw[1])
	}

	// Window -> lat-long -> window round trips.
	for _, p := range [][2]float32{{0, 0}, {1000, 500}, {250, 400}, {999, 1}} {
		ll := mt.LatLongFromWindowP(p)
		back := mt.windowFromLatLong.TransformPoint(ll)
		if math.Abs(back[0]-p[0]) > 0.01 || math.Abs(back[1]-p[1]) > 0.01 {
			t.Errorf("round trip of (%g, %g) gave (%g, %g)", p[0], p[1], back[0], back[1])
		}
	}

	// The vertical span covers the window height exactly.
	dpp := mt.DegreesPerPixel()
	if want := float32(60) / 500; math.Abs(dpp[1]-want) > 1e-5 {
		t.Errorf("got %g degrees per pixel vertically, expected %g", dpp[1], want)
	}
	// Equirectangular: same scale on both axes.
	if math.Abs(dpp[0]-dpp[1]) > 1e-5 {
		t.Errorf("axis scales differ: %g vs %g degrees per pixel", dpp[0], dpp[1])
	}
}

func TestMapTransformsUnboundedCenter(t *testing.T) {
	// Panning several worlds east must not perturb the view geometry.
	mt0 := GetMapTransforms(testExtent(), math.Point2LL{-40, 30}, 60)
	mt2 := GetMapTransforms(testExtent(), math.Point2LL{-40 + 720, 30}, 60)

	ll0 := mt0.LatLongFromWindowP([2]float32{100, 100})
	ll2 := mt2.LatLongFromWindowP([2]float32{100, 100})
	if math.Abs(ll2[0]-720-ll0[0]) > 0.001 || math.Abs(ll2[1]-ll0[1]) > 0.001 {
		t.Errorf("wrapped view: got %v, expected %v shifted by 720", ll2, ll0)
	}
}

// stubPlatform provides the little of the Platform interface the input
// handling consults.
type stubPlatform struct {
	platform.Platform
}

func (s *stubPlatform) DisplaySize() [2]float32 { return [2]float32{1000, 500} }

func testContext(mouse *platform.MouseState, kbd *platform.KeyboardState) *Context {
	return &Context{
		PaneExtent: testExtent(),
		Platform:   &stubPlatform{},
		Mouse:      mouse,
		Keyboard:   kbd,
		Now:        time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		DPIScale:   1,
	}
}

func TestMapPanePopupState(t *testing.T) {
	mp := NewMapPane()
	transforms := GetMapTransforms(testExtent(), mp.Center, mp.VerticalSpan)

	// A click (release without drag) opens the popup at the clicked
	// coordinate.
	mouse := &platform.MouseState{Pos: [2]float32{300, 200}}
	mouse.Released[platform.MouseButtonPrimary] = true
	mp.processInput(testContext(mouse, nil), &transforms)

	if !mp.popup.show {
		t.Fatalf("popup not shown after click")
	}
	want := transforms.LatLongFromWindowP([2]float32{300, 200})
	if mp.popup.loc != want {
		t.Errorf("popup coordinate %v, expected %v", mp.popup.loc, want)
	}

	// Starting a pan dismisses it.
	mouse = &platform.MouseState{Pos: [2]float32{300, 200}, DragDelta: [2]float32{5, 0}}
	mouse.Dragging[platform.MouseButtonPrimary] = true
	mp.processInput(testContext(mouse, nil), &transforms)
	if mp.popup.show {
		t.Errorf("popup still shown after pan start")
	}

	// The release that ends the drag is not a click.
	mouse = &platform.MouseState{Pos: [2]float32{305, 200}}
	mouse.Released[platform.MouseButtonPrimary] = true
	mp.processInput(testContext(mouse, nil), &transforms)
	if mp.popup.show {
		t.Errorf("popup shown by drag-ending release")
	}

	// Reopen, then zoom: also dismissed.
	mouse = &platform.MouseState{Pos: [2]float32{300, 200}}
	mouse.Released[platform.MouseButtonPrimary] = true
	mp.processInput(testContext(mouse, nil), &transforms)
	if !mp.popup.show {
		t.Fatalf("popup not shown after second click")
	}
	mouse = &platform.MouseState{Pos: [2]float32{300, 200}, Wheel: [2]float32{0, 1}}
	mp.processInput(testContext(mouse, nil), &transforms)
	if mp.popup.show {
		t.Errorf("popup still shown after zoom")
	}
}

func TestMapPanePopupEscape(t *testing.T) {
	mp := NewMapPane()
	transforms := GetMapTransforms(testExtent(), mp.Center, mp.VerticalSpan)

	mouse := &platform.MouseState{Pos: [2]float32{300, 200}}
	mouse.Released[platform.MouseButtonPrimary] = true
	mp.processInput(testContext(mouse, nil), &transforms)
	if !mp.popup.show {
		t.Fatalf("popup not shown after click")
	}

	kbd := &platform.KeyboardState{Pressed: map[imgui.Key]interface{}{imgui.KeyEscape: nil}}
	mp.processInput(testContext(nil, kbd), &transforms)
	if mp.popup.show {
		t.Errorf("popup still shown after escape")
	}
}

func TestMapPanePanAndClamp(t *testing.T) {
	mp := NewMapPane()
	transforms := GetMapTransforms(testExtent(), mp.Center, mp.VerticalSpan)

	// Dragging the map right by 100 px moves the center west by 100 px
	// worth of degrees.
	dpp := transforms.DegreesPerPixel()
	before := mp.Center
	mouse := &platform.MouseState{Pos: [2]float32{300, 200}, DragDelta: [2]float32{100, 0}}
	mouse.Dragging[platform.MouseButtonPrimary] = true
	mp.processInput(testContext(mouse, nil), &transforms)
	if want := before[0] - 100*dpp[0]; math.Abs(mp.Center[0]-want) > 0.01 {
		t.Errorf("center longitude %g after pan, expected %g", mp.Center[0], want)
	}

	// The visible latitude range stays on the globe.
	mp.Center[1] = 89
	mp.processInput(testContext(nil, nil), &transforms)
	if want := 90 - mp.VerticalSpan/2; mp.Center[1] != want {
		t.Errorf("center latitude %g after clamp, expected %g", mp.Center[1], want)
	}
}

func TestMapPaneZoomSpanLimits(t *testing.T) {
	mp := NewMapPane()
	transforms := GetMapTransforms(testExtent(), mp.Center, mp.VerticalSpan)

	kbd := &platform.KeyboardState{Pressed: map[imgui.Key]interface{}{imgui.KeyMinus: nil}}
	for i := 0; i < 50; i++ {
		mp.processInput(testContext(nil, kbd), &transforms)
	}
	if mp.VerticalSpan != 180 {
		t.Errorf("vertical span %g after zooming all the way out, expected 180", mp.VerticalSpan)
	}

	kbd = &platform.KeyboardState{Pressed: map[imgui.Key]interface{}{imgui.KeyEqual: nil}}
	for i := 0; i < 100; i++ {
		mp.processInput(testContext(nil, kbd), &transforms)
	}
	if mp.VerticalSpan != 1 {
		t.Errorf("vertical span %g after zooming all the way in, expected 1", mp.VerticalSpan)
	}
}
