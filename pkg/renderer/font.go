// pkg/renderer/font.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"image"
	"unsafe"

	"github.com/AllenDang/cimgui-go/imgui"
)

// FontsInit builds the imgui font atlas and hands the resulting texture to
// the renderer so that imgui draw lists can reference it. The imgui default
// font is the only one arctrails uses.
func FontsInit(r Renderer) {
	io := imgui.CurrentIO()
	io.Fonts().AddFontDefault()

	pixels, w, h, bpp := io.Fonts().GetTextureDataAsRGBA32()
	atlas := &image.RGBA{
		Pix:    unsafe.Slice((*uint8)(pixels), bpp*w*h),
		Stride: int(4 * w),
		Rect:   image.Rectangle{Max: image.Point{X: int(w), Y: int(h)}}}
	id := r.CreateTextureFromImage(atlas, true /* nearest */)
	io.Fonts().SetTexID(imgui.TextureID(id))

	lg.Infof("Font atlas texture is %dx%d", w, h)
}
