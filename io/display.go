// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"iter"
	"maps"

	"github.com/ezrec/q16/isa"
	"golang.org/x/image/draw"
)

const (
	DISPLAY_SIZE = isa.DISPLAY_WIDTH * isa.DISPLAY_HEIGHT // Bytes of VRAM.
)

var _display_defines = map[string]string{
	"DISPLAY_SIZE": fmt.Sprintf("%d", DISPLAY_SIZE),
}

// Display is the 128x96 framebuffer at VRAM.
// Each byte is one pixel, packed as R3G3B2: red in bits 0-2, green in
// bits 3-5, and blue in bits 6-7.
type Display struct {
	Dirty bool // Set when the program writes VRAM.
}

var _ Device = (*Display)(nil)

// Contains implements Device.
func (dpy *Display) Contains(addr uint16) bool {
	return addr >= isa.ADDR_VRAM && int(addr) < isa.ADDR_VRAM+DISPLAY_SIZE
}

// Read implements Device.
func (dpy *Display) Read(memory []byte, addr uint16) (err error) {
	return
}

// Write implements Device.
func (dpy *Display) Write(memory []byte, addr uint16) (err error) {
	dpy.Dirty = true
	return
}

// Sync implements Device.
func (dpy *Display) Sync(memory []byte) {
}

// Defines implements Device.
func (dpy *Display) Defines() iter.Seq2[string, string] {
	return maps.All(_display_defines)
}

// Color expands an R3G3B2 pixel to full RGBA.
func Color(pixel byte) color.RGBA {
	r := pixel & 0x7
	g := (pixel >> 3) & 0x7
	b := (pixel >> 6) & 0x3

	return color.RGBA{
		R: byte(uint(r) * 255 / 7),
		G: byte(uint(g) * 255 / 7),
		B: byte(uint(b) * 255 / 3),
		A: 0xff,
	}
}

// Pixel returns the color at (x, y) of the framebuffer.
func (dpy *Display) Pixel(memory []byte, x, y int) color.RGBA {
	return Color(memory[isa.ADDR_VRAM+y*isa.DISPLAY_WIDTH+x])
}

// Image renders the framebuffer.
func (dpy *Display) Image(memory []byte) (img *image.RGBA) {
	img = image.NewRGBA(image.Rect(0, 0, isa.DISPLAY_WIDTH, isa.DISPLAY_HEIGHT))
	for y := range isa.DISPLAY_HEIGHT {
		for x := range isa.DISPLAY_WIDTH {
			img.SetRGBA(x, y, dpy.Pixel(memory, x, y))
		}
	}

	return
}

// WritePNG encodes the framebuffer as a PNG, with each pixel scaled to a
// scale x scale block.
func (dpy *Display) WritePNG(w io.Writer, memory []byte, scale int) (err error) {
	if scale < 1 {
		err = ErrScaleInvalid
		return
	}

	src := dpy.Image(memory)
	dst := image.NewRGBA(image.Rect(0, 0, isa.DISPLAY_WIDTH*scale, isa.DISPLAY_HEIGHT*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	err = png.Encode(w, dst)
	if err != nil {
		return
	}

	dpy.Dirty = false

	return
}
