// Package raster holds the decoded RGB24 output buffer and the C6
// flip/count operations that run over it.
//
// Raster implements image.Image the way samuel-go-psp's decoder
// builds image.NRGBA/image.Paletted values, so a Raster can be handed
// directly to image/png or golang.org/x/image codecs for inspection
// without a copy, even though pkg/imgfile writes the spec's own
// BMP/TGA formats by hand.
package raster

import (
	"image"
	"image/color"
)

// Raster is a tightly packed, row-major, top-down RGB24 buffer. It is
// never reallocated by decoders: callers own the backing slice for
// the lifetime of a decode call.
type Raster struct {
	Width, Height int
	Pix           []byte // len == Width*Height*3
}

// New allocates a zeroed raster of the given dimensions.
func New(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*3),
	}
}

// Reset zeroes the raster in place without reallocating, for reuse
// across repeated decode calls.
func (r *Raster) Reset() {
	for i := range r.Pix {
		r.Pix[i] = 0
	}
}

// Offset returns the byte offset of pixel (x, y) within Pix.
func (r *Raster) Offset(x, y int) int {
	return (y*r.Width + x) * 3
}

// At3 returns the RGB triple at (x, y).
func (r *Raster) At3(x, y int) (red, green, blue uint8) {
	o := r.Offset(x, y)
	return r.Pix[o], r.Pix[o+1], r.Pix[o+2]
}

// Set3 writes the RGB triple at (x, y).
func (r *Raster) Set3(x, y int, red, green, blue uint8) {
	o := r.Offset(x, y)
	r.Pix[o+0] = red
	r.Pix[o+1] = green
	r.Pix[o+2] = blue
}

// FlipVertical swaps row y with row height-1-y in place, for
// y < height/2, mirroring the original's flipVertically.
func (r *Raster) FlipVertical() {
	stride := r.Width * 3
	for y := 0; y < r.Height/2; y++ {
		top := r.Pix[y*stride : y*stride+stride]
		bottom := r.Pix[(r.Height-1-y)*stride : (r.Height-1-y)*stride+stride]
		for i := range top {
			top[i], bottom[i] = bottom[i], top[i]
		}
	}
}

// FlipHorizontal swaps pixel x with width-1-x within each row, for
// x < width/2.
func (r *Raster) FlipHorizontal() {
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width/2; x++ {
			mirror := r.Width - 1 - x
			rr, gg, bb := r.At3(x, y)
			mr, mg, mb := r.At3(mirror, y)
			r.Set3(x, y, mr, mg, mb)
			r.Set3(mirror, y, rr, gg, bb)
		}
	}
}

// CountUniqueColors reports the number of distinct 24-bit colors
// (packed b | g<<8 | r<<16, matching the original's m_colorSet) in the
// raster.
func (r *Raster) CountUniqueColors() int {
	seen := make(map[uint32]struct{}, r.Width*r.Height)
	for i := 0; i+2 < len(r.Pix); i += 3 {
		red, green, blue := r.Pix[i], r.Pix[i+1], r.Pix[i+2]
		packed := uint32(blue) | uint32(green)<<8 | uint32(red)<<16
		seen[packed] = struct{}{}
	}
	return len(seen)
}

// ColorModel implements image.Image.
func (r *Raster) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// At implements image.Image.
func (r *Raster) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return color.RGBA{}
	}
	red, green, blue := r.At3(x, y)
	return color.RGBA{R: red, G: green, B: blue, A: 255}
}

var _ image.Image = (*Raster)(nil)
