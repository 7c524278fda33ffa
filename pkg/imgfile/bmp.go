// Package imgfile writes decoded rasters out as BMP and TGA files and
// reads palette source files, following the byte-for-byte header
// layouts the original tool produces and consumes.
package imgfile

import (
	"encoding/binary"
	"fmt"

	"github.com/goopsie/pixeldbg/pkg/raster"
)

const bmpHeaderSize = 54

// EncodeBMP writes r as an uncompressed 24-bit BMP, header layout
// matching the original writeBitmap: a 14-byte file header followed
// by a 40-byte BITMAPINFOHEADER, pixel data in BGR row order with
// rows flipped to bottom-up (BMP's native orientation), since Raster
// stores rows top-down.
func EncodeBMP(r *raster.Raster) []byte {
	w, h := r.Width, r.Height
	pixelBytes := w * h * 3
	out := make([]byte, bmpHeaderSize+pixelBytes)

	// BITMAPFILEHEADER
	out[0], out[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(out[2:6], uint32(len(out)))
	binary.LittleEndian.PutUint32(out[10:14], bmpHeaderSize)

	// BITMAPINFOHEADER
	binary.LittleEndian.PutUint32(out[14:18], 40)
	binary.LittleEndian.PutUint32(out[18:22], uint32(w))
	binary.LittleEndian.PutUint32(out[22:26], uint32(h))
	binary.LittleEndian.PutUint16(out[26:28], 1)  // planes
	binary.LittleEndian.PutUint16(out[28:30], 24) // bpp
	binary.LittleEndian.PutUint32(out[34:38], uint32(pixelBytes))

	stride := w * 3
	for y := 0; y < h; y++ {
		srcRow := h - 1 - y // bottom-up
		dst := bmpHeaderSize + y*stride
		for x := 0; x < w; x++ {
			red, green, blue := r.At3(x, srcRow)
			o := dst + x*3
			out[o+0] = blue
			out[o+1] = green
			out[o+2] = red
		}
	}
	return out
}

// SuggestedName builds the "<source>_<w>x<h>_<offset>.bmp" filename
// convention the original's save-as-BMP dialog pre-fills.
func SuggestedName(source string, width, height int, offset uint64) string {
	return fmt.Sprintf("%s_%dx%d_%d.bmp", source, width, height, offset)
}

// SuggestedPaletteName builds the "<source>_palette_<offset>.bmp"
// convention used when saving a palette swatch sheet.
func SuggestedPaletteName(source string, offset uint64) string {
	return fmt.Sprintf("%s_palette_%d.bmp", source, offset)
}
