package imgfile

import "github.com/goopsie/pixeldbg/pkg/raster"

const tgaHeaderSize = 18

// EncodeTGA writes r as an uncompressed 24-bit TGA, matching the
// original writeTga: an 18-byte header with image type 2 (uncompressed
// true-color), BGR pixel order, and no vertical flip: rows are written
// top-down in Raster order, and the image-descriptor byte is 0x20,
// whose bit 5 marks a top-left origin so readers display them top-down.
func EncodeTGA(r *raster.Raster) []byte {
	w, h := r.Width, r.Height
	out := make([]byte, tgaHeaderSize+w*h*3)

	out[2] = 2 // image type: uncompressed true-color
	out[12] = byte(w)
	out[13] = byte(w >> 8)
	out[14] = byte(h)
	out[15] = byte(h >> 8)
	out[16] = 24 // bits per pixel
	out[17] = 32 // image descriptor, matching the original's literal 0x20

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			red, green, blue := r.At3(x, y)
			o := tgaHeaderSize + (y*w+x)*3
			out[o+0] = blue
			out[o+1] = green
			out[o+2] = red
		}
	}
	return out
}
