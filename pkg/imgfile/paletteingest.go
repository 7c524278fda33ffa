package imgfile

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// tgaPaletteSkip is the number of leading bytes skipped in a .tga
// palette file. It is smaller than the 18-byte header EncodeTGA writes.
const tgaPaletteSkip = 12

// PaletteSourceOffset returns the byte offset at which raw palette
// data begins within a file named name, sniffed from its extension
// the way the original's palette-load path does: a short extension
// (fewer than 5 characters including the dot) selects a fixed skip
// (54 bytes for .bmp, 12 for .tga), anything else is assumed headerless.
func PaletteSourceOffset(name string) int {
	ext := filepath.Ext(name)
	if len(ext) >= 5 {
		return 0
	}
	switch strings.ToLower(ext) {
	case ".bmp":
		return bmpHeaderSize
	case ".tga":
		return tgaPaletteSkip
	default:
		return 0
	}
}

// ReadPaletteSource reads up to maxBytes bytes of raw palette data
// from path, starting after whatever header PaletteSourceOffset
// detects.
func ReadPaletteSource(path string, maxBytes int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	offset := PaletteSourceOffset(path)
	if offset >= len(data) {
		return nil, nil
	}
	data = data[offset:]
	if len(data) > maxBytes {
		data = data[:maxBytes]
	}
	return data, nil
}

// DecodeBMPPalette decodes a well-formed BMP through golang.org/x/image/bmp
// instead of PaletteSourceOffset's fixed-offset heuristic, for BMP
// variants (BITMAPV4HEADER, BITMAPV5HEADER) whose pixel data doesn't
// start at the classic 54-byte offset. RLE-compressed BMPs are not
// supported by that decoder and return an error. Returns up to 256 RGB
// entries, row-major.
func DecodeBMPPalette(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		return nil, err
	}
	return imageToEntries(img), nil
}

func imageToEntries(img image.Image) []byte {
	bounds := img.Bounds()
	entries := make([]byte, 0, 256*3)
	for y := bounds.Min.Y; y < bounds.Max.Y && len(entries) < 256*3; y++ {
		for x := bounds.Min.X; x < bounds.Max.X && len(entries) < 256*3; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			entries = append(entries, byte(r>>8), byte(g>>8), byte(b>>8))
		}
	}
	return entries
}
