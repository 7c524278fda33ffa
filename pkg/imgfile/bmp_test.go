package imgfile

import (
	"encoding/binary"
	"testing"

	"github.com/goopsie/pixeldbg/pkg/raster"
)

func TestEncodeBMPHeaderFields(t *testing.T) {
	r := raster.New(2, 2)
	out := EncodeBMP(r)

	if out[0] != 'B' || out[1] != 'M' {
		t.Fatalf("signature = %q, want BM", out[0:2])
	}
	if got := binary.LittleEndian.Uint32(out[2:6]); int(got) != len(out) {
		t.Errorf("file size field = %d, want %d", got, len(out))
	}
	if got := binary.LittleEndian.Uint32(out[10:14]); got != bmpHeaderSize {
		t.Errorf("pixel data offset = %d, want %d", got, bmpHeaderSize)
	}
	if got := binary.LittleEndian.Uint16(out[28:30]); got != 24 {
		t.Errorf("bpp = %d, want 24", got)
	}
}

func TestEncodeBMPFlipsRowsToBottomUp(t *testing.T) {
	r := raster.New(1, 2)
	r.Set3(0, 0, 1, 0, 0) // top row, raster order
	r.Set3(0, 1, 2, 0, 0) // bottom row, raster order

	out := EncodeBMP(r)

	// BMP's first pixel row after the header is the bottom-up row,
	// which is raster row 1. Red is stored last in each BGR triplet.
	if got := out[bmpHeaderSize+2]; got != 2 {
		t.Errorf("first stored row red = %d, want 2 (raster row 1)", got)
	}
	if got := out[bmpHeaderSize+3+2]; got != 1 {
		t.Errorf("second stored row red = %d, want 1 (raster row 0)", got)
	}
}

func TestSuggestedNameFormat(t *testing.T) {
	if got := SuggestedName("dump.bin", 64, 32, 1024); got != "dump.bin_64x32_1024.bmp" {
		t.Errorf("got %q", got)
	}
}

func TestSuggestedPaletteNameFormat(t *testing.T) {
	if got := SuggestedPaletteName("dump.bin", 512); got != "dump.bin_palette_512.bmp" {
		t.Errorf("got %q", got)
	}
}
