package pixfmt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		bits    string
		order   [4]int
		wantErr bool
	}{
		{"rgb332", "3.3.2.0", [4]int{1, 2, 3, 4}, false},
		{"rgb565", "5.6.5.0", [4]int{1, 2, 3, 4}, false},
		{"argb4444", "4.4.4.4", [4]int{2, 3, 4, 1}, false},
		{"all zero", "0.0.0.0", [4]int{1, 2, 3, 4}, true},
		{"channel too wide", "9.0.0.0", [4]int{1, 2, 3, 4}, true},
		{"not multiple of 8", "3.3.3.0", [4]int{1, 2, 3, 4}, true},
		{"more than 32 bits", "8.8.8.9", [4]int{1, 2, 3, 4}, true},
		{"duplicate channel", "3.3.2.0", [4]int{1, 1, 3, 4}, true},
		{"channel out of range", "3.3.2.0", [4]int{1, 2, 3, 5}, true},
		{"malformed string", "3.3.2", [4]int{1, 2, 3, 4}, true},
		{"non numeric", "a.3.2.0", [4]int{1, 2, 3, 4}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.bits, tc.order)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParsePixelSize(t *testing.T) {
	f, err := Parse("5.6.5.0", [4]int{1, 2, 3, 4})
	require.NoError(t, err)
	if f.PixelSizeBytes != 2 {
		t.Errorf("pixel size = %d, want 2", f.PixelSizeBytes)
	}

	f, err = Parse("8.8.8.8", [4]int{1, 2, 3, 4})
	require.NoError(t, err)
	if f.PixelSizeBytes != 4 {
		t.Errorf("pixel size = %d, want 4", f.PixelSizeBytes)
	}
}

func TestBitCountByPositionIdentityOrder(t *testing.T) {
	f, err := Parse("5.6.5.0", [4]int{1, 2, 3, 4})
	require.NoError(t, err)
	bc := f.BitCountByPosition()
	want := [4]uint8{5, 6, 5, 0}
	if bc != want {
		t.Errorf("BitCountByPosition() = %v, want %v", bc, want)
	}
}

func TestStartBitPermutedOrder(t *testing.T) {
	// channels stored B,G,R (order 3,2,1) each 8 bits wide; R should
	// start at the high byte.
	f, err := Parse("8.8.8.0", [4]int{3, 2, 1, 4})
	require.NoError(t, err)
	if got := f.StartBit(R); got != 16 {
		t.Errorf("StartBit(R) = %d, want 16", got)
	}
	if got := f.StartBit(B); got != 0 {
		t.Errorf("StartBit(B) = %d, want 0", got)
	}
}

func TestWithBitsForcesDXTLayout(t *testing.T) {
	f, err := Parse("3.3.2.0", [4]int{1, 2, 3, 4})
	require.NoError(t, err)
	forced := f.WithBits([4]uint8{5, 6, 5, 0})
	if forced.PixelSizeBytes != 2 {
		t.Errorf("forced pixel size = %d, want 2", forced.PixelSizeBytes)
	}
}

func TestWithPixelSizeForcesPaletteIndex(t *testing.T) {
	f, err := Parse("8.8.8.8", [4]int{1, 2, 3, 4})
	require.NoError(t, err)
	forced := f.WithPixelSize(1)
	if forced.PixelSizeBytes != 1 {
		t.Errorf("forced pixel size = %d, want 1", forced.PixelSizeBytes)
	}
	if forced.BitsPerChannel != f.BitsPerChannel {
		t.Errorf("WithPixelSize must not touch bit widths")
	}
}

func TestParseHexTriplet(t *testing.T) {
	r, g, b, err := ParseHexTriplet("ff.80.00")
	require.NoError(t, err)
	if r != 0xff || g != 0x80 || b != 0x00 {
		t.Errorf("got %02x.%02x.%02x, want ff.80.00", r, g, b)
	}

	if _, _, _, err := ParseHexTriplet("ff.80"); err == nil {
		t.Error("expected error for missing dot group")
	}
	if _, _, _, err := ParseHexTriplet("gg.80.00"); err == nil {
		t.Error("expected error for non-hex group")
	}
}
