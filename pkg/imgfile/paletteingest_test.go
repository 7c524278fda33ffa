package imgfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPaletteSourceOffsetSniffsKnownExtensions(t *testing.T) {
	cases := []struct {
		name string
		want int
	}{
		{"dump.bmp", bmpHeaderSize},
		{"dump.tga", 12},
		{"dump.raw", 0},
		{"dump.palette", 0}, // extension >=5 chars including dot
		{"noext", 0},
	}
	for _, tc := range cases {
		if got := PaletteSourceOffset(tc.name); got != tc.want {
			t.Errorf("PaletteSourceOffset(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestReadPaletteSourceSkipsDetectedHeaderAndBoundsLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pal.bmp")
	data := make([]byte, bmpHeaderSize+10)
	for i := range data[bmpHeaderSize:] {
		data[bmpHeaderSize+i] = byte(i)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadPaletteSource(path, 4)
	if err != nil {
		t.Fatalf("ReadPaletteSource: %v", err)
	}
	want := []byte{0, 1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestReadPaletteSourceHeaderLargerThanFileReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.bmp")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadPaletteSource(path, 100)
	if err != nil {
		t.Fatalf("ReadPaletteSource: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
