package decode

import "github.com/goopsie/pixeldbg/pkg/pixfmt"

// PaletteSize is the fixed entry count of a palette store, matching
// the original's 256-entry m_rawPalette.
const PaletteSize = 256

// Palette is a 256-entry RGB24 lookup table consulted by the raw
// decoder's palette path. Entries beyond the input's actual size stay
// zeroed.
type Palette struct {
	Entries [PaletteSize * 3]byte // packed R,G,B per entry
}

// PaletteFromRaw derives a Palette from a raw byte slice the way the
// original's convertPalette does: run the raw decoder over exactly
// PaletteSize pixels, ignoring channel order and tiling, with no
// palette of its own and no bitwise pipeline. The source format is
// whatever f describes; a 1-byte format (bit string like "3.3.2.0")
// is the common case, but wider source pixels work identically.
//
// This is a read-side convenience, not a spec-named operation: the
// original relies on the GUI's ambient width/height being pinned to
// 256x1 while the palette widget is active, which a pure function has
// no equivalent for. PaletteFromRaw makes that convention explicit.
func PaletteFromRaw(raw []byte, f pixfmt.Format) *Palette {
	p := &Palette{}
	out := make([]byte, PaletteSize*3)
	rawDecode(raw, PaletteSize, 1, f, ChannelMask{}, TileSpec{}, true, nil, nil, out)
	copy(p.Entries[:], out)
	return p
}

// At returns the RGB triple stored at index i, or zeros if i is out
// of range.
func (p *Palette) At(i int) (r, g, b uint8) {
	if i < 0 || i >= PaletteSize {
		return 0, 0, 0
	}
	o := i * 3
	return p.Entries[o], p.Entries[o+1], p.Entries[o+2]
}
