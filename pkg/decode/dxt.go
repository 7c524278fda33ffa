package decode

import (
	"encoding/binary"

	"github.com/goopsie/pixeldbg/pkg/pixfmt"
)

type dxtEntry struct {
	r, g, b, a uint8
}

// at returns the component of e at channel-order position pos (0..3,
// the same position space as pixfmt.Format.ChannelOrder), treating the
// entry as a 4-component (r,g,b,a) array.
func (e dxtEntry) at(pos uint8) uint8 {
	switch pos {
	case 0:
		return e.r
	case 1:
		return e.g
	case 2:
		return e.b
	default:
		return e.a
	}
}

// expand565 decodes a raw 16-bit color word into 8-bit RGB. When
// oneBitAlpha is set the word is read as 5.5.5.1 (R, G, B, 1-bit A)
// instead of the usual 5.6.5.
func expand565(c uint16, oneBitAlpha bool) dxtEntry {
	r5 := uint8(c>>11) & 0x1F
	r := r5<<3 | r5>>2
	if oneBitAlpha {
		g5 := uint8(c>>6) & 0x1F
		b5 := uint8(c>>1) & 0x1F
		a := uint8(0)
		if c&0x1 != 0 {
			a = 0xFF
		}
		return dxtEntry{r, g5<<3 | g5>>2, b5<<3 | b5>>2, a}
	}
	g6 := uint8(c>>5) & 0x3F
	b5 := uint8(c) & 0x1F
	return dxtEntry{r, g6<<2 | g6>>4, b5<<3 | b5>>2, 0xFF}
}

func avgEntry(a, b dxtEntry) dxtEntry {
	return dxtEntry{
		uint8((int(a.r) + int(b.r)) / 2),
		uint8((int(a.g) + int(b.g)) / 2),
		uint8((int(a.b) + int(b.b)) / 2),
		0xFF,
	}
}

func interpEntry(a, b dxtEntry, aWeight, bWeight int) dxtEntry {
	return dxtEntry{
		uint8((aWeight*int(a.r) + bWeight*int(b.r)) / 3),
		uint8((aWeight*int(a.g) + bWeight*int(b.g)) / 3),
		uint8((aWeight*int(a.b) + bWeight*int(b.b)) / 3),
		0xFF,
	}
}

// dxtDecode implements the S3TC/DXT block decoder (C3). DXT3 and
// DXT5's 8-byte alpha block is always skipped, never decoded: only
// the trailing BC1-style color block contributes to the output
// raster, matching the original convertDXT's handling of DXTType > 1.
//
// order is the format's channel order (pixfmt.Format.ChannelOrder):
// output channel c is taken from the decoded entry's component at
// position order[c], exactly mirroring the original convertDXT's
// lut[code + rgbaChannels[c]] indirection, so changing channel order
// changes which decoded component lands in which output byte.
func dxtDecode(input []byte, width, height uint32, cfg DXTConfig, cmask ChannelMask, order [4]uint8, pipeline []BitwiseStage, out []byte) {
	if width == 0 || height == 0 {
		return
	}
	blockSize := 8
	if cfg.Type != DXT1 {
		blockSize = 16
	}
	blocksX, blocksY := int(width)/4, int(height)/4
	alphaOnly := cmask.AlphaOnly()

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			blockIdx := by*blocksX + bx
			off := blockIdx * blockSize
			if off < 0 || off+blockSize > len(input) {
				continue
			}

			colorOff := off
			if cfg.Type != DXT1 {
				colorOff = off + 8
			}
			rgb0 := binary.LittleEndian.Uint16(input[colorOff : colorOff+2])
			rgb1 := binary.LittleEndian.Uint16(input[colorOff+2 : colorOff+4])
			codes := binary.LittleEndian.Uint32(input[colorOff+4 : colorOff+8])

			e0 := expand565(rgb0, cfg.OneBitAlpha)
			e1 := expand565(rgb1, cfg.OneBitAlpha)
			punchThrough := cfg.Type == DXT1 && rgb0 < rgb1

			var e2, e3 dxtEntry
			if punchThrough {
				e2 = avgEntry(e0, e1)
				e3 = dxtEntry{0, 0, 0, 0}
			} else {
				e2 = interpEntry(e0, e1, 2, 1)
				e3 = interpEntry(e0, e1, 1, 2)
			}
			lut := [4]dxtEntry{e0, e1, e2, e3}

			for ty := 0; ty < 4; ty++ {
				for tx := 0; tx < 4; tx++ {
					texel := ty*4 + tx
					code := (codes >> uint(2*texel)) & 0x3
					entry := lut[code]

					px, py := bx*4+tx, by*4+ty
					dest := (py*int(width) + px) * 3
					if dest < 0 || dest+2 >= len(out) {
						continue
					}

					var r, g, b uint8
					if alphaOnly && cfg.OneBitAlpha {
						val := entry.at(order[pixfmt.A])
						r, g, b = val, val, val
					} else {
						if !cmask.R {
							r = entry.at(order[pixfmt.R])
						}
						if !cmask.G {
							g = entry.at(order[pixfmt.G])
						}
						if !cmask.B {
							b = entry.at(order[pixfmt.B])
						}
					}
					r, g, b = applyPipeline(r, g, b, pipeline)
					out[dest+0] = r
					out[dest+1] = g
					out[dest+2] = b
				}
			}
		}
	}
}
