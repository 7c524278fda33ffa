package decode

import "github.com/goopsie/pixeldbg/pkg/pixfmt"

// rawDecode implements the raw pixel decoder (C2): arbitrary bit-width
// channels packed into 1-4 byte pixels, optional tiling, optional
// palette indirection, and the shared bitwise pipeline. It never
// returns an error: callers are expected to have validated format and
// dimensions already (see Decode), and out-of-range geometry degrades
// gracefully by leaving the affected output pixels at their prior
// (zeroed) value, matching the original's tolerance of a short final
// tile or truncated trailing pixel.
//
// Grounded in the original convertRaw: same channel-order-ignoring
// remap, same per-channel diff-shift expansion instead of full bit
// replication, same "stop once totalPixels pixels have been visited"
// guard, and the same alpha-only replication shortcut.
func rawDecode(
	input []byte,
	width, height uint32,
	f pixfmt.Format,
	cmask ChannelMask,
	tile TileSpec,
	ignoreChannelOrder bool,
	palette *Palette,
	pipeline []BitwiseStage,
	out []byte,
) {
	ps := int(f.PixelSizeBytes)
	if palette != nil {
		ps = 1
	}
	if ps < 1 || width == 0 || height == 0 {
		return
	}

	var bc [4]uint8
	var order [4]uint8
	if ignoreChannelOrder {
		bc = f.BitsPerChannel
		order = [4]uint8{0, 1, 2, 3}
	} else {
		bc = f.BitCountByPosition()
		order = f.ChannelOrder
	}

	diff := func(c int) uint8 {
		w := bc[order[c]]
		if w >= 8 {
			return 0
		}
		return 8 - w
	}
	rdiff, gdiff, bdiff, adiff := diff(pixfmt.R), diff(pixfmt.G), diff(pixfmt.B), diff(pixfmt.A)
	alphaOnly := cmask.AlphaOnly()
	if alphaOnly {
		rdiff, gdiff, bdiff = adiff, adiff, adiff
	}

	n := len(input) - len(input)%ps
	if n < 0 {
		n = 0
	}
	input = input[:n]

	tw, th := width, height
	var xTiles, yTiles uint32 = 1, 1
	if tile.Enabled && tile.TileW > 0 && tile.TileH > 0 && tile.TileW < width && tile.TileH < height {
		tw, th = tile.TileW, tile.TileH
		xTiles, yTiles = width/tw, height/th
	}

	stride := int(width) * ps
	totalPixels := int(width) * int(height)
	numPixels := 0

	extract := func(pixel uint32, c int) uint32 {
		w := bc[order[c]]
		if w == 0 {
			return 0
		}
		start := 0
		for j := 0; j < int(order[c]); j++ {
			start += int(bc[j])
		}
		return (pixel >> uint(start)) & maskBits(w)
	}

visit:
	for ty := uint32(0); ty < yTiles; ty++ {
		for tx := uint32(0); tx < xTiles; tx++ {
			bx, by := tx*tw, ty*th
			for y := uint32(0); y < th; y++ {
				for x := uint32(0); x < tw; x++ {
					if numPixels >= totalPixels {
						break visit
					}
					numPixels++

					px, py := bx+x, by+y
					i := int(py)*stride + int(px)*ps
					dest := (int(py)*int(width) + int(px)) * 3
					if i < 0 || i+ps > len(input) || dest+2 >= len(out) {
						continue
					}

					var pixel uint32
					for k := 0; k < ps; k++ {
						pixel |= uint32(input[i+k]) << uint(8*k)
					}

					var r, g, b uint8
					if palette != nil {
						idx := int(pixel) & 0xFF
						masked := [3]bool{cmask.R, cmask.G, cmask.B}
						rgb := [3]uint8{}
						for k := 0; k < 3; k++ {
							if masked[k] {
								continue
							}
							off := idx*3 + int(order[k])
							if off >= 0 && off < len(palette.Entries) {
								rgb[k] = palette.Entries[off]
							}
						}
						r, g, b = rgb[0], rgb[1], rgb[2]
					} else if alphaOnly {
						val := uint8(extract(pixel, pixfmt.A)) << adiff
						r, g, b = val, val, val
					} else {
						if !cmask.R {
							r = uint8(extract(pixel, pixfmt.R)) << rdiff
						}
						if !cmask.G {
							g = uint8(extract(pixel, pixfmt.G)) << gdiff
						}
						if !cmask.B {
							b = uint8(extract(pixel, pixfmt.B)) << bdiff
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

func maskBits(bits uint8) uint32 {
	if bits == 0 {
		return 0
	}
	if bits >= 32 {
		return 0xFFFFFFFF
	}
	return (uint32(1) << bits) - 1
}
