package decode

import "github.com/goopsie/pixeldbg/pkg/pixfmt"

// rleDecode implements the run-length decoder (C4): each packet is a
// pixel plus a length byte, in either order, with the length byte's
// top bit sometimes reserved (the TGA 7-bit variant). Each packet's
// single pixel is decoded through the raw decoder and then replicated
// across the run, matching the original convertRLE's reuse of
// convertRaw as the per-pixel primitive.
func rleDecode(input []byte, width, height uint32, f pixfmt.Format, cmask ChannelMask, variant RLEVariant, pipeline []BitwiseStage, out []byte) {
	ps := int(f.PixelSizeBytes)
	if ps < 1 || width == 0 || height == 0 {
		return
	}

	rlByte := variant.RunLengthByteOffset(ps)
	rlPixel := 1
	if variant == RLEMSB {
		rlPixel = 0
	}

	totalPixels := int(width) * int(height)
	numPixels := 0
	packetSize := ps + 1

	var pixelBuf [3]byte
	i := 0
	for numPixels < totalPixels && i+packetSize <= len(input) {
		runLen := int(input[i+rlByte]&variant.Mask()) + 1
		if remaining := totalPixels - numPixels; runLen > remaining {
			runLen = remaining
		}

		pixelBuf[0], pixelBuf[1], pixelBuf[2] = 0, 0, 0
		rawDecode(input[i+rlPixel:i+rlPixel+ps], 1, 1, f, cmask, TileSpec{}, false, nil, pipeline, pixelBuf[:])

		for k := 0; k < runLen; k++ {
			dest := (numPixels + k) * 3
			if dest+2 >= len(out) {
				break
			}
			out[dest+0] = pixelBuf[0]
			out[dest+1] = pixelBuf[1]
			out[dest+2] = pixelBuf[2]
		}

		numPixels += runLen
		i += packetSize
	}
}
