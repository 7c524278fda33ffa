package window

import "github.com/goopsie/pixeldbg/pkg/decode"

// Pick maps a raster pixel coordinate back to the file offset it was
// decoded from, mirroring the original mouse-move handler: flips are
// undone first, then the offset is derived from the active mode's
// geometry and added to accumOffset.
//
// Raw and DXT offsets are exact. RLE offsets are not recoverable
// without re-walking every preceding packet, so Pick reports exact
// as false and offset as accumOffset with no pixel contribution,
// matching the original's lack of any RLE picking support at all.
func Pick(x, y int, width, height uint32, flipV, flipH bool, mode decode.Mode, pixelSizeBytes int, accumOffset uint64) (offset uint64, exact bool) {
	if flipH {
		x = int(width) - 1 - x
	}
	if flipV {
		y = int(height) - 1 - y
	}
	if x < 0 || y < 0 || uint32(x) >= width || uint32(y) >= height {
		return accumOffset, false
	}

	switch mode.Kind {
	case decode.ModeDXT:
		numBlocksX := int(width) / 4
		block := (y/4)*numBlocksX + x/4
		blockSize := 8
		if mode.DXT.Type != decode.DXT1 {
			blockSize = 16
		}
		return accumOffset + uint64(block*blockSize), true

	case decode.ModeRLE:
		return accumOffset, false

	default:
		stride := int(width) * pixelSizeBytes
		return accumOffset + uint64(y*stride+x*pixelSizeBytes), true
	}
}
