package decode

import (
	"fmt"

	"github.com/goopsie/pixeldbg/pkg/pdberrors"
	"github.com/goopsie/pixeldbg/pkg/pixfmt"
)

// dxtBits is the default 5.6.5.0 endpoint layout DXT mode forces.
var dxtBits = [4]uint8{5, 6, 5, 0}

// dxtBitsOneBitAlpha is the 5.5.5.1 endpoint layout used when
// DXTConfig.OneBitAlpha is set.
var dxtBitsOneBitAlpha = [4]uint8{5, 5, 5, 1}

// Decode is the single entry point for the pixel decoding core. It
// validates dimensions and the pipeline length, applies the format
// overrides DXT and palette modes impose, and dispatches to the raw,
// DXT, or RLE decoder. out must be at least Width*Height*3 bytes and
// is assumed pre-zeroed by the caller (see raster.New / Raster.Reset);
// decoders only ever write, never clear, individual pixels.
func Decode(req Request, out []byte) error {
	if req.Width == 0 || req.Height == 0 || req.Width > 1024 || req.Height > 1024 {
		return &pdberrors.DimensionsInvalidError{Width: int(req.Width), Height: int(req.Height)}
	}
	need := int(req.Width) * int(req.Height) * 3
	if len(out) < need {
		return fmt.Errorf("decode: output buffer holds %d bytes, need %d", len(out), need)
	}
	if len(req.Pipeline) > MaxPipelineStages {
		return fmt.Errorf("decode: pipeline has %d stages, max is %d", len(req.Pipeline), MaxPipelineStages)
	}

	switch req.Mode.Kind {
	case ModeDXT:
		// dxtDecode hardcodes the forced 5.6.5.0 / 5.5.5.1 endpoint
		// layout itself; EffectiveFormat exists so callers that need
		// to report it (pixelinfo) don't have to duplicate the rule.
		// The format's channel order still applies to DXT's output,
		// same as raw/RLE.
		dxtDecode(req.Input, req.Width, req.Height, req.Mode.DXT, req.ChannelMask, req.Format.ChannelOrder, req.Pipeline, out)
		return nil

	case ModeRLE:
		rleDecode(req.Input, req.Width, req.Height, req.Format, req.ChannelMask, req.Mode.RLE, req.Pipeline, out)
		return nil

	default:
		// rawDecode itself forces a 1-byte pixel whenever a palette is
		// attached, regardless of req.Format's own pixel size.
		rawDecode(req.Input, req.Width, req.Height, req.Format, req.ChannelMask, req.Tile, false, req.Palette, req.Pipeline, out)
		return nil
	}
}

// EffectiveFormat reports the pixel format a Request actually decodes
// with, after DXT and palette mode overrides: DXT forces a 5.6.5.0 or
// 5.5.5.1 layout, and a palette forces a 1-byte pixel in raw mode. RLE
// requests ignore the palette and, like raw requests without one,
// decode with req.Format unchanged.
func EffectiveFormat(req Request) pixfmt.Format {
	switch req.Mode.Kind {
	case ModeDXT:
		bits := dxtBits
		if req.Mode.DXT.OneBitAlpha {
			bits = dxtBitsOneBitAlpha
		}
		return req.Format.WithBits(bits)
	case ModeRLE:
		return req.Format
	default:
		if req.Palette != nil {
			return req.Format.WithPixelSize(1)
		}
		return req.Format
	}
}
