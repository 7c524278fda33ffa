// Package config parses the command-line and TOML surface shared by
// the pixeldbg and pixelinfo tools: everything needed to build a
// decode.Request without the tools duplicating flag definitions.
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/goopsie/pixeldbg/pkg/decode"
	"github.com/goopsie/pixeldbg/pkg/pdberrors"
	"github.com/goopsie/pixeldbg/pkg/pixfmt"
)

// Options is the fully-parsed command surface: the flag defaults, any
// -config overlay, and the command-line flags layered on top, in that
// order, mirroring the original's "project file plus live widget
// edits" precedence.
type Options struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
	Format string `toml:"format"` // output container: "bmp" (default) or "tga"

	Width  uint   `toml:"width"`
	Height uint   `toml:"height"`

	BitString    string `toml:"bits"`     // e.g. "5.6.5.0"
	ChannelOrder [4]int `toml:"channels"` // 1-based, e.g. [1,2,3,4]

	TileEnabled bool `toml:"tile"`
	TileWidth   uint `toml:"tile_width"`
	TileHeight  uint `toml:"tile_height"`

	MaskR bool `toml:"mask_r"`
	MaskG bool `toml:"mask_g"`
	MaskB bool `toml:"mask_b"`
	MaskA bool `toml:"mask_a"`

	Mode        string `toml:"mode"` // "raw", "dxt", "rle"
	DXTType     int    `toml:"dxt_type"`
	DXTOneBit   bool   `toml:"dxt_one_bit_alpha"`
	RLEVariant  string `toml:"rle_variant"` // "lsb", "msb", "tga7"

	Pipeline []string `toml:"pipeline"` // "op:rr.gg.bb" entries, e.g. "and:ff.ff.00"

	PaletteFile string `toml:"palette_file"`

	Offset uint64 `toml:"offset"`

	FlipVertical   bool `toml:"flip_v"`
	FlipHorizontal bool `toml:"flip_h"`

	ConfigFile string `toml:"-"`
}

// Default returns the flag defaults, matching the original's
// out-of-the-box widget state: 3.3.2.0, identity channel order, tiling
// off, no masks, raw mode.
func Default() Options {
	return Options{
		Format:       "bmp",
		Width:        64,
		Height:       64,
		BitString:    "3.3.2.0",
		ChannelOrder: [4]int{1, 2, 3, 4},
		Mode:         "raw",
		DXTType:      1,
		RLEVariant:   "lsb",
	}
}

// RegisterFlags wires every Options field except ChannelOrder and
// Pipeline onto fs, in the teacher's flat flag.FlagSet style rather
// than a subcommand tree.
func (o *Options) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.Input, "input", o.Input, "input file to decode")
	fs.StringVar(&o.Output, "output", o.Output, "output image path")
	fs.StringVar(&o.Format, "format", o.Format, "output container: bmp or tga")
	fs.UintVar(&o.Width, "width", o.Width, "image width in pixels")
	fs.UintVar(&o.Height, "height", o.Height, "image height in pixels")
	fs.StringVar(&o.BitString, "bits", o.BitString, "pixel format bit string, e.g. 5.6.5.0")
	fs.BoolVar(&o.TileEnabled, "tile", o.TileEnabled, "enable tiling")
	fs.UintVar(&o.TileWidth, "tile-width", o.TileWidth, "tile width in pixels")
	fs.UintVar(&o.TileHeight, "tile-height", o.TileHeight, "tile height in pixels")
	fs.BoolVar(&o.MaskR, "mask-r", o.MaskR, "suppress the red channel")
	fs.BoolVar(&o.MaskG, "mask-g", o.MaskG, "suppress the green channel")
	fs.BoolVar(&o.MaskB, "mask-b", o.MaskB, "suppress the blue channel")
	fs.BoolVar(&o.MaskA, "mask-a", o.MaskA, "suppress the alpha channel")
	fs.StringVar(&o.Mode, "mode", o.Mode, "decode mode: raw, dxt, or rle")
	fs.IntVar(&o.DXTType, "dxt-type", o.DXTType, "DXT variant: 1, 3, or 5")
	fs.BoolVar(&o.DXTOneBit, "dxt-one-bit-alpha", o.DXTOneBit, "use 5.5.5.1 endpoints instead of 5.6.5")
	fs.StringVar(&o.RLEVariant, "rle-variant", o.RLEVariant, "RLE packet layout: lsb, msb, or tga7")
	fs.StringVar(&o.PaletteFile, "palette", o.PaletteFile, "palette source file")
	fs.Uint64Var(&o.Offset, "offset", o.Offset, "byte offset into the input file")
	fs.BoolVar(&o.FlipVertical, "flip-v", o.FlipVertical, "flip the decoded image vertically")
	fs.BoolVar(&o.FlipHorizontal, "flip-h", o.FlipHorizontal, "flip the decoded image horizontally")
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "TOML file overlaying these flags")
}

// LoadOverlay decodes a TOML file into o, for values the command line
// didn't already set. Call this before RegisterFlags' fs.Parse so
// explicit flags still win.
func LoadOverlay(path string, o *Options) error {
	_, err := toml.DecodeFile(path, o)
	if err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

// Validate checks the parsed options for the constraints decode.Decode
// itself enforces, so callers can report a clean error before doing
// any file I/O.
func (o Options) Validate() error {
	if o.Input == "" {
		return fmt.Errorf("config: -input is required")
	}
	return o.ValidateShared()
}

// ValidateShared checks everything Validate does except that -input
// is set, for batch mode where each file supplies its own input path.
func (o Options) ValidateShared() error {
	if o.Width == 0 || o.Height == 0 || o.Width > 1024 || o.Height > 1024 {
		return &pdberrors.DimensionsInvalidError{Width: int(o.Width), Height: int(o.Height)}
	}
	switch o.Mode {
	case "raw", "dxt", "rle":
	default:
		return fmt.Errorf("config: unknown mode %q", o.Mode)
	}
	if o.Format != "bmp" && o.Format != "tga" {
		return fmt.Errorf("config: unknown output format %q", o.Format)
	}
	return nil
}

// BuildFormat parses the bit string and channel order into a
// pixfmt.Format.
func (o Options) BuildFormat() (pixfmt.Format, error) {
	return pixfmt.Parse(o.BitString, o.ChannelOrder)
}

// BuildMode translates the string mode fields into a decode.Mode.
func (o Options) BuildMode() (decode.Mode, error) {
	switch o.Mode {
	case "dxt":
		t := decode.DXTType(o.DXTType)
		switch t {
		case decode.DXT1, decode.DXT3, decode.DXT5:
		default:
			return decode.Mode{}, fmt.Errorf("config: unsupported dxt-type %d", o.DXTType)
		}
		return decode.Mode{Kind: decode.ModeDXT, DXT: decode.DXTConfig{Type: t, OneBitAlpha: o.DXTOneBit}}, nil
	case "rle":
		var v decode.RLEVariant
		switch o.RLEVariant {
		case "lsb":
			v = decode.RLELSB
		case "msb":
			v = decode.RLEMSB
		case "tga7":
			v = decode.RLETGA7Bit
		default:
			return decode.Mode{}, fmt.Errorf("config: unknown rle-variant %q", o.RLEVariant)
		}
		return decode.Mode{Kind: decode.ModeRLE, RLE: v}, nil
	default:
		return decode.Mode{Kind: decode.ModeRaw}, nil
	}
}

// BuildChannelMask translates the four mask flags.
func (o Options) BuildChannelMask() decode.ChannelMask {
	return decode.ChannelMask{R: o.MaskR, G: o.MaskG, B: o.MaskB, A: o.MaskA}
}

// BuildTileSpec translates the tiling flags.
func (o Options) BuildTileSpec() decode.TileSpec {
	return decode.TileSpec{Enabled: o.TileEnabled, TileW: uint32(o.TileWidth), TileH: uint32(o.TileHeight)}
}

// BuildPipeline parses "op:rr.gg.bb" entries (hex operands) into
// bitwise stages, rejecting more than decode.MaxPipelineStages.
func BuildPipeline(entries []string) ([]decode.BitwiseStage, error) {
	if len(entries) > decode.MaxPipelineStages {
		return nil, fmt.Errorf("config: %d pipeline stages exceeds max of %d", len(entries), decode.MaxPipelineStages)
	}
	stages := make([]decode.BitwiseStage, 0, len(entries))
	for i, e := range entries {
		parts := strings.SplitN(e, ":", 2)
		if len(parts) != 2 {
			return nil, &pdberrors.PipelineBitsMalformedError{Stage: i, Value: e}
		}
		op, err := parseOp(parts[0])
		if err != nil {
			return nil, err
		}
		r, g, b, err := pixfmt.ParseHexTriplet(parts[1])
		if err != nil {
			return nil, &pdberrors.PipelineBitsMalformedError{Stage: i, Value: e}
		}
		stages = append(stages, decode.BitwiseStage{Op: op, R: r, G: g, B: b})
	}
	return stages, nil
}

func parseOp(s string) (decode.Op, error) {
	switch strings.ToLower(s) {
	case "nop":
		return decode.OpNOP, nil
	case "and":
		return decode.OpAND, nil
	case "or":
		return decode.OpOR, nil
	case "xor":
		return decode.OpXOR, nil
	case "shl":
		return decode.OpSHL, nil
	case "shr":
		return decode.OpSHR, nil
	case "rol":
		return decode.OpROL, nil
	case "ror":
		return decode.OpROR, nil
	default:
		return 0, fmt.Errorf("config: unknown pipeline op %q", s)
	}
}

