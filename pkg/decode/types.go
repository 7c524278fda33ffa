// Package decode implements the pixel decoding core: the raw decoder
// (C2), the S3TC/DXT block decoder (C3), the run-length decoder (C4),
// the bitwise post-processing pipeline (C5), and the palette store
// (C8). Every entry point is synchronous and pure: it writes into a
// caller-owned raster and performs no I/O, per the single-threaded,
// allocation-free contract of the core.
package decode

import "github.com/goopsie/pixeldbg/pkg/pixfmt"

// ChannelMask carries the per-channel enable flags that silence a
// channel in the raw/RLE decoders and select alpha-only replication.
type ChannelMask struct {
	R, G, B, A bool
}

// AlphaOnly reports whether R, G, and B are all disabled, leaving only
// alpha to be replicated across all three output channels.
func (m ChannelMask) AlphaOnly() bool {
	return m.R && m.G && m.B
}

// TileSpec describes the raw decoder's tiling layout.
type TileSpec struct {
	Enabled bool
	TileW   uint32
	TileH   uint32
}

// Op is one bitwise pipeline operation.
type Op int

const (
	OpNOP Op = iota
	OpAND
	OpOR
	OpXOR
	OpSHL
	OpSHR
	OpROL
	OpROR
)

// BitwiseStage is one stage of the up-to-five-stage pipeline applied
// to every decoded RGB triple.
type BitwiseStage struct {
	Op      Op
	R, G, B uint8
}

// MaxPipelineStages bounds a pipeline to the five stages spec.md
// allows.
const MaxPipelineStages = 5

// DXTType enumerates the supported S3TC variants.
type DXTType int

const (
	DXT1 DXTType = 1
	DXT3 DXTType = 3
	DXT5 DXTType = 5
)

// DXTConfig configures the block decoder. OneBitAlpha selects the
// 5.5.5.1 endpoint layout instead of 5.6.5; it is honored for every
// Type, not only DXT1.
type DXTConfig struct {
	Type        DXTType
	OneBitAlpha bool
}

// RLEVariant selects where the run-length byte lives in an RLE packet
// and which mask extracts the run length from it.
type RLEVariant int

const (
	RLELSB RLEVariant = iota
	RLEMSB
	RLETGA7Bit
)

// RunLengthByteOffset returns the byte offset of the length byte
// within a (pixelSize+1)-byte packet.
func (v RLEVariant) RunLengthByteOffset(pixelSize int) int {
	if v == RLEMSB {
		return pixelSize
	}
	return 0
}

// Mask returns the bitmask applied to the length byte before adding 1.
func (v RLEVariant) Mask() uint8 {
	if v == RLETGA7Bit {
		return 0x7F
	}
	return 0xFF
}

// ModeKind selects which of the three decoders a Request dispatches
// to.
type ModeKind int

const (
	ModeRaw ModeKind = iota
	ModeDXT
	ModeRLE
)

// Mode is the decode-mode union: exactly one of DXT/RLE is consulted,
// selected by Kind.
type Mode struct {
	Kind ModeKind
	DXT  DXTConfig
	RLE  RLEVariant
}

// Request bundles everything a single decode call needs. It is built
// fresh per redraw and consumed once; it retains no state across
// calls.
type Request struct {
	Input       []byte
	Width       uint32
	Height      uint32
	Format      pixfmt.Format
	Mode        Mode
	Tile        TileSpec
	ChannelMask ChannelMask
	Palette     *Palette
	Pipeline    []BitwiseStage
}
