// Package pixfmt parses and validates pixel format descriptors: the
// "R.G.B.A" bit-width string plus a channel-order permutation that
// together describe how a packed pixel word maps to RGBA channels.
//
// Grounded in the original PixelDbg64 getPixelFormat (same validation
// order: bit string first, then channel-order permutation, then total
// bit-width), reworked into a pure value type per the teacher's habit
// of deriving fields once at parse time (see texture.ParseMetadata).
package pixfmt

import (
	"strconv"
	"strings"

	"github.com/goopsie/pixeldbg/pkg/pdberrors"
)

// Format is a validated pixel format descriptor.
type Format struct {
	BitsPerChannel [4]uint8  // R,G,B,A bit widths, each in [0,8]
	ChannelOrder   [4]uint8  // position of R,G,B,A within the packed pixel
	PixelSizeBytes uint8     // sum(BitsPerChannel)/8, in {1,2,3,4}
	Masks          [4]uint32 // indexed by position; mask[pos] = (1<<bits)-1 for the channel at pos
}

// Channel indices into BitsPerChannel/ChannelOrder.
const (
	R = 0
	G = 1
	B = 2
	A = 3
)

// Parse validates a "R.G.B.A" bit-width string and a 1-based
// channel-order quadruple, deriving masks and pixel size.
//
// channelOrder entries are 1-based (as in the original GUI's channel
// spinners) and must, after subtracting 1, form a permutation of
// {0,1,2,3}.
func Parse(bitString string, channelOrder [4]int) (Format, error) {
	bits, err := parseBitString(bitString)
	if err != nil {
		return Format{}, err
	}
	return build(bits, channelOrder)
}

func parseBitString(s string) ([4]uint8, error) {
	var bits [4]uint8
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return bits, &pdberrors.FormatInvalidError{
			Kind:   pdberrors.MalformedBitString,
			Reason: "expected exactly three dots separating four numbers",
		}
	}
	for i, p := range parts {
		if p == "" {
			return bits, &pdberrors.FormatInvalidError{
				Kind:   pdberrors.MalformedBitString,
				Reason: "empty channel group",
			}
		}
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return bits, &pdberrors.FormatInvalidError{
				Kind:   pdberrors.MalformedBitString,
				Reason: "channel group " + p + " is not numeric",
			}
		}
		bits[i] = uint8(n)
	}
	return bits, nil
}

func build(bits [4]uint8, channelOrder [4]int) (Format, error) {
	if bits[R] == 0 && bits[G] == 0 && bits[B] == 0 && bits[A] == 0 {
		return Format{}, &pdberrors.FormatInvalidError{
			Kind:   pdberrors.InvalidTotalBits,
			Reason: "at least one channel must have non-zero bit width",
		}
	}

	for i, b := range bits {
		if b > 8 {
			return Format{}, &pdberrors.FormatInvalidError{
				Kind:   pdberrors.ChannelBitsTooWide,
				Reason: channelName(i) + " channel width exceeds 8 bits",
			}
		}
	}

	var order [4]uint8
	seen := [4]bool{}
	for i, c := range channelOrder {
		pos := c - 1
		if pos < 0 || pos > 3 {
			return Format{}, &pdberrors.FormatInvalidError{
				Kind:   pdberrors.ChannelOutOfRange,
				Reason: channelName(i) + " channel order out of range",
			}
		}
		if seen[pos] {
			return Format{}, &pdberrors.FormatInvalidError{
				Kind:   pdberrors.DuplicateChannel,
				Reason: channelName(i) + " channel order duplicates another channel",
			}
		}
		seen[pos] = true
		order[i] = uint8(pos)
	}

	total := int(bits[R]) + int(bits[G]) + int(bits[B]) + int(bits[A])
	if total%8 != 0 || total > 32 || total == 0 {
		return Format{}, &pdberrors.FormatInvalidError{
			Kind:   pdberrors.InvalidTotalBits,
			Reason: "total bit width must be a non-zero multiple of 8, at most 32",
		}
	}
	pixelSize := total / 8
	if pixelSize < 1 || pixelSize > 4 {
		return Format{}, &pdberrors.FormatInvalidError{
			Kind:   pdberrors.InvalidTotalBits,
			Reason: "pixel size must resolve to 1, 2, 3, or 4 bytes",
		}
	}

	var masks [4]uint32
	for c := 0; c < 4; c++ {
		masks[order[c]] = mask(bits[c])
	}

	return Format{
		BitsPerChannel: bits,
		ChannelOrder:   order,
		PixelSizeBytes: uint8(pixelSize),
		Masks:          masks,
	}, nil
}

func mask(bits uint8) uint32 {
	if bits == 0 {
		return 0
	}
	return (uint32(1) << bits) - 1
}

func channelName(i int) string {
	switch i {
	case R:
		return "red"
	case G:
		return "green"
	case B:
		return "blue"
	case A:
		return "alpha"
	default:
		return "unknown"
	}
}

// BitCountByPosition returns the per-channel bit width re-indexed by
// packed-pixel position (bitCount[pos] = width of the channel whose
// ChannelOrder value is pos).
func (f Format) BitCountByPosition() [4]uint8 {
	var bc [4]uint8
	for c := 0; c < 4; c++ {
		bc[f.ChannelOrder[c]] = f.BitsPerChannel[c]
	}
	return bc
}

// StartBit returns the bit offset of channel c's least-significant bit
// within a packed pixel word.
func (f Format) StartBit(c int) int {
	bc := f.BitCountByPosition()
	start := 0
	for j := 0; j < int(f.ChannelOrder[c]); j++ {
		start += int(bc[j])
	}
	return start
}

// WithBits returns a copy of f with different per-channel bit widths,
// keeping the same channel order and recomputing masks and pixel
// size. Used to report the forced 5.6.5.0 / 5.5.5.1 layout DXT mode
// imposes.
func (f Format) WithBits(bits [4]uint8) Format {
	var masks [4]uint32
	for c := 0; c < 4; c++ {
		masks[f.ChannelOrder[c]] = mask(bits[c])
	}
	total := int(bits[R]) + int(bits[G]) + int(bits[B]) + int(bits[A])
	return Format{
		BitsPerChannel: bits,
		ChannelOrder:   f.ChannelOrder,
		PixelSizeBytes: uint8(total / 8),
		Masks:          masks,
	}
}

// WithPixelSize returns a copy of f with PixelSizeBytes overridden,
// leaving bit widths, order, and masks untouched. Used to report the
// 1-byte pixel that palette mode forces regardless of the format
// descriptor's own total width.
func (f Format) WithPixelSize(n uint8) Format {
	g := f
	g.PixelSizeBytes = n
	return g
}

// ParseHexTriplet parses the original GUI's quick-entry hex form
// "RR.GG.BB" (two hex digits per channel), returning 8-bit channel
// values. This is a convenience the distilled spec.md does not cover;
// it mirrors getRGBABitsFromHexString from the original source,
// including its requirement of exactly two dots and hex-only digits.
func ParseHexTriplet(s string) (r, g, b uint8, err error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return 0, 0, 0, &pdberrors.FormatInvalidError{
			Kind:   pdberrors.MalformedBitString,
			Reason: "expected exactly two dots separating three hex bytes",
		}
	}
	vals := make([]uint8, 3)
	for i, p := range parts {
		n, convErr := strconv.ParseUint(p, 16, 16)
		if convErr != nil || n > 0xff {
			return 0, 0, 0, &pdberrors.FormatInvalidError{
				Kind:   pdberrors.MalformedBitString,
				Reason: "hex group " + p + " is not a valid byte",
			}
		}
		vals[i] = uint8(n)
	}
	return vals[0], vals[1], vals[2], nil
}
