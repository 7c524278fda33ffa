package decode

import (
	"testing"

	"github.com/goopsie/pixeldbg/pkg/pixfmt"
)

func identityDXTFormat(t *testing.T) pixfmt.Format {
	return mustFormat(t, "5.6.5.0", [4]int{1, 2, 3, 4})
}

func TestDXT1SolidWhiteBlock(t *testing.T) {
	input := []byte{
		0xFF, 0xFF, // rgb0 = white
		0x00, 0x00, // rgb1 = black
		0x00, 0x00, 0x00, 0x00, // all texels use code 0 (rgb0)
	}
	out := make([]byte, 4*4*3)

	req := Request{
		Input: input, Width: 4, Height: 4, Format: identityDXTFormat(t),
		Mode: Mode{Kind: ModeDXT, DXT: DXTConfig{Type: DXT1}},
	}
	if err := Decode(req, out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := 0; i < len(out); i++ {
		if out[i] != 0xFF {
			t.Fatalf("out[%d] = %#x, want 0xff (solid white block)", i, out[i])
		}
	}
}

func TestDXT1PunchThroughInterpolation(t *testing.T) {
	// rgb0 < rgb1 selects the 3-color + transparent-black layout.
	input := []byte{
		0x00, 0x00, // rgb0 = black
		0x00, 0xF8, // rgb1 = red (5.6.5: R bits are the top 5 of the high byte)
		0x06, 0x00, 0x00, 0x00, // texel0 -> code 2 (average), texel1 -> code 1 (rgb1)
	}
	out := make([]byte, 4*4*3)

	req := Request{
		Input: input, Width: 4, Height: 4, Format: identityDXTFormat(t),
		Mode: Mode{Kind: ModeDXT, DXT: DXTConfig{Type: DXT1}},
	}
	if err := Decode(req, out); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	// texel 1 (x=1,y=0) should be the pure red endpoint.
	o := (0*4 + 1) * 3
	if out[o] < 0xF0 || out[o+1] != 0 || out[o+2] != 0 {
		t.Errorf("texel1 = %v, want approximately pure red", out[o:o+3])
	}

	// texel 0 should be roughly half red (the average entry).
	o = 0
	if out[o] == 0 || out[o] >= 0xF0 {
		t.Errorf("texel0 red = %#x, want a mid-range average value", out[o])
	}
	if out[o+1] != 0 || out[o+2] != 0 {
		t.Errorf("texel0 = %v, want green/blue at zero", out[o:o+3])
	}
}

func TestDXT3SkipsAlphaBlockEntirely(t *testing.T) {
	alphaBlock := []byte{0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA}
	colorBlock := []byte{0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	input := append(append([]byte{}, alphaBlock...), colorBlock...)
	out := make([]byte, 4*4*3)

	req := Request{
		Input: input, Width: 4, Height: 4, Format: identityDXTFormat(t),
		Mode: Mode{Kind: ModeDXT, DXT: DXTConfig{Type: DXT3}},
	}
	if err := Decode(req, out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := 0; i < len(out); i++ {
		if out[i] != 0xFF {
			t.Fatalf("out[%d] = %#x, want solid white (alpha block must be skipped, not decoded)", i, out[i])
		}
	}
}

func TestDXTOneBitAlphaReplicatesIntoRGBWhenAlphaOnly(t *testing.T) {
	input := []byte{
		0x01, 0x00, // rgb0: bit0 set -> alpha=1
		0x00, 0x00, // rgb1: alpha=0
		0x00, 0x00, 0x00, 0x00, // all texels use code 0
	}
	out := make([]byte, 4*4*3)

	req := Request{
		Input: input, Width: 4, Height: 4, Format: identityDXTFormat(t),
		Mode:        Mode{Kind: ModeDXT, DXT: DXTConfig{Type: DXT1, OneBitAlpha: true}},
		ChannelMask: ChannelMask{R: true, G: true, B: true},
	}
	if err := Decode(req, out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := 0; i < len(out); i++ {
		if out[i] != 0xFF {
			t.Fatalf("out[%d] = %#x, want 0xff (alpha bit replicated into RGB)", i, out[i])
		}
	}
}

func TestDXTChannelOrderPermutesOutputComponents(t *testing.T) {
	// rgb0 encodes a pure-red 5.6.5 endpoint; rgb1 is black. All
	// texels use code 0 (rgb0), so every output pixel should show
	// rgb0's components permuted by channel order.
	input := []byte{
		0x00, 0xF8, // rgb0 = red (top 5 bits of the high byte)
		0x00, 0x00, // rgb1 = black
		0x00, 0x00, 0x00, 0x00, // all texels use code 0
	}
	out := make([]byte, 4*4*3)

	// Channel order BGR (1-based [3,2,1,4]): ChannelOrder ends up
	// [2,1,0,3], so the decoded red component is read out into the
	// blue output byte instead of the red one.
	bgr := mustFormat(t, "5.6.5.0", [4]int{3, 2, 1, 4})
	req := Request{
		Input: input, Width: 4, Height: 4, Format: bgr,
		Mode: Mode{Kind: ModeDXT, DXT: DXTConfig{Type: DXT1}},
	}
	if err := Decode(req, out); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	r, g, b := out[0], out[1], out[2]
	if r != 0 || g != 0 || b < 0xF0 {
		t.Fatalf("got (r,g,b)=(%#x,%#x,%#x), want red endpoint permuted into the blue byte", r, g, b)
	}
}
