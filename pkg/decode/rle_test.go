package decode

import "testing"

func TestRLELSBRunsReplicateAndClampAtImageEnd(t *testing.T) {
	f := mustFormat(t, "8.0.0.0", [4]int{1, 2, 3, 4})
	// packet layout for the LSB variant: [lengthByte, pixelByte...]
	input := []byte{
		2, 0x40, // run length 3 of pixel 0x40
		5, 0x80, // run length 6, clamped to the 2 pixels remaining
	}
	out := make([]byte, 5*3)

	req := Request{
		Input: input, Width: 5, Height: 1, Format: f,
		Mode: Mode{Kind: ModeRLE, RLE: RLELSB},
	}
	if err := Decode(req, out); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := []byte{
		0x40, 0, 0,
		0x40, 0, 0,
		0x40, 0, 0,
		0x80, 0, 0,
		0x80, 0, 0,
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %#x, want %#x (full: %v)", i, out[i], want[i], out)
		}
	}
}

func TestRLEMSBPlacesLengthByteAfterPixel(t *testing.T) {
	f := mustFormat(t, "8.0.0.0", [4]int{1, 2, 3, 4})
	// packet layout for the MSB variant: [pixelByte, lengthByte...]
	input := []byte{0x77, 1} // pixel 0x77, run length 2
	out := make([]byte, 2*3)

	req := Request{
		Input: input, Width: 2, Height: 1, Format: f,
		Mode: Mode{Kind: ModeRLE, RLE: RLEMSB},
	}
	if err := Decode(req, out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out[0] != 0x77 || out[3] != 0x77 {
		t.Fatalf("got %v, want both pixels 0x77", out)
	}
}

func TestRLETGA7BitMasksTopBitOfLength(t *testing.T) {
	f := mustFormat(t, "8.0.0.0", [4]int{1, 2, 3, 4})
	// top bit set but must be masked off, leaving a run length of 1.
	input := []byte{0x80, 0x33}
	out := make([]byte, 3)

	req := Request{
		Input: input, Width: 1, Height: 1, Format: f,
		Mode: Mode{Kind: ModeRLE, RLE: RLETGA7Bit},
	}
	if err := Decode(req, out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out[0] != 0x33 {
		t.Fatalf("out[0] = %#x, want 0x33", out[0])
	}
}
