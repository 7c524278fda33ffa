package window

import "testing"

func TestCaptureHeaderUnmarshalRejectsBadMagic(t *testing.T) {
	data := make([]byte, captureHeaderSize)
	copy(data, []byte("XXXX"))
	var h captureHeader
	if err := h.unmarshal(data); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestCaptureHeaderUnmarshalRejectsZeroLength(t *testing.T) {
	data := make([]byte, captureHeaderSize)
	copy(data[0:4], captureMagic[:])
	data[4] = captureHeaderSize // HeaderLength little-endian low byte
	var h captureHeader
	if err := h.unmarshal(data); err == nil {
		t.Fatal("expected error for zero declared length")
	}
}

func TestOpenCaptureRejectsShortFile(t *testing.T) {
	path := writeTempFile(t, []byte{1, 2, 3})
	if _, err := OpenCapture(path); err == nil {
		t.Fatal("expected error for a file shorter than the header")
	}
}

func TestMemSourceReadAtPastEndReturnsEOF(t *testing.T) {
	s := &memSource{data: []byte{1, 2, 3}}
	buf := make([]byte, 4)
	if _, err := s.ReadAt(buf, 3); err == nil {
		t.Fatal("expected EOF reading at end of data")
	}
}
