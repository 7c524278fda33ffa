package window

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/DataDog/zstd"

	"github.com/goopsie/pixeldbg/pkg/pdberrors"
)

// captureMagic identifies a zstd-compressed pixeldbg capture
// container: a raw byte dump captured from a live process and shipped
// compressed for offline inspection, distinct from the plain files
// Open reads directly.
var captureMagic = [4]byte{'P', 'X', 'D', 'B'}

const captureHeaderSize = 24

// captureHeader is the fixed-size header prefixing a capture
// container, laid out and validated the same way the teacher's own
// archive header is: magic, header length, then uncompressed and
// compressed lengths as little-endian uint64s.
type captureHeader struct {
	Magic            [4]byte
	HeaderLength     uint32
	Length           uint64
	CompressedLength uint64
}

func (h *captureHeader) unmarshal(data []byte) error {
	buf := bytes.NewReader(data)
	if err := binary.Read(buf, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("window: unmarshal capture header: %w", err)
	}
	if h.Magic != captureMagic {
		return fmt.Errorf("window: bad capture magic %x", h.Magic)
	}
	if h.HeaderLength != captureHeaderSize {
		return fmt.Errorf("window: bad capture header length %d", h.HeaderLength)
	}
	if h.Length == 0 {
		return fmt.Errorf("window: capture declares zero uncompressed length")
	}
	return nil
}

// memSource is a fully-decompressed in-memory Source: zstd's reader
// is a stream, not a seeker, so a capture's whole payload is
// inflated once at open time and served from memory afterward.
type memSource struct {
	data []byte
}

func (s *memSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[off:])
	return n, nil
}

func (s *memSource) Close() error { return nil }
func (s *memSource) Size() int64  { return int64(len(s.data)) }

// OpenCapture opens a zstd-compressed capture container as a Window.
func OpenCapture(path string) (*Window, error) {
	raw, err := readAllFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < captureHeaderSize {
		return nil, fmt.Errorf("window: capture %s shorter than its header", path)
	}

	var hdr captureHeader
	if err := hdr.unmarshal(raw[:captureHeaderSize]); err != nil {
		return nil, err
	}

	zr := zstd.NewReader(bytes.NewReader(raw[captureHeaderSize:]))
	defer zr.Close()

	data := make([]byte, hdr.Length)
	n, err := io.ReadFull(zr, data)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("window: inflate capture %s: %w", path, errors.Join(pdberrors.ErrIOUnavailable, err))
	}

	return &Window{src: &memSource{data: data[:n]}, path: path}, nil
}

func readAllFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("window: open capture %s: %w", path, errors.Join(pdberrors.ErrIOUnavailable, err))
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("window: read capture %s: %w", path, errors.Join(pdberrors.ErrIOUnavailable, err))
	}
	return data, nil
}
