// Package window implements the file windowing model (C7): bounded
// reads from a backing source at an accumulated byte offset, and the
// inverse mapping from a decoded pixel back to the file offset it
// came from.
//
// Grounded in the original's readFile/ButtonCallback pairing: a
// Window remembers the last offset it successfully read from
// (accumOffset) the same way the GUI remembers it across redraws, so
// a caller can step through a file without re-deriving the offset
// every time.
package window

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goopsie/pixeldbg/pkg/pdberrors"
)

// Source is anything a Window can read a bounded slice from.
type Source interface {
	io.ReaderAt
	io.Closer
	Size() int64
}

type fileSource struct {
	f    *os.File
	size int64
}

func (s *fileSource) ReadAt(p []byte, off int64) (int, error) { return s.f.ReadAt(p, off) }
func (s *fileSource) Close() error                             { return s.f.Close() }
func (s *fileSource) Size() int64                              { return s.size }

// Open opens path as a plain, uncompressed window source.
func Open(path string) (*Window, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("window: open %s: %w", path, errors.Join(pdberrors.ErrIOUnavailable, err))
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("window: stat %s: %w", path, errors.Join(pdberrors.ErrIOUnavailable, err))
	}
	return &Window{src: &fileSource{f: f, size: fi.Size()}, path: path}, nil
}

// Window is a bounded, offset-tracking view over a Source.
type Window struct {
	src         Source
	path        string
	accumOffset uint64
}

// Close releases the underlying source.
func (w *Window) Close() error { return w.src.Close() }

// Path returns the path the window was opened from.
func (w *Window) Path() string { return w.path }

// Size returns the total size of the backing source.
func (w *Window) Size() uint64 { return uint64(w.src.Size()) }

// AccumulatedOffset returns the offset of the last successful Read.
func (w *Window) AccumulatedOffset() uint64 { return w.accumOffset }

// ResetAccumulatedOffset zeroes the remembered offset, for use when
// the caller switches to a different source file.
func (w *Window) ResetAccumulatedOffset() { w.accumOffset = 0 }

// Read returns up to capacity bytes starting at offset, clamped to
// the source's actual size the way the original clamps
// size = min(size+offset, fileSize) - offset. An offset at or beyond
// the source's size resets the accumulated offset and returns
// OffsetOutOfRangeError; the caller decides whether that is fatal or,
// as in the original's auto-reload mode, silently ignorable.
func (w *Window) Read(offset uint64, capacity uint32) ([]byte, error) {
	size := w.Size()
	if offset >= size {
		w.accumOffset = 0
		return nil, &pdberrors.OffsetOutOfRangeError{Offset: offset, FileSize: size}
	}

	n := uint64(capacity)
	if offset+n > size {
		n = size - offset
	}
	buf := make([]byte, n)
	read, err := w.src.ReadAt(buf, int64(offset))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("window: read at %d: %w", offset, errors.Join(pdberrors.ErrIOUnavailable, err))
	}
	w.accumOffset = offset
	return buf[:read], nil
}
