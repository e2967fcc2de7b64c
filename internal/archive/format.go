// Copyright 2026 The assetlib Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package archive

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// Magic is the first 8 bytes of every asset library file,
	// little-endian.  It doubles as the format version marker: there is
	// exactly one version of this format.
	Magic uint64 = 0xDEADBEEF

	FileHeaderSize  = 8
	TableHeaderSize = 8
	TableEntrySize  = 8 + 8 + 8 // id + offset + size

	// AssetAlign is the boundary every asset payload starts on, and the
	// boundary the table is padded out to before the first payload.
	AssetAlign = 64
)

var (
	ErrTruncated      = errors.New("truncated input")
	ErrInvalidFormat  = errors.New("bad magic number: not an asset library or corrupted")
	ErrCorruptArchive = errors.New("corrupt archive")
)

// AlignUp rounds v up to the next multiple of a, which must be a power
// of two.
func AlignUp(v, a uint64) uint64 {
	if a == 0 || a&(a-1) != 0 {
		panic("AlignUp: alignment must be a power of two")
	}
	return (v + a - 1) &^ (a - 1)
}

type FileHeader struct {
	Magic uint64
}

func (h FileHeader) WriteTo(w io.Writer) (int64, error) {
	var buf [FileHeaderSize]byte
	binary.LittleEndian.PutUint64(buf[:], h.Magic)
	if _, err := w.Write(buf[:]); err != nil {
		return 0, fmt.Errorf("write: %w", err)
	}
	return FileHeaderSize, nil
}

func (h *FileHeader) UnmarshalBytes(b []byte) error {
	if len(b) < FileHeaderSize {
		return fmt.Errorf("file header needs %d bytes, have %d: %w", FileHeaderSize, len(b), ErrTruncated)
	}
	h.Magic = binary.LittleEndian.Uint64(b[:8])
	if h.Magic != Magic {
		return fmt.Errorf("%#x: %w", h.Magic, ErrInvalidFormat)
	}
	return nil
}

type TableHeader struct {
	EntryCount uint64
}

func (h TableHeader) WriteTo(w io.Writer) (int64, error) {
	var buf [TableHeaderSize]byte
	binary.LittleEndian.PutUint64(buf[:], h.EntryCount)
	if _, err := w.Write(buf[:]); err != nil {
		return 0, fmt.Errorf("write: %w", err)
	}
	return TableHeaderSize, nil
}

func (h *TableHeader) UnmarshalBytes(b []byte) error {
	if len(b) < TableHeaderSize {
		return fmt.Errorf("table header needs %d bytes, have %d: %w", TableHeaderSize, len(b), ErrTruncated)
	}
	h.EntryCount = binary.LittleEndian.Uint64(b[:8])
	return nil
}

// TableEntry locates one asset's payload within the archive.  Entries
// are unordered on disk; ID is the lookup key.
type TableEntry struct {
	ID     uint64
	Offset uint64
	Size   uint64
}

func (e TableEntry) WriteTo(w io.Writer) (int64, error) {
	var buf [TableEntrySize]byte
	binary.LittleEndian.PutUint64(buf[0:8], e.ID)
	binary.LittleEndian.PutUint64(buf[8:16], e.Offset)
	binary.LittleEndian.PutUint64(buf[16:24], e.Size)
	if _, err := w.Write(buf[:]); err != nil {
		return 0, fmt.Errorf("write: %w", err)
	}
	return TableEntrySize, nil
}

func (e *TableEntry) UnmarshalBytes(b []byte) error {
	if len(b) < TableEntrySize {
		return fmt.Errorf("table entry needs %d bytes, have %d: %w", TableEntrySize, len(b), ErrTruncated)
	}
	e.ID = binary.LittleEndian.Uint64(b[0:8])
	e.Offset = binary.LittleEndian.Uint64(b[8:16])
	e.Size = binary.LittleEndian.Uint64(b[16:24])
	return nil
}
