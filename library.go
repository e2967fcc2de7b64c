// Copyright 2026 The assetlib Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package assetlib

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/assetlib/assetlib/internal/archive"
	"github.com/assetlib/assetlib/internal/mmap"
)

// A Library is an opened, validated asset archive.  It owns a shared
// view of the archive bytes plus the decoded id → entry table, and
// hands out zero-copy slices into that view.  The view stays mapped
// until the Library and every Asset resolved from it are released.
type Library struct {
	src    *source
	table  map[AssetID]archive.TableEntry
	closed atomic.Bool
}

var _ Resolver = (*Library)(nil)

// OpenFile memory-maps the archive at path and validates it.
func OpenFile(path string) (*Library, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap.Open(%s): %w", path, err)
	}

	// asset lookups hop around the file, not through it
	if err := m.AdviseRandom(); err != nil {
		_ = m.Close()
		return nil, err
	}

	lib, err := Open(m.Data(), m.Close)
	if err != nil {
		_ = m.Close()
		return nil, err
	}
	return lib, nil
}

// Open validates an archive held in data and decodes its table.  The
// optional closeFn runs when the last reference to the bytes (the
// Library itself plus any outstanding Assets) is released; pass nil
// for in-memory archives.
//
// Every table entry is bounds-checked against len(data) up front, so a
// lookup on a successfully opened Library can never slice out of
// bounds.  If two entries carry the same id, the later one in stream
// order wins, matching the Builder's last-insert-wins policy.
func Open(data []byte, closeFn func() error) (*Library, error) {
	var fh archive.FileHeader
	if err := fh.UnmarshalBytes(data); err != nil {
		return nil, fmt.Errorf("file header: %w", err)
	}
	rest := data[archive.FileHeaderSize:]

	var th archive.TableHeader
	if err := th.UnmarshalBytes(rest); err != nil {
		return nil, fmt.Errorf("table header: %w", err)
	}
	rest = rest[archive.TableHeaderSize:]

	// reject a huge declared count before, not after, looping over it
	if uint64(len(rest))/archive.TableEntrySize < th.EntryCount {
		return nil, fmt.Errorf("table declares %d entries, %d bytes remain: %w",
			th.EntryCount, len(rest), archive.ErrTruncated)
	}

	total := uint64(len(data))
	table := make(map[AssetID]archive.TableEntry, th.EntryCount)
	for i := uint64(0); i < th.EntryCount; i++ {
		var e archive.TableEntry
		if err := e.UnmarshalBytes(rest); err != nil {
			return nil, fmt.Errorf("table entry %d: %w", i, err)
		}
		rest = rest[archive.TableEntrySize:]

		end := e.Offset + e.Size
		if end < e.Offset || end > total {
			return nil, fmt.Errorf("entry %s: offset %d + size %d exceeds archive length %d: %w",
				AssetID(e.ID), e.Offset, e.Size, total, archive.ErrCorruptArchive)
		}
		table[AssetID(e.ID)] = e
	}

	return &Library{
		src:   newSource(data, closeFn),
		table: table,
	}, nil
}

// Len returns the number of assets stored in the library.
func (l *Library) Len() int {
	return len(l.table)
}

// EntryInfo describes one stored asset for diagnostic listings.
type EntryInfo struct {
	ID   AssetID
	Size uint64
}

// Entries lists every stored asset, ordered by id for stable output.
func (l *Library) Entries() []EntryInfo {
	entries := make([]EntryInfo, 0, len(l.table))
	for id, e := range l.table {
		entries = append(entries, EntryInfo{ID: id, Size: e.Size})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries
}

// FindID returns a zero-copy view of the asset with the given id.  The
// slice is valid for the lifetime of the Library.
func (l *Library) FindID(id AssetID) ([]byte, bool) {
	e, ok := l.table[id]
	if !ok {
		return nil, false
	}
	return l.src.data[e.Offset : e.Offset+e.Size], true
}

// Find hashes the logical name and returns a zero-copy view of the
// matching asset, if any.
func (l *Library) Find(name string) ([]byte, bool) {
	return l.FindID(HashName(name))
}

// Resolve looks the name up in the library's table and, on a hit,
// returns an Asset sharing the library's mapping.  A miss fails with
// ErrNotFound.
func (l *Library) Resolve(name string) (*Asset, error) {
	e, ok := l.table[HashName(name)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return &Asset{
		name: name,
		off:  e.Offset,
		size: e.Size,
		src:  l.src.acquire(),
	}, nil
}

// Close releases the library's reference on the mapped archive.  The
// mapping itself is unmapped once every Asset resolved from this
// library has also been released.  Close is idempotent.
func (l *Library) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	return l.src.release()
}
