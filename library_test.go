// Copyright 2026 The assetlib Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package assetlib

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetlib/assetlib/internal/archive"
)

func TestOpenRejectsBadMagic(t *testing.T) {
	data := buildArchive(t, testBlobs(3))
	data[0] ^= 0xFF

	_, err := Open(data, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestOpenRejectsTruncatedHeader(t *testing.T) {
	data := buildArchive(t, testBlobs(3))

	for _, n := range []int{0, archive.FileHeaderSize - 1, archive.FileHeaderSize,
		archive.FileHeaderSize + archive.TableHeaderSize - 1} {
		_, err := Open(data[:n], nil)
		require.Error(t, err, "prefix of %d bytes", n)
		assert.ErrorIs(t, err, ErrTruncated, "prefix of %d bytes", n)
	}
}

func TestOpenRejectsTruncatedTable(t *testing.T) {
	data := buildArchive(t, testBlobs(3))

	// keep the headers but cut the table off mid-entry
	n := archive.FileHeaderSize + archive.TableHeaderSize + archive.TableEntrySize + 5
	_, err := Open(data[:n], nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestOpenRejectsHugeEntryCount(t *testing.T) {
	data := buildArchive(t, testBlobs(3))

	// lie about the entry count; the remaining bytes can't hold it
	binary.LittleEndian.PutUint64(data[archive.FileHeaderSize:], 1<<60)

	_, err := Open(data, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
}

// corruptEntry rewrites field (0 = id, 1 = offset, 2 = size) of the
// first table entry in place.
func corruptEntry(data []byte, field int, value uint64) {
	off := archive.FileHeaderSize + archive.TableHeaderSize + field*8
	binary.LittleEndian.PutUint64(data[off:], value)
}

func TestOpenRejectsOutOfBoundsEntry(t *testing.T) {
	t.Run("size beyond end", func(t *testing.T) {
		data := buildArchive(t, testBlobs(2))
		corruptEntry(data, 2, uint64(len(data)))

		_, err := Open(data, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCorruptArchive)
	})

	t.Run("offset beyond end", func(t *testing.T) {
		data := buildArchive(t, testBlobs(2))
		corruptEntry(data, 1, uint64(len(data))+archive.AssetAlign)

		_, err := Open(data, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCorruptArchive)
	})

	t.Run("offset plus size overflows", func(t *testing.T) {
		data := buildArchive(t, testBlobs(2))
		corruptEntry(data, 1, ^uint64(0)-7)
		corruptEntry(data, 2, 64)

		_, err := Open(data, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCorruptArchive)
	})
}

func TestOpenDuplicateIDLastWins(t *testing.T) {
	// hand-assemble an archive with two entries sharing an id but
	// pointing at different payloads
	var buf bytes.Buffer
	id := uint64(HashName("dup"))

	base := uint64(archive.FileHeaderSize + archive.TableHeaderSize + 2*archive.TableEntrySize)
	alignedBase := archive.AlignUp(base, archive.AssetAlign)

	_, err := (archive.FileHeader{Magic: archive.Magic}).WriteTo(&buf)
	require.NoError(t, err)
	_, err = (archive.TableHeader{EntryCount: 2}).WriteTo(&buf)
	require.NoError(t, err)
	_, err = (archive.TableEntry{ID: id, Offset: alignedBase, Size: 5}).WriteTo(&buf)
	require.NoError(t, err)
	_, err = (archive.TableEntry{ID: id, Offset: alignedBase + archive.AssetAlign, Size: 6}).WriteTo(&buf)
	require.NoError(t, err)

	buf.Write(make([]byte, alignedBase-base))
	buf.WriteString("first")
	buf.Write(make([]byte, archive.AssetAlign-5))
	buf.WriteString("second")
	buf.Write(make([]byte, archive.AssetAlign-6))

	lib, err := Open(buf.Bytes(), nil)
	require.NoError(t, err)
	require.Equal(t, 1, lib.Len())

	got, ok := lib.Find("dup")
	require.True(t, ok)
	require.Equal(t, []byte("second"), got)
}

func TestFindUnknownName(t *testing.T) {
	lib, err := Open(buildArchive(t, testBlobs(3)), nil)
	require.NoError(t, err)

	got, ok := lib.Find("never/inserted")
	require.False(t, ok)
	require.Nil(t, got)

	got, ok = lib.FindID(AssetID(12345))
	require.False(t, ok)
	require.Nil(t, got)
}

func TestEntriesSortedWithSizes(t *testing.T) {
	blobs := testBlobs(10)
	lib, err := Open(buildArchive(t, blobs), nil)
	require.NoError(t, err)

	entries := lib.Entries()
	require.Len(t, entries, len(blobs))
	require.True(t, sort.SliceIsSorted(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	}))

	sizesByID := make(map[AssetID]uint64, len(blobs))
	for name, data := range blobs {
		sizesByID[HashName(name)] = uint64(len(data))
	}
	for _, e := range entries {
		require.Equal(t, sizesByID[e.ID], e.Size)
	}
}

func writeArchiveFile(t *testing.T, blobs map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assets.alib")
	require.NoError(t, os.WriteFile(path, buildArchive(t, blobs), 0o644))
	return path
}

func TestOpenFileRoundTrip(t *testing.T) {
	blobs := testBlobs(5)
	lib, err := OpenFile(writeArchiveFile(t, blobs))
	require.NoError(t, err)
	defer func() {
		_ = lib.Close()
	}()

	for name, expected := range blobs {
		got, ok := lib.Find(name)
		require.True(t, ok)
		require.Equal(t, expected, got)
	}
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "nope.alib"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.alib")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := OpenFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestLibraryResolve(t *testing.T) {
	blobs := map[string][]byte{"hello.txt": []byte("hello, world")}
	lib, err := OpenFile(writeArchiveFile(t, blobs))
	require.NoError(t, err)

	a, err := lib.Resolve("hello.txt")
	require.NoError(t, err)
	require.Equal(t, "hello.txt", a.Name())
	require.Equal(t, []byte("hello, world"), a.Bytes())
	require.Equal(t, len("hello, world"), a.Len())

	_, err = lib.Resolve("missing.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, a.Release())
	require.NoError(t, lib.Close())
}

func TestAssetOutlivesLibraryClose(t *testing.T) {
	blobs := map[string][]byte{"keep.bin": bytes.Repeat([]byte{0x5A}, 96)}
	lib, err := OpenFile(writeArchiveFile(t, blobs))
	require.NoError(t, err)

	a, err := lib.Resolve("keep.bin")
	require.NoError(t, err)

	// the mapping stays alive for the outstanding asset
	require.NoError(t, lib.Close())
	require.Equal(t, blobs["keep.bin"], a.Bytes())

	require.NoError(t, a.Release())
	// Release and Close are both idempotent
	require.NoError(t, a.Release())
	require.NoError(t, lib.Close())
}

func TestResolvedAssetsShareOneSource(t *testing.T) {
	blobs := map[string][]byte{
		"a.bin": []byte("aaaa"),
		"b.bin": []byte("bbbb"),
	}
	lib, err := OpenFile(writeArchiveFile(t, blobs))
	require.NoError(t, err)

	a, err := lib.Resolve("a.bin")
	require.NoError(t, err)
	b, err := lib.Resolve("b.bin")
	require.NoError(t, err)
	require.Same(t, a.src, b.src)

	require.NoError(t, a.Release())
	require.NoError(t, lib.Close())
	require.Equal(t, []byte("bbbb"), b.Bytes())
	require.NoError(t, b.Release())
}
