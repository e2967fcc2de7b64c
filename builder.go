// Copyright 2026 The assetlib Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package assetlib

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/assetlib/assetlib/internal/archive"
)

const defaultBufferSize = 4 * 1024 * 1024

// An AssetDescription names an asset and says where its bytes come
// from: Data if non-nil, otherwise the loose file at Path.  It only
// needs to stay valid for the duration of a Build call.
type AssetDescription struct {
	Name string
	Path string
	Data []byte
}

// FileAsset describes an asset whose bytes live in a loose file.
func FileAsset(name, path string) AssetDescription {
	return AssetDescription{Name: name, Path: path}
}

// DataAsset describes an asset whose bytes are already in memory.
func DataAsset(name string, data []byte) AssetDescription {
	return AssetDescription{Name: name, Data: data}
}

// BuilderOption configures the Builder.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	logger *slog.Logger
}

// WithBuilderLogger sets an optional logger for the builder to use for
// progress updates.  If not provided, no logging output will be
// produced.
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(opts *builderOptions) {
		opts.logger = logger
	}
}

// Builder accumulates asset descriptions and lays them out into a
// single archive.  Build once; open the result with OpenFile.
type Builder struct {
	assets map[string]AssetDescription
	logger *slog.Logger
}

func NewBuilder(opts ...BuilderOption) *Builder {
	var options builderOptions
	options.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, opt := range opts {
		opt(&options)
	}
	return &Builder{
		assets: make(map[string]AssetDescription),
		logger: options.logger,
	}
}

// Insert records an asset by its logical name.  Inserting a second
// description under the same name silently replaces the first
// (last-insert-wins); it is not an error.
func (b *Builder) Insert(desc AssetDescription) {
	b.assets[desc.Name] = desc
}

// Len returns the number of distinct asset names inserted so far.
func (b *Builder) Len() int {
	return len(b.assets)
}

type layoutEntry struct {
	desc  AssetDescription
	entry archive.TableEntry
}

// Build lays out and writes the complete archive to out: file header,
// table, zero padding out to a 64-byte boundary, then each payload
// padded to its own 64-byte boundary.  Asset order within the file is
// unspecified (lookup is by id, never by position).
//
// Any failure reading a source file or writing out aborts the build
// and propagates the underlying error; a partially written output is
// the caller's to clean up.
func (b *Builder) Build(out io.Writer) error {
	base := uint64(archive.FileHeaderSize + archive.TableHeaderSize +
		len(b.assets)*archive.TableEntrySize)
	alignedBase := archive.AlignUp(base, archive.AssetAlign)

	layout := make([]layoutEntry, 0, len(b.assets))
	off := alignedBase
	for _, desc := range b.assets {
		size, err := sourceSize(desc)
		if err != nil {
			return fmt.Errorf("asset %q: %w", desc.Name, err)
		}
		id := HashName(desc.Name)
		layout = append(layout, layoutEntry{
			desc:  desc,
			entry: archive.TableEntry{ID: uint64(id), Offset: off, Size: size},
		})
		b.logger.Debug("laid out asset",
			"name", desc.Name, "id", id, "offset", off, "size", size)
		off += archive.AlignUp(size, archive.AssetAlign)
	}

	w := bufio.NewWriterSize(out, defaultBufferSize)

	if _, err := (archive.FileHeader{Magic: archive.Magic}).WriteTo(w); err != nil {
		return fmt.Errorf("file header: %w", err)
	}
	if _, err := (archive.TableHeader{EntryCount: uint64(len(layout))}).WriteTo(w); err != nil {
		return fmt.Errorf("table header: %w", err)
	}
	for _, l := range layout {
		if _, err := l.entry.WriteTo(w); err != nil {
			return fmt.Errorf("table entry for %q: %w", l.desc.Name, err)
		}
	}
	if err := writePadding(w, alignedBase-base); err != nil {
		return err
	}

	for _, l := range layout {
		n, err := copySource(w, l.desc)
		if err != nil {
			return fmt.Errorf("asset %q: %w", l.desc.Name, err)
		}
		if n != l.entry.Size {
			return fmt.Errorf("asset %q: source is %d bytes, expected %d (changed during build?)",
				l.desc.Name, n, l.entry.Size)
		}
		if err := writePadding(w, archive.AlignUp(n, archive.AssetAlign)-n); err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func sourceSize(desc AssetDescription) (uint64, error) {
	if desc.Data != nil {
		return uint64(len(desc.Data)), nil
	}
	stats, err := os.Stat(desc.Path)
	if err != nil {
		return 0, fmt.Errorf("os.Stat(%s): %w", desc.Path, err)
	}
	return uint64(stats.Size()), nil
}

func copySource(w io.Writer, desc AssetDescription) (uint64, error) {
	if desc.Data != nil {
		n, err := w.Write(desc.Data)
		if err != nil {
			return 0, fmt.Errorf("write: %w", err)
		}
		return uint64(n), nil
	}

	f, err := os.Open(desc.Path)
	if err != nil {
		return 0, fmt.Errorf("os.Open(%s): %w", desc.Path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	n, err := io.Copy(w, f)
	if err != nil {
		return 0, fmt.Errorf("io.Copy: %w", err)
	}
	return uint64(n), nil
}

func writePadding(w *bufio.Writer, n uint64) error {
	if n == 0 {
		return nil
	}
	// padding is always less than one alignment unit
	var zeros [archive.AssetAlign]byte
	if _, err := w.Write(zeros[:n]); err != nil {
		return fmt.Errorf("write padding: %w", err)
	}
	return nil
}
