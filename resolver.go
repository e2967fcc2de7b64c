// Copyright 2026 The assetlib Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package assetlib

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/assetlib/assetlib/internal/mmap"
)

// A Resolver turns a logical name into an Asset.  The two variants are
// FileResolver (each name is a loose file on disk) and Library (names
// are looked up in a packed archive); Manager composes over either
// uniformly.
type Resolver interface {
	Resolve(name string) (*Asset, error)
}

// FileResolver resolves each logical name as a loose file, mapped
// whole into memory.  If Root is non-empty, names are interpreted
// relative to it; otherwise a name is used as a path directly.
type FileResolver struct {
	Root string
}

var _ Resolver = (*FileResolver)(nil)

// Resolve maps the named file and returns it as a single Asset.  A
// name with no corresponding file fails with ErrNotFound; other I/O
// failures propagate as-is.
func (r *FileResolver) Resolve(name string) (*Asset, error) {
	path := filepath.FromSlash(name)
	if r.Root != "" {
		path = filepath.Join(r.Root, path)
	}

	m, err := mmap.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("mmap.Open(%s): %w", path, err)
	}

	data := m.Data()
	return &Asset{
		name: name,
		off:  0,
		size: uint64(len(data)),
		src:  newSource(data, m.Close),
	}, nil
}
