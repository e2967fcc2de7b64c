// Copyright 2026 The assetlib Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package assetlib

import (
	"errors"

	"github.com/assetlib/assetlib/internal/archive"
)

var (
	// ErrNotFound is returned when a logical name resolves to nothing:
	// no table entry in a library, or no loose file on disk.
	ErrNotFound = errors.New("asset not found")

	// ErrTruncated means fewer bytes were available than a fixed-size
	// record of the archive format requires.
	ErrTruncated = archive.ErrTruncated

	// ErrInvalidFormat means the archive's magic number is wrong.
	ErrInvalidFormat = archive.ErrInvalidFormat

	// ErrCorruptArchive means a table entry points outside the archive.
	ErrCorruptArchive = archive.ErrCorruptArchive
)
