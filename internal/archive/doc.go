// Copyright 2026 The assetlib Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package archive defines the fixed binary layout of an asset library
// file.  All integer fields are little-endian uint64.
//
// A library file looks like:
//
//	┌────────────────────────┐ offset 0
//	│ file header (magic)    │
//	├────────────────────────┤ offset 8
//	│ table header (count N) │
//	├────────────────────────┤ offset 16
//	│ N × table entries      │
//	│   {id, offset, size}   │
//	├────────────────────────┤
//	│ zero padding to 64B    │
//	├────────────────────────┤ aligned base
//	│ asset payload          │
//	│ zero padding to 64B    │
//	├────────────────────────┤
//	│ asset payload          │
//	│ ...                    │
//	└────────────────────────┘
//
// Every payload starts on a 64-byte boundary so that mapped reads of
// an asset never straddle a cache line unnecessarily.  The format has
// no compression and no per-entry checksum; the table is small enough
// to be decoded in full when the archive is opened.
package archive
