// Copyright 2026 The assetlib Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package assetlib

import (
	"sync/atomic"
)

// source is a shared, immutable backing buffer -- either a standalone
// mapping of one loose file, or a library's mapping of the whole
// archive.  It is reference counted: the library and every Asset
// resolved from it hold one reference each, and the close function
// (typically an munmap) runs when the last reference is released.
type source struct {
	refs    atomic.Int64
	data    []byte
	closeFn func() error
}

func newSource(data []byte, closeFn func() error) *source {
	s := &source{data: data, closeFn: closeFn}
	s.refs.Store(1)
	return s
}

func (s *source) acquire() *source {
	if s.refs.Add(1) <= 1 {
		panic("invariant broken: acquire of a released source")
	}
	return s
}

func (s *source) release() error {
	n := s.refs.Add(-1)
	if n < 0 {
		panic("invariant broken: release of a released source")
	}
	if n > 0 || s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// An Asset is a resolved, read-only view of one logical asset: a name
// plus an offset/size window into a shared source.  Its bytes stay
// valid until the Asset (and every other holder of the same source,
// such as the Library it came from) has been released.
type Asset struct {
	name     string
	off      uint64
	size     uint64
	src      *source
	released atomic.Bool
}

// Name returns the asset's logical name.
func (a *Asset) Name() string {
	return a.name
}

// Bytes returns the asset's contents without copying.  SAFETY: the
// slice aliases the shared source; only read it, and not after Release.
func (a *Asset) Bytes() []byte {
	return a.src.data[a.off : a.off+a.size]
}

func (a *Asset) Len() int {
	return int(a.size)
}

// Release drops this Asset's reference on the shared source,
// unmapping it if this was the last reference.  Release is idempotent.
func (a *Asset) Release() error {
	if a.released.Swap(true) {
		return nil
	}
	return a.src.release()
}
