// Copyright 2026 The assetlib Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package assetlib

import (
	"fmt"

	"github.com/dgryski/go-farm"
)

// An AssetID identifies an asset within a library.  It is derived from
// the asset's logical name at build time, and lookups re-derive it from
// the name at read time.
type AssetID uint64

// HashName maps a logical name to its AssetID using a 64-bit
// non-cryptographic hash (farmhash).  The same name always maps to the
// same id, but distinct names are not guaranteed distinct ids: with
// very large asset counts the birthday bound makes collisions a real
// possibility, and avoiding them is the archive builder's (human)
// responsibility.  Do not rely on this hash for anything
// security-sensitive.
func HashName(name string) AssetID {
	return AssetID(farm.Hash64([]byte(name)))
}

func (id AssetID) String() string {
	return fmt.Sprintf("0x%016x", uint64(id))
}
