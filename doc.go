// Copyright 2026 The assetlib Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package assetlib packs many named files into one read-optimized
// archive and resolves any of them by name with near-zero parsing
// cost.
//
// At build time a Builder collects AssetDescriptions (a logical name
// plus bytes in memory or a loose file on disk) and lays them out
// behind a small fixed table, every payload aligned to a 64-byte
// boundary.  At run time OpenFile memory-maps the archive, decodes the
// table once, and Find/Resolve return slices straight into the mapping
// without copying.
//
// Names are keyed by a 64-bit non-cryptographic hash (see HashName for
// the collision caveat), so lookups cost one hash plus one map probe
// no matter how the archive was laid out.
//
// The Resolver interface abstracts over where assets come from: a
// Library resolves from its archive, a FileResolver resolves loose
// files during development, and a Manager memoizes either.
package assetlib
