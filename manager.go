// Copyright 2026 The assetlib Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package assetlib

// Manager memoizes asset resolution by logical name on top of any
// Resolver.  The wrapped resolver is invoked at most once per distinct
// name for the manager's lifetime; cache hits return the same handle.
// Entries are never evicted.
//
// A Manager is not safe for concurrent use: callers that share one
// across goroutines must serialize Load themselves, or give each
// goroutine its own Manager.
type Manager struct {
	resolver Resolver
	assets   map[string]*Asset
}

func NewManager(r Resolver) *Manager {
	return &Manager{
		resolver: r,
		assets:   make(map[string]*Asset),
	}
}

// Load returns the cached Asset for name, resolving and caching it on
// first use.  Failed resolutions are not cached; a later Load for the
// same name will retry.
func (m *Manager) Load(name string) (*Asset, error) {
	if a, ok := m.assets[name]; ok {
		return a, nil
	}
	a, err := m.resolver.Resolve(name)
	if err != nil {
		return nil, err
	}
	m.assets[name] = a
	return a, nil
}

// Len returns the number of cached assets.
func (m *Manager) Len() int {
	return len(m.assets)
}
