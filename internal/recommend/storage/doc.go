// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

// Package storage persists catalog items, preference profiles and audit
// records behind a small key-value interface.
//
// # Key Spaces
//
//	item:<id>                      catalog items (JSON)
//	profile:<user>                 preference profiles (JSON)
//	audit:<unix-nano>:<uuid>       domain event audit trail (JSON)
//
// # Backends
//
// BadgerKV stores data in BadgerDB and is used in production. MemoryKV keeps
// everything in a map and is used by tests and when no storage path is
// configured.
//
// # Thread Safety
//
// All backends and the Repository are safe for concurrent use.
package storage
