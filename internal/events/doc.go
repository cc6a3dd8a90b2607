// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

// Package events carries domain events (feedback applied, item deprecated,
// item ingested) over an in-process Watermill bus.
//
// Bus implements recommend.EventPublisher: payloads are JSON, message IDs
// are UUIDs, and the request ID travels in metadata. Router subscribes to
// the audit topics and appends every message to the storage audit log with
// retry and panic recovery. Messages that still fail after retries are
// logged and dropped.
package events
