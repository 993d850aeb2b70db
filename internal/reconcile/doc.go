// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

// Package reconcile implements the multi-entity synchronization protocol:
// merging a batch of client-declared changes (creates, edits, deletes made
// while offline) with the authoritative store, resolving conflicting
// concurrent edits last-write-wins by timestamp, and serving pull requests
// that return previously dirty records and close their sync cycle.
//
// The package is generic over the entity payload. Account, category,
// reminder and event reconciliation all run through the same [Engine],
// parameterized by the [Store] capability interface; only the storage
// descriptors differ per entity.
package reconcile
