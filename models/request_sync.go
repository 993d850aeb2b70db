// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package models

// SyncRequest is one synchronization batch for a single entity type.
// Changes may be empty: the client then performs a pull, retrieving records
// the server created or updated on its behalf without resubmitting anything.
type SyncRequest[R any] struct {
	// OwnerID is the owning account's server identifier. It must match the
	// authenticated user; the handler rejects mismatches before the engine runs.
	OwnerID int64 `json:"owner_id"`

	// Changes is the ordered list of client-declared deltas. Order within the
	// batch is caller-defined and preserved in the response.
	Changes []R `json:"changes"`
}

// SyncResponse reports the outcome of one reconciliation call.
//
// Every entry in Acknowledged and Rejected echoes the local_id of the change
// that produced it, so the client can match request and response entries 1:1.
type SyncResponse[R any] struct {
	OwnerID int64 `json:"owner_id"`

	// Acknowledged lists changes the server durably applied and reports back
	// as settled.
	Acknowledged []R `json:"acknowledged"`

	// Rejected lists changes the server did not apply as requested, including
	// "already gone" deletions the client should stop tracking locally.
	Rejected []R `json:"rejected"`

	// SyncedAt is the per-owner watermark recorded for this entity at the end
	// of the call, epoch milliseconds.
	SyncedAt int64 `json:"synced_at"`
}
