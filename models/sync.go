// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package models

// SyncState is the per-record synchronization lifecycle code carried on the
// wire as a small integer. State 0 means the record has no pending obligations
// on either side; every other state marks a delta the other side has not yet
// confirmed.
type SyncState int

const (
	// StateClean marks a fully settled record: both sides agree on its
	// content and no acknowledgment is outstanding.
	StateClean SyncState = 0

	// StatePendingCreate marks a record created client-side that has never
	// been durably persisted on the server (no server id yet).
	StatePendingCreate SyncState = 1

	// StatePendingUpdate marks a record whose fields were edited and the
	// edit has not been confirmed by the other side.
	StatePendingUpdate SyncState = 2

	// StatePendingDelete marks a record scheduled for removal; once the
	// server performs the hard delete the record ceases to exist.
	StatePendingDelete SyncState = 3

	// StateCreateAwaitingAck marks a record the server has just persisted on
	// behalf of a client. It is cleared to StateClean when the client's next
	// pull confirms receipt.
	StateCreateAwaitingAck SyncState = 4
)

// String returns the human-readable name of the state for logs and errors.
func (s SyncState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StatePendingCreate:
		return "pending_create"
	case StatePendingUpdate:
		return "pending_update"
	case StatePendingDelete:
		return "pending_delete"
	case StateCreateAwaitingAck:
		return "create_awaiting_ack"
	default:
		return "unknown"
	}
}

// Dirty reports whether the record still has an unconfirmed delta.
func (s SyncState) Dirty() bool {
	return s != StateClean
}

// SyncMeta carries the synchronization metadata shared by every replicated
// entity (account, category, reminder, event). It is embedded into each
// entity model so its fields serialize flat on the wire, matching the
// request/response shape the offline-first client expects.
type SyncMeta struct {
	// LocalID is assigned by the client and opaque to the server. It is never
	// persisted server-side; it exists only so the client can match a
	// response entry back to the request entry that produced it.
	LocalID int64 `json:"local_id"`

	// ServerID is assigned by the server at first successful creation and
	// never changes afterwards. Absent (nil) iff the record has never been
	// durably created on the server.
	ServerID *int64 `json:"server_id"`

	// OwnerID is the owning account's server identifier, used to scope pull
	// queries and enforce per-owner isolation.
	OwnerID int64 `json:"owner_id"`

	// LastModified is the epoch-millisecond timestamp of the most recent
	// mutation known to whichever side produced the record.
	LastModified int64 `json:"last_modified"`

	// SyncState is the record's lifecycle code, see [SyncState].
	SyncState SyncState `json:"sync_state"`

	// Deleted is the soft-delete flag carried on the wire. A change against
	// a known server id with Deleted set triggers a server-side hard delete.
	Deleted bool `json:"is_deleted"`

	// RejectReason explains why a change landed in the rejected list.
	// Output-only; ignored on incoming changes.
	RejectReason string `json:"reject_reason,omitempty"`
}

// Meta returns the embedded sync metadata. Entity models promote this method,
// which lets the reconciliation engine operate on any of them generically.
func (m *SyncMeta) Meta() *SyncMeta {
	return m
}

// HasServerID reports whether the record has ever been persisted server-side.
func (m *SyncMeta) HasServerID() bool {
	return m.ServerID != nil && *m.ServerID > 0
}
