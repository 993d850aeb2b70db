package reconcile

import "github.com/ddanilova/organizer-sync/models"

// Resolve decides between an incoming client change and the record currently
// stored under the same server id. The unit of resolution is the whole
// record; fields are never merged individually.
//
// Tie-break rule: last-write-wins by the last_modified timestamp.
//
//   - incoming strictly newer: the client's change is authoritative and is
//     applied as declared.
//   - incoming not newer (stale, including equal timestamps): the stored
//     record wins; the returned record carries the stored payload and the
//     stored timestamp, so newer server data is never overwritten by an
//     older client view.
//
// In both cases the declared create/update ambiguity is resolved by the same
// deterministic table: because the record already exists server-side, both
// dirty codes (PendingCreate, PendingUpdate) are reassigned to PendingUpdate
// before the state machine executes. Any other declared state passes through
// unchanged.
//
// The returned record is the one to persist; it always carries the stored
// record's server id and owner id and the incoming change's local id. The
// second return value reports whether the incoming change was stale.
func Resolve[R Record](incoming, stored R) (R, bool) {
	in := incoming.Meta()
	st := stored.Meta()

	if in.LastModified > st.LastModified {
		in.SyncState = remapDirty(in.SyncState)
		in.ServerID = st.ServerID
		in.OwnerID = st.OwnerID
		return incoming, false
	}

	st.LocalID = in.LocalID
	st.SyncState = remapDirty(in.SyncState)
	return stored, true
}

// remapDirty is the documented flip table for the create/update ambiguity:
// against an existing server id a create intent degrades to an update intent,
// and an update intent stays one. States outside the ambiguous pair are kept.
func remapDirty(s models.SyncState) models.SyncState {
	switch s {
	case models.StatePendingCreate, models.StatePendingUpdate:
		return models.StatePendingUpdate
	default:
		return s
	}
}
