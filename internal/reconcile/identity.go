package reconcile

// RestoreIdentity returns the outgoing record with the client's local id
// restored. Server-side storage never keeps local ids, so every record
// produced from a store read carries a zero local id until this runs;
// restoring it guarantees the client can match each response entry to the
// request entry that produced it.
func RestoreIdentity[R Record](localID int64, outgoing R) R {
	meta := outgoing.Meta()
	meta.LocalID = localID
	meta.RejectReason = ""
	return outgoing
}
