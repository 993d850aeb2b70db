package reconcile

import "errors"

// Sentinel errors returned by the reconciliation engine. Callers should match
// against them with [errors.Is].
var (
	// ErrNoOwner is returned when Reconcile is invoked with a non-positive
	// owner identifier. Nothing is read or written in that case.
	ErrNoOwner = errors.New("no owner id provided")

	// ErrIllegalTransition is returned by [Step] when the requested
	// sync-state transition is not in the legal-transition table.
	ErrIllegalTransition = errors.New("illegal sync state transition")

	// ErrRecordNotFound is the engine-level not-found condition. Store
	// implementations wrap or map their own sentinel onto it so that the
	// engine can keep processing the rest of the batch.
	ErrRecordNotFound = errors.New("record not found")
)

// Reject reasons placed on the outgoing record's reject_reason field.
const (
	// ReasonNeverExisted marks a created-then-deleted record that was never
	// persisted server-side; the client should purge its local-only copy.
	ReasonNeverExisted = "record never existed on the server"

	// ReasonDeleted confirms a hard delete; the server id is now gone and the
	// client should stop tracking it locally.
	ReasonDeleted = "record deleted"

	// ReasonNotFound marks an update or delete that referenced an unknown
	// server id.
	ReasonNotFound = "record not found"
)
