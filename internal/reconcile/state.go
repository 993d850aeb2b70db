package reconcile

import "github.com/ddanilova/organizer-sync/models"

// transition is one edge of the sync-state machine.
type transition struct {
	from, to models.SyncState
}

// legalTransitions is the exhaustive set of state changes a reconciliation
// call may apply to a record. Deletion has no target state: the record is
// destroyed, so it never appears here.
//
//   - PendingCreate → CreateAwaitingAck: the server persisted the record and
//     allocated its server id.
//   - CreateAwaitingAck → Clean: the record was handed back to the client
//     (eager acknowledgment; idempotent on re-delivery since the payload is
//     unchanged).
//   - PendingUpdate → Clean: the server applied the update and echoed the
//     record back as acknowledged.
//   - Clean → PendingUpdate: a server-side edit (another device, plain CRUD)
//     marked the record dirty for the next pull.
var legalTransitions = map[transition]struct{}{
	{models.StatePendingCreate, models.StateCreateAwaitingAck}: {},
	{models.StateCreateAwaitingAck, models.StateClean}:         {},
	{models.StatePendingUpdate, models.StateClean}:             {},
	{models.StateClean, models.StatePendingUpdate}:             {},
}

// Step validates one sync-state transition against the legal-transition
// table. A transition to the same state is a no-op and always allowed.
// Returns [ErrIllegalTransition] otherwise. Transitions are applied at most
// once per reconciliation call; the engine validates each one before writing
// the new state.
func Step(from, to models.SyncState) error {
	if from == to {
		return nil
	}
	if _, ok := legalTransitions[transition{from, to}]; !ok {
		return ErrIllegalTransition
	}
	return nil
}
