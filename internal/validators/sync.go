// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package validators

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ddanilova/organizer-sync/models"
)

// Field name constants used to specify which fields should be validated.
const (
	// FieldOwnerID targets the owning account identifier of a request.
	FieldOwnerID = "owner_id"

	// FieldChanges targets the list of declared deltas in a sync batch.
	FieldChanges = "changes"

	// FieldPayload targets the entity payload fields (struct tag rules only).
	FieldPayload = "payload"
)

// allowedSyncStates is the exhaustive set of lifecycle codes accepted on the
// wire. Anything outside it is a protocol violation, not a conflict.
var allowedSyncStates = []models.SyncState{
	models.StateClean,
	models.StatePendingCreate,
	models.StatePendingUpdate,
	models.StatePendingDelete,
	models.StateCreateAwaitingAck,
}

// SyncValidator validates synchronization batches for every replicated
// entity type. Struct-tag rules on the payload fields are enforced through
// go-playground/validator; sync metadata rules are checked explicitly.
type SyncValidator struct {
	validate *validator.Validate
}

func NewSyncValidator() Validator {
	return &SyncValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SyncRequest[*models.Account]:
		return validateBatch(ctx, v, value.OwnerID, value.Changes, fields...)
	case *models.SyncRequest[*models.Account]:
		return validateBatch(ctx, v, value.OwnerID, value.Changes, fields...)

	case models.SyncRequest[*models.Category]:
		return validateBatch(ctx, v, value.OwnerID, value.Changes, fields...)
	case *models.SyncRequest[*models.Category]:
		return validateBatch(ctx, v, value.OwnerID, value.Changes, fields...)

	case models.SyncRequest[*models.Reminder]:
		return validateBatch(ctx, v, value.OwnerID, value.Changes, fields...)
	case *models.SyncRequest[*models.Reminder]:
		return validateBatch(ctx, v, value.OwnerID, value.Changes, fields...)

	case models.SyncRequest[*models.Event]:
		return validateBatch(ctx, v, value.OwnerID, value.Changes, fields...)
	case *models.SyncRequest[*models.Event]:
		return validateBatch(ctx, v, value.OwnerID, value.Changes, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateBatch applies the metadata rules to every change of a batch. An
// empty batch (a pull) only needs a valid owner.
func validateBatch[R interface{ Meta() *models.SyncMeta }](ctx context.Context, v *SyncValidator, ownerID int64, changes []R, fields ...string) error {
	scope, err := scopeOf(fields)
	if err != nil {
		return err
	}

	if scope.covers(FieldOwnerID) && ownerID <= 0 {
		return ErrInvalidOwnerID
	}

	if !scope.covers(FieldChanges) && !scope.covers(FieldPayload) {
		return nil
	}

	for i, change := range changes {
		meta := change.Meta()

		if scope.covers(FieldChanges) {
			if !isAllowedSyncState(meta.SyncState) {
				return fmt.Errorf("%w: change %d declares state %d", ErrInvalidSyncState, i, meta.SyncState)
			}
			if meta.LastModified < 0 {
				return fmt.Errorf("%w: change %d", ErrInvalidLastModified, i)
			}
		}

		if scope.covers(FieldPayload) {
			if err := v.validate.StructCtx(ctx, change); err != nil {
				return fmt.Errorf("%w: change %d: %w", ErrInvalidPayload, i, err)
			}
		}
	}

	return nil
}

func isAllowedSyncState(s models.SyncState) bool {
	for _, allowed := range allowedSyncStates {
		if s == allowed {
			return true
		}
	}
	return false
}

// fieldScope restricts validation to a subset of named fields. An empty
// scope covers everything.
type fieldScope map[string]struct{}

func scopeOf(fields []string) (fieldScope, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	scope := make(fieldScope, len(fields))
	for _, f := range fields {
		switch f {
		case FieldOwnerID, FieldChanges, FieldPayload, FieldEmail, FieldPassword, FieldUsername:
			scope[f] = struct{}{}
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
	}
	return scope, nil
}

func (s fieldScope) covers(field string) bool {
	if s == nil {
		return true
	}
	_, ok := s[field]
	return ok
}
