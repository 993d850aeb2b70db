// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

// Package validators provides input validation for sync batches and
// authentication requests, decoupled from the transport and storage layers.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//
// Implementations are injected into services; transport handlers never
// validate payloads themselves.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
