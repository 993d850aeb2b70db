// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned when the Authorization header
	// is missing from the request.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the Authorization header
	// is present but does not follow the `Bearer <token>` form.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the Authorization header carries the
	// Bearer scheme with no token after it.
	ErrEmptyToken = errors.New("token is empty")
)
