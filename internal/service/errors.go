package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired = errors.New("token is expired")

	ErrOwnerMismatch = errors.New("owner id does not match the authenticated user")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)
