package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidOwnerID      = errors.New("invalid owner ID")
	ErrInvalidSyncState    = errors.New("invalid sync state")
	ErrInvalidLastModified = errors.New("invalid last modified timestamp")
	ErrInvalidPayload      = errors.New("invalid record payload")

	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("password does not meet requirements")
	ErrInvalidUsername = errors.New("invalid username")
)
