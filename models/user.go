package models

import "time"

// User is the authentication principal stored in the "users" table.
// PasswordHash never leaves the server; Password is accepted on the wire for
// register/login/reset requests only and is cleared after hashing.
type User struct {
	UserID       int64     `json:"user_id"`
	Email        string    `json:"email" validate:"required,email,max=64"`
	Username     string    `json:"username" validate:"max=32"`
	Password     string    `json:"password,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
}
