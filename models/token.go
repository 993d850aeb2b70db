package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT access token with convenience accessors for the auth
// flows. It embeds [jwt.Token] for signing/parsing and [jwt.RegisteredClaims]
// for standard claim access, so it can be passed directly to
// jwt.ParseWithClaims as the claims target.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard claim set (sub, exp, iat, iss).
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token, ready to
	// be sent in an Authorization header.
	SignedString string `json:"access_token"`

	// TokenType is always "bearer"; kept on the response body so clients can
	// construct the Authorization header without guessing.
	TokenType string `json:"token_type,omitempty"`

	// UserID is the owner identifier extracted from the "sub" claim. Internal
	// server-side cache, not serialized.
	UserID int64 `json:"-"`
}

// GetUserID parses the token's "sub" claim as a base-10 int64 user id.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting user id from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting user id from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
