// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package validators

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/ddanilova/organizer-sync/models"
)

const (
	// FieldEmail targets the email address of a credentials request.
	FieldEmail = "email"

	// FieldPassword targets the plaintext password of a credentials request.
	FieldPassword = "password"

	// FieldUsername targets the display name of a credentials request.
	FieldUsername = "username"
)

// MinPasswordLength is the minimum accepted password length for register and
// reset-password requests.
const MinPasswordLength = 8

// UserValidator validates authentication requests: registration, login and
// password reset all travel as [models.User] with a plaintext Password.
type UserValidator struct {
	validate *validator.Validate
}

func NewUserValidator() Validator {
	return &UserValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateUser(ctx context.Context, user models.User, fields ...string) error {
	scope, err := scopeOf(fields)
	if err != nil {
		return err
	}

	if scope.covers(FieldEmail) || scope.covers(FieldUsername) {
		if err := v.validate.StructCtx(ctx, user); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
				switch fieldErrs[0].Field() {
				case "Email":
					return fmt.Errorf("%w: %w", ErrInvalidEmail, err)
				case "Username":
					return fmt.Errorf("%w: %w", ErrInvalidUsername, err)
				}
			}
			return err
		}
	}

	if scope.covers(FieldPassword) {
		if err := checkPasswordStrength(user.Password); err != nil {
			return err
		}
	}

	return nil
}

// checkPasswordStrength enforces the password policy: minimum length, at
// least one letter and at least one digit.
func checkPasswordStrength(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: shorter than %d characters", ErrInvalidPassword, MinPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: must contain at least one letter and one digit", ErrInvalidPassword)
	}

	return nil
}
