package models

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "listly/pkg/domain-errors"
)

var validate = validator.New()

// RegisterRequest is the payload for POST /api/users.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *RegisterRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Follows validation order: Size -> Required -> Syntax.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeValidation, "request is required")
	}
	if len(r.Name) > 128 {
		return dErrors.New(dErrors.CodeValidation, "name must be 128 characters or less")
	}
	if err := validate.Struct(r); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) || len(errs) == 0 {
			return dErrors.New(dErrors.CodeValidation, "invalid request")
		}
		switch errs[0].Field() {
		case "Name":
			return dErrors.New(dErrors.CodeValidation, "name is required")
		case "Email":
			return dErrors.New(dErrors.CodeValidation, "please include a valid email")
		default:
			return dErrors.New(dErrors.CodeValidation, "please enter a password with 6 or more characters")
		}
	}
	return nil
}

// LoginRequest is the payload for POST /api/auth.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	if r == nil {
		return
	}
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeValidation, "request is required")
	}
	if err := validate.Struct(r); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) || len(errs) == 0 {
			return dErrors.New(dErrors.CodeValidation, "invalid request")
		}
		if errs[0].Field() == "Email" {
			return dErrors.New(dErrors.CodeValidation, "please include a valid email")
		}
		return dErrors.New(dErrors.CodeValidation, "please enter a password")
	}
	return nil
}
