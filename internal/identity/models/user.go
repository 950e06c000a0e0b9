package models

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	id "listly/pkg/domain"
	dErrors "listly/pkg/domain-errors"
)

// User is the identity record behind every list membership.
//
// Invariants:
//   - Email is non-empty, lowercased, and unique across the store
//   - PasswordHash is never serialized to clients
//   - Created after registration, the record is immutable in-scope
type User struct {
	ID           id.UserID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser constructs a User, deriving the avatar from the email.
func NewUser(userID id.UserID, name, email, passwordHash string, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if email == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "password hash is required")
	}
	return &User{
		ID:           userID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		AvatarURL:    GravatarURL(email),
		CreatedAt:    now,
	}, nil
}

// GravatarURL derives the deterministic avatar URL for an email address.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&d=mm"
}
