package store

import (
	"context"

	"listly/internal/identity/models"
	id "listly/pkg/domain"
)

// UserStore persists user records. Implementations return sentinel errors
// (pkg/sentinel) for factual failures; services translate them.
type UserStore interface {
	// Create persists a new user. Returns sentinel.ErrAlreadyUsed when the
	// email is taken.
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
