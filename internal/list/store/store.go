package store

import (
	"context"

	"listly/internal/list/models"
	id "listly/pkg/domain"
)

// ListStore persists list aggregates as whole documents. Implementations
// return sentinel errors (pkg/sentinel); services translate them.
type ListStore interface {
	// Create persists a new list. Returns sentinel.ErrAlreadyUsed when the
	// name is taken (checked case-insensitively, not constrained; a create
	// race on the SQL store is an accepted gap).
	Create(ctx context.Context, list *models.List) error
	FindByID(ctx context.Context, listID id.ListID) (*models.List, error)
	// FindByMember returns every list the user belongs to, newest first.
	FindByMember(ctx context.Context, userID id.UserID) ([]*models.List, error)
	// Update replaces the stored aggregate wholesale.
	Update(ctx context.Context, list *models.List) error
	Delete(ctx context.Context, listID id.ListID) error
}
