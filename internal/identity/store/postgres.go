package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"listly/internal/identity/models"
	id "listly/pkg/domain"
	"listly/pkg/sentinel"
)

// Postgres persists users in the users table. Email uniqueness is enforced by
// a unique index, unlike list names (see list store).
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Schema for reference; applied by migrations outside this package:
//
//	CREATE TABLE users (
//	    id UUID PRIMARY KEY,
//	    name TEXT NOT NULL,
//	    email TEXT NOT NULL UNIQUE,
//	    password_hash TEXT NOT NULL,
//	    avatar_url TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);

func (s *Postgres) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID.String(),
		user.Name,
		strings.ToLower(user.Email),
		user.PasswordHash,
		user.AvatarURL,
		user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, avatar_url, created_at
		FROM users WHERE id = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, userID.String()))
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, avatar_url, created_at
		FROM users WHERE email = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, strings.ToLower(email)))
}

func (s *Postgres) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var rawID string
	err := row.Scan(&rawID, &user.Name, &user.Email, &user.PasswordHash, &user.AvatarURL, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	userID, err := id.ParseUserID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	user.ID = userID
	return &user, nil
}
