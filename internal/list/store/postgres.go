package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"listly/internal/list/models"
	id "listly/pkg/domain"
	"listly/pkg/sentinel"
)

// Postgres persists each list aggregate as one JSONB document, keeping the
// document-store semantics of the contract: load whole aggregate, mutate in
// memory, replace wholesale. Name and membership are mirrored into columns
// only for lookups.
//
// Name uniqueness is checked with a query rather than a constraint, so a
// concurrent create race can slip through; this mirrors the documented
// contract and is accepted.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Schema for reference; applied by migrations outside this package:
//
//	CREATE TABLE lists (
//	    id UUID PRIMARY KEY,
//	    name TEXT NOT NULL,
//	    member_ids UUID[] NOT NULL,
//	    doc JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX lists_member_idx ON lists USING GIN (member_ids);

func memberIDs(list *models.List) []string {
	out := make([]string, len(list.Users))
	for i, u := range list.Users {
		out[i] = u.String()
	}
	return out
}

func (s *Postgres) Create(ctx context.Context, list *models.List) error {
	var taken bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM lists WHERE lower(name) = lower($1))`,
		list.Name,
	).Scan(&taken)
	if err != nil {
		return fmt.Errorf("check list name: %w", err)
	}
	if taken {
		return sentinel.ErrAlreadyUsed
	}

	doc, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal list: %w", err)
	}

	query := `
		INSERT INTO lists (id, name, member_ids, doc, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.db.ExecContext(ctx, query,
		list.ID.String(),
		list.Name,
		pq.Array(memberIDs(list)),
		doc,
		list.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert list: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, listID id.ListID) (*models.List, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM lists WHERE id = $1`, listID.String(),
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query list: %w", err)
	}
	return unmarshalList(doc)
}

func (s *Postgres) FindByMember(ctx context.Context, userID id.UserID) ([]*models.List, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM lists WHERE $1 = ANY(member_ids) ORDER BY created_at DESC`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query lists by member: %w", err)
	}
	defer rows.Close()

	var out []*models.List
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		list, err := unmarshalList(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, list)
	}
	return out, rows.Err()
}

func (s *Postgres) Update(ctx context.Context, list *models.List) error {
	doc, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal list: %w", err)
	}

	query := `
		UPDATE lists SET name = $2, member_ids = $3, doc = $4 WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		list.ID.String(),
		list.Name,
		pq.Array(memberIDs(list)),
		doc,
	)
	if err != nil {
		return fmt.Errorf("update list: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update list rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, listID id.ListID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, listID.String())
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete list rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func unmarshalList(doc []byte) (*models.List, error) {
	var list models.List
	if err := json.Unmarshal(doc, &list); err != nil {
		return nil, fmt.Errorf("unmarshal list doc: %w", err)
	}
	return &list, nil
}
