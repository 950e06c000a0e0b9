package activity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "listly/pkg/domain"
)

// PostgresStore appends events to the activity_events table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema for reference; applied by migrations outside this package:
//
//	CREATE TABLE activity_events (
//	    id UUID PRIMARY KEY,
//	    user_id UUID NOT NULL,
//	    action TEXT NOT NULL,
//	    subject TEXT NOT NULL DEFAULT '',
//	    occurred_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX activity_events_user_idx ON activity_events (user_id, occurred_at);

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	query := `
		INSERT INTO activity_events (id, user_id, action, subject, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		event.UserID.String(),
		string(event.Action),
		event.Subject,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert activity event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]Event, error) {
	query := `
		SELECT user_id, action, subject, occurred_at
		FROM activity_events
		WHERE user_id = $1
		ORDER BY occurred_at
	`
	rows, err := s.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query activity events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var rawUserID, action string
		if err := rows.Scan(&rawUserID, &action, &e.Subject, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan activity event: %w", err)
		}
		userID, err := id.ParseUserID(rawUserID)
		if err != nil {
			return nil, fmt.Errorf("parse user id: %w", err)
		}
		e.UserID = userID
		e.Action = Action(action)
		out = append(out, e)
	}
	return out, rows.Err()
}
