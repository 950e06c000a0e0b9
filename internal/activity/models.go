// Package activity records an append-only trail of domain events. Services
// emit events on successful mutations; a background worker persists them and
// fans out to an optional Kafka sink.
package activity

import (
	"time"

	id "listly/pkg/domain"
)

// Action names a domain event.
type Action string

const (
	ActionUserRegistered Action = "user.registered"
	ActionUserLoggedIn   Action = "user.logged_in"
	ActionUserLoggedOut  Action = "user.logged_out"

	ActionListCreated     Action = "list.created"
	ActionListUpdated     Action = "list.updated"
	ActionListDeleted     Action = "list.deleted"
	ActionListShared      Action = "list.shared"
	ActionListUnshared    Action = "list.unshared"
	ActionItemAdded       Action = "item.added"
	ActionItemUpdated     Action = "item.updated"
	ActionItemCompleted   Action = "item.completed"
	ActionItemIncompleted Action = "item.incompleted"
	ActionItemRemoved     Action = "item.removed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    id.UserID `json:"user_id"`
	Action    Action    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
}
