// Package state is the client-side projection: pure reducers folding tagged
// events over immutable slice snapshots, plus a small dispatcher that owns
// the two sanctioned side effects (token persistence, alert expiry timers).
package state

import (
	identity "listly/internal/identity/models"
	list "listly/internal/list/models"
)

// Event is the tagged union folded by the reducers. Each concrete type is
// one event kind; reducers switch on the dynamic type and return the state
// unchanged for kinds they do not know.
type Event interface {
	isEvent()
}

// Alert events.
type (
	// SetAlertEvent appends one alert. The dispatcher generates the id and
	// schedules removal; the reducer only appends.
	SetAlertEvent struct{ Alert Alert }
	// RemoveAlertEvent filters one alert out by id.
	RemoveAlertEvent struct{ ID string }
)

// Auth events.
type (
	UserLoadedEvent      struct{ User *identity.User }
	LoginSuccessEvent    struct{ Token string }
	RegisterSuccessEvent struct{ Token string }
	LoginFailEvent       struct{}
	RegisterFailEvent    struct{}
	AuthErrorEvent       struct{}
	LogoutEvent          struct{}
)

// List events.
type (
	GetListsEvent   struct{ Lists []*list.List }
	GetListEvent    struct{ List *list.List }
	AddListEvent    struct{ List *list.List }
	DeleteListEvent struct{ ID string }
	UpdateListEvent struct{ List *list.List }
	AddTodoEvent    struct{ List *list.List }
	UpdateTodoEvent struct{ List *list.List }
	DeleteTodoEvent struct{ List *list.List }
	ListErrorEvent  struct{ Err string }
	TodoErrorEvent  struct{ Err string }
)

func (SetAlertEvent) isEvent()    {}
func (RemoveAlertEvent) isEvent() {}

func (UserLoadedEvent) isEvent()      {}
func (LoginSuccessEvent) isEvent()    {}
func (RegisterSuccessEvent) isEvent() {}
func (LoginFailEvent) isEvent()       {}
func (RegisterFailEvent) isEvent()    {}
func (AuthErrorEvent) isEvent()       {}
func (LogoutEvent) isEvent()          {}

func (GetListsEvent) isEvent()   {}
func (GetListEvent) isEvent()    {}
func (AddListEvent) isEvent()    {}
func (DeleteListEvent) isEvent() {}
func (UpdateListEvent) isEvent() {}
func (AddTodoEvent) isEvent()    {}
func (UpdateTodoEvent) isEvent() {}
func (DeleteTodoEvent) isEvent() {}
func (ListErrorEvent) isEvent()  {}
func (TodoErrorEvent) isEvent()  {}
