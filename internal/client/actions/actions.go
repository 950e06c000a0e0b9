// Package actions bridges the API client and the state store: each action
// performs one server call, then dispatches the success event or translates
// the failure into the matching error event plus an alert.
package actions

import (
	"context"
	"time"

	"listly/internal/client/api"
	"listly/internal/client/state"
	list "listly/internal/list/models"
	dErrors "listly/pkg/domain-errors"
)

type Actions struct {
	api   *api.Client
	store *state.Store
}

func New(apiClient *api.Client, store *state.Store) *Actions {
	return &Actions{api: apiClient, store: store}
}

func (a *Actions) token() string {
	return a.store.Auth().Token
}

// LoadUser resolves the current token into a user. On failure the session is
// torn down so stale tokens never linger.
func (a *Actions) LoadUser(ctx context.Context) error {
	user, err := a.api.LoadUser(ctx, a.token())
	if err != nil {
		a.store.Dispatch(state.AuthErrorEvent{})
		return err
	}
	a.store.Dispatch(state.UserLoadedEvent{User: user})
	return nil
}

// Register creates an account and starts a session.
func (a *Actions) Register(ctx context.Context, name, email, password string) error {
	token, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		a.store.Dispatch(state.RegisterFailEvent{})
		a.store.SetAlert(alertMessage(err), "danger")
		return err
	}
	a.store.Dispatch(state.RegisterSuccessEvent{Token: token})
	return a.LoadUser(ctx)
}

// Login starts a session from credentials.
func (a *Actions) Login(ctx context.Context, email, password string) error {
	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.store.Dispatch(state.LoginFailEvent{})
		a.store.SetAlert(alertMessage(err), "danger")
		return err
	}
	a.store.Dispatch(state.LoginSuccessEvent{Token: token})
	return a.LoadUser(ctx)
}

// Logout revokes the token server-side, then clears local session state even
// if the revocation failed.
func (a *Actions) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx, a.token())
	a.store.Dispatch(state.LogoutEvent{})
	return err
}

// GetLists refreshes the collection view.
func (a *Actions) GetLists(ctx context.Context) error {
	lists, err := a.api.GetLists(ctx, a.token())
	if err != nil {
		return a.listError(err)
	}
	a.store.Dispatch(state.GetListsEvent{Lists: lists})
	return nil
}

// GetList focuses one list.
func (a *Actions) GetList(ctx context.Context, listID string) error {
	l, err := a.api.GetList(ctx, a.token(), listID)
	if err != nil {
		return a.listError(err)
	}
	a.store.Dispatch(state.GetListEvent{List: l})
	return nil
}

// CreateList adds a new list to the front of the collection.
func (a *Actions) CreateList(ctx context.Context, name string, description *string) error {
	l, err := a.api.CreateList(ctx, a.token(), name, description)
	if err != nil {
		return a.listError(err)
	}
	a.store.Dispatch(state.AddListEvent{List: l})
	a.store.SetAlert("List created", "success")
	return nil
}

// UpdateDescription replaces or clears the focused list's description.
func (a *Actions) UpdateDescription(ctx context.Context, listID string, description *string) error {
	l, err := a.api.UpdateDescription(ctx, a.token(), listID, description)
	if err != nil {
		return a.listError(err)
	}
	a.store.Dispatch(state.UpdateListEvent{List: l})
	return nil
}

// Reorder submits a replacement item ordering.
func (a *Actions) Reorder(ctx context.Context, listID string, items []list.Item) error {
	l, err := a.api.Reorder(ctx, a.token(), listID, items)
	if err != nil {
		return a.listError(err)
	}
	a.store.Dispatch(state.UpdateListEvent{List: l})
	return nil
}

// DeleteList removes a list for every member.
func (a *Actions) DeleteList(ctx context.Context, listID string) error {
	if err := a.api.DeleteList(ctx, a.token(), listID); err != nil {
		return a.listError(err)
	}
	a.store.Dispatch(state.DeleteListEvent{ID: listID})
	a.store.SetAlert("List deleted", "success")
	return nil
}

// AddItem prepends a to-do.
func (a *Actions) AddItem(ctx context.Context, listID, text string, dueDate *time.Time) error {
	l, err := a.api.AddItem(ctx, a.token(), listID, text, dueDate)
	if err != nil {
		return a.todoError(err)
	}
	a.store.Dispatch(state.AddTodoEvent{List: l})
	return nil
}

// UpdateItemText rewrites a to-do.
func (a *Actions) UpdateItemText(ctx context.Context, listID, itemID, text string) error {
	l, err := a.api.UpdateItemText(ctx, a.token(), listID, itemID, text)
	if err != nil {
		return a.todoError(err)
	}
	a.store.Dispatch(state.UpdateTodoEvent{List: l})
	return nil
}

// CompleteItem marks a to-do done.
func (a *Actions) CompleteItem(ctx context.Context, listID, itemID string) error {
	l, err := a.api.CompleteItem(ctx, a.token(), listID, itemID)
	if err != nil {
		return a.todoError(err)
	}
	a.store.Dispatch(state.UpdateTodoEvent{List: l})
	return nil
}

// IncompleteItem reopens a to-do.
func (a *Actions) IncompleteItem(ctx context.Context, listID, itemID string) error {
	l, err := a.api.IncompleteItem(ctx, a.token(), listID, itemID)
	if err != nil {
		return a.todoError(err)
	}
	a.store.Dispatch(state.UpdateTodoEvent{List: l})
	return nil
}

// SetDueDate sets a to-do's due date.
func (a *Actions) SetDueDate(ctx context.Context, listID, itemID string, dueDate time.Time) error {
	l, err := a.api.SetDueDate(ctx, a.token(), listID, itemID, dueDate)
	if err != nil {
		return a.todoError(err)
	}
	a.store.Dispatch(state.UpdateTodoEvent{List: l})
	return nil
}

// UnsetDueDate clears a to-do's due date.
func (a *Actions) UnsetDueDate(ctx context.Context, listID, itemID string) error {
	l, err := a.api.UnsetDueDate(ctx, a.token(), listID, itemID)
	if err != nil {
		return a.todoError(err)
	}
	a.store.Dispatch(state.UpdateTodoEvent{List: l})
	return nil
}

// RemoveItem deletes a to-do.
func (a *Actions) RemoveItem(ctx context.Context, listID, itemID string) error {
	l, err := a.api.RemoveItem(ctx, a.token(), listID, itemID)
	if err != nil {
		return a.todoError(err)
	}
	a.store.Dispatch(state.DeleteTodoEvent{List: l})
	return nil
}

// AddUser shares a list by email.
func (a *Actions) AddUser(ctx context.Context, listID, email string) error {
	l, err := a.api.AddUser(ctx, a.token(), listID, email)
	if err != nil {
		return a.listError(err)
	}
	a.store.Dispatch(state.UpdateListEvent{List: l})
	a.store.SetAlert("User added to list", "success")
	return nil
}

// RemoveUser drops a member from a list.
func (a *Actions) RemoveUser(ctx context.Context, listID, userID string) error {
	l, err := a.api.RemoveUser(ctx, a.token(), listID, userID)
	if err != nil {
		return a.listError(err)
	}
	a.store.Dispatch(state.UpdateListEvent{List: l})
	return nil
}

func (a *Actions) listError(err error) error {
	msg := alertMessage(err)
	a.store.Dispatch(state.ListErrorEvent{Err: msg})
	a.store.SetAlert(msg, "danger")
	return err
}

func (a *Actions) todoError(err error) error {
	msg := alertMessage(err)
	a.store.Dispatch(state.TodoErrorEvent{Err: msg})
	a.store.SetAlert(msg, "danger")
	return err
}

// alertMessage prefers the server's client-safe description; internal errors
// carry none.
func alertMessage(err error) string {
	if msg := dErrors.MessageOf(err); msg != "" {
		return msg
	}
	return "something went wrong"
}
