package models

import (
	"strings"
	"time"

	id "listly/pkg/domain"
	dErrors "listly/pkg/domain-errors"
)

// Item is a single to-do entry embedded in a List. Items have no identity or
// lifecycle outside their list.
//
// Order is persisted explicitly and re-derived from array position on every
// structural mutation; it is always zero-based and contiguous.
type Item struct {
	ID            id.ItemID  `json:"id"`
	Text          string     `json:"text"`
	CompletedDate *time.Time `json:"completed_date"`
	DueDate       *time.Time `json:"due_date"`
	CreatedAt     time.Time  `json:"created_at"`
	Order         int        `json:"order"`
}

// Completed reports whether the item has a completion timestamp.
func (i *Item) Completed() bool { return i.CompletedDate != nil }

// List is the aggregate root: metadata, the ordered item sequence, and the
// membership set that gates every operation.
//
// Invariants:
//   - Name is non-empty (uniqueness is the store's concern)
//   - Users has length >= 1 at all times; the last member cannot be removed
//   - Items carry contiguous zero-based Order values
type List struct {
	ID          id.ListID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Users       []id.UserID `json:"users"`
	Items       []Item      `json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewList constructs a list owned solely by the creator, with no items.
func NewList(listID id.ListID, name, description string, owner id.UserID, now time.Time) (*List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "please include a name for list")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeValidation, "list name must be 128 characters or less")
	}
	return &List{
		ID:          listID,
		Name:        name,
		Description: description,
		Users:       []id.UserID{owner},
		Items:       []Item{},
		CreatedAt:   now,
	}, nil
}

// CanAccess reports whether the user is a member of the list. Every
// list-scoped operation checks this before reading or mutating.
func (l *List) CanAccess(userID id.UserID) bool {
	for _, member := range l.Users {
		if member == userID {
			return true
		}
	}
	return false
}

// renumber re-derives each item's Order from its array position. Stable:
// relative order of items is untouched.
func (l *List) renumber() {
	for i := range l.Items {
		l.Items[i].Order = i
	}
}

// SetDescription replaces the description; an absent value clears it.
func (l *List) SetDescription(description string) {
	l.Description = description
}

// AddItem inserts a new item at the front of the sequence and renumbers.
func (l *List) AddItem(itemID id.ItemID, text string, dueDate *time.Time, now time.Time) (*Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "please include to-do item text")
	}
	item := Item{
		ID:        itemID,
		Text:      text,
		DueDate:   dueDate,
		CreatedAt: now,
	}
	l.Items = append([]Item{item}, l.Items...)
	l.renumber()
	return &l.Items[0], nil
}

// findItem resolves an item by id within the current sequence.
func (l *List) findItem(itemID id.ItemID) (*Item, error) {
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			return &l.Items[i], nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "item not found")
}

// UpdateItemText replaces an item's text.
func (l *List) UpdateItemText(itemID id.ItemID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return dErrors.New(dErrors.CodeValidation, "please include to-do text")
	}
	item, err := l.findItem(itemID)
	if err != nil {
		return err
	}
	item.Text = text
	return nil
}

// CompleteItem stamps the completion time. Completing an already-complete
// item is rejected and leaves the timestamp unchanged.
func (l *List) CompleteItem(itemID id.ItemID, now time.Time) error {
	item, err := l.findItem(itemID)
	if err != nil {
		return err
	}
	if item.Completed() {
		return dErrors.New(dErrors.CodeInvalidOperation, "item has already been completed")
	}
	item.CompletedDate = &now
	return nil
}

// IncompleteItem clears the completion timestamp of a completed item.
func (l *List) IncompleteItem(itemID id.ItemID) error {
	item, err := l.findItem(itemID)
	if err != nil {
		return err
	}
	if !item.Completed() {
		return dErrors.New(dErrors.CodeInvalidOperation, "item has not been completed")
	}
	item.CompletedDate = nil
	return nil
}

// SetDueDate sets or replaces an item's due date.
func (l *List) SetDueDate(itemID id.ItemID, dueDate time.Time) error {
	item, err := l.findItem(itemID)
	if err != nil {
		return err
	}
	item.DueDate = &dueDate
	return nil
}

// UnsetDueDate clears a due date; rejected when none is set.
func (l *List) UnsetDueDate(itemID id.ItemID) error {
	item, err := l.findItem(itemID)
	if err != nil {
		return err
	}
	if item.DueDate == nil {
		return dErrors.New(dErrors.CodeInvalidOperation, "item does not have a due date")
	}
	item.DueDate = nil
	return nil
}

// RemoveItem deletes one item and renumbers the remainder, preserving
// relative order.
func (l *List) RemoveItem(itemID id.ItemID) error {
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			l.renumber()
			return nil
		}
	}
	return dErrors.New(dErrors.CodeNotFound, "item not found")
}

// ReorderItems replaces the item sequence wholesale with the caller-supplied
// ordering. This is an authoritative overwrite, not a merge: items present in
// storage but omitted from the new sequence are dropped.
func (l *List) ReorderItems(items []Item) {
	l.Items = items
	if l.Items == nil {
		l.Items = []Item{}
	}
	l.renumber()
}

// AddUser prepends a member. Not idempotent: adding an existing member twice
// duplicates the entry.
func (l *List) AddUser(userID id.UserID) {
	l.Users = append([]id.UserID{userID}, l.Users...)
}

// RemoveUser removes the first matching member. Removal that would empty the
// membership is rejected before the lookup, so a sole member "not in" the
// list still reports the invariant error.
func (l *List) RemoveUser(userID id.UserID) error {
	if len(l.Users) == 1 {
		return dErrors.New(dErrors.CodeInvalidOperation, "a list must have at least 1 user")
	}
	for i, member := range l.Users {
		if member == userID {
			l.Users = append(l.Users[:i], l.Users[i+1:]...)
			return nil
		}
	}
	return dErrors.New(dErrors.CodeNotFound, "user not found in list users")
}
