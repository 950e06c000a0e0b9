// Package domain holds typed identifiers shared across verticals. Wrapping
// uuid.UUID keeps a user id from being handed to a function expecting a list
// id, at zero runtime cost.
package domain

import "github.com/google/uuid"

// UserID identifies a registered user.
type UserID uuid.UUID

// ListID identifies a list aggregate.
type ListID uuid.UUID

// ItemID identifies a to-do item embedded in a list.
type ItemID uuid.UUID

// NewUserID returns a fresh random user id.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewListID returns a fresh random list id.
func NewListID() ListID { return ListID(uuid.New()) }

// NewItemID returns a fresh random item id.
func NewItemID() ItemID { return ItemID(uuid.New()) }

// ParseUserID parses a user id from its string form.
func ParseUserID(s string) (UserID, error) {
	u, err := uuid.Parse(s)
	return UserID(u), err
}

// ParseListID parses a list id from its string form.
func ParseListID(s string) (ListID, error) {
	u, err := uuid.Parse(s)
	return ListID(u), err
}

// ParseItemID parses an item id from its string form.
func ParseItemID(s string) (ItemID, error) {
	u, err := uuid.Parse(s)
	return ItemID(u), err
}

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id ListID) String() string { return uuid.UUID(id).String() }
func (id ItemID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the id is the zero value.
func (id UserID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ListID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ItemID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id ListID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id ItemID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = UserID(u)
	return nil
}

func (id *ListID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = ListID(u)
	return nil
}

func (id *ItemID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = ItemID(u)
	return nil
}
