package models

import (
	"strings"
	"time"

	dErrors "listly/pkg/domain-errors"
)

// CreateListRequest is the payload for POST /api/lists.
type CreateListRequest struct {
	Name string `json:"name"`
	// Description distinguishes omitted (nil -> empty) from explicit empty.
	Description *string `json:"description"`
}

func (r *CreateListRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateListRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeValidation, "request is required")
	}
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "please include a name for list")
	}
	return nil
}

// DescriptionValue returns the description, empty when omitted.
func (r *CreateListRequest) DescriptionValue() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// UpdateDescriptionRequest is the payload for PUT /api/lists/desc/{list_id}.
// A nil Description clears the field, matching the original contract of
// "replace with empty when omitted".
type UpdateDescriptionRequest struct {
	Description *string `json:"description"`
}

func (r *UpdateDescriptionRequest) DescriptionValue() string {
	if r == nil || r.Description == nil {
		return ""
	}
	return *r.Description
}

// AddItemRequest is the payload for POST /api/lists/item/{list_id}.
type AddItemRequest struct {
	Text    string     `json:"text"`
	DueDate *time.Time `json:"due_date"`
}

func (r *AddItemRequest) Normalize() {
	if r == nil {
		return
	}
	r.Text = strings.TrimSpace(r.Text)
}

func (r *AddItemRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeValidation, "request is required")
	}
	if r.Text == "" {
		return dErrors.New(dErrors.CodeValidation, "please include to-do item text")
	}
	return nil
}

// UpdateItemTextRequest is the payload for PUT /api/lists/item/text/....
type UpdateItemTextRequest struct {
	Text string `json:"text"`
}

// SetDueDateRequest is the payload for PUT /api/lists/item/due/....
type SetDueDateRequest struct {
	DueDate *time.Time `json:"due_date"`
}

func (r *SetDueDateRequest) Validate() error {
	if r == nil || r.DueDate == nil {
		return dErrors.New(dErrors.CodeValidation, "enter a valid due date")
	}
	return nil
}

// ReorderRequest is the payload for PUT /api/lists/rearrange/{list_id}.
// The item sequence is authoritative; see List.ReorderItems.
type ReorderRequest struct {
	Items []Item `json:"items"`
}

// AddUserRequest is the payload for POST /api/lists/users/{list_id}.
type AddUserRequest struct {
	Email string `json:"email"`
}

func (r *AddUserRequest) Normalize() {
	if r == nil {
		return
	}
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *AddUserRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeValidation, "request is required")
	}
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "please include an email")
	}
	return nil
}
