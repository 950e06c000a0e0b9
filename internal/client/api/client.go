// Package api is the typed HTTP client for the list service. Credentials are
// explicit: every authenticated call takes the bearer token as an argument
// rather than reading ambient state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	identity "listly/internal/identity/models"
	list "listly/internal/list/models"
	dErrors "listly/pkg/domain-errors"
)

// Client talks to one server. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type authResponse struct {
	Token string `json:"token"`
}

// Register creates an account and returns the issued bearer token.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/users", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// LoadUser resolves the token's owner.
func (c *Client) LoadUser(ctx context.Context, token string) (*identity.User, error) {
	var user identity.User
	if err := c.do(ctx, http.MethodGet, "/api/auth", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the token server-side.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}

// GetLists fetches every list the token's owner belongs to.
func (c *Client) GetLists(ctx context.Context, token string) ([]*list.List, error) {
	var lists []*list.List
	if err := c.do(ctx, http.MethodGet, "/api/lists", token, nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// GetList fetches one list.
func (c *Client) GetList(ctx context.Context, token, listID string) (*list.List, error) {
	return c.listCall(ctx, http.MethodGet, "/api/lists/"+listID, token, nil)
}

// CreateList creates a list owned by the token's owner.
func (c *Client) CreateList(ctx context.Context, token, name string, description *string) (*list.List, error) {
	return c.listCall(ctx, http.MethodPost, "/api/lists", token, map[string]any{
		"name":        name,
		"description": description,
	})
}

// UpdateDescription replaces or clears the list description.
func (c *Client) UpdateDescription(ctx context.Context, token, listID string, description *string) (*list.List, error) {
	return c.listCall(ctx, http.MethodPut, "/api/lists/desc/"+listID, token, map[string]any{
		"description": description,
	})
}

// Reorder submits a full replacement item ordering.
func (c *Client) Reorder(ctx context.Context, token, listID string, items []list.Item) (*list.List, error) {
	return c.listCall(ctx, http.MethodPut, "/api/lists/rearrange/"+listID, token, map[string]any{
		"items": items,
	})
}

// DeleteList removes the list for every member.
func (c *Client) DeleteList(ctx context.Context, token, listID string) error {
	return c.do(ctx, http.MethodDelete, "/api/lists/"+listID, token, nil, nil)
}

// AddItem prepends a to-do to the list.
func (c *Client) AddItem(ctx context.Context, token, listID, text string, dueDate *time.Time) (*list.List, error) {
	return c.listCall(ctx, http.MethodPost, "/api/lists/item/"+listID, token, map[string]any{
		"text":     text,
		"due_date": dueDate,
	})
}

// UpdateItemText rewrites a to-do's text.
func (c *Client) UpdateItemText(ctx context.Context, token, listID, itemID, text string) (*list.List, error) {
	return c.listCall(ctx, http.MethodPut, "/api/lists/item/text/"+listID+"/"+itemID, token, map[string]any{
		"text": text,
	})
}

// CompleteItem marks a to-do done.
func (c *Client) CompleteItem(ctx context.Context, token, listID, itemID string) (*list.List, error) {
	return c.listCall(ctx, http.MethodPut, "/api/lists/item/complete/"+listID+"/"+itemID, token, nil)
}

// IncompleteItem reopens a completed to-do.
func (c *Client) IncompleteItem(ctx context.Context, token, listID, itemID string) (*list.List, error) {
	return c.listCall(ctx, http.MethodPut, "/api/lists/item/incomplete/"+listID+"/"+itemID, token, nil)
}

// SetDueDate sets or replaces a to-do's due date.
func (c *Client) SetDueDate(ctx context.Context, token, listID, itemID string, dueDate time.Time) (*list.List, error) {
	return c.listCall(ctx, http.MethodPut, "/api/lists/item/due/"+listID+"/"+itemID, token, map[string]any{
		"due_date": dueDate,
	})
}

// UnsetDueDate clears a to-do's due date.
func (c *Client) UnsetDueDate(ctx context.Context, token, listID, itemID string) (*list.List, error) {
	return c.listCall(ctx, http.MethodPut, "/api/lists/item/undue/"+listID+"/"+itemID, token, nil)
}

// RemoveItem deletes a to-do.
func (c *Client) RemoveItem(ctx context.Context, token, listID, itemID string) (*list.List, error) {
	return c.listCall(ctx, http.MethodDelete, "/api/lists/item/"+listID+"/"+itemID, token, nil)
}

// AddUser shares the list with another account by email.
func (c *Client) AddUser(ctx context.Context, token, listID, email string) (*list.List, error) {
	return c.listCall(ctx, http.MethodPost, "/api/lists/users/"+listID, token, map[string]any{
		"email": email,
	})
}

// RemoveUser drops a member from the list.
func (c *Client) RemoveUser(ctx context.Context, token, listID, userID string) (*list.List, error) {
	return c.listCall(ctx, http.MethodDelete, "/api/lists/users/"+listID+"/"+userID, token, nil)
}

func (c *Client) listCall(ctx context.Context, method, path, token string, body any) (*list.List, error) {
	var l list.List
	if err := c.do(ctx, method, path, token, body, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

type errorEnvelope struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "encode request")
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "decode response")
	}
	return nil
}

// decodeError maps the server's error envelope back onto a coded error so
// callers can branch the same way the server did.
func decodeError(resp *http.Response) error {
	var env errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Description == "" {
		return dErrors.New(codeForStatus(resp.StatusCode), fmt.Sprintf("server returned %s", resp.Status))
	}
	return dErrors.New(codeForStatus(resp.StatusCode), env.Description)
}

func codeForStatus(status int) dErrors.Code {
	switch status {
	case http.StatusBadRequest:
		return dErrors.CodeValidation
	case http.StatusUnauthorized:
		return dErrors.CodeUnauthorized
	case http.StatusNotFound:
		return dErrors.CodeNotFound
	default:
		return dErrors.CodeInternal
	}
}
