package service

import (
	"context"
	"errors"
	"log/slog"

	"listly/internal/activity"
	identity "listly/internal/identity/models"
	"listly/internal/list/models"
	"listly/internal/platform/metrics"
	id "listly/pkg/domain"
	dErrors "listly/pkg/domain-errors"
	"listly/pkg/requestcontext"
	"listly/pkg/sentinel"
)

// ListStore is the persistence the list service depends on.
type ListStore interface {
	Create(ctx context.Context, list *models.List) error
	FindByID(ctx context.Context, listID id.ListID) (*models.List, error)
	FindByMember(ctx context.Context, userID id.UserID) ([]*models.List, error)
	Update(ctx context.Context, list *models.List) error
	Delete(ctx context.Context, listID id.ListID) error
}

// UserFinder resolves users when sharing lists by email.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*identity.User, error)
}

// Service orchestrates every list and item operation. Each mutation follows
// the same shape: load the aggregate, authorize the caller, apply the
// aggregate method that owns the invariant, persist wholesale, return the
// updated list.
type Service struct {
	lists    ListStore
	users    UserFinder
	logger   *slog.Logger
	activity *activity.Publisher
	metrics  *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithActivity(publisher *activity.Publisher) Option {
	return func(s *Service) { s.activity = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a Service.
func New(lists ListStore, users UserFinder, opts ...Option) *Service {
	s := &Service{lists: lists, users: users, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetLists returns every list the caller belongs to.
func (s *Service) GetLists(ctx context.Context, userID id.UserID) ([]*models.List, error) {
	lists, err := s.lists.FindByMember(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load lists")
	}
	if lists == nil {
		lists = []*models.List{}
	}
	return lists, nil
}

// GetList returns one list, provided the caller is a member.
func (s *Service) GetList(ctx context.Context, userID id.UserID, listID id.ListID) (*models.List, error) {
	return s.load(ctx, userID, listID)
}

// CreateList creates a list owned solely by the caller. Names are globally
// unique; a duplicate conflicts.
func (s *Service) CreateList(ctx context.Context, userID id.UserID, req *models.CreateListRequest) (*models.List, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	list, err := models.NewList(id.NewListID(), req.Name, req.DescriptionValue(), userID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.lists.Create(ctx, list); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "list name already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create list")
	}

	s.emit(ctx, userID, activity.ActionListCreated, list.Name)
	if s.metrics != nil {
		s.metrics.ListsCreated.Inc()
	}
	return list, nil
}

// UpdateDescription replaces the list description (empty when omitted).
func (s *Service) UpdateDescription(ctx context.Context, userID id.UserID, listID id.ListID, req *models.UpdateDescriptionRequest) (*models.List, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "request is required")
	}
	return s.mutate(ctx, userID, listID, activity.ActionListUpdated, func(list *models.List) error {
		list.SetDescription(req.DescriptionValue())
		return nil
	})
}

// ReorderItems replaces the item sequence with the caller-supplied ordering.
// Items omitted from the new sequence are dropped; this is the documented
// authoritative-overwrite contract.
func (s *Service) ReorderItems(ctx context.Context, userID id.UserID, listID id.ListID, req *models.ReorderRequest) (*models.List, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "request is required")
	}
	return s.mutate(ctx, userID, listID, activity.ActionListUpdated, func(list *models.List) error {
		list.ReorderItems(req.Items)
		return nil
	})
}

// DeleteList removes the list and all embedded items.
func (s *Service) DeleteList(ctx context.Context, userID id.UserID, listID id.ListID) error {
	list, err := s.load(ctx, userID, listID)
	if err != nil {
		return err
	}
	if err := s.lists.Delete(ctx, listID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete list")
	}
	s.emit(ctx, userID, activity.ActionListDeleted, list.Name)
	return nil
}

// AddItem inserts a new to-do at the front of the list.
func (s *Service) AddItem(ctx context.Context, userID id.UserID, listID id.ListID, req *models.AddItemRequest) (*models.List, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.mutate(ctx, userID, listID, activity.ActionItemAdded, func(list *models.List) error {
		_, err := list.AddItem(id.NewItemID(), req.Text, req.DueDate, requestcontext.Now(ctx))
		return err
	})
	if err == nil && s.metrics != nil {
		s.metrics.ItemsAdded.Inc()
	}
	return updated, err
}

// UpdateItemText replaces one item's text.
func (s *Service) UpdateItemText(ctx context.Context, userID id.UserID, listID id.ListID, itemID id.ItemID, req *models.UpdateItemTextRequest) (*models.List, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "request is required")
	}
	return s.mutate(ctx, userID, listID, activity.ActionItemUpdated, func(list *models.List) error {
		return list.UpdateItemText(itemID, req.Text)
	})
}

// CompleteItem stamps an item complete at the request time.
func (s *Service) CompleteItem(ctx context.Context, userID id.UserID, listID id.ListID, itemID id.ItemID) (*models.List, error) {
	updated, err := s.mutate(ctx, userID, listID, activity.ActionItemCompleted, func(list *models.List) error {
		return list.CompleteItem(itemID, requestcontext.Now(ctx))
	})
	if err == nil && s.metrics != nil {
		s.metrics.ItemsCompleted.Inc()
	}
	return updated, err
}

// IncompleteItem clears an item's completion timestamp.
func (s *Service) IncompleteItem(ctx context.Context, userID id.UserID, listID id.ListID, itemID id.ItemID) (*models.List, error) {
	return s.mutate(ctx, userID, listID, activity.ActionItemIncompleted, func(list *models.List) error {
		return list.IncompleteItem(itemID)
	})
}

// SetDueDate sets or replaces an item's due date.
func (s *Service) SetDueDate(ctx context.Context, userID id.UserID, listID id.ListID, itemID id.ItemID, req *models.SetDueDateRequest) (*models.List, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, userID, listID, activity.ActionItemUpdated, func(list *models.List) error {
		return list.SetDueDate(itemID, *req.DueDate)
	})
}

// UnsetDueDate clears an item's due date.
func (s *Service) UnsetDueDate(ctx context.Context, userID id.UserID, listID id.ListID, itemID id.ItemID) (*models.List, error) {
	return s.mutate(ctx, userID, listID, activity.ActionItemUpdated, func(list *models.List) error {
		return list.UnsetDueDate(itemID)
	})
}

// RemoveItem deletes one item and renumbers the remainder.
func (s *Service) RemoveItem(ctx context.Context, userID id.UserID, listID id.ListID, itemID id.ItemID) (*models.List, error) {
	return s.mutate(ctx, userID, listID, activity.ActionItemRemoved, func(list *models.List) error {
		return list.RemoveItem(itemID)
	})
}

// AddUserToList shares the list with another registered user, resolved by
// email. The user lookup happens before list authorization, matching the
// API's promised error ordering.
func (s *Service) AddUserToList(ctx context.Context, userID id.UserID, listID id.ListID, req *models.AddUserRequest) (*models.List, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	invited, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	return s.mutate(ctx, userID, listID, activity.ActionListShared, func(list *models.List) error {
		list.AddUser(invited.ID)
		return nil
	})
}

// RemoveUserFromList removes a member. Emptying the membership is rejected.
func (s *Service) RemoveUserFromList(ctx context.Context, userID id.UserID, listID id.ListID, removeID id.UserID) (*models.List, error) {
	return s.mutate(ctx, userID, listID, activity.ActionListUnshared, func(list *models.List) error {
		return list.RemoveUser(removeID)
	})
}

// load fetches a list and authorizes the caller.
func (s *Service) load(ctx context.Context, userID id.UserID, listID id.ListID) (*models.List, error) {
	list, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "list not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load list")
	}
	if !list.CanAccess(userID) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "user is not authorized to perform this action")
	}
	return list, nil
}

// mutate runs the load-authorize-apply-persist cycle shared by every
// list-scoped mutation.
func (s *Service) mutate(ctx context.Context, userID id.UserID, listID id.ListID, action activity.Action, apply func(*models.List) error) (*models.List, error) {
	list, err := s.load(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	if err := apply(list); err != nil {
		return nil, err
	}
	if err := s.lists.Update(ctx, list); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save list")
	}
	s.emit(ctx, userID, action, list.Name)
	return list, nil
}

func (s *Service) emit(ctx context.Context, userID id.UserID, action activity.Action, subject string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Emit(ctx, activity.Event{
		UserID:  userID,
		Action:  action,
		Subject: subject,
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to emit activity event",
			"action", string(action),
			"error", err,
		)
	}
}
