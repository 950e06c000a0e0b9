package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"listly/internal/list/models"
	"listly/internal/list/service"
	"listly/internal/platform/middleware"
	id "listly/pkg/domain"
	dErrors "listly/pkg/domain-errors"
	"listly/pkg/httputil"
	"listly/pkg/requestcontext"
)

// Handler wires the list API to the list service. Every route is
// authenticated; the service performs the per-list membership check.
type Handler struct {
	lists       *service.Service
	logger      *slog.Logger
	validator   middleware.TokenValidator
	revocations middleware.RevocationChecker
}

func New(lists *service.Service, validator middleware.TokenValidator, revocations middleware.RevocationChecker, logger *slog.Logger) *Handler {
	return &Handler{
		lists:       lists,
		logger:      logger,
		validator:   validator,
		revocations: revocations,
	}
}

// Register mounts the list routes under /api/lists.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.revocations, h.logger))

		r.Get("/api/lists", h.handleGetLists)
		r.Get("/api/lists/{list_id}", h.handleGetList)
		r.Post("/api/lists", h.handleCreateList)
		r.Put("/api/lists/desc/{list_id}", h.handleUpdateDescription)
		r.Put("/api/lists/rearrange/{list_id}", h.handleReorder)
		r.Delete("/api/lists/{list_id}", h.handleDeleteList)

		r.Post("/api/lists/item/{list_id}", h.handleAddItem)
		r.Put("/api/lists/item/text/{list_id}/{item_id}", h.handleUpdateItemText)
		r.Put("/api/lists/item/complete/{list_id}/{item_id}", h.handleCompleteItem)
		r.Put("/api/lists/item/incomplete/{list_id}/{item_id}", h.handleIncompleteItem)
		r.Put("/api/lists/item/due/{list_id}/{item_id}", h.handleSetDueDate)
		r.Put("/api/lists/item/undue/{list_id}/{item_id}", h.handleUnsetDueDate)
		r.Delete("/api/lists/item/{list_id}/{item_id}", h.handleRemoveItem)

		r.Post("/api/lists/users/{list_id}", h.handleAddUser)
		r.Delete("/api/lists/users/{list_id}/{user_id}", h.handleRemoveUser)
	})
}

func (h *Handler) handleGetLists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lists, err := h.lists.GetLists(ctx, requestcontext.UserID(ctx))
	if err != nil {
		h.writeServiceError(w, r, "get lists failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, lists)
}

func (h *Handler) handleGetList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, ok := h.listID(w, r)
	if !ok {
		return
	}
	list, err := h.lists.GetList(ctx, requestcontext.UserID(ctx), listID)
	if err != nil {
		h.writeServiceError(w, r, "get list failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleCreateList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateListRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.lists.CreateList(ctx, requestcontext.UserID(ctx), &req)
	if err != nil {
		h.writeServiceError(w, r, "create list failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleUpdateDescription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, ok := h.listID(w, r)
	if !ok {
		return
	}
	var req models.UpdateDescriptionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.lists.UpdateDescription(ctx, requestcontext.UserID(ctx), listID, &req)
	if err != nil {
		h.writeServiceError(w, r, "update description failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleReorder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, ok := h.listID(w, r)
	if !ok {
		return
	}
	var req models.ReorderRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.lists.ReorderItems(ctx, requestcontext.UserID(ctx), listID, &req)
	if err != nil {
		h.writeServiceError(w, r, "reorder failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, ok := h.listID(w, r)
	if !ok {
		return
	}
	if err := h.lists.DeleteList(ctx, requestcontext.UserID(ctx), listID); err != nil {
		h.writeServiceError(w, r, "delete list failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"msg": "List deleted"})
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, ok := h.listID(w, r)
	if !ok {
		return
	}
	var req models.AddItemRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.lists.AddItem(ctx, requestcontext.UserID(ctx), listID, &req)
	if err != nil {
		h.writeServiceError(w, r, "add item failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleUpdateItemText(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, itemID, ok := h.listItemIDs(w, r)
	if !ok {
		return
	}
	var req models.UpdateItemTextRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.lists.UpdateItemText(ctx, requestcontext.UserID(ctx), listID, itemID, &req)
	if err != nil {
		h.writeServiceError(w, r, "update item text failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleCompleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, itemID, ok := h.listItemIDs(w, r)
	if !ok {
		return
	}
	list, err := h.lists.CompleteItem(ctx, requestcontext.UserID(ctx), listID, itemID)
	if err != nil {
		h.writeServiceError(w, r, "complete item failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleIncompleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, itemID, ok := h.listItemIDs(w, r)
	if !ok {
		return
	}
	list, err := h.lists.IncompleteItem(ctx, requestcontext.UserID(ctx), listID, itemID)
	if err != nil {
		h.writeServiceError(w, r, "incomplete item failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleSetDueDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, itemID, ok := h.listItemIDs(w, r)
	if !ok {
		return
	}
	var req models.SetDueDateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.lists.SetDueDate(ctx, requestcontext.UserID(ctx), listID, itemID, &req)
	if err != nil {
		h.writeServiceError(w, r, "set due date failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleUnsetDueDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, itemID, ok := h.listItemIDs(w, r)
	if !ok {
		return
	}
	list, err := h.lists.UnsetDueDate(ctx, requestcontext.UserID(ctx), listID, itemID)
	if err != nil {
		h.writeServiceError(w, r, "unset due date failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, itemID, ok := h.listItemIDs(w, r)
	if !ok {
		return
	}
	list, err := h.lists.RemoveItem(ctx, requestcontext.UserID(ctx), listID, itemID)
	if err != nil {
		h.writeServiceError(w, r, "remove item failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleAddUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, ok := h.listID(w, r)
	if !ok {
		return
	}
	var req models.AddUserRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.lists.AddUserToList(ctx, requestcontext.UserID(ctx), listID, &req)
	if err != nil {
		h.writeServiceError(w, r, "add user failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleRemoveUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, ok := h.listID(w, r)
	if !ok {
		return
	}
	removeID, err := id.ParseUserID(chi.URLParam(r, "user_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid user id"))
		return
	}
	list, err := h.lists.RemoveUserFromList(ctx, requestcontext.UserID(ctx), listID, removeID)
	if err != nil {
		h.writeServiceError(w, r, "remove user failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) listID(w http.ResponseWriter, r *http.Request) (id.ListID, bool) {
	listID, err := id.ParseListID(chi.URLParam(r, "list_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "list not found"))
		return id.ListID{}, false
	}
	return listID, true
}

func (h *Handler) listItemIDs(w http.ResponseWriter, r *http.Request) (id.ListID, id.ItemID, bool) {
	listID, ok := h.listID(w, r)
	if !ok {
		return id.ListID{}, id.ItemID{}, false
	}
	itemID, err := id.ParseItemID(chi.URLParam(r, "item_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "item not found"))
		return id.ListID{}, id.ItemID{}, false
	}
	return listID, itemID, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}
