package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"listly/internal/identity/models"
	"listly/internal/identity/service"
	"listly/internal/platform/middleware"
	dErrors "listly/pkg/domain-errors"
	"listly/pkg/httputil"
	"listly/pkg/requestcontext"
)

// Handler wires identity endpoints to the identity service.
type Handler struct {
	identity    *service.Service
	logger      *slog.Logger
	validator   middleware.TokenValidator
	revocations middleware.RevocationChecker
}

func New(identity *service.Service, validator middleware.TokenValidator, revocations middleware.RevocationChecker, logger *slog.Logger) *Handler {
	return &Handler{
		identity:    identity,
		logger:      logger,
		validator:   validator,
		revocations: revocations,
	}
}

// Register mounts the identity routes. Registration and login are public;
// the rest require a bearer token.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/users", h.handleRegister)
	r.Post("/api/auth", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.revocations, h.logger))
		r.Get("/api/auth", h.handleGetUser)
		r.Post("/api/auth/logout", h.handleLogout)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.identity.Register(ctx, &req)
	if err != nil {
		h.writeServiceError(w, r, "register failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.identity.Authenticate(ctx, &req)
	if err != nil {
		h.writeServiceError(w, r, "login failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.identity.GetUser(ctx, requestcontext.UserID(ctx))
	if err != nil {
		h.writeServiceError(w, r, "get user failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := h.identity.Logout(ctx, requestcontext.UserID(ctx), token); err != nil {
		h.writeServiceError(w, r, "logout failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError logs internal failures and maps everything onto the
// shared envelope.
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
