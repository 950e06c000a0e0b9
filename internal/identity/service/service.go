package service

import (
	"context"
	"errors"
	"log/slog"

	"listly/internal/activity"
	"listly/internal/identity/models"
	"listly/internal/identity/token"
	"listly/internal/platform/metrics"
	id "listly/pkg/domain"
	dErrors "listly/pkg/domain-errors"
	"listly/pkg/requestcontext"
	"listly/pkg/secrets"
	"listly/pkg/sentinel"
)

// UserStore is the persistence the identity service depends on.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service orchestrates registration, login, and logout.
type Service struct {
	users       UserStore
	tokens      *token.JWTService
	revocations token.RevocationList
	logger      *slog.Logger
	activity    *activity.Publisher
	metrics     *metrics.Metrics
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
func New(users UserStore, tokens *token.JWTService, revocations token.RevocationList, opts ...Option) *Service {
	s := &Service{
		users:       users,
		tokens:      tokens,
		revocations: revocations,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AuthResult carries the token issued on register/login.
type AuthResult struct {
	Token string `json:"token"`
}

// Register creates a user and issues a token. Duplicate emails conflict.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*AuthResult, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := secrets.Hash(req.Password)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user, err := models.NewUser(id.NewUserID(), req.Name, req.Email, hash, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "user already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	signed, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.emit(ctx, user.ID, activity.ActionUserRegistered, user.Email)
	if s.metrics != nil {
		s.metrics.UsersRegistered.Inc()
	}
	return &AuthResult{Token: signed}, nil
}

// Authenticate verifies credentials and issues a token. Unknown email and bad
// password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, req *models.LoginRequest) (*AuthResult, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	if err := secrets.Verify(req.Password, user.PasswordHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}

	signed, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.emit(ctx, user.ID, activity.ActionUserLoggedIn, user.Email)
	if s.metrics != nil {
		s.metrics.Logins.Inc()
	}
	return &AuthResult{Token: signed}, nil
}

// GetUser loads the authenticated user's own record.
func (s *Service) GetUser(ctx context.Context, userID id.UserID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
func (s *Service) Logout(ctx context.Context, userID id.UserID, tokenString string) error {
	jti, err := s.tokens.ExtractJTI(tokenString)
	if err != nil {
		return err
	}
	if s.revocations == nil {
		return nil
	}
	if err := s.revocations.RevokeToken(ctx, jti, s.tokens.TTL()); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
	}
	s.emit(ctx, userID, activity.ActionUserLoggedOut, "")
	return nil
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
