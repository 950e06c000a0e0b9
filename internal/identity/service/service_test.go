package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listly/internal/identity/models"
	"listly/internal/identity/store"
	"listly/internal/identity/token"
	id "listly/pkg/domain"
	dErrors "listly/pkg/domain-errors"
)

func newService(t *testing.T) (*Service, *token.JWTService) {
	t.Helper()
	tokens := token.NewJWTService("test-signing-key", "listly-test", time.Hour)
	svc := New(store.NewInMemory(), tokens, token.NewInMemoryRevocationList())
	return svc, tokens
}

func registerReq() *models.RegisterRequest {
	return &models.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter22",
	}
}

func TestRegister(t *testing.T) {
	svc, tokens := newService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := tokens.ValidateToken(result.Token)
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEmpty(t, user.AvatarURL)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	req := registerReq()
	req.Name = "Someone Else"
	_, err = svc.Register(ctx, req)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	assert.Contains(t, err.Error(), "user already exists")
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.RegisterRequest
	}{
		{"missing name", &models.RegisterRequest{Email: "a@b.com", Password: "hunter22"}},
		{"bad email", &models.RegisterRequest{Name: "Ada", Email: "not-an-email", Password: "hunter22"}},
		{"short password", &models.RegisterRequest{Name: "Ada", Email: "a@b.com", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc, tokens := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	result, err := svc.Authenticate(ctx, &models.LoginRequest{
		Email:    "ADA@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err, "email is case-insensitive")

	_, err = tokens.ValidateToken(result.Token)
	assert.NoError(t, err)
}

func TestAuthenticate_UniformFailure(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	// Wrong password and unknown email produce the same message so login
	// cannot be used to probe for accounts.
	_, errWrongPassword := svc.Authenticate(ctx, &models.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	_, errUnknownEmail := svc.Authenticate(ctx, &models.LoginRequest{
		Email:    "ghost@example.com",
		Password: "hunter22",
	})

	assert.True(t, dErrors.HasCode(errWrongPassword, dErrors.CodeUnauthorized))
	assert.True(t, dErrors.HasCode(errUnknownEmail, dErrors.CodeUnauthorized))
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestGetUser_NotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetUser(context.Background(), id.NewUserID())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestLogout_RevokesToken(t *testing.T) {
	ctx := context.Background()
	tokens := token.NewJWTService("test-signing-key", "listly-test", time.Hour)
	revocations := token.NewInMemoryRevocationList()
	svc := New(store.NewInMemory(), tokens, revocations)

	result, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	claims, err := tokens.ValidateToken(result.Token)
	require.NoError(t, err)

	revoked, err := revocations.IsRevoked(ctx, claims.JTI)
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, svc.Logout(ctx, claims.UserID, result.Token))

	revoked, err = revocations.IsRevoked(ctx, claims.JTI)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogout_InvalidToken(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Logout(context.Background(), id.NewUserID(), "not-a-token")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
