package service_test

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/repository/inmemory"
	"fintrack/internal/service"
	"fintrack/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService() (*service.AuthService, *auth.JWTManager) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return service.NewAuthService(inmemory.NewUserStore(), jwtManager, zap.NewNop()), jwtManager
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, jwtManager := newAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Alice",
		Email:    "a@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, "a@x.com", resp.Email)
	require.NotEmpty(t, resp.Token)

	claims, err := jwtManager.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, claims.UserID)

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, resp.ID, login.ID)
	assert.NotEmpty(t, login.Token)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	req := dto.RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "secret1"}
	_, err := svc.Register(ctx, &req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Name: "Mallory", Email: "a@x.com", Password: "secret2"})
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Alice",
		Email:    "a@x.com",
		Password: "short",
	})
	var vErr *dto.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	// Wrong password and unknown email answer identically.
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
