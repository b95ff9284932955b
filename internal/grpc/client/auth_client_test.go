package client_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/magabrotheeeer/meal-planner/internal/grpc/authpb"
	"github.com/magabrotheeeer/meal-planner/internal/grpc/client"
	"github.com/magabrotheeeer/meal-planner/internal/grpc/server"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// MockAuthService - мок для AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password, fullName string) (string, error) {
	args := m.Called(ctx, username, password, fullName)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenPair), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenPair), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*models.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

func (m *MockAuthService) DeleteUser(ctx context.Context, userUID string) error {
	return m.Called(ctx, userUID).Error(0)
}

func (m *MockAuthService) Profile(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func startServer(t *testing.T, svc server.AuthService) *client.AuthClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	authpb.RegisterAuthServiceServer(srv, server.NewAuthServer(svc, slog.New(slog.NewTextHandler(io.Discard, nil))))
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	c, err := client.NewAuthClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestAuthClient_RoundTrip(t *testing.T) {
	svc := new(MockAuthService)
	c := startServer(t, svc)
	ctx := context.Background()
	tokens := &models.TokenPair{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900}

	svc.On("Register", mock.Anything, "chef", "secret", "Gordon").Return("uid-1", nil).Once()
	svc.On("Login", mock.Anything, "chef", "secret").Return(tokens, nil).Once()
	svc.On("Refresh", mock.Anything, "r").Return(tokens, nil).Once()
	svc.On("ValidateToken", mock.Anything, "a").Return(&models.Identity{UserUID: "uid-1", Username: "chef"}, nil).Once()
	svc.On("Logout", mock.Anything, "a").Return(nil).Once()
	svc.On("DeleteUser", mock.Anything, "uid-1").Return(nil).Once()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.On("Profile", mock.Anything, "uid-1").
		Return(&models.User{UUID: "uid-1", Username: "chef", FullName: "Gordon", CreatedAt: created, PasswordHash: "hash"}, nil).Once()

	uid, err := c.Register(ctx, "chef", "secret", "Gordon")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)

	got, err := c.Login(ctx, "chef", "secret")
	require.NoError(t, err)
	assert.Equal(t, tokens, got)

	got, err = c.Refresh(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, "a", got.AccessToken)

	identity, err := c.ValidateToken(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, &models.Identity{UserUID: "uid-1", Username: "chef"}, identity)

	profile, err := c.Profile(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Gordon", profile.FullName)
	assert.True(t, created.Equal(profile.CreatedAt))
	assert.Empty(t, profile.PasswordHash)

	require.NoError(t, c.Logout(ctx, "a"))
	require.NoError(t, c.DeleteUser(ctx, "uid-1"))
	svc.AssertExpectations(t)
}

func TestAuthClient_ErrorMapping(t *testing.T) {
	svc := new(MockAuthService)
	c := startServer(t, svc)
	ctx := context.Background()

	svc.On("Register", mock.Anything, "chef", "secret", "").Return("", models.ErrUsernameTaken).Once()
	svc.On("Login", mock.Anything, "chef", "wrong").Return(nil, models.ErrInvalidCredentials).Once()
	svc.On("ValidateToken", mock.Anything, "expired").Return(nil, models.ErrInvalidToken).Once()
	svc.On("DeleteUser", mock.Anything, "ghost").Return(models.ErrNotFound).Once()
	svc.On("Profile", mock.Anything, "ghost").Return(nil, models.ErrNotFound).Once()
	svc.On("Logout", mock.Anything, "x").Return(errors.New("redis: connection refused")).Once()

	_, err := c.Register(ctx, "chef", "secret", "")
	assert.True(t, errors.Is(err, models.ErrUsernameTaken))

	_, err = c.Login(ctx, "chef", "wrong")
	assert.True(t, errors.Is(err, models.ErrInvalidCredentials))

	_, err = c.ValidateToken(ctx, "expired")
	assert.True(t, errors.Is(err, models.ErrInvalidToken))

	assert.True(t, errors.Is(c.DeleteUser(ctx, "ghost"), models.ErrNotFound))

	_, err = c.Profile(ctx, "ghost")
	assert.True(t, errors.Is(err, models.ErrNotFound))

	err = c.Logout(ctx, "x")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "redis")
}
