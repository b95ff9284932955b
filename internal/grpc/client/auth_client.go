// Package client gRPC клиент сервиса идентификации. Методы повторяют
// контракт локального AuthService, поэтому HTTP слой не различает
// встроенный и удалённый сервис.
package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/magabrotheeeer/meal-planner/internal/grpc/authpb"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// AuthClient клиент auth.AuthService.
type AuthClient struct {
	conn   *grpc.ClientConn
	client authpb.AuthServiceClient
}

// NewAuthClient создаёт клиента. Соединение устанавливается лениво при первом вызове.
func NewAuthClient(addr string, opts ...grpc.DialOption) (*AuthClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc.client.NewAuthClient: %w", err)
	}
	return &AuthClient{conn: conn, client: authpb.NewAuthServiceClient(conn)}, nil
}

// Close закрывает соединение.
func (a *AuthClient) Close() error {
	return a.conn.Close()
}

func pair(resp *authpb.TokenResponse) *models.TokenPair {
	return &models.TokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		ExpiresIn:    resp.ExpiresIn,
	}
}

func (a *AuthClient) Register(ctx context.Context, username, password, fullName string) (string, error) {
	resp, err := a.client.Register(ctx, &authpb.RegisterRequest{
		Username: username,
		Password: password,
		FullName: fullName,
	})
	if err != nil {
		return "", authpb.FromStatus(err)
	}
	return resp.UserUid, nil
}

func (a *AuthClient) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	resp, err := a.client.Login(ctx, &authpb.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, authpb.FromStatus(err)
	}
	return pair(resp), nil
}

func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	resp, err := a.client.Refresh(ctx, &authpb.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, authpb.FromStatus(err)
	}
	return pair(resp), nil
}

func (a *AuthClient) Logout(ctx context.Context, token string) error {
	_, err := a.client.Logout(ctx, &authpb.LogoutRequest{Token: token})
	return authpb.FromStatus(err)
}

func (a *AuthClient) ValidateToken(ctx context.Context, token string) (*models.Identity, error) {
	resp, err := a.client.ValidateToken(ctx, &authpb.ValidateTokenRequest{Token: token})
	if err != nil {
		return nil, authpb.FromStatus(err)
	}
	return &models.Identity{UserUID: resp.UserUid, Username: resp.Username}, nil
}

func (a *AuthClient) DeleteUser(ctx context.Context, userUID string) error {
	_, err := a.client.DeleteUser(ctx, &authpb.DeleteUserRequest{UserUid: userUID})
	return authpb.FromStatus(err)
}

func (a *AuthClient) Profile(ctx context.Context, userUID string) (*models.User, error) {
	resp, err := a.client.Profile(ctx, &authpb.ProfileRequest{UserUid: userUID})
	if err != nil {
		return nil, authpb.FromStatus(err)
	}
	return &models.User{
		UUID:      resp.UserUid,
		Username:  resp.Username,
		FullName:  resp.FullName,
		CreatedAt: resp.CreatedAt,
	}, nil
}
