// Package server реализует gRPC-сервер для сервиса идентификации.
//
// AuthServer обрабатывает gRPC-запросы регистрации, входа, обновления и отзыва
// токенов, валидации JWT и удаления учётной записи. Логирует операции и ошибки,
// делегирует бизнес-логику AuthService.
package server

import (
	"context"
	"log/slog"

	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/magabrotheeeer/meal-planner/internal/grpc/authpb"
	"github.com/magabrotheeeer/meal-planner/internal/lib/sl"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// AuthService бизнес-логика идентификации.
type AuthService interface {
	Register(ctx context.Context, username, password, fullName string) (string, error)
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*models.Identity, error)
	DeleteUser(ctx context.Context, userUID string) error
	Profile(ctx context.Context, userUID string) (*models.User, error)
}

// AuthServer реализует gRPC-сервис авторизации
type AuthServer struct {
	authService AuthService
	log         *slog.Logger
}

var _ authpb.AuthServiceServer = (*AuthServer)(nil)

// NewAuthServer создает новый экземпляр AuthServer с указанным сервисом аутентификации и логгером.
func NewAuthServer(authService AuthService, logger *slog.Logger) *AuthServer {
	return &AuthServer{
		authService: authService,
		log:         logger,
	}
}

func tokenResponse(pair *models.TokenPair) *authpb.TokenResponse {
	return &authpb.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
	}
}

// Register создает нового пользователя
func (s *AuthServer) Register(ctx context.Context, req *authpb.RegisterRequest) (*authpb.RegisterResponse, error) {
	log := s.log.With(sl.Op("grpc.auth.Register"), slog.String("username", req.Username))

	uid, err := s.authService.Register(ctx, req.Username, req.Password, req.FullName)
	if err != nil {
		log.Error("register failed", sl.Err(err))
		return nil, authpb.ToStatus(err)
	}
	log.Info("user registered", slog.String("user_uid", uid))
	return &authpb.RegisterResponse{UserUid: uid}, nil
}

// Login проверяет пользователя и выдаёт пару токенов
func (s *AuthServer) Login(ctx context.Context, req *authpb.LoginRequest) (*authpb.TokenResponse, error) {
	log := s.log.With(sl.Op("grpc.auth.Login"), slog.String("username", req.Username))

	pair, err := s.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		log.Warn("login failed", sl.Err(err))
		return nil, authpb.ToStatus(err)
	}
	return tokenResponse(pair), nil
}

// Refresh обменивает refresh токен на новую пару
func (s *AuthServer) Refresh(ctx context.Context, req *authpb.RefreshRequest) (*authpb.TokenResponse, error) {
	pair, err := s.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		s.log.Warn("refresh failed", sl.Op("grpc.auth.Refresh"), sl.Err(err))
		return nil, authpb.ToStatus(err)
	}
	return tokenResponse(pair), nil
}

// Logout отзывает токен
func (s *AuthServer) Logout(ctx context.Context, req *authpb.LogoutRequest) (*emptypb.Empty, error) {
	if err := s.authService.Logout(ctx, req.Token); err != nil {
		s.log.Warn("logout failed", sl.Op("grpc.auth.Logout"), sl.Err(err))
		return nil, authpb.ToStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// ValidateToken проверяет валидность JWT и возвращает данные пользователя
func (s *AuthServer) ValidateToken(ctx context.Context, req *authpb.ValidateTokenRequest) (*authpb.ValidateTokenResponse, error) {
	identity, err := s.authService.ValidateToken(ctx, req.Token)
	if err != nil {
		s.log.Debug("invalid token", sl.Op("grpc.auth.ValidateToken"), sl.Err(err))
		return nil, authpb.ToStatus(err)
	}
	return &authpb.ValidateTokenResponse{
		UserUid:  identity.UserUID,
		Username: identity.Username,
	}, nil
}

// DeleteUser удаляет учётную запись вместе с данными
func (s *AuthServer) DeleteUser(ctx context.Context, req *authpb.DeleteUserRequest) (*emptypb.Empty, error) {
	log := s.log.With(sl.Op("grpc.auth.DeleteUser"), slog.String("user_uid", req.UserUid))

	if err := s.authService.DeleteUser(ctx, req.UserUid); err != nil {
		log.Error("delete user failed", sl.Err(err))
		return nil, authpb.ToStatus(err)
	}
	log.Info("user deleted")
	return &emptypb.Empty{}, nil
}

// Profile возвращает учётную запись пользователя
func (s *AuthServer) Profile(ctx context.Context, req *authpb.ProfileRequest) (*authpb.ProfileResponse, error) {
	user, err := s.authService.Profile(ctx, req.UserUid)
	if err != nil {
		s.log.Warn("profile failed", sl.Op("grpc.auth.Profile"), slog.String("user_uid", req.UserUid), sl.Err(err))
		return nil, authpb.ToStatus(err)
	}
	return &authpb.ProfileResponse{
		UserUid:   user.UUID,
		Username:  user.Username,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}, nil
}
