// Package services содержит логику сервиса идентификации: регистрацию, вход,
// обновление и отзыв токенов, проверку токенов и удаление учётной записи.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/magabrotheeeer/meal-planner/internal/lib/jwt"
	"github.com/magabrotheeeer/meal-planner/internal/lib/password"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUser возвращает пользователя по UID или models.ErrNotFound.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// GetUserByUsername возвращает пользователя по имени или models.ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// DeleteUser удаляет пользователя вместе со всеми его данными.
	DeleteUser(ctx context.Context, userUID string) error
}

// TokenStore хранилище отозванных токенов.
type TokenStore interface {
	RevokeToken(ctx context.Context, jti, userUID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// ClaimToken атомарно отзывает jti; false, если он уже был отозван.
	ClaimToken(ctx context.Context, jti, userUID string, ttl time.Duration) (bool, error)
	// RevokeUser отзывает все токены пользователя, выпущенные до этого момента.
	RevokeUser(ctx context.Context, userUID string, ttl time.Duration) error
	UserRevokedAt(ctx context.Context, userUID string) (time.Time, bool, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	tokens   TokenStore
	jwtMaker jwt.Maker
	now      func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, tokens TokenStore, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		jwtMaker: jwtMaker,
		now:      time.Now,
	}
}

// Register создает нового пользователя и возвращает его UID.
func (s *AuthService) Register(ctx context.Context, username, rawPassword, fullName string) (string, error) {
	const op = "services.auth.Register"
	username = strings.TrimSpace(username)
	if username == "" || rawPassword == "" {
		return "", fmt.Errorf("%s: %w: username and password are required", op, models.ErrValidation)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	uid, err := s.users.RegisterUser(ctx, models.User{
		Username:     username,
		PasswordHash: hashed,
		FullName:     strings.TrimSpace(fullName),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// Login проверяет пароль пользователя и выдаёт пару access/refresh токенов.
// Неизвестный пользователь и неверный пароль неразличимы для вызывающего.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*models.TokenPair, error) {
	const op = "services.auth.Login"
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.issuePair(user.UUID, user.Username)
}

// Refresh обменивает refresh токен на новую пару. Старый refresh токен отзывается
// атомарно: повторный или параллельный обмен того же токена отклоняется.
// Токены удалённого пользователя не обмениваются.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "services.auth.Refresh"
	claims, err := s.jwtMaker.ParseTyped(refreshToken, jwt.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, models.ErrInvalidToken, err)
	}
	if err := s.checkUserRevoked(ctx, claims); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.GetUser(ctx, claims.UserUID())
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w: user no longer exists", op, models.ErrInvalidToken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claimed, err := s.tokens.ClaimToken(ctx, claims.ID, claims.UserUID(), claims.Remaining(s.now()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !claimed {
		return nil, fmt.Errorf("%s: %w: token already used", op, models.ErrInvalidToken)
	}
	return s.issuePair(user.UUID, user.Username)
}

// Profile возвращает учётную запись владельца токена.
func (s *AuthService) Profile(ctx context.Context, userUID string) (*models.User, error) {
	const op = "services.auth.Profile"
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Logout отзывает токен любого типа до его естественного истечения.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	const op = "services.auth.Logout"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, models.ErrInvalidToken, err)
	}
	if err := s.tokens.RevokeToken(ctx, claims.ID, claims.UserUID(), claims.Remaining(s.now())); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ValidateToken проверяет access токен и возвращает личность владельца.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.Identity, error) {
	const op = "services.auth.ValidateToken"
	claims, err := s.checkToken(ctx, token, jwt.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.Identity{
		UserUID:  claims.UserUID(),
		Username: claims.Username,
	}, nil
}

// DeleteUser удаляет учётную запись. Данные пользователя удаляются каскадно,
// все ранее выпущенные токены пользователя перестают приниматься.
func (s *AuthService) DeleteUser(ctx context.Context, userUID string) error {
	const op = "services.auth.DeleteUser"
	if err := s.users.DeleteUser(ctx, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.tokens.RevokeUser(ctx, userUID, s.jwtMaker.RefreshTTL()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *AuthService) checkToken(ctx context.Context, token, tokenType string) (*jwt.CustomClaims, error) {
	claims, err := s.jwtMaker.ParseTyped(token, tokenType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}
	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", models.ErrInvalidToken)
	}
	if err := s.checkUserRevoked(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// checkUserRevoked отклоняет токены, выпущенные не позже отзыва всех токенов пользователя.
func (s *AuthService) checkUserRevoked(ctx context.Context, claims *jwt.CustomClaims) error {
	revokedAt, found, err := s.tokens.UserRevokedAt(ctx, claims.UserUID())
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if claims.IssuedAt == nil || !claims.IssuedAt.After(revokedAt) {
		return fmt.Errorf("%w: account revoked", models.ErrInvalidToken)
	}
	return nil
}

func (s *AuthService) issuePair(userUID, username string) (*models.TokenPair, error) {
	const op = "services.auth.issuePair"
	access, _, err := s.jwtMaker.GenerateToken(userUID, username, jwt.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	refresh, _, err := s.jwtMaker.GenerateToken(userUID, username, jwt.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtMaker.AccessTTL().Seconds()),
	}, nil
}
