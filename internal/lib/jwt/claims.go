package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrWrongTokenType токен корректен, но предъявлен не по назначению.
var ErrWrongTokenType = errors.New("wrong token type")

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
// Subject содержит UID пользователя, ID уникальный идентификатор токена (jti).
type CustomClaims struct {
	Username             string `json:"username"` // Имя пользователя
	TokenType            string `json:"type"`     // access или refresh
	jwt.RegisteredClaims        // Стандартные claims (sub, jti, iat, exp)
}

// UserUID возвращает идентификатор владельца токена.
func (c *CustomClaims) UserUID() string {
	return c.Subject
}

// Remaining сколько осталось жить токену на момент now.
func (c *CustomClaims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

// GenerateToken создает подписанный HS256 токен заданного типа.
func (j *MakerImpl) GenerateToken(userUID, username, tokenType string) (string, *CustomClaims, error) {
	const op = "jwt.GenerateToken"
	now := j.now()
	claims := &CustomClaims{
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl(tokenType))),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return signed, claims, nil
}

// ParseToken парсит JWT токен, проверяет алгоритм, подпись и срок действия.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, fmt.Errorf("%s: token without subject or id", op)
	}
	return claims, nil
}

// ParseTyped дополнительно проверяет тип токена.
func (j *MakerImpl) ParseTyped(tokenStr, tokenType string) (*CustomClaims, error) {
	claims, err := j.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("jwt.ParseTyped: %w: want %s, got %s", ErrWrongTokenType, tokenType, claims.TokenType)
	}
	return claims, nil
}
