// Package jwt реализует выпуск и разбор JWT токенов сессии.
//
// Maker выпускает пары access/refresh токенов и проверяет их подпись,
// срок действия и тип. Отзыв токенов хранится вне пакета (см. internal/cache).
package jwt

import (
	"time"
)

// Типы токенов, записываемые в claim "type".
const (
	AccessToken  = "access"
	RefreshToken = "refresh"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken выпускает токен заданного типа для пользователя.
	GenerateToken(userUID, username, tokenType string) (string, *CustomClaims, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
	// ParseTyped как ParseToken, но дополнительно сверяет тип токена.
	ParseTyped(tokenStr, tokenType string) (*CustomClaims, error)
	// AccessTTL время жизни access токена.
	AccessTTL() time.Duration
	// RefreshTTL время жизни refresh токена.
	RefreshTTL() time.Duration
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и отдельных TTL для access и refresh токенов.
type MakerImpl struct {
	secretKey  string        // Секретный ключ для подписи токенов.
	accessTTL  time.Duration // Время жизни access токена.
	refreshTTL time.Duration // Время жизни refresh токена.
	now        func() time.Time
}

// NewJWTMaker создаёт новый экземпляр MakerImpl.
func NewJWTMaker(secretKey string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// AccessTTL возвращает время жизни access токена.
func (j *MakerImpl) AccessTTL() time.Duration {
	return j.accessTTL
}

// RefreshTTL возвращает время жизни refresh токена.
func (j *MakerImpl) RefreshTTL() time.Duration {
	return j.refreshTTL
}

func (j *MakerImpl) ttl(tokenType string) time.Duration {
	if tokenType == RefreshToken {
		return j.refreshTTL
	}
	return j.accessTTL
}
