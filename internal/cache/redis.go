// Package cache хранит в Redis отозванные JWT токены и отметки об удалённых учётных записях.
// Рецепты внешнего каталога здесь не кэшируются: каждый запрос идёт в каталог.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/meal-planner/internal/config"
)

const (
	blacklistPrefix   = "blacklist:"
	revokedUserPrefix = "revoked_user:"
)

// Cache обёртка над клиентом Redis.
type Cache struct {
	Db *redis.Client
}

// Revocation запись об отзыве токена.
type Revocation struct {
	UserUID   string    `json:"user_uid"`
	RevokedAt time.Time `json:"revoked_at"`
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// Get читает JSON значение по ключу. Отсутствие ключа не ошибка.
func (c *Cache) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "cache.Get"
	val, err := c.Db.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err = json.Unmarshal([]byte(val), result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет значение в JSON с временем жизни expiration.
func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	const op = "cache.Set"
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = c.Db.Set(ctx, key, jsonData, expiration).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RevokeToken заносит jti в чёрный список до естественного истечения токена.
// Для уже истёкших токенов ничего не делает.
func (c *Cache) RevokeToken(ctx context.Context, jti, userUID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.Set(ctx, blacklistPrefix+jti, Revocation{
		UserUID:   userUID,
		RevokedAt: time.Now().UTC(),
	}, ttl)
}

// ClaimToken атомарно заносит jti в чёрный список. Возвращает false, если jti
// уже был отозван: из двух одновременных обменов одного refresh токена проходит один.
func (c *Cache) ClaimToken(ctx context.Context, jti, userUID string, ttl time.Duration) (bool, error) {
	const op = "cache.ClaimToken"
	if ttl <= 0 {
		return false, nil
	}
	jsonData, err := json.Marshal(Revocation{
		UserUID:   userUID,
		RevokedAt: time.Now().UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	ok, err := c.Db.SetNX(ctx, blacklistPrefix+jti, jsonData, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

// RevokeUser отзывает все токены пользователя, выпущенные до текущего момента.
// ttl должен быть не меньше времени жизни самого долгого токена.
func (c *Cache) RevokeUser(ctx context.Context, userUID string, ttl time.Duration) error {
	return c.Set(ctx, revokedUserPrefix+userUID, Revocation{
		UserUID:   userUID,
		RevokedAt: time.Now().UTC(),
	}, ttl)
}

// UserRevokedAt возвращает момент отзыва всех токенов пользователя.
func (c *Cache) UserRevokedAt(ctx context.Context, userUID string) (time.Time, bool, error) {
	var rev Revocation
	found, err := c.Get(ctx, revokedUserPrefix+userUID, &rev)
	if err != nil || !found {
		return time.Time{}, false, err
	}
	return rev.RevokedAt, true, nil
}

// IsRevoked проверяет, находится ли jti в чёрном списке.
func (c *Cache) IsRevoked(ctx context.Context, jti string) (bool, error) {
	const op = "cache.IsRevoked"
	n, err := c.Db.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

// Ping проверяет доступность Redis.
func (c *Cache) Ping(ctx context.Context) error {
	return c.Db.Ping(ctx).Err()
}

// Close закрывает соединение.
func (c *Cache) Close() error {
	return c.Db.Close()
}
