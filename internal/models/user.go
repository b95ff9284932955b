// Package models содержит доменные сущности сервиса планирования питания:
// пользователей, рецепты, планы питания, отзывы, а также общие ошибки.
// Структуры используются в бизнес‑логике, при работе с хранилищем и в HTTP ответах.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID         string    // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	FullName     string    // Отображаемое имя
	PasswordHash string    // Хэш пароля пользователя
	CreatedAt    time.Time // Дата регистрации
}

// Identity проверенная личность владельца токена.
// Остальные компоненты получают только её и не разбирают токен сами.
type Identity struct {
	UserUID  string `json:"user_uid"`
	Username string `json:"username"`
}

// TokenPair пара токенов, выдаваемая при входе и обновлении сессии.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
