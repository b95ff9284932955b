package models

import "errors"

// Ошибки доменного уровня. Нижние слои оборачивают их через fmt.Errorf("%s: %w", op, err),
// HTTP и gRPC слои сопоставляют их со статусами через errors.Is.
var (
	// ErrNotFound ресурс не найден или принадлежит другому пользователю.
	ErrNotFound = errors.New("not found")
	// ErrValidation некорректные входные данные.
	ErrValidation = errors.New("validation error")
	// ErrUsernameTaken имя пользователя уже занято.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials неверная пара логин/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken токен просрочен, отозван или подписан чужим ключом.
	ErrInvalidToken = errors.New("invalid token")
	// ErrServiceUnavailable внешний каталог рецептов недоступен.
	ErrServiceUnavailable = errors.New("recipe catalog unavailable")
	// ErrUpstreamFormat внешний каталог вернул ответ неожиданного формата.
	ErrUpstreamFormat = errors.New("recipe catalog returned malformed payload")
)
