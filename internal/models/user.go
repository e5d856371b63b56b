// Package models содержит доменные структуры приложения: пользователей,
// торговые стратегии и подписки между ними. Структуры используются
// в бизнес-логике и при работе с хранилищем.
package models

import "time"

// Role — закрытое перечисление ролей пользователя.
type Role string

const (
	// RoleUser — обычный пользователь, роль по умолчанию при регистрации.
	RoleUser Role = "user"
	// RoleAdmin — администратор, имеет доступ к управлению пользователями.
	RoleAdmin Role = "admin"
)

// Valid проверяет, что роль принадлежит известному множеству значений.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// UserStatus — статус учетной записи. Сейчас используется только active,
// остальные значения зарезервированы.
type UserStatus string

// StatusActive — активная учетная запись.
const StatusActive UserStatus = "active"

// User представляет зарегистрированного пользователя системы.
// PasswordHash никогда не попадает в JSON-ответы.
type User struct {
	ID               int        `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Role             Role       `json:"role"`
	RegistrationDate time.Time  `json:"registration_date"`
	LastLogin        time.Time  `json:"last_login"`
	Status           UserStatus `json:"status"`
}

// UserPreferences хранит настройки пользователя. Записи создаются только
// служебно (при первичном наполнении базы) и удаляются каскадно вместе
// с пользователем.
type UserPreferences struct {
	UserID               int             `json:"user_id"`
	AssetPreferences     []string        `json:"asset_preferences"`
	RiskTolerance        Risk            `json:"risk_tolerance"`
	NotificationSettings map[string]bool `json:"notification_settings"`
}
