package api

import "time"

// Роли пользователей, как их отдает сервер в профиле
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // пароль
}

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Email           string `json:"email"`            // email пользователя
	Username        string `json:"username"`         // локальная часть email (до @)
	FirstName       string `json:"first_name"`       // имя
	LastName        string `json:"last_name"`        // фамилия
	Password        string `json:"password"`         // пароль
	PasswordConfirm string `json:"password_confirm"` // подтверждение пароля
}

// AuthResponse представляет ответ на успешный login/register:
// пара токенов плюс профиль пользователя
type AuthResponse struct {
	Access  string      `json:"access"`  // JWT access token
	Refresh string      `json:"refresh"` // refresh token
	User    UserProfile `json:"user"`    // профиль пользователя
}

// UserProfile представляет профиль пользователя
type UserProfile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`   // "user" или "admin"
	Avatar    string    `json:"avatar"` // URL аватара, может быть пустым
	CreatedAt time.Time `json:"created_at"`
}

// ProfileUpdateRequest представляет запрос на изменение профиля
type ProfileUpdateRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// LogoutRequest инвалидирует refresh token на сервере
type LogoutRequest struct {
	Refresh string `json:"refresh"` // refresh token
}

// TokenRefreshRequest представляет запрос на обновление access token
type TokenRefreshRequest struct {
	Refresh string `json:"refresh"` // refresh token
}

// TokenRefreshResponse представляет ответ с новым access token.
// Refresh token сервером не ротируется и переиспользуется клиентом.
type TokenRefreshResponse struct {
	Access string `json:"access"` // новый JWT access token
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`   // описание ошибки
	Detail  string `json:"detail,omitempty"`  // detail-поле DRF
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// Text возвращает первое непустое поле ошибки
func (e ErrorResponse) Text() string {
	switch {
	case e.Error != "":
		return e.Error
	case e.Detail != "":
		return e.Detail
	default:
		return e.Message
	}
}
