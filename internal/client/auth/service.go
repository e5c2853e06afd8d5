package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ndolgushev/bookstore/internal/client/api"
	"github.com/ndolgushev/bookstore/internal/client/storage"
	"github.com/ndolgushev/bookstore/internal/validation"
	pkgapi "github.com/ndolgushev/bookstore/pkg/api"
)

// ErrNotAuthenticated означает, что операция требует активной сессии,
// а сохраненных токенов нет
var ErrNotAuthenticated = errors.New("not authenticated")

// Session представляет личность текущего пользователя, восстановленную
// из профиля. Не персистится: пересоздается по токенам при каждом запуске.
type Session struct {
	ID    int64
	Email string
	Name  string
	Role  string
}

// IsAdmin сообщает, есть ли у сессии админская роль.
// Только для UX: настоящую проверку прав делает сервер.
func (s *Session) IsAdmin() bool {
	return s.Role == pkgapi.RoleAdmin
}

// RegisterData содержит данные формы регистрации
type RegisterData struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// Service предоставляет функции авторизации: login/register/logout и
// восстановление сессии по сохраненным токенам
type Service struct {
	apiClient *api.Client
	tokens    storage.TokenStorage
}

// NewService создает новый сервис авторизации
func NewService(apiClient *api.Client, tokens storage.TokenStorage) *Service {
	return &Service{
		apiClient: apiClient,
		tokens:    tokens,
	}
}

// Login выполняет аутентификацию и сохраняет пару токенов
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := s.saveTokens(ctx, resp); err != nil {
		return nil, err
	}

	return sessionFromProfile(&resp.User), nil
}

// Register регистрирует нового пользователя и сохраняет пару токенов.
// Username — локальная часть email, имя делится на first/last по пробелу.
func (s *Service) Register(ctx context.Context, data RegisterData) (*Session, error) {
	if err := validation.ValidateEmail(data.Email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(data.Password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}
	if data.Password != data.PasswordConfirm {
		return nil, fmt.Errorf("passwords do not match")
	}

	firstName, lastName := splitName(data.Name)
	username, _, _ := strings.Cut(data.Email, "@")

	resp, err := s.apiClient.Register(ctx, pkgapi.RegisterRequest{
		Email:           data.Email,
		Username:        username,
		FirstName:       firstName,
		LastName:        lastName,
		Password:        data.Password,
		PasswordConfirm: data.PasswordConfirm,
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	if err := s.saveTokens(ctx, resp); err != nil {
		return nil, err
	}

	return sessionFromProfile(&resp.User), nil
}

// Logout выполняет выход из системы.
// Сервер уведомляется best effort; локальные токены удаляются всегда.
func (s *Service) Logout(ctx context.Context) error {
	pair, err := s.tokens.GetTokens(ctx)
	if err != nil {
		slog.Debug("no stored credentials during logout", "error", err)
	} else if pair.RefreshToken != "" {
		if logoutErr := s.apiClient.Logout(ctx, pair.RefreshToken); logoutErr != nil {
			// Не прерываем процесс, если сервер недоступен
			slog.Warn("failed to logout on server", "error", logoutErr)
		}
	}

	if err := s.tokens.DeleteTokens(ctx); err != nil {
		return fmt.Errorf("failed to delete local tokens: %w", err)
	}

	return nil
}

// CurrentSession восстанавливает сессию: читает токены и запрашивает профиль.
// Без сохраненных токенов возвращает ErrNotAuthenticated, не ходя в сеть.
func (s *Service) CurrentSession(ctx context.Context) (*Session, error) {
	if _, err := s.tokens.GetTokens(ctx); err != nil {
		if errors.Is(err, storage.ErrTokensNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to read stored tokens: %w", err)
	}

	profile, err := s.apiClient.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return sessionFromProfile(profile), nil
}

// IsAuthenticated проверяет наличие сохраненной сессии.
// Истекший access token не делает сессию неактивной: его обновит
// refresh-and-retry в API клиенте.
func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	pair, err := s.tokens.GetTokens(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrTokensNotFound) {
			return false, nil
		}
		return false, err
	}
	return pair.AccessToken != "" || pair.RefreshToken != "", nil
}

// TokenExpiry возвращает exp сохраненного access token.
// Подпись не проверяется — это работа сервера, клиенту нужен только срок
// для отображения статуса.
func (s *Service) TokenExpiry(ctx context.Context) (time.Time, error) {
	pair, err := s.tokens.GetTokens(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read stored tokens: %w", err)
	}
	if pair.AccessToken == "" {
		return time.Time{}, fmt.Errorf("no access token stored")
	}

	token, _, err := jwt.NewParser().ParseUnverified(pair.AccessToken, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse access token: %w", err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("access token has no expiry claim")
	}

	return exp.Time, nil
}

func (s *Service) saveTokens(ctx context.Context, resp *pkgapi.AuthResponse) error {
	pair := &storage.TokenPair{
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
	}
	if err := s.tokens.SaveTokens(ctx, pair); err != nil {
		return fmt.Errorf("failed to save tokens: %w", err)
	}
	return nil
}

func sessionFromProfile(profile *pkgapi.UserProfile) *Session {
	name := strings.TrimSpace(profile.FirstName + " " + profile.LastName)
	return &Session{
		ID:    profile.ID,
		Email: profile.Email,
		Name:  name,
		Role:  profile.Role,
	}
}

// splitName делит отображаемое имя на first/last по первому пробелу
func splitName(name string) (first, last string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
