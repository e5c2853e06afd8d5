package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ndolgushev/bookstore/internal/client/storage"
	pkgapi "github.com/ndolgushev/bookstore/pkg/api"
)

// ErrAuthenticationFailed сигнализирует о невосстановимой ошибке авторизации:
// сервер вернул 401, refresh не удался, оба токена удалены.
// Вызывающий слой (CLI/UI) по этой ошибке отправляет пользователя на login.
var ErrAuthenticationFailed = errors.New("authentication failed")

// Client представляет HTTP клиент для взаимодействия с сервером.
// Пара токенов инжектируется через storage.TokenStorage, а не читается из
// глобального состояния: у сессии явный жизненный цикл.
type Client struct {
	httpClient *http.Client
	tokens     storage.TokenStorage
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string, tokens storage.TokenStorage) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Get выполняет GET запрос
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, result)
}

// Post выполняет POST запрос с JSON телом
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	data, contentType, err := marshalJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, contentType, data, result)
}

// Put выполняет PUT запрос с JSON телом
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	data, contentType, err := marshalJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, contentType, data, result)
}

// Delete выполняет DELETE запрос
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, nil)
}

// PostMultipart выполняет POST с уже закодированным multipart/form-data телом.
// contentType приходит от multipart.Writer (содержит boundary), клиент его
// не переопределяет; из своих заголовков добавляется только Authorization.
func (c *Client) PostMultipart(ctx context.Context, path, contentType string, body []byte, result any) error {
	return c.do(ctx, http.MethodPost, path, contentType, body, result)
}

// do выполняет HTTP запрос с текущим access token и единственной попыткой
// восстановления после 401: один refresh, один повтор запроса.
// Худший случай — два round trip, бесконечных циклов на невалидном
// токене быть не может.
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte, result any) error {
	resp, sentToken, err := c.send(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && sentToken != "" {
		// Access token протух. Пробуем refresh ровно один раз.
		drain(resp)

		if refreshErr := c.refreshAccessToken(ctx); refreshErr != nil {
			// Невосстановимо: чистим оба токена и сигнализируем наверх
			if delErr := c.tokens.DeleteTokens(ctx); delErr != nil {
				slog.Warn("failed to clear tokens after refresh failure", "error", delErr)
			}
			return fmt.Errorf("token refresh failed: %v: %w", refreshErr, ErrAuthenticationFailed)
		}

		// Повторяем исходный запрос один раз с новым токеном.
		// Результат повтора возвращается как есть, даже если это снова 401.
		resp, _, err = c.send(ctx, method, path, contentType, body)
		if err != nil {
			return err
		}
	}

	defer drain(resp)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp pkgapi.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Text() != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Text())
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// send выполняет один HTTP запрос и возвращает access token, который был
// к нему приложен (пустая строка — запрос ушел анонимно)
func (c *Client) send(ctx context.Context, method, path, contentType string, body []byte) (*http.Response, string, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	token := c.accessToken(ctx)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}

	return resp, token, nil
}

// refreshAccessToken обменивает refresh token на новый access token.
// Без сохраненного refresh token завершается сразу, без сетевого вызова.
// При любой ошибке хранилище не мутируется.
//
// Конкурентные 401 не дедуплицируются: каждый вызов делает свой refresh.
// Сервер refresh token не ротирует, оба полученных access token валидны,
// последняя запись побеждает — это осознанная гонка.
func (c *Client) refreshAccessToken(ctx context.Context) error {
	pair, err := c.tokens.GetTokens(ctx)
	if err != nil {
		return fmt.Errorf("no stored credentials: %w", err)
	}
	if pair.RefreshToken == "" {
		return fmt.Errorf("no refresh token stored")
	}

	data, err := json.Marshal(pkgapi.TokenRefreshRequest{Refresh: pair.RefreshToken})
	if err != nil {
		return fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	// Напрямую через httpClient, не через do: refresh не должен
	// рекурсивно запускать еще один refresh
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/token/refresh/", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	defer drain(resp)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read refresh response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("refresh rejected with status %d", resp.StatusCode)
	}

	var tokenResp pkgapi.TokenRefreshResponse
	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		return fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if tokenResp.Access == "" {
		return fmt.Errorf("refresh response has no access token")
	}

	// Refresh token переиспользуется, заменяется только access
	if err := c.tokens.SetAccessToken(ctx, tokenResp.Access); err != nil {
		return fmt.Errorf("failed to persist access token: %w", err)
	}

	return nil
}

// accessToken возвращает сохраненный access token или пустую строку
func (c *Client) accessToken(ctx context.Context) string {
	pair, err := c.tokens.GetTokens(ctx)
	if err != nil {
		return ""
	}
	return pair.AccessToken
}

func marshalJSON(body any) (data []byte, contentType string, err error) {
	if body == nil {
		return nil, "", nil
	}
	data, err = json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
	}
	return data, "application/json", nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
