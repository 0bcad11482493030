package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/daniil11ru/visla/cli/dashboard/types"
	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
)

// Settings параметры подключения к серверу мониторинга
type Settings struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

// Client REST-клиент сервера мониторинга. Сессия держится в cookie, дополнительно
// может использоваться токен доступа (заголовок Authorization: Bearer).
type Client struct {
	httpClient *resty.Client
	mu         sync.RWMutex
	token      string
}

func NewClient(settings Settings) *Client {
	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(settings.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(settings.RetryCount).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json").
		SetLogger(log.StandardLogger())

	return &Client{httpClient: httpClient}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) request(ctx context.Context) *resty.Request {
	r := c.httpClient.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		r.SetAuthToken(token)
	}
	return r
}

// check переводит ответ сервера в ошибку. На 401 токен сбрасывается.
func (c *Client) check(resp *resty.Response, err error, method, endpoint string) error {
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	if !resp.IsError() {
		return nil
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		log.Warnf("Сервер отклонил запрос %s %s: требуется авторизация", method, endpoint)
		c.SetToken("")
		return ErrUnauthorized
	}
	log.Errorf("Запрос %s %s завершился с кодом %d", method, endpoint, resp.StatusCode())
	return &StatusError{Code: resp.StatusCode(), Body: resp.String()}
}

func (c *Client) get(ctx context.Context, endpoint string, query map[string]string, result interface{}) error {
	resp, err := c.request(ctx).
		SetQueryParams(query).
		SetResult(result).
		Get(endpoint)
	return c.check(resp, err, http.MethodGet, endpoint)
}

// getBatch запрашивает JSON-массив и разбирает его поштучно: испорченная запись
// пропускается и не прерывает загрузку остальных
func getBatch[T any](ctx context.Context, c *Client, endpoint string, query map[string]string) ([]T, error) {
	resp, err := c.request(ctx).
		SetQueryParams(query).
		Get(endpoint)
	if err = c.check(resp, err, http.MethodGet, endpoint); err != nil {
		return nil, err
	}

	records, skipped, err := types.DecodeBatch[T](resp.Body())
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	if skipped > 0 {
		log.WithField("skipped", skipped).Warnf("GET %s: пропущены некорректные записи", endpoint)
	}
	return records, nil
}

// Login вход по логину и паролю
func (c *Client) Login(ctx context.Context, email, password string) (types.User, error) {
	return c.login(ctx, map[string]string{"email": email, "password": password}, true)
}

// LoginWithCode вход с одноразовым кодом TOTP
func (c *Client) LoginWithCode(ctx context.Context, email, password, code string) (types.User, error) {
	return c.login(ctx, map[string]string{"email": email, "password": password, "code": code}, false)
}

func (c *Client) login(ctx context.Context, form map[string]string, detectTOTP bool) (types.User, error) {
	var user types.User
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&user).
		Post("/api/session")
	if err != nil {
		return types.User{}, fmt.Errorf("POST /api/session: %w", err)
	}
	if resp.IsError() {
		if detectTOTP && resp.StatusCode() == http.StatusUnauthorized && resp.Header().Get("WWW-Authenticate") == "TOTP" {
			return types.User{}, ErrTOTPRequired
		}
		log.Warnf("Вход пользователя %s отклонён сервером (код %d)", form["email"], resp.StatusCode())
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// LoginWithToken вход по токену доступа. При успехе токен используется в последующих запросах.
func (c *Client) LoginWithToken(ctx context.Context, token string) (types.User, error) {
	var user types.User
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("token", token).
		SetResult(&user).
		Get("/api/session")
	if err != nil {
		return types.User{}, fmt.Errorf("GET /api/session: %w", err)
	}
	if resp.IsError() {
		log.Warnf("Вход по токену отклонён сервером (код %d)", resp.StatusCode())
		return types.User{}, ErrInvalidCredentials
	}
	c.SetToken(token)
	return user, nil
}

// Session текущий пользователь сессии
func (c *Client) Session(ctx context.Context) (types.User, error) {
	var user types.User
	if err := c.get(ctx, "/api/session", nil, &user); err != nil {
		return types.User{}, err
	}
	return user, nil
}

// Logout завершение сессии. Токен сбрасывается независимо от ответа сервера.
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetToken("")
	resp, err := c.request(ctx).Delete("/api/session")
	if err != nil {
		return fmt.Errorf("DELETE /api/session: %w", err)
	}
	if resp.IsError() && resp.StatusCode() != http.StatusUnauthorized {
		return &StatusError{Code: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

func (c *Client) Server(ctx context.Context) (types.ServerInfo, error) {
	var server types.ServerInfo
	if err := c.get(ctx, "/api/server", nil, &server); err != nil {
		return types.ServerInfo{}, err
	}
	return server, nil
}

func (c *Client) Devices(ctx context.Context) ([]types.Device, error) {
	return getBatch[types.Device](ctx, c, "/api/devices", nil)
}

func (c *Client) DeleteDevice(ctx context.Context, id int64) error {
	endpoint := "/api/devices/" + strconv.FormatInt(id, 10)
	resp, err := c.request(ctx).Delete(endpoint)
	return c.check(resp, err, http.MethodDelete, endpoint)
}

// LatestPositions последние координаты всех устройств или одного, если deviceID задан
func (c *Client) LatestPositions(ctx context.Context, deviceID *int64) ([]types.Position, error) {
	query := map[string]string{}
	if deviceID != nil && *deviceID > 0 {
		query["deviceId"] = strconv.FormatInt(*deviceID, 10)
	}

	return getBatch[types.Position](ctx, c, "/api/positions", query)
}

func (c *Client) Groups(ctx context.Context) ([]types.Group, error) {
	return getBatch[types.Group](ctx, c, "/api/groups", nil)
}

func (c *Client) Geofences(ctx context.Context) ([]types.Geofence, error) {
	return getBatch[types.Geofence](ctx, c, "/api/geofences", nil)
}

// EventsQuery параметры отчёта о событиях
type EventsQuery struct {
	DeviceID int64
	From     time.Time
	To       time.Time
	Type     string
}

// Events отчёт о событиях устройства за период
func (c *Client) Events(ctx context.Context, q EventsQuery) ([]types.Event, error) {
	query := map[string]string{
		"deviceId": strconv.FormatInt(q.DeviceID, 10),
		"from":     q.From.UTC().Format(time.RFC3339),
		"to":       q.To.UTC().Format(time.RFC3339),
	}
	if q.Type != "" {
		query["type"] = q.Type
	}

	return getBatch[types.Event](ctx, c, "/api/reports/events", query)
}
