package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amezghal/careergate/internal/notifications"
	"github.com/amezghal/careergate/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

// Credentials carries a login attempt to the backend.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPayload mirrors the user record the backend returns on login.
type UserPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// AuthResult is the backend's login envelope. Status false is a logical
// failure (wrong credentials, disabled account) carrying a display message,
// not a transport error.
type AuthResult struct {
	Status  bool        `json:"status"`
	Token   string      `json:"token"`
	User    UserPayload `json:"user"`
	Message string      `json:"message"`
}

// RegisterInput carries a registration request to the backend.
type RegisterInput struct {
	Role                 string `json:"role"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	CompanyName          string `json:"company_name,omitempty"`
}

// RegisterResult is the backend's registration envelope.
type RegisterResult struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// Config bundles client construction parameters.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is a thin REST client for the job portal backend that owns all
// business rules and persistence. The gateway only brokers auth and
// notification traffic through it.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient validates the base URL and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("upstream: base url is required")
	}

	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("upstream: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("upstream: unsupported scheme %q", base.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
	}, nil
}

// BaseURL exposes the configured backend address, mainly for the proxy.
func (c *Client) BaseURL() *url.URL {
	cpy := *c.base
	return &cpy
}

// Ping checks that the backend answers HTTP at all. Any response counts as
// reachable; only transport failures report an error.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/", "", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream: ping: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Login submits credentials to POST /login.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var result AuthResult
	if err := c.postJSON(ctx, "/login", "", creds, &result); err != nil {
		metrics.UpstreamRequests.WithLabelValues("login", "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequests.WithLabelValues("login", "ok").Inc()
	return &result, nil
}

// Register submits registration fields to POST /register.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	var result RegisterResult
	if err := c.postJSON(ctx, "/register", "", input, &result); err != nil {
		metrics.UpstreamRequests.WithLabelValues("register", "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequests.WithLabelValues("register", "ok").Inc()
	return &result, nil
}

// Notifications fetches the bearer's notification list, ordered by arrival.
func (c *Client) Notifications(ctx context.Context, token string) ([]notifications.Notification, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/notifications", token, nil)
	if err != nil {
		return nil, err
	}

	var items []notifications.Notification
	if err := c.doJSON(req, &items); err != nil {
		metrics.UpstreamRequests.WithLabelValues("notifications", "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequests.WithLabelValues("notifications", "ok").Inc()
	return items, nil
}

// MarkNotificationRead marks one notification read server-side.
func (c *Client) MarkNotificationRead(ctx context.Context, token, id string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/notifications/"+url.PathEscape(id)+"/read", token, nil)
	if err != nil {
		return err
	}
	return c.doDiscard(req, "notifications_read")
}

// ClearReadNotifications purges read notifications server-side.
func (c *Client) ClearReadNotifications(ctx context.Context, token string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/notifications/clear-read", token, nil)
	if err != nil {
		return err
	}
	return c.doDiscard(req, "notifications_clear")
}

func (c *Client) postJSON(ctx context.Context, path, token string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("upstream: marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, token, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doJSON(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	target := c.base.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("upstream: build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("upstream: %s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("upstream: decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func (c *Client) doDiscard(req *http.Request, endpoint string) error {
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("upstream: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("upstream: %s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	metrics.UpstreamRequests.WithLabelValues(endpoint, "ok").Inc()
	return nil
}
