package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amezghal/careergate/internal/notifications"
)

func TestNewClientValidatesBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)

	_, err = NewClient(Config{BaseURL: "ftp://backend"})
	require.Error(t, err)

	client, err := NewClient(Config{BaseURL: "https://backend.example/api"})
	require.NoError(t, err)
	require.Equal(t, "/api", client.BaseURL().Path)
}

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "maya@example.com", creds.Email)

		json.NewEncoder(w).Encode(AuthResult{
			Status: true,
			Token:  "bearer-1",
			User:   UserPayload{Email: creds.Email, Role: "employer"},
		})
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	result, err := client.Login(context.Background(), Credentials{Email: "maya@example.com", Password: "pw"})
	require.NoError(t, err)
	require.True(t, result.Status)
	require.Equal(t, "bearer-1", result.Token)
}

func TestLoginRejectionIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(AuthResult{Status: false, Message: "Invalid email or password"})
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	// 4xx with a parseable envelope is a logical rejection, not transport failure.
	result, err := client.Login(context.Background(), Credentials{Email: "a@b.c", Password: "bad"})
	require.NoError(t, err)
	require.False(t, result.Status)
	require.Equal(t, "Invalid email or password", result.Message)
}

func TestLoginServerErrorIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
	require.Error(t, err)
}

func TestNotificationsCarryBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notifications", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode([]notifications.Notification{
			{ID: "n1", Type: "application.status"},
			{ID: "n2", Type: "interview.scheduled", Read: true},
		})
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	items, err := client.Notifications(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "n1", items[0].ID)
}

func TestMarkNotificationReadEscapesID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	require.NoError(t, client.MarkNotificationRead(context.Background(), "tok", "id/with spaces"))
	require.Equal(t, "/notifications/id%2Fwith%20spaces/read", gotPath)
}

func TestClearReadNotifications(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/notifications/clear-read", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	require.NoError(t, client.ClearReadNotifications(context.Background(), "tok"))
}

func TestClearReadNotificationsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	require.Error(t, client.ClearReadNotifications(context.Background(), "tok"))
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
	require.Error(t, err)
}

func TestProxyDirectorRewritesRequest(t *testing.T) {
	base, err := url.Parse("https://backend.example/api")
	require.NoError(t, err)

	proxy := NewProxy(base, func(*http.Request) string { return "tok-9" })

	req := httptest.NewRequest(http.MethodGet, "http://gateway.local/api/jobs/5", nil)
	req.AddCookie(&http.Cookie{Name: "careergate_session", Value: "secret"})
	proxy.Director(req)

	require.Equal(t, "https", req.URL.Scheme)
	require.Equal(t, "backend.example", req.URL.Host)
	require.Equal(t, "/api/jobs/5", req.URL.Path)
	require.Equal(t, "Bearer tok-9", req.Header.Get("Authorization"))
	require.Empty(t, req.Header.Get("Cookie"))
}

func TestProxyDirectorHandlesBareAPIRoot(t *testing.T) {
	base, err := url.Parse("http://backend.example")
	require.NoError(t, err)

	proxy := NewProxy(base, func(*http.Request) string { return "" })

	req := httptest.NewRequest(http.MethodGet, "http://gateway.local/api", nil)
	proxy.Director(req)
	require.Equal(t, "/", req.URL.Path)
	require.Empty(t, req.Header.Get("Authorization"))
}
