package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, baseURL, token string) *Client {
	t.Helper()
	tokens := NewTokenStore(filepath.Join(t.TempDir(), "token"))
	if token != "" {
		if err := tokens.Set(token); err != nil {
			t.Fatalf("seeding token: %v", err)
		}
	}
	return NewClient(baseURL, tokens, NewLogger(nil), 5*time.Second)
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"abc","updated_at":"2024-01-01T00:00:00Z"}]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "tok-123")
	convs, err := c.ListConversations(context.Background())
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
	if len(convs) != 1 || convs[0].ID != "abc" {
		t.Fatalf("unexpected result: %+v", convs)
	}
}

func TestClientNoTokenIsAuthInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server without a token")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")
	if _, err := c.ListConversations(context.Background()); !errors.Is(err, ErrAuthInvalid) {
		t.Fatalf("got %v, want ErrAuthInvalid", err)
	}
}

func TestClientUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "stale")
	if _, err := c.Me(context.Background()); !errors.Is(err, ErrAuthInvalid) {
		t.Fatalf("got %v, want ErrAuthInvalid", err)
	}
}

func TestClientLoginBadCredentialsKeepsDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Incorrect email or password"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")
	err := c.Login(context.Background(), "a@b.c", "wrong")
	if errors.Is(err, ErrAuthInvalid) {
		t.Fatal("bad credentials must not map to ErrAuthInvalid")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", apiErr.Status)
	}
	if apiErr.Message != "Incorrect email or password" {
		t.Errorf("Message = %q, want server detail", apiErr.Message)
	}
}

func TestClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "tok")
	if _, err := c.GetConversation(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestClientServerErrorCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"database unavailable"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "tok")
	_, err := c.ListConversations(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", apiErr.Status)
	}
	if apiErr.Message != "database unavailable" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "database unavailable")
	}
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(t, srv.URL, "tok")
	_, err := c.ListConversations(context.Background())
	if err == nil {
		t.Fatal("expected an error against a closed server")
	}
	if !IsNetworkError(err) {
		t.Fatalf("IsNetworkError = false for %v", err)
	}
}

func TestClientLoginPersistsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"fresh-token","token_type":"bearer"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")
	if err := c.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got := c.Tokens.Get(); got != "fresh-token" {
		t.Fatalf("stored token = %q, want %q", got, "fresh-token")
	}
}

func TestClientFetchRawIndents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"abc","messages":[{"role":"user","content":"hi"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "tok")
	data, err := c.FetchRaw(context.Background(), "abc")
	if err != nil {
		t.Fatalf("FetchRaw: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "\n  \"id\": \"abc\"") {
		t.Fatalf("output is not indented:\n%s", got)
	}
}
