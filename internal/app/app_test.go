package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoginSurvivesMeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
		case "/api/me":
			http.Error(w, `{"detail":"temporarily unavailable"}`, http.StatusInternalServerError)
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	var logs bytes.Buffer
	logger := NewLogger(&logs)
	tokens := NewTokenStore(filepath.Join(t.TempDir(), "token"))
	a := &Application{
		Logger: logger,
		Tokens: tokens,
		Client: NewClient(srv.URL, tokens, logger, 5*time.Second),
		Store:  NewStore(),
	}

	if err := a.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if a.User != nil {
		t.Fatalf("User = %+v, want nil when /api/me fails", a.User)
	}
	if !strings.Contains(logs.String(), "fetching user after login failed") {
		t.Fatalf("me failure not logged:\n%s", logs.String())
	}
}
