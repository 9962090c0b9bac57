package app

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

	"github.com/google/uuid"
)

// Sentinel errors for the failure classes the views react to.
var (
	ErrNotFound    = errors.New("conversation not found")
	ErrAuthInvalid = errors.New("not logged in or session expired")
)

// APIError is a non-2xx, non-404 response, carrying the status and the
// server's detail message when one was sent.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error: status %d", e.Status)
}

// IsNetworkError reports whether err is a transport-level failure, i.e. the
// request never produced a response.
func IsNetworkError(err error) bool {
	var ue *url.Error
	return errors.As(err, &ue)
}

// Client issues authenticated requests against the archive API. It never
// touches the Store; callers apply results from their completion handlers.
type Client struct {
	BaseURL string
	Tokens  *TokenStore
	Logger  *Logger
	HTTP    *http.Client
}

func NewClient(baseURL string, tokens *TokenStore, logger *Logger, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Tokens:  tokens,
		Logger:  logger,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token and persists it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var tok tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", credentials{Email: email, Password: password}, false, &tok); err != nil {
		return err
	}
	if tok.AccessToken == "" {
		return &APIError{Status: http.StatusOK, Message: "login response carried no token"}
	}
	return c.Tokens.Set(tok.AccessToken)
}

func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/register", credentials{Email: email, Password: password}, false, nil)
}

// Me validates the stored session and returns the current user.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/api/me", nil, true, &u)
	return u, err
}

func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	var out []Conversation
	err := c.do(ctx, http.MethodGet, "/api/conversations", nil, true, &out)
	return out, err
}

func (c *Client) GetConversation(ctx context.Context, id string) (Conversation, error) {
	var out Conversation
	if strings.TrimSpace(id) == "" {
		return out, errors.New("conversation id is required")
	}
	err := c.do(ctx, http.MethodGet, "/api/conversations/"+url.PathEscape(id), nil, true, &out)
	return out, err
}

func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("conversation id is required")
	}
	return c.do(ctx, http.MethodDelete, "/api/conversations/"+url.PathEscape(id), nil, true, nil)
}

// FetchRaw returns one conversation re-encoded as indented JSON, ready to
// hand to the download writer.
func (c *Client) FetchRaw(ctx context.Context, id string) ([]byte, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("conversation id is required")
	}
	var data []byte
	if err := c.do(ctx, http.MethodGet, "/api/conversations/"+url.PathEscape(id), nil, true, &data); err != nil {
		return nil, err
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err != nil {
		return data, nil
	}
	return indented.Bytes(), nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, authed bool, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if authed {
		token := c.Tokens.Get()
		if token == "" {
			return ErrAuthInvalid
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.logFailure(method, path, 0, err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	// A 401 only means a dead session on authenticated calls. Login and
	// register get 401 for bad credentials; those keep the server detail.
	case resp.StatusCode == http.StatusUnauthorized && authed:
		c.logFailure(method, path, resp.StatusCode, nil)
		return ErrAuthInvalid
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		apiErr := &APIError{Status: resp.StatusCode, Message: detailMessage(data)}
		c.logFailure(method, path, resp.StatusCode, apiErr)
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = data
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// detailMessage pulls the human-readable message out of an error body.
// FastAPI-style servers use "detail"; accept "message" too.
func detailMessage(data []byte) string {
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Detail != "" {
		return body.Detail
	}
	return body.Message
}

func (c *Client) logFailure(method, path string, status int, err error) {
	if c.Logger == nil {
		return
	}
	fields := map[string]interface{}{"method": method, "path": path}
	if status != 0 {
		fields["status"] = status
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	c.Logger.Error("api request failed", fields)
}
