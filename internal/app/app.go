package app

import (
	"context"
	"errors"
	"time"
)

// Application owns the session state the dashboard works from: config, API
// client, persisted token and the conversation store. The TUI and the CLI
// subcommands dispatch user intents through it instead of reading ambient
// globals.
type Application struct {
	Config Config
	Logger *Logger
	Client *Client
	Tokens *TokenStore
	Store  *Store

	User *User
}

func NewApplication(cfg Config) *Application {
	logger := NewLogger(DefaultLogWriter())
	tokens := NewTokenStore(DefaultTokenPath())
	return &Application{
		Config: cfg,
		Logger: logger,
		Tokens: tokens,
		Client: NewClient(cfg.BaseURL, tokens, logger, time.Duration(cfg.RequestTimeoutSec)*time.Second),
		Store:  NewStore(),
	}
}

// CheckAuth validates the stored token against /api/me. An invalid session
// clears the token so the next attempt starts at the login form.
func (a *Application) CheckAuth(ctx context.Context) (User, error) {
	user, err := a.Client.Me(ctx)
	if err != nil {
		if errors.Is(err, ErrAuthInvalid) {
			_ = a.Tokens.Clear()
		}
		return User{}, err
	}
	a.User = &user
	return user, nil
}

func (a *Application) Login(ctx context.Context, email, password string) error {
	if err := a.Client.Login(ctx, email, password); err != nil {
		return err
	}
	if user, err := a.Client.Me(ctx); err == nil {
		a.User = &user
	} else {
		a.Logger.Error("fetching user after login failed", map[string]interface{}{"error": err.Error()})
	}
	a.Logger.Info("logged in", map[string]interface{}{"email": email})
	return nil
}

func (a *Application) Register(ctx context.Context, email, password string) error {
	return a.Client.Register(ctx, email, password)
}

// Logout clears the persisted token and the in-memory session.
func (a *Application) Logout() {
	_ = a.Tokens.Clear()
	a.User = nil
	a.Store.ReplaceAll(nil)
}

// Reload fetches the conversation list and swaps the store wholesale. An
// active search query re-filters against this new base on the next render.
func (a *Application) Reload(ctx context.Context) ([]Conversation, error) {
	convs, err := a.Client.ListConversations(ctx)
	if err != nil {
		return nil, err
	}
	a.Store.ReplaceAll(convs)
	return a.Store.All(), nil
}

// Search projects the current store contents through the substring filter.
func (a *Application) Search(query string) []Conversation {
	return Filter(a.Store.All(), query)
}

// Delete removes the conversation on the server, then drops it from the
// store. The store is untouched when the request fails.
func (a *Application) Delete(ctx context.Context, id string) error {
	if err := a.Client.DeleteConversation(ctx, id); err != nil {
		return err
	}
	a.Store.RemoveByID(id)
	a.Logger.Info("conversation deleted", map[string]interface{}{"id": id})
	return nil
}

func (a *Application) Stats() Stats {
	return ComputeStats(a.Store.All(), time.Now())
}
