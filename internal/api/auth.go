package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/citefix/citefix-cli/internal/domain"
)

// LoginResult is the body of a successful POST /auth/login.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login exchanges credentials for a token and the account it belongs to.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return nil, err
	}
	if result.Token == "" || result.User.ID == "" {
		return nil, fmt.Errorf("login: %w", ErrInvalidResponse)
	}
	result.User.Normalize()
	return &result, nil
}

// Me validates the current token and returns the account it belongs to.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("me: %w", ErrInvalidResponse)
	}
	user.Normalize()
	return &user, nil
}

// Logout tells the backend to discard the given token. Best effort: local
// logout never waits on, nor fails because of, this call. The token comes in
// explicitly because the session's token source is already cleared when the
// call is made.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.doWithToken(ctx, http.MethodPost, "/auth/logout", token, struct{}{}, nil)
}
