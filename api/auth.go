package api

import (
	"context"
	"net/http"

	"rentscout/models"
)

// tokenWire is the snake_case envelope the auth endpoints speak.
type tokenWire struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// tokenFromWire converts the wire shape to the canonical TokenPair. This is
// the only place that conversion happens.
func tokenFromWire(w tokenWire) models.TokenPair {
	return models.TokenPair{
		AccessToken:  w.AccessToken,
		RefreshToken: w.RefreshToken,
		ExpiresIn:    w.ExpiresIn,
		TokenType:    w.TokenType,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token pair. Invalid credentials surface
// as an HTTPError; nothing is retried here.
func (c *Client) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	var w tokenWire
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, credentials{Email: email, Password: password}, &w, authNone); err != nil {
		return nil, err
	}
	pair := tokenFromWire(w)
	return &pair, nil
}

// Register creates an account and returns its first token pair.
func (c *Client) Register(ctx context.Context, email, password string) (*models.TokenPair, error) {
	var w tokenWire
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, credentials{Email: email, Password: password}, &w, authNone); err != nil {
		return nil, err
	}
	pair := tokenFromWire(w)
	return &pair, nil
}

// Refresh exchanges the held refresh token for a new pair. The refresh token
// rides as the bearer credential on this one call.
func (c *Client) Refresh(ctx context.Context) (*models.TokenPair, error) {
	var w tokenWire
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, nil, &w, authRefresh); err != nil {
		return nil, err
	}
	pair := tokenFromWire(w)
	return &pair, nil
}

// Me resolves the access token to its user record.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &u, authAccess); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout invalidates the session server-side. Best effort; callers clear
// local state regardless of the result.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil, authAccess)
}
