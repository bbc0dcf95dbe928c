package apiclient

import (
	"context"
	"net/http"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.AuthTokens, error) {
	var out model.AuthTokens
	err := c.do(ctx, call{method: http.MethodPost, path: "/api/auth/login", body: creds, anon: true}, &out)
	return out, err
}

// Signup registers a new guest account.
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) (model.AuthTokens, error) {
	var out model.AuthTokens
	err := c.do(ctx, call{method: http.MethodPost, path: "/api/auth/signup", body: req, anon: true}, &out)
	return out, err
}

// RefreshTokens trades a refresh token for a new pair.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (model.AuthTokens, error) {
	var out model.AuthTokens
	cl := call{method: http.MethodPost, path: "/api/auth/refresh", body: model.RefreshRequest{RefreshToken: refreshToken}, anon: true}
	err := c.do(ctx, cl, &out)
	return out, err
}

// Me returns the signed-in user's profile.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	return getOne[model.User](ctx, c, call{path: "/api/users/me"})
}

// UpdateProfile saves the profile page.
func (c *Client) UpdateProfile(ctx context.Context, u model.User) (model.User, error) {
	var out model.User
	err := c.do(ctx, call{method: http.MethodPut, path: "/api/users/me", body: u}, &out)
	return out, err
}

// NewBearer returns a BearerAuth that refreshes through this client.
func (c *Client) NewBearer(store TokenStore) *BearerAuth {
	return NewBearerAuth(store, c.RefreshTokens)
}
