package apiclient

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// Authenticator decorates outgoing requests with credentials.
type Authenticator interface {
	Apply(ctx context.Context, req *http.Request) error
}

// Refresher is implemented by authenticators that can renew credentials
// after a 401.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// ErrNoCredentials is returned when an authenticator has nothing to send.
var ErrNoCredentials = errors.New("no credentials stored")

// NoAuth sends requests anonymously.
type NoAuth struct{}

func (NoAuth) Apply(context.Context, *http.Request) error { return nil }

// CredentialSource yields the username and password for HTTP Basic.
type CredentialSource interface {
	Credentials() (model.Credentials, error)
}

// StaticCredentials is a fixed CredentialSource.
type StaticCredentials model.Credentials

func (s StaticCredentials) Credentials() (model.Credentials, error) {
	return model.Credentials(s), nil
}

// BasicAuth sends HTTP Basic credentials.
type BasicAuth struct {
	Source CredentialSource
}

func (a BasicAuth) Apply(_ context.Context, req *http.Request) error {
	creds, err := a.Source.Credentials()
	if err != nil {
		return err
	}
	if creds.Username == "" {
		return ErrNoCredentials
	}
	req.SetBasicAuth(creds.Username, creds.Password)
	return nil
}

// HeaderAuth forwards a ready-made Authorization header value.
type HeaderAuth string

func (h HeaderAuth) Apply(_ context.Context, req *http.Request) error {
	if h != "" {
		req.Header.Set("Authorization", string(h))
	}
	return nil
}

// TokenStore holds the bearer token pair between calls.
type TokenStore interface {
	Tokens() (model.AuthTokens, error)
	SetTokens(model.AuthTokens) error
}

// MemoryTokens is a TokenStore kept in memory.
type MemoryTokens struct {
	mu sync.Mutex
	t  model.AuthTokens
}

func (m *MemoryTokens) Tokens() (model.AuthTokens, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.t, nil
}

func (m *MemoryTokens) SetTokens(t model.AuthTokens) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.t = t
	return nil
}

// RefreshFunc exchanges a refresh token for a new pair.
type RefreshFunc func(ctx context.Context, refreshToken string) (model.AuthTokens, error)

// DefaultExpirySkew is how early an access token is refreshed before exp.
const DefaultExpirySkew = 30 * time.Second

// BearerAuth sends the stored access token and refreshes it through
// RefreshFunc when it is about to expire or the backend answers 401.
type BearerAuth struct {
	Store   TokenStore
	Renew   RefreshFunc
	Skew    time.Duration
	now     func() time.Time
	refresh sync.Mutex
}

// NewBearerAuth returns a BearerAuth over store.
func NewBearerAuth(store TokenStore, renew RefreshFunc) *BearerAuth {
	return &BearerAuth{Store: store, Renew: renew, Skew: DefaultExpirySkew, now: time.Now}
}

func (a *BearerAuth) Apply(ctx context.Context, req *http.Request) error {
	t, err := a.Store.Tokens()
	if err != nil {
		return err
	}
	if t.AccessToken == "" {
		return ErrNoCredentials
	}
	if a.expiring(t.AccessToken) && t.RefreshToken != "" && a.Renew != nil {
		if err := a.Refresh(ctx); err == nil {
			if t, err = a.Store.Tokens(); err != nil {
				return err
			}
		}
	}
	req.Header.Set("Authorization", "Bearer "+t.AccessToken)
	return nil
}

// Refresh renews the token pair and stores it.
func (a *BearerAuth) Refresh(ctx context.Context) error {
	a.refresh.Lock()
	defer a.refresh.Unlock()
	t, err := a.Store.Tokens()
	if err != nil {
		return err
	}
	if t.RefreshToken == "" || a.Renew == nil {
		return ErrNoCredentials
	}
	fresh, err := a.Renew(ctx, t.RefreshToken)
	if err != nil {
		return err
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = t.RefreshToken
	}
	if fresh.User == nil {
		fresh.User = t.User
	}
	return a.Store.SetTokens(fresh)
}

func (a *BearerAuth) expiring(token string) bool {
	exp, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	now := time.Now
	if a.now != nil {
		now = a.now
	}
	return !now().Add(a.Skew).Before(exp)
}

// TokenExpiry reads the exp claim of a JWT without verifying its
// signature. Opaque tokens report false.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
