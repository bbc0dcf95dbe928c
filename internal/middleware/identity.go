package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/palm-beach-resort/internal/apiclient"
	"github.com/iliyamo/palm-beach-resort/internal/config"
	"github.com/iliyamo/palm-beach-resort/internal/logging"
	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// Context keys set by Credentials, Identify and Session.
const (
	CtxUserID       = "user_id"
	CtxRole         = "role"
	CtxCartOwner    = "cart_owner"
	ctxUpstreamAuth = "upstream_auth"
	ctxResolver     = "identity_resolver"
	ctxIdentityErr  = "identity_err"
)

// SessionHeader carries the anonymous cart identity between calls.
const SessionHeader = "X-Session-ID"

// verifyTimeout bounds the backend call that confirms credentials.
const verifyTimeout = 10 * time.Second

var (
	// ErrAnonymous is returned by Identify when no credentials were sent.
	ErrAnonymous = errors.New("no credentials")
	// ErrBadCredentials is returned when the credentials were rejected.
	ErrBadCredentials = errors.New("invalid credentials")
)

// VerifyFunc confirms forwarded credentials with the backend and returns
// the account they belong to.
type VerifyFunc func(ctx context.Context, auth apiclient.Authenticator) (model.User, error)

// UpstreamVerifier confirms credentials by fetching the caller's profile.
func UpstreamVerifier(api *apiclient.Client) VerifyFunc {
	return func(ctx context.Context, auth apiclient.Authenticator) (model.User, error) {
		return api.WithAuthenticator(auth).Me(ctx)
	}
}

type identity struct {
	userID string
	role   string
}

// resolver turns the stored credentials into an identity.
type resolver func(context.Context) (identity, error)

// Credentials keeps the caller's Authorization header so handlers can
// forward it upstream. Nothing is trusted yet: the caller is identified on
// first use by Identify. Bearer tokens are checked against cfg.JWTSecret
// when it is set; all other credentials are confirmed through verify. A nil
// verify leaves such callers unidentified. Anonymous requests pass through.
func Credentials(cfg config.Config, verify VerifyFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}
			auth := apiclient.HeaderAuth(header)
			var resolve resolver
			switch {
			case strings.HasPrefix(header, "Bearer ") && cfg.JWTSecret != "":
				raw := strings.TrimPrefix(header, "Bearer ")
				resolve = func(context.Context) (identity, error) {
					claims, err := bearerClaims(raw, cfg.JWTSecret)
					if err != nil {
						return identity{}, fmt.Errorf("%w: %v", ErrBadCredentials, err)
					}
					id := identity{userID: subject(claims), role: roleClaim(claims)}
					if id.userID == "" {
						return identity{}, fmt.Errorf("%w: token has no subject", ErrBadCredentials)
					}
					return id, nil
				}
			case strings.HasPrefix(header, "Basic "):
				if user, _, ok := c.Request().BasicAuth(); !ok || user == "" {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid basic credentials"})
				}
				fallthrough
			case strings.HasPrefix(header, "Bearer "):
				resolve = func(ctx context.Context) (identity, error) {
					return upstreamIdentity(ctx, cfg, verify, auth)
				}
			default:
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unsupported authorization scheme"})
			}
			c.Set(ctxUpstreamAuth, auth)
			c.Set(ctxResolver, resolve)
			return next(c)
		}
	}
}

func upstreamIdentity(ctx context.Context, cfg config.Config, verify VerifyFunc, auth apiclient.Authenticator) (identity, error) {
	if verify == nil {
		return identity{}, fmt.Errorf("%w: no verifier configured", ErrBadCredentials)
	}
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()
	u, err := verify(ctx, auth)
	if err != nil {
		if s := apiclient.StatusCode(err); s >= 400 && s < 500 {
			return identity{}, fmt.Errorf("%w: %v", ErrBadCredentials, err)
		}
		return identity{}, fmt.Errorf("verify credentials: %w", err)
	}
	id := identity{userID: u.Username, role: normalizeRole(u.Role)}
	if u.ID != 0 {
		id.userID = strconv.FormatInt(u.ID, 10)
	}
	if id.userID == "" {
		return identity{}, fmt.Errorf("%w: backend returned no account", ErrBadCredentials)
	}
	if cfg.IsAdminUser(u.Username) {
		id.role = model.RoleAdmin
	}
	return id, nil
}

// Identify resolves the caller once per request and records the user id
// and role in the context. It returns ErrAnonymous when no credentials were
// sent and an error wrapping ErrBadCredentials when they were rejected.
func Identify(c echo.Context) (string, string, error) {
	if uid := UserID(c); uid != "" {
		return uid, Role(c), nil
	}
	if err, ok := c.Get(ctxIdentityErr).(error); ok {
		return "", "", err
	}
	resolve, ok := c.Get(ctxResolver).(resolver)
	if !ok {
		return "", "", ErrAnonymous
	}
	id, err := resolve(c.Request().Context())
	if err != nil {
		c.Set(ctxIdentityErr, err)
		return "", "", err
	}
	c.Set(CtxUserID, id.userID)
	c.Set(CtxRole, id.role)
	return id.userID, id.role, nil
}

// deny answers a failed Identify.
func deny(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrAnonymous):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	case errors.Is(err, ErrBadCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	logging.FromContext(c.Request().Context()).Warn().Err(err).Msg("credential check failed")
	return c.JSON(http.StatusBadGateway, echo.Map{"error": "could not verify credentials"})
}

// Session assigns the cart owner: the verified user id when credentials
// were sent, otherwise the X-Session-ID header, minting a new id when the
// header is absent.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, _, err := Identify(c)
			switch {
			case err == nil:
				c.Set(CtxCartOwner, "user:"+uid)
				return next(c)
			case !errors.Is(err, ErrAnonymous):
				return deny(c, err)
			}
			sid := strings.TrimSpace(c.Request().Header.Get(SessionHeader))
			if _, err := uuid.Parse(sid); err != nil {
				sid = uuid.NewString()
			}
			c.Response().Header().Set(SessionHeader, sid)
			c.Set(CtxCartOwner, "session:"+sid)
			return next(c)
		}
	}
}

// UpstreamAuth returns the authenticator that forwards the caller's credentials.
func UpstreamAuth(c echo.Context) apiclient.Authenticator {
	if a, ok := c.Get(ctxUpstreamAuth).(apiclient.Authenticator); ok {
		return a
	}
	return apiclient.NoAuth{}
}

// UserID returns the identified user id or "". It is empty until
// Identify has run.
func UserID(c echo.Context) string {
	s, _ := c.Get(CtxUserID).(string)
	return s
}

// Role returns the caller's role or "".
func Role(c echo.Context) string {
	s, _ := c.Get(CtxRole).(string)
	return s
}

// CartOwner returns the key the caller's cart is stored under.
func CartOwner(c echo.Context) string {
	s, _ := c.Get(CtxCartOwner).(string)
	return s
}

// bearerClaims verifies an HS256 token with secret.
func bearerClaims(raw, secret string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token not valid")
	}
	return claims, nil
}

// subject prefers sub, then user_id, then username; numeric ids are
// rendered without a fraction.
func subject(claims jwt.MapClaims) string {
	for _, k := range []string{"sub", "user_id", "username"} {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// roleClaim reads role or the first entry of roles, dropping a ROLE_ prefix.
func roleClaim(claims jwt.MapClaims) string {
	var role string
	switch v := claims["role"].(type) {
	case string:
		role = v
	}
	if role == "" {
		if list, ok := claims["roles"].([]interface{}); ok && len(list) > 0 {
			role, _ = list[0].(string)
		}
	}
	return normalizeRole(role)
}

// normalizeRole upper-cases role and drops a ROLE_ prefix; empty means GUEST.
func normalizeRole(role string) string {
	role = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(role)), "ROLE_")
	if role == "" {
		return model.RoleGuest
	}
	return role
}
