package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/palm-beach-resort/internal/apiclient"
	"github.com/iliyamo/palm-beach-resort/internal/config"
	"github.com/iliyamo/palm-beach-resort/internal/logging"
	"github.com/iliyamo/palm-beach-resort/internal/model"
)

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

type seen struct {
	user, role, owner string
	auth              apiclient.Authenticator
}

// serve runs one request through mws and records what the handler saw
// after identifying the caller.
func serve(t *testing.T, req *http.Request, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, seen) {
	t.Helper()
	e := echo.New()
	var s seen
	h := func(c echo.Context) error {
		_, _, _ = Identify(c)
		s = seen{user: UserID(c), role: Role(c), owner: CartOwner(c), auth: UpstreamAuth(c)}
		return c.String(http.StatusOK, "ok")
	}
	e.GET("/x", h, mws...)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, s
}

// accounts is a fake backend profile lookup keyed by Authorization header.
type accounts struct {
	users map[string]model.User
	calls int
	down  bool
}

func (a *accounts) verify(ctx context.Context, auth apiclient.Authenticator) (model.User, error) {
	a.calls++
	if a.down {
		return model.User{}, &apiclient.TransportError{Method: http.MethodGet, Path: "/api/users/me", Err: errors.New("connection refused")}
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
	if err := auth.Apply(ctx, req); err != nil {
		return model.User{}, err
	}
	u, ok := a.users[req.Header.Get("Authorization")]
	if !ok {
		return model.User{}, &apiclient.APIError{StatusCode: http.StatusUnauthorized, Message: "Bad credentials"}
	}
	return u, nil
}

func basic(user, pass string) string {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.SetBasicAuth(user, pass)
	return req.Header.Get("Authorization")
}

func newAccounts() *accounts {
	return &accounts{users: map[string]model.User{
		basic("admin", "palm"):  {ID: 1, Username: "admin"},
		basic("kenji", "pw"):    {ID: 2, Username: "kenji", Role: "ROLE_GUEST"},
		"Bearer upstream-token": {ID: 3, Username: "maria", Role: "admin"},
	}}
}

func withAuth(header string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return req
}

func TestCredentialsAnonymous(t *testing.T) {
	rec, s := serve(t, withAuth(""), Credentials(config.Config{}, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, s.user)
	assert.Equal(t, apiclient.NoAuth{}, s.auth)
}

func TestCredentialsBearerConfirmedUpstream(t *testing.T) {
	acc := newAccounts()
	rec, s := serve(t, withAuth("Bearer upstream-token"), Credentials(config.Config{}, acc.verify))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", s.user)
	assert.Equal(t, model.RoleAdmin, s.role)
	assert.Equal(t, apiclient.HeaderAuth("Bearer upstream-token"), s.auth)
}

func TestCredentialsUnsignedClaimsAreNotTrusted(t *testing.T) {
	forged := signed(t, "attacker-key", jwt.MapClaims{"sub": "1", "role": "ADMIN"})
	acc := newAccounts()

	rec, s := serve(t, withAuth("Bearer "+forged), Credentials(config.Config{}, acc.verify))
	assert.Equal(t, http.StatusOK, rec.Code, "public routes still forward the header")
	assert.Empty(t, s.user)
	assert.Empty(t, s.role)

	rec, _ = serve(t, withAuth("Bearer "+forged), Credentials(config.Config{}, acc.verify), RequireRole(model.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, withAuth("Bearer "+forged), Credentials(config.Config{}, nil), RequireAuth())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCredentialsBearerVerifiedLocally(t *testing.T) {
	cfg := config.Config{JWTSecret: "s3cret"}
	acc := newAccounts()

	good := signed(t, "s3cret", jwt.MapClaims{"sub": float64(42), "role": "guest"})
	rec, s := serve(t, withAuth("Bearer "+good), Credentials(cfg, acc.verify))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", s.user)
	assert.Equal(t, model.RoleGuest, s.role)
	assert.Zero(t, acc.calls)

	bad := signed(t, "other", jwt.MapClaims{"sub": "x", "role": "ADMIN"})
	rec, _ = serve(t, withAuth("Bearer "+bad), Credentials(cfg, acc.verify), RequireAuth())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCredentialsBasic(t *testing.T) {
	cfg := config.Config{AdminUsers: []string{"admin"}}
	acc := newAccounts()

	_, s := serve(t, withAuth(basic("admin", "palm")), Credentials(cfg, acc.verify))
	assert.Equal(t, "1", s.user)
	assert.Equal(t, model.RoleAdmin, s.role)

	_, s = serve(t, withAuth(basic("kenji", "pw")), Credentials(cfg, acc.verify))
	assert.Equal(t, model.RoleGuest, s.role)

	rec, _ := serve(t, withAuth(basic("admin", "wrong")), Credentials(cfg, acc.verify), RequireRole(model.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, withAuth("Digest abc"), Credentials(cfg, acc.verify))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCredentialsBackendDown(t *testing.T) {
	acc := newAccounts()
	acc.down = true
	rec, _ := serve(t, withAuth(basic("admin", "palm")), Credentials(config.Config{}, acc.verify), RequireAuth())
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestIdentifyVerifiesOnce(t *testing.T) {
	acc := newAccounts()
	rec, _ := serve(t, withAuth(basic("kenji", "pw")), Credentials(config.Config{}, acc.verify), RequireAuth(), Session())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, acc.calls)
}

func TestSession(t *testing.T) {
	rec, s := serve(t, withAuth(""), Session())
	sid := rec.Header().Get(SessionHeader)
	_, err := uuid.Parse(sid)
	require.NoError(t, err)
	assert.Equal(t, "session:"+sid, s.owner)

	req := withAuth("")
	req.Header.Set(SessionHeader, sid)
	rec, s = serve(t, req, Session())
	assert.Equal(t, sid, rec.Header().Get(SessionHeader))
	assert.Equal(t, "session:"+sid, s.owner)

	req = withAuth("")
	req.Header.Set(SessionHeader, "not-a-uuid")
	rec, _ = serve(t, req, Session())
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(SessionHeader))

	acc := newAccounts()
	_, s = serve(t, withAuth(basic("kenji", "pw")), Credentials(config.Config{}, acc.verify), Session())
	assert.Equal(t, "user:2", s.owner)
}

func TestSessionRejectsForgedSubject(t *testing.T) {
	forged := signed(t, "attacker-key", jwt.MapClaims{"sub": "2"})
	rec, s := serve(t, withAuth("Bearer "+forged), Credentials(config.Config{}, newAccounts().verify), Session())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, s.owner)
}

func TestRequireRole(t *testing.T) {
	cfg := config.Config{AdminUsers: []string{"admin"}}
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"guest", basic("kenji", "pw"), http.StatusForbidden},
		{"admin", basic("admin", "palm"), http.StatusOK},
		{"wrong password", basic("admin", "nope"), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := serve(t, withAuth(tt.header), Credentials(cfg, newAccounts().verify), RequireRole(model.RoleAdmin))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	rec, _ := serve(t, withAuth(""), Credentials(config.Config{}, nil), RequireAuth())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	rec, _ := serve(t, req, RequestLogger(&l))
	assert.Equal(t, http.StatusOK, rec.Code)
	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, `"route":"/x"`)
}

func TestDisabledWithoutRedis(t *testing.T) {
	rec, _ := serve(t, httptest.NewRequest(http.MethodGet, "/x", nil),
		NewRedisCache(config.CacheConfig{Enabled: true}, nil),
		NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis test in short mode")
	}
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisCacheHit(t *testing.T) {
	rdb := testRedis(t)
	cfg := config.CacheConfig{
		Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute,
		Prefix: "test-cache-" + uuid.NewString(), MaxBodyBytes: 1 << 20,
	}
	calls := 0
	e := echo.New()
	e.GET("/v1/rooms", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, []string{"101"})
	}, NewRedisCache(cfg, rdb))

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))
	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, 1, calls)
	assert.Equal(t, strings.TrimSpace(first.Body.String()), strings.TrimSpace(second.Body.String()))
	assert.Contains(t, second.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

func TestTokenBucketBlocks(t *testing.T) {
	rdb := testRedis(t)
	cfg := config.RateLimitConfig{
		Enabled: true, Capacity: 2, RefillTokens: 1, RefillInterval: time.Hour, TTL: time.Hour,
		KeyStrategy: "route", Prefix: "test-rl-" + uuid.NewString(),
	}
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, NewTokenBucket(cfg, rdb))

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		e.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, last.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
}
