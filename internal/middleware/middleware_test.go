package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecowash/ecowash-backend/internal/config"
	"github.com/ecowash/ecowash-backend/internal/model"
	"github.com/ecowash/ecowash-backend/internal/repository/memstore"
	"github.com/ecowash/ecowash-backend/internal/utils"
)

const secret = "test-secret"

func tokenFor(t *testing.T, id, kind string) string {
	t.Helper()
	at, err := utils.NewAccessToken(secret, id, kind, 30)
	require.NoError(t, err)
	return at.Token
}

func TestAuthMiddleware(t *testing.T) {
	stores := memstore.New().Stores()
	ctx := context.Background()
	user := model.User{FirstName: "Ana", LastName: "Roy", Email: "ana@example.com"}
	require.NoError(t, stores.Users.Create(ctx, &user))
	admin := model.Admin{Email: "ops@example.com"}
	require.NoError(t, stores.Admins.Create(ctx, &admin))

	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		return c.String(http.StatusOK, u.Email)
	}, UserAuth(secret, stores.Users))
	e.GET("/admin", func(c echo.Context) error {
		a, ok := CurrentAdmin(c)
		require.True(t, ok)
		return c.String(http.StatusOK, a.Email)
	}, AdminAuth(secret, stores.Admins))

	tests := []struct {
		name   string
		path   string
		header string
		status int
		body   string
	}{
		{"user ok", "/me", "Bearer " + tokenFor(t, user.ID, utils.KindUser), http.StatusOK, "ana@example.com"},
		{"admin ok", "/admin", "Bearer " + tokenFor(t, admin.ID, utils.KindAdmin), http.StatusOK, "ops@example.com"},
		{"no header", "/me", "", http.StatusUnauthorized, "pas de token"},
		{"user token on admin route", "/admin", "Bearer " + tokenFor(t, user.ID, utils.KindUser), http.StatusUnauthorized, "token invalide"},
		{"admin token on user route", "/me", "Bearer " + tokenFor(t, admin.ID, utils.KindAdmin), http.StatusUnauthorized, "token invalide"},
		{"unknown user", "/me", "Bearer " + tokenFor(t, "ghost", utils.KindUser), http.StatusUnauthorized, "utilisateur non trouvé"},
		{"garbage", "/me", "Bearer nope", http.StatusUnauthorized, "token invalide"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestNilRedisPassesThrough(t *testing.T) {
	e := echo.New()
	cache := NewResponseCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil)
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
		NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil), cache.Middleware())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	cache.Purge(context.Background())
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`[]`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, got)
	assert.Equal(t, "[]", string(body))

	_, _, _, ok = decodePayload(bs[:6])
	assert.False(t, ok)
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/contact")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}
	assert.Equal(t, "rl:ip:10.0.0.1:route:POST /api/contact", buildRateKey(cfg, c))

	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:anon", buildRateKey(cfg, c))
	c.Set(ctxSubject, "u-1")
	assert.Equal(t, "rl:user:u-1", buildRateKey(cfg, c))
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	hook := logtest.NewGlobal()
	t.Cleanup(hook.Reset)

	e := echo.New()
	e.Use(RequestLogger())
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/bad", func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadRequest, "Champ invalide : email") })
	e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })

	tests := []struct {
		path   string
		status int
		level  log.Level
	}{
		{"/ok", http.StatusOK, log.InfoLevel},
		{"/bad", http.StatusBadRequest, log.WarnLevel},
		{"/boom", http.StatusInternalServerError, log.ErrorLevel},
	}
	for _, tt := range tests {
		hook.Reset()
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		require.Equal(t, tt.status, rec.Code, tt.path)

		entry := hook.LastEntry()
		require.NotNil(t, entry, tt.path)
		assert.Equal(t, tt.level, entry.Level, tt.path)
		assert.Equal(t, tt.status, entry.Data["status"], tt.path)
		assert.Equal(t, tt.path, entry.Data["path"])
	}
}
