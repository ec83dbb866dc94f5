package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/samuveljohnson/portfolio/backend/go-services/internal/config"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/sessions"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/tokens"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/users"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/middleware"
)

func newAuthEnv(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "auth-handler-secret-32-bytes-xxxxxx"
	cfg.JWT.AccessTokenTTL = 24 * time.Hour

	usersSvc := users.NewService(users.NewFileUserRepository(filepath.Join(t.TempDir(), "users.json")))
	require.NoError(t, usersSvc.EnsureSeedAdmin(context.Background(), "admin", "admin@example.com", "correct-horse"))

	g := gin.New()
	NewAuthHandler(cfg, usersSvc).Register(g.Group("/"))
	return g, cfg
}

func postJSON(t *testing.T, g *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	g, cfg := newAuthEnv(t)

	w := postJSON(t, g, "/api/auth/login", `{"username":"admin","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		User    struct {
			Username  string `json:"username"`
			Role      string `json:"role"`
			LastLogin string `json:"lastLogin"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.NotEmpty(t, body.Token)
	require.Equal(t, "admin", body.User.Username)
	require.NotEmpty(t, body.User.LastLogin)
	require.NotContains(t, w.Body.String(), "passwordHash")

	// the issued token passes verification
	claims, err := tokens.ParseAccessToken(cfg, body.Token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims["username"])
}

func TestLogin_WrongPassword(t *testing.T) {
	g, _ := newAuthEnv(t)

	w := postJSON(t, g, "/api/auth/login", `{"username":"admin","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), `"success":false`)
}

func TestLogin_UnknownUserIndistinguishable(t *testing.T) {
	g, _ := newAuthEnv(t)

	wUnknown := postJSON(t, g, "/api/auth/login", `{"username":"ghost","password":"whatever"}`)
	wWrongPw := postJSON(t, g, "/api/auth/login", `{"username":"admin","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	require.Equal(t, http.StatusUnauthorized, wWrongPw.Code)
	require.JSONEq(t, wWrongPw.Body.String(), wUnknown.Body.String())
}

func TestLogin_MissingFields(t *testing.T) {
	g, _ := newAuthEnv(t)

	w := postJSON(t, g, "/api/auth/login", `{"username":"admin"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, g, "/api/auth/login", `not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout_BlacklistsToken(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	sessions.SetBlacklistClient(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	defer sessions.SetBlacklistClient(nil)

	g, cfg := newAuthEnv(t)
	ver := tokens.NewHMACVerifier(cfg)
	g.GET("/protected", middleware.AuthMiddleware(ver), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := postJSON(t, g, "/api/auth/login", `{"username":"admin","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	// token works before logout
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code)

	// logout
	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rw = httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code)

	// token rejected afterwards
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rw = httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestLogout_NoToken(t *testing.T) {
	g, _ := newAuthEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}
