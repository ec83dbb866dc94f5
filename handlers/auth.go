package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samuveljohnson/portfolio/backend/go-services/internal/config"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/sessions"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/tokens"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/users"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/logger"
)

// LoginRequest carries the admin credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg      *config.Config
	usersSvc *users.Service
}

func NewAuthHandler(cfg *config.Config, u *users.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u}
}

// Register routes under /api/auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/api/auth")
	a.POST("/login", h.Login)
	a.POST("/logout", h.Logout)
}

// Login verifies the admin credentials and returns a signed bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required"})
		return
	}

	u, err := h.usersSvc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
		logger.Errorf("login failed for %s: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	token, err := tokens.GenerateAccessToken(h.cfg, u, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		logger.Errorf("failed to sign access token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": u.Public()})
}

// Logout blacklists the presented access token for its remaining lifetime.
// Without a Redis client this is a no-op; the token then simply runs out.
func (h *AuthHandler) Logout(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access token required"})
		return
	}

	if exp, err := parseExpFromJWT(token); err == nil {
		if ttl := time.Until(exp); ttl > 0 {
			if err := sessions.BlacklistAccessToken(c.Request.Context(), token, ttl); err != nil {
				logger.Errorf("failed to blacklist access token: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
				return
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

// parseExpFromJWT decodes the JWT payload and returns the `exp` claim as time.Time.
// This performs payload-only parsing (no signature verification) and is suitable
// for computing remaining TTLs for blacklisting purposes.
func parseExpFromJWT(tok string) (time.Time, error) {
	parts := strings.Split(tok, ".")
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("invalid token")
	}
	b, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		// try standard base64 (pad) as a fallback
		b, err = base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return time.Time{}, err
		}
	}
	var claims map[string]interface{}
	if err := json.Unmarshal(b, &claims); err != nil {
		return time.Time{}, err
	}
	v, ok := claims["exp"]
	if !ok {
		return time.Time{}, fmt.Errorf("exp claim not present")
	}
	switch vv := v.(type) {
	case float64:
		return time.Unix(int64(vv), 0), nil
	case json.Number:
		i64, err := vv.Int64()
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(i64, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported exp type %T", v)
	}
}
