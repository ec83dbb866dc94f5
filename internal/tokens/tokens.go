package tokens

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/samuveljohnson/portfolio/backend/go-services/internal/config"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/models"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/middleware"
)

// GenerateAccessToken creates a signed JWT access token for the admin user.
// Claims mirror what the SPA stores client-side: id, username and role.
func GenerateAccessToken(cfg *config.Config, u *models.AdminUser, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":       u.ID,
		"username": u.Username,
		"role":     u.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// ParseAccessToken verifies signature and expiry and returns the claims.
func ParseAccessToken(cfg *config.Config, raw string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// HMACVerifier adapts ParseAccessToken to the middleware Verifier interface.
type HMACVerifier struct {
	cfg *config.Config
}

func NewHMACVerifier(cfg *config.Config) *HMACVerifier {
	return &HMACVerifier{cfg: cfg}
}

// claimsToken exposes parsed claims through the middleware Token interface.
type claimsToken struct {
	claims jwt.MapClaims
}

func (t *claimsToken) Claims(v interface{}) error {
	m, ok := v.(*map[string]interface{})
	if !ok {
		return fmt.Errorf("unsupported claims target %T", v)
	}
	*m = map[string]interface{}(t.claims)
	return nil
}

func (h *HMACVerifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	claims, err := ParseAccessToken(h.cfg, raw)
	if err != nil {
		return nil, err
	}
	return &claimsToken{claims: claims}, nil
}
