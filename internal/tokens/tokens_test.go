package tokens

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/samuveljohnson/portfolio/backend/go-services/internal/config"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/models"
)

func testUser() *models.AdminUser {
	return &models.AdminUser{ID: "admin-1", Username: "admin", Role: "admin", Email: "admin@example.com"}
}

func TestGenerateAccessToken_ValidAndClaims(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-32-bytes-should-be-long-enough"

	tokenStr, err := GenerateAccessToken(cfg, testUser(), 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	claims, err := ParseAccessToken(cfg, tokenStr)
	if err != nil {
		t.Fatalf("ParseAccessToken error: %v", err)
	}
	if claims["id"] != "admin-1" {
		t.Fatalf("unexpected id claim: got=%v want=admin-1", claims["id"])
	}
	if claims["username"] != "admin" || claims["role"] != "admin" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestGenerateAccessToken_Expiry(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "another-secret-32-bytes-longgggg"
	tokenStr, err := GenerateAccessToken(cfg, testUser(), 1*time.Second)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	// wait for expiry
	time.Sleep(2 * time.Second)
	if _, err := ParseAccessToken(cfg, tokenStr); err == nil {
		t.Fatalf("expected parse to fail after expiry")
	}
}

func TestParseAccessToken_WrongSecretFails(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "secret-one-32-bytes-xxxxxxxxxxxxxxxx"
	tokenStr, err := GenerateAccessToken(cfg, testUser(), 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	other := &config.Config{}
	other.JWT.Secret = "different-secret-xxxxxxxxxxxxxxxx"
	if _, err := ParseAccessToken(other, tokenStr); err == nil {
		t.Fatalf("expected parse to fail with wrong secret")
	}
}

func TestParseAccessToken_Malformed(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "x"
	if _, err := ParseAccessToken(cfg, "not.a.jwt"); err == nil {
		t.Fatalf("expected parse to fail for malformed token")
	}
}

// Rejected when alg=none (unsigned token)
func TestParseAccessToken_AlgNoneRejected(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "x"
	headerEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payloadEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"id":"admin-1","exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	if _, err := ParseAccessToken(cfg, tok); err == nil {
		t.Fatalf("expected parse to reject alg=none token")
	}
}

// Tampering with one character of the payload must fail verification
func TestParseAccessToken_Tampered(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "tamper-test-secret-32-bytes-xxxxxxx"
	tokenStr, err := GenerateAccessToken(cfg, testUser(), 5*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, _ := base64.RawURLEncoding.DecodeString(parts[1])
	payloadStr := strings.Replace(string(payloadBytes), "admin-1", "attacker", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(payloadStr))
	if _, err := ParseAccessToken(cfg, strings.Join(parts, ".")); err == nil {
		t.Fatalf("expected signature verification to fail for tampered token")
	}
}

func TestHMACVerifier_RoundTrip(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "verifier-secret-32-bytes-xxxxxxxxxx"
	tokenStr, err := GenerateAccessToken(cfg, testUser(), 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	ver := NewHMACVerifier(cfg)
	tok, err := ver.Verify(context.Background(), tokenStr)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	var claims map[string]interface{}
	if err := tok.Claims(&claims); err != nil {
		t.Fatalf("Claims error: %v", err)
	}
	if claims["username"] != "admin" {
		t.Fatalf("unexpected username claim: %v", claims["username"])
	}
}
