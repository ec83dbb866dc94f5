package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/samuveljohnson/portfolio/backend/go-services/internal/models"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/logger"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords, so a caller cannot probe which usernames exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service encapsulates admin-account logic: seeding, authentication and
// last-login bookkeeping.
type Service struct {
	repo UserRepository
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r}
}

// EnsureSeedAdmin provisions the single admin account on first startup.
func (s *Service) EnsureSeedAdmin(ctx context.Context, username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	u := &models.AdminUser{
		ID:           "admin-1",
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
		CreatedAt:    nowISO(),
	}
	if err := s.repo.SeedIfEmpty(ctx, u); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}

// Authenticate verifies the credentials and records the login time. The
// returned error is ErrInvalidCredentials for every credential failure.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.AdminUser, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	u.LastLogin = nowISO()
	if err := s.repo.Update(ctx, u); err != nil {
		// login still succeeds; the timestamp is best-effort
		logger.Warnf("failed to record last login for %s: %v", username, err)
	}
	return u, nil
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
