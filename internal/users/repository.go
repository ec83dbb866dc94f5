package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/samuveljohnson/portfolio/backend/go-services/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines persistence operations for admin users.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	Update(ctx context.Context, u *models.AdminUser) error
	SeedIfEmpty(ctx context.Context, u *models.AdminUser) error
}

// FileUserRepository keeps the user list in one JSON file, matching the
// shipped deployment where exactly one seeded admin record exists.
type FileUserRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileUserRepository(path string) *FileUserRepository {
	return &FileUserRepository{path: path}
}

func (r *FileUserRepository) load() ([]models.AdminUser, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.AdminUser{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	var list []models.AdminUser
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return list, nil
}

func (r *FileUserRepository) save(list []models.AdminUser) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (r *FileUserRepository) FindByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Username == username {
			u := list[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

// Update rewrites the stored record matching u.ID.
func (r *FileUserRepository) Update(ctx context.Context, u *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list, err := r.load()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == u.ID {
			list[i] = *u
			return r.save(list)
		}
	}
	return ErrUserNotFound
}

// SeedIfEmpty writes the given user as the only record when no users exist
// yet. Called once at startup.
func (r *FileUserRepository) SeedIfEmpty(ctx context.Context, u *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list, err := r.load()
	if err != nil {
		return err
	}
	if len(list) > 0 {
		return nil
	}
	return r.save([]models.AdminUser{*u})
}
