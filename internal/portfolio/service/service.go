package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samuveljohnson/portfolio/backend/go-services/internal/portfolio"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/portfolio/repository"
)

var (
	ErrNotFound          = repository.ErrNotFound
	ErrUnknownCollection = repository.ErrUnknownCollection

	// ErrValidation wraps missing-field errors so the handler can map them to 400.
	ErrValidation = errors.New("validation failed")
)

// Service applies the content rules (required fields, level clamping, id
// generation) on top of a repository. Handlers depend on this type, not on
// the storage backend.
type Service struct {
	repo repository.Repository
}

func NewService(r repository.Repository) *Service {
	return &Service{repo: r}
}

// Document returns the full portfolio document.
func (s *Service) Document(ctx context.Context) (*portfolio.Document, error) {
	return s.repo.Get(ctx)
}

// CertificateInput carries the submitted certificate fields. Image is the
// already-stored public path, resolved by the handler before calling in.
type CertificateInput struct {
	Title       string
	Issuer      string
	Date        string
	Link        string
	Image       string
	Description string
	Category    string
}

func (s *Service) CreateCertificate(ctx context.Context, in CertificateInput) (*portfolio.Certificate, error) {
	if in.Title == "" || in.Issuer == "" || in.Date == "" {
		return nil, fmt.Errorf("%w: title, issuer, and date are required", ErrValidation)
	}
	if in.Category == "" {
		in.Category = "General"
	}
	cert := &portfolio.Certificate{
		ID:          portfolio.NewID("cert"),
		Title:       in.Title,
		Issuer:      in.Issuer,
		Date:        in.Date,
		Link:        in.Link,
		Image:       in.Image,
		Description: in.Description,
		Category:    in.Category,
	}
	if err := s.repo.AddCertificate(ctx, cert); err != nil {
		return nil, err
	}
	return cert, nil
}

type SkillInput struct {
	Name        string
	Category    string
	Level       *int
	Description string
}

func (s *Service) CreateSkill(ctx context.Context, in SkillInput) (*portfolio.Skill, error) {
	if in.Name == "" || in.Category == "" || in.Level == nil {
		return nil, fmt.Errorf("%w: name, category, and level are required", ErrValidation)
	}
	skill := &portfolio.Skill{
		ID:          portfolio.NewID("skill"),
		Name:        in.Name,
		Category:    in.Category,
		Level:       clampLevel(*in.Level),
		Description: in.Description,
		DateAdded:   portfolio.Now(),
	}
	if err := s.repo.AddSkill(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

type ExperienceInput struct {
	Role         string
	Company      string
	Duration     string
	Description  string
	Technologies []string
	Link         string
	Type         string
}

func (s *Service) CreateExperience(ctx context.Context, in ExperienceInput) (*portfolio.Experience, error) {
	if in.Role == "" || in.Company == "" || in.Duration == "" || in.Description == "" {
		return nil, fmt.Errorf("%w: role, company, duration, and description are required", ErrValidation)
	}
	if in.Type == "" {
		in.Type = "project"
	}
	exp := &portfolio.Experience{
		ID:           portfolio.NewID("exp"),
		Role:         in.Role,
		Company:      in.Company,
		Duration:     in.Duration,
		Description:  in.Description,
		Technologies: in.Technologies,
		Link:         in.Link,
		Type:         in.Type,
	}
	if exp.Technologies == nil {
		exp.Technologies = []string{}
	}
	if err := s.repo.AddExperience(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

// Delete removes the record with the given id from the named collection.
func (s *Service) Delete(ctx context.Context, collection, id string) error {
	return s.repo.Delete(ctx, collection, id)
}

// SplitTechnologies accepts the two wire shapes the SPA may send: a JSON
// array (already split) or a single comma-separated string.
func SplitTechnologies(raw []string, joined string) []string {
	if len(raw) > 0 {
		return raw
	}
	if joined == "" {
		return []string{}
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}
