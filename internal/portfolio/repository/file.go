package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/samuveljohnson/portfolio/backend/go-services/internal/portfolio"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/logger"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Repository defines persistence operations for the portfolio document.
type Repository interface {
	Get(ctx context.Context) (*portfolio.Document, error)
	AddCertificate(ctx context.Context, c *portfolio.Certificate) error
	AddSkill(ctx context.Context, s *portfolio.Skill) error
	AddExperience(ctx context.Context, e *portfolio.Experience) error
	Delete(ctx context.Context, collection, id string) error
}

// FileRepo stores the whole document as one JSON file. All mutations run the
// read-modify-write cycle under a mutex and replace the file atomically via a
// temp file + rename, so concurrent requests cannot interleave partial writes
// or lose each other's updates.
type FileRepo struct {
	mu   sync.Mutex
	path string
}

func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

// load reads the document from disk. A missing or unparsable file yields the
// default empty document, which is written back immediately (an unparsable
// file is therefore replaced, matching the historical behavior, logged so
// the data loss is at least visible).
func (r *FileRepo) load() (*portfolio.Document, error) {
	b, err := os.ReadFile(r.path)
	if err == nil {
		var doc portfolio.Document
		if jerr := json.Unmarshal(b, &doc); jerr == nil {
			normalize(&doc)
			return &doc, nil
		}
		logger.Warnf("portfolio data file %s is unparsable; replacing with default empty document", r.path)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	doc := portfolio.NewDocument()
	if werr := r.save(doc); werr != nil {
		return nil, werr
	}
	return doc, nil
}

// save writes the document to a temp file in the same directory and renames
// it over the target, so readers never observe a half-written file.
func (r *FileRepo) save(doc *portfolio.Document) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".portfolio-*.json")
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

// mutate applies fn to the current document and persists the result.
func (r *FileRepo) mutate(fn func(doc *portfolio.Document) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	doc.LastUpdated = portfolio.Now()
	return r.save(doc)
}

func (r *FileRepo) Get(ctx context.Context) (*portfolio.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *FileRepo) AddCertificate(ctx context.Context, c *portfolio.Certificate) error {
	return r.mutate(func(doc *portfolio.Document) error {
		doc.Certificates = append(doc.Certificates, *c)
		return nil
	})
}

func (r *FileRepo) AddSkill(ctx context.Context, s *portfolio.Skill) error {
	return r.mutate(func(doc *portfolio.Document) error {
		doc.Skills = append(doc.Skills, *s)
		return nil
	})
}

func (r *FileRepo) AddExperience(ctx context.Context, e *portfolio.Experience) error {
	return r.mutate(func(doc *portfolio.Document) error {
		doc.Experiences = append(doc.Experiences, *e)
		return nil
	})
}

func (r *FileRepo) Delete(ctx context.Context, collection, id string) error {
	if !portfolio.KnownCollection(collection) {
		return ErrUnknownCollection
	}
	return r.mutate(func(doc *portfolio.Document) error {
		switch collection {
		case portfolio.CollectionCertificates:
			for i, c := range doc.Certificates {
				if c.ID == id {
					doc.Certificates = append(doc.Certificates[:i], doc.Certificates[i+1:]...)
					return nil
				}
			}
		case portfolio.CollectionSkills:
			for i, s := range doc.Skills {
				if s.ID == id {
					doc.Skills = append(doc.Skills[:i], doc.Skills[i+1:]...)
					return nil
				}
			}
		case portfolio.CollectionExperiences:
			for i, e := range doc.Experiences {
				if e.ID == id {
					doc.Experiences = append(doc.Experiences[:i], doc.Experiences[i+1:]...)
					return nil
				}
			}
		}
		return ErrNotFound
	})
}

// normalize replaces nil slices with empty ones so the JSON response always
// carries arrays, never null.
func normalize(doc *portfolio.Document) {
	if doc.Certificates == nil {
		doc.Certificates = []portfolio.Certificate{}
	}
	if doc.Skills == nil {
		doc.Skills = []portfolio.Skill{}
	}
	if doc.Experiences == nil {
		doc.Experiences = []portfolio.Experience{}
	}
}
