package portfolio

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Collection names accepted by the delete endpoint. These are also the JSON
// keys of the document, so the SPA can address records by the same strings.
const (
	CollectionCertificates = "certificates"
	CollectionSkills       = "skills"
	CollectionExperiences  = "experiences"
)

// Certificate is an admin-submitted credential. Records are append/delete
// only; an edit is modeled as delete followed by recreate.
type Certificate struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Title       string `json:"title" bson:"title"`
	Issuer      string `json:"issuer" bson:"issuer"`
	Date        string `json:"date" bson:"date"`
	Link        string `json:"link" bson:"link"`
	Image       string `json:"image" bson:"image"`
	Description string `json:"description" bson:"description"`
	Category    string `json:"category" bson:"category"`
}

// Skill carries a proficiency level clamped to [0,100] by the service layer.
type Skill struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	Category    string `json:"category" bson:"category"`
	Level       int    `json:"level" bson:"level"`
	Description string `json:"description" bson:"description"`
	DateAdded   string `json:"dateAdded" bson:"dateAdded"`
}

// Experience covers work, projects and volunteering, discriminated by Type.
type Experience struct {
	ID           string   `json:"id" bson:"_id,omitempty"`
	Role         string   `json:"role" bson:"role"`
	Company      string   `json:"company" bson:"company"`
	Duration     string   `json:"duration" bson:"duration"`
	Description  string   `json:"description" bson:"description"`
	Technologies []string `json:"technologies" bson:"technologies"`
	Link         string   `json:"link" bson:"link"`
	Type         string   `json:"type" bson:"type"`
}

// Document is the aggregate the SPA fetches in one request. It is also the
// unit of persistence for the file-backed repository.
type Document struct {
	Certificates []Certificate `json:"certificates"`
	Skills       []Skill       `json:"skills"`
	Experiences  []Experience  `json:"experiences"`
	LastUpdated  string        `json:"lastUpdated"`
}

// NewDocument returns the default empty document used when no backing data
// exists yet (or the existing data cannot be parsed).
func NewDocument() *Document {
	return &Document{
		Certificates: []Certificate{},
		Skills:       []Skill{},
		Experiences:  []Experience{},
		LastUpdated:  Now(),
	}
}

// Now formats the current UTC time the way the SPA expects timestamps.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// NewID generates a collision-resistant record id with a type prefix, e.g.
// "cert_6f1a...". Random UUIDs replace the old timestamp-concatenation scheme
// so two near-simultaneous creates cannot collide.
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// KnownCollection reports whether name is one of the three collections.
func KnownCollection(name string) bool {
	switch name {
	case CollectionCertificates, CollectionSkills, CollectionExperiences:
		return true
	}
	return false
}
