package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samuveljohnson/portfolio/backend/go-services/internal/portfolio"
)

func newTestRepo(t *testing.T) *FileRepo {
	t.Helper()
	return NewFileRepo(filepath.Join(t.TempDir(), "portfolio-data.json"))
}

func TestFileRepo_MissingFileYieldsDefault(t *testing.T) {
	repo := newTestRepo(t)

	doc, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.Empty(t, doc.Certificates)
	require.Empty(t, doc.Skills)
	require.Empty(t, doc.Experiences)
	require.NotEmpty(t, doc.LastUpdated)

	// the default document is persisted on first access
	_, err = os.Stat(repo.path)
	require.NoError(t, err)
}

func TestFileRepo_CorruptFileReplaced(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(repo.path), 0o755))
	require.NoError(t, os.WriteFile(repo.path, []byte("{not json"), 0o644))

	doc, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.Empty(t, doc.Certificates)

	b, err := os.ReadFile(repo.path)
	require.NoError(t, err)
	require.Contains(t, string(b), "certificates")
}

func TestFileRepo_AddAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cert := &portfolio.Certificate{ID: portfolio.NewID("cert"), Title: "AWS SAA", Issuer: "Amazon", Date: "2024-01"}
	require.NoError(t, repo.AddCertificate(ctx, cert))

	doc, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Certificates, 1)
	require.Equal(t, cert.ID, doc.Certificates[0].ID)

	require.NoError(t, repo.Delete(ctx, portfolio.CollectionCertificates, cert.ID))
	doc, err = repo.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, doc.Certificates)
}

func TestFileRepo_DeleteUnknownID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AddSkill(ctx, &portfolio.Skill{ID: portfolio.NewID("skill"), Name: "Go", Category: "Backend", Level: 80}))

	err := repo.Delete(ctx, portfolio.CollectionSkills, "skill_does_not_exist")
	require.ErrorIs(t, err, ErrNotFound)

	// failed delete must leave the collection unchanged
	doc, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Skills, 1)
}

func TestFileRepo_DeleteUnknownCollection(t *testing.T) {
	repo := newTestRepo(t)
	err := repo.Delete(context.Background(), "users", "x")
	require.ErrorIs(t, err, ErrUnknownCollection)
}

func TestFileRepo_ConcurrentAdds(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const n = 20
	done := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			done <- repo.AddSkill(ctx, &portfolio.Skill{ID: portfolio.NewID("skill"), Name: "x", Category: "y", Level: 1})
		}()
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-done)
	}

	doc, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Skills, n, "no write may be lost")

	seen := map[string]bool{}
	for _, s := range doc.Skills {
		require.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}
}

func TestFileRepo_LastUpdatedAdvances(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, doc.LastUpdated)

	require.NoError(t, repo.AddExperience(ctx, &portfolio.Experience{
		ID: portfolio.NewID("exp"), Role: "Dev", Company: "Acme", Duration: "2023", Description: "work",
	}))
	doc2, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Len(t, doc2.Experiences, 1)
	require.NotEmpty(t, doc2.LastUpdated)
}
