package populate

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gamehub/internal/store"
	"gamehub/pkg/database"
	"gamehub/pkg/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestResolver_EnsureReferences(t *testing.T) {
	db := openTestDB(t)
	r := NewResolver(store.NewSQLStore(db), zap.NewNop())

	products := []models.ScrapedProduct{
		{
			Title:                     "Sample Quest",
			Slug:                      "sample_quest",
			Developer:                 "Stub Studio",
			Publisher:                 "Stub Publishing",
			Genres:                    []string{"Adventure", "Role-playing"},
			SupportedOperatingSystems: []string{"windows", "linux"},
		},
		{
			Title:                     "Sample Quest II",
			Slug:                      "sample_quest_2",
			Developer:                 "Stub Studio", // duplicate across products
			Publisher:                 "Stub Publishing",
			Genres:                    []string{"Adventure"}, // duplicate
			SupportedOperatingSystems: []string{"windows"},
		},
	}

	sum := r.EnsureReferences(context.Background(), products)
	// 1 developer + 1 publisher + 2 categories + 2 platforms
	assert.Equal(t, 6, sum.Created)
	assert.Equal(t, 0, sum.Existing)
	assert.Equal(t, 0, sum.Failed)

	var devCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM developers`).Scan(&devCount))
	assert.Equal(t, 1, devCount)

	var catCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&catCount))
	assert.Equal(t, 2, catCount)

	var slug string
	require.NoError(t, db.QueryRow(`SELECT slug FROM developers WHERE name = 'Stub Studio'`).Scan(&slug))
	assert.Equal(t, "stub-studio", slug)

	// re-running creates nothing new
	again := r.EnsureReferences(context.Background(), products)
	assert.Equal(t, 0, again.Created)
	assert.Equal(t, 6, again.Existing)
}

func TestResolver_EmptyBatch(t *testing.T) {
	db := openTestDB(t)
	r := NewResolver(store.NewSQLStore(db), zap.NewNop())

	sum := r.EnsureReferences(context.Background(), nil)
	assert.Zero(t, sum.Created)
	assert.Zero(t, sum.Failed)
}
