package runs

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamehub/internal/populate"
	"gamehub/pkg/database"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestRepo_RecordAndList(t *testing.T) {
	r := NewRepo(openTestDB(t))
	ctx := context.Background()

	started := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, r.Record(ctx, populate.Summary{
		Sort:        "popularity",
		Page:        "1",
		Total:       48,
		Created:     40,
		Skipped:     5,
		Failed:      2,
		Quarantined: 1,
		RefsCreated: 12,
		StartedAt:   started,
		FinishedAt:  started.Add(90 * time.Second),
	}))
	require.NoError(t, r.Record(ctx, populate.Summary{
		Sort:      "price",
		Page:      "2",
		StartedAt: started.Add(time.Hour),
	}))

	runs, err := r.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// newest first
	assert.Equal(t, "price", runs[0].Sort)
	assert.Equal(t, "popularity", runs[1].Sort)
	assert.Equal(t, 48, runs[1].Total)
	assert.Equal(t, 40, runs[1].Created)
	assert.Equal(t, 1, runs[1].Quarantined)
	assert.Equal(t, 12, runs[1].RefsCreated)
	assert.True(t, runs[1].StartedAt.Equal(started))
	assert.True(t, runs[1].FinishedAt.Equal(started.Add(90*time.Second)))
}

func TestRepo_ListLimit(t *testing.T) {
	r := NewRepo(openTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Record(ctx, populate.Summary{
			Sort:      "popularity",
			Page:      "1",
			StartedAt: time.Now().UTC(),
		}))
	}

	runs, err := r.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestRepo_ListEmpty(t *testing.T) {
	r := NewRepo(openTestDB(t))
	runs, err := r.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
