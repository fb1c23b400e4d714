package audit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE design_history (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			design_id TEXT,
			source TEXT NOT NULL,
			revision INTEGER NOT NULL DEFAULT 0,
			details TEXT,
			created_at TEXT NOT NULL
		)`)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup
	return db
}

func TestCreateAndList(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := &Entry{Action: ActionSave, DesignID: "d-1", Source: SourceAPI, Revision: 3, CreatedAt: base}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEmpty(t, first.ID)

	require.NoError(t, repo.Create(ctx, &Entry{
		Action:    ActionImport,
		Source:    SourceMQTT,
		Revision:  4,
		Details:   map[string]any{"width": 50.0},
		CreatedAt: base.Add(time.Minute),
	}))

	res, err := repo.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, defaultLimit, res.Limit)
	require.Len(t, res.Entries, 2)

	latest := res.Entries[0]
	assert.Equal(t, ActionImport, latest.Action)
	assert.Empty(t, latest.DesignID)
	assert.Equal(t, uint64(4), latest.Revision)
	assert.Equal(t, 50.0, latest.Details["width"])

	assert.Equal(t, "d-1", res.Entries[1].DesignID)
	assert.True(t, res.Entries[1].CreatedAt.Equal(base))
}

func TestListFilters(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	for i, action := range []string{ActionSave, ActionLoad, ActionSave, ActionDelete} {
		require.NoError(t, repo.Create(ctx, &Entry{
			Action:    action,
			DesignID:  "d-1",
			Source:    SourceAPI,
			CreatedAt: time.Unix(int64(1000+i), 0).UTC(),
		}))
	}
	require.NoError(t, repo.Create(ctx, &Entry{Action: ActionSave, DesignID: "d-2", Source: SourceAPI}))

	res, err := repo.List(ctx, Filter{Action: ActionSave})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)

	res, err = repo.List(ctx, Filter{Action: ActionSave, DesignID: "d-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	res, err = repo.List(ctx, Filter{DesignID: "d-1", Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, ActionSave, res.Entries[0].Action)
}

func TestListClampsPaging(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))

	res, err := repo.List(context.Background(), Filter{Limit: 1000, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, maxLimit, res.Limit)
	assert.Equal(t, 0, res.Offset)
	assert.NotNil(t, res.Entries)
}
