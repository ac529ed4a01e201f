package resumes

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/blobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newBlobs(t *testing.T) *blobs.SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE kv_store (key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`)
	require.NoError(t, err)
	return blobs.NewSQLiteRepository(db)
}

func TestAll_AbsentIsEmpty(t *testing.T) {
	r := NewRepository(newBlobs(t))

	items, err := r.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReplaceAll_RoundTripKeepsPayload(t *testing.T) {
	r := NewRepository(newBlobs(t))
	ctx := context.Background()

	doc := models.ResumeDocument{
		SchemaVersion: models.ResumeSchemaVersion,
		Markdown:      "# Ana",
		Structured:    &models.StructuredResume{Role: "Engineer", Skills: []string{"go"}},
	}
	items := []models.SavedResume{{ID: "r1", UserID: "u1", UserEmail: "ana@x.com", Title: "Engineer", Data: doc}}
	require.NoError(t, r.ReplaceAll(ctx, items))

	got, err := r.All(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, doc, got[0].Data)
}
