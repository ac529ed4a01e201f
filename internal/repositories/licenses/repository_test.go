package licenses

import (
	"context"
	"database/sql"
	"testing"
	"time"

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

func TestExists_DistinguishesAbsentFromEmpty(t *testing.T) {
	r := NewRepository(newBlobs(t))
	ctx := context.Background()

	ok, err := r.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.ReplaceAll(ctx, []models.License{}))

	ok, err = r.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	items, err := r.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReplaceAll_RoundTrip(t *testing.T) {
	r := NewRepository(newBlobs(t))
	ctx := context.Background()
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	used := models.License{Code: "CV-AAAA0000", Status: models.LicenseActive, CreatedAt: at, CreatedBy: "admin@cvmaster.com"}
	used.Redeem("ana@x.com", at.Add(time.Hour))
	fresh := models.License{Code: "CV-BBBB1111", Status: models.LicenseActive, CreatedAt: at, CreatedBy: "admin@cvmaster.com"}

	require.NoError(t, r.ReplaceAll(ctx, []models.License{fresh, used}))

	got, err := r.All(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, fresh, got[0])
	assert.True(t, got[1].IsUsed())
	assert.Equal(t, "ana@x.com", got[1].UsedBy)
	require.NotNil(t, got[1].UsedAt)
	assert.True(t, at.Add(time.Hour).Equal(*got[1].UsedAt))
}

func TestFindByCode_IsExact(t *testing.T) {
	items := []models.License{{Code: "CV-AAAA0000"}, {Code: "CV-BBBB1111"}}

	assert.Equal(t, 1, FindByCode(items, "CV-BBBB1111"))
	assert.Equal(t, -1, FindByCode(items, "cv-bbbb1111"))
	assert.Equal(t, -1, FindByCode(items, " CV-BBBB1111"))
}
