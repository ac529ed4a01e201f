package credentials

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/cvmaster/internal/common"
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

func TestGet_AbsentIsNotFound(t *testing.T) {
	r := NewRepository(newBlobs(t))

	_, err := r.Get(context.Background(), "ana@x.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSetGet_EmptyHashIsStillPresent(t *testing.T) {
	r := NewRepository(newBlobs(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "ana@x.com", models.Credential{Algorithm: "argon2id"}))

	got, err := r.Get(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "argon2id", got.Algorithm)
	assert.Empty(t, got.Hash)
}

func TestSet_OverwritesAndUsesPerEmailKey(t *testing.T) {
	b := newBlobs(t)
	r := NewRepository(b)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "ana@x.com", models.Credential{Algorithm: "argon2id", Salt: []byte("s1"), Hash: []byte("h1")}))
	require.NoError(t, r.Set(ctx, "ana@x.com", models.Credential{Algorithm: "argon2id", Salt: []byte("s2"), Hash: []byte("h2")}))

	got, err := r.Get(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, []byte("h2"), got.Hash)

	all, err := b.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, all, "cv_master_pwd_ana@x.com")
}
