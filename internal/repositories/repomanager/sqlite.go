package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/cvmaster/internal/dbx"
	"github.com/dmitrijs2005/cvmaster/internal/migrations"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/blobs"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends repositories over an embedded SQLite file.
type SQLiteRepositoryManager struct {
	collections
}

// Blobs returns a blobs.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Blobs(db dbx.DBTX) blobs.Repository {
	return blobs.NewSQLiteRepository(db)
}

// RunMigrations applies the embedded sqlite migrations.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, migrations.SQLiteDir)
}

func NewSQLiteRepositoryManager() RepositoryManager {
	m := &SQLiteRepositoryManager{}
	m.collections = collections{blobs: m.Blobs}
	return m
}
