// Package repomanager vends the repositories of one storage backend bound to
// a dbx.DBTX, so a service can run them on the database or inside a
// transaction, and runs that backend's schema migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/cvmaster/internal/dbx"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/accounts"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/blobs"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/credentials"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/licenses"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/resumes"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/sessions"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Blobs(db dbx.DBTX) blobs.Repository
	Accounts(db dbx.DBTX) accounts.Repository
	Licenses(db dbx.DBTX) licenses.Repository
	Resumes(db dbx.DBTX) resumes.Repository
	Credentials(db dbx.DBTX) credentials.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}

// collections builds the typed repositories on top of a backend's blob
// repository. Backends embed it and supply Blobs.
type collections struct {
	blobs func(db dbx.DBTX) blobs.Repository
}

func (c collections) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewRepository(c.blobs(db))
}

func (c collections) Licenses(db dbx.DBTX) licenses.Repository {
	return licenses.NewRepository(c.blobs(db))
}

func (c collections) Resumes(db dbx.DBTX) resumes.Repository {
	return resumes.NewRepository(c.blobs(db))
}

func (c collections) Credentials(db dbx.DBTX) credentials.Repository {
	return credentials.NewRepository(c.blobs(db))
}

func (c collections) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewRepository(c.blobs(db))
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}
