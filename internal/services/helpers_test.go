package services

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/cvmaster/internal/allowlist"
	"github.com/dmitrijs2005/cvmaster/internal/database"
	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

type testEnv struct {
	ctx      context.Context
	db       *sql.DB
	m        repomanager.RepositoryManager
	admins   *allowlist.List
	creds    CredentialStore
	dir      AccountDirectory
	licenses LicenseRegistry
	sessions SessionHolder
	resumes  ResumeArchive
	queries  AdminQueries
}

func fixedClock() func() time.Time { return func() time.Time { return testNow } }

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// newEnv opens a fresh migrated SQLite partition with deterministic clocks
// and ids.
func newEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, m, err := database.InitDatabase(ctx, "sqlite", filepath.Join(t.TempDir(), "cv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	admins := allowlist.New(
		allowlist.Admin{Email: "admin@cvmaster.com", Name: "Administrador", DefaultSecret: "admin123"},
		allowlist.Admin{Email: "Boss@CVMaster.com", Name: "Boss", DefaultSecret: "boss-default"},
	)

	dir := NewAccountDirectory(db, m, admins)
	dir.(*accountDirectory).now = fixedClock()
	dir.(*accountDirectory).newID = sequentialIDs("acc")

	lic := NewLicenseRegistry(db, m)
	lic.(*licenseRegistry).now = fixedClock()

	arch := NewResumeArchive(db, m)
	arch.(*resumeArchive).now = fixedClock()
	arch.(*resumeArchive).newID = sequentialIDs("res")

	return &testEnv{
		ctx:      ctx,
		db:       db,
		m:        m,
		admins:   admins,
		creds:    NewCredentialStore(db, m),
		dir:      dir,
		licenses: lic,
		sessions: NewSessionHolder(db, m, dir),
		resumes:  arch,
		queries:  NewAdminQueries(lic, dir),
	}
}

// issue puts an active license with a known code into the registry.
func (e *testEnv) issue(t *testing.T, code string) {
	t.Helper()
	r := e.licenses.(*licenseRegistry)
	orig := r.newCode
	r.newCode = func() (string, error) { return code, nil }
	defer func() { r.newCode = orig }()

	_, err := e.licenses.Generate(e.ctx, "admin@cvmaster.com")
	require.NoError(t, err)
}

func (e *testEnv) accounts(t *testing.T) []models.Account {
	t.Helper()
	items, err := e.dir.List(e.ctx)
	require.NoError(t, err)
	return items
}

func (e *testEnv) licenseByCode(t *testing.T, code string) models.License {
	t.Helper()
	items, err := e.licenses.List(e.ctx)
	require.NoError(t, err)
	for _, l := range items {
		if l.Code == code {
			return l
		}
	}
	t.Fatalf("license %s not found", code)
	return models.License{}
}
