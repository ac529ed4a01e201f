// Package database opens the storage partition and prepares its schema.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cvmaster/internal/config"
	"github.com/dmitrijs2005/cvmaster/internal/filex"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/repomanager"
)

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// sqliteParams make a second process wait for the write lock instead of
// failing with SQLITE_BUSY, and take that lock when a transaction begins.
const sqliteParams = "_pragma=busy_timeout(5000)&_txlock=immediate"

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqliteParams
	}
	return dsn + "?" + sqliteParams
}

// InitDatabase opens the database for driver ("sqlite" or "postgres"),
// runs migrations and returns the matching RepositoryManager.
//
// SQLite is limited to one connection: the partition has a single writer
// and an in-memory DSN stays one database. Other processes sharing the file
// queue behind its write lock for up to five seconds.
func InitDatabase(ctx context.Context, driver, dsn string) (*sql.DB, repomanager.RepositoryManager, error) {
	var (
		sqlDriver string
		manager   repomanager.RepositoryManager
	)

	switch driver {
	case config.DriverSQLite:
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, nil, err
		}
		sqlDriver = "sqlite"
		dsn = sqliteDSN(dsn)
		manager = repomanager.NewSQLiteRepositoryManager()
	case config.DriverPostgres:
		sqlDriver = "pgx"
		manager = repomanager.NewPostgresRepositoryManager()
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}

	db, err := sqlOpen(sqlDriver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if err := manager.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate %s: %w", driver, err)
	}

	return db, manager, nil
}
