package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/cvmaster/internal/allowlist"
	"github.com/dmitrijs2005/cvmaster/internal/config"
	"github.com/dmitrijs2005/cvmaster/internal/database"
	"github.com/dmitrijs2005/cvmaster/internal/logging"
	"github.com/dmitrijs2005/cvmaster/internal/objectstore"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/repomanager"
	"github.com/dmitrijs2005/cvmaster/internal/services"
)

type App struct {
	logger    logging.Logger
	db        *sql.DB
	out       io.Writer
	reader    *bufio.Reader
	sessions  services.SessionHolder
	directory services.AccountDirectory
	licenses  services.LicenseRegistry
	resumes   services.ResumeArchive
	queries   services.AdminQueries
	backups   services.BackupService

	getSimpleText func(prompt string) (string, error)
	getPassword   func() ([]byte, error)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewText(os.Stderr, c.LogLevel)

	admins, err := allowlist.Load(c.AdminsFile)
	if err != nil {
		return nil, fmt.Errorf("error loading admins: %w", err)
	}

	db, m, err := database.InitDatabase(ctx, c.StoreDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	var store services.ObjectStore
	if c.BackupsEnabled() {
		s3, err := objectstore.NewS3Store(ctx, c)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		store = s3
	}

	return newApp(logger, db, m, admins, store, os.Stdin, os.Stdout), nil
}

func newApp(logger logging.Logger, db *sql.DB, m repomanager.RepositoryManager, admins *allowlist.List,
	store services.ObjectStore, in io.Reader, out io.Writer) *App {
	directory := services.NewAccountDirectory(db, m, admins)
	licenses := services.NewLicenseRegistry(db, m)

	a := &App{
		logger:    logger.With("module", "cli"),
		db:        db,
		out:       out,
		reader:    bufio.NewReader(in),
		sessions:  services.NewSessionHolder(db, m, directory),
		directory: directory,
		licenses:  licenses,
		resumes:   services.NewResumeArchive(db, m),
		queries:   services.NewAdminQueries(licenses, directory),
		backups:   services.NewBackupService(db, m, store),
	}

	a.getSimpleText = func(prompt string) (string, error) {
		return GetSimpleText(a.reader, prompt, out)
	}
	a.getPassword = func() ([]byte, error) {
		return GetPassword(out)
	}
	return a
}

// Run initialises the store and runs the REPL until EOF or exit.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	if err := a.sessions.Init(ctx); err != nil {
		return fmt.Errorf("error initializing store: %w", err)
	}

	fmt.Fprintln(a.out, "Welcome to CV Master (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.status(ctx) }, a.out, a.reader)
	return nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// fail reports err to the user and returns it.
func (a *App) fail(ctx context.Context, op string, err error) error {
	a.logger.Debug(ctx, op+" failed", "error", err)
	a.println("error:", err.Error())
	return err
}
