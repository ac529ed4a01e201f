package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/repomanager"
)

// SessionHolder owns the single authenticated account of the partition.
// States: no session, or authenticated as one account. Sessions never expire.
type SessionHolder interface {
	// Init bootstraps the admins and creates an empty license listing when
	// none exists. It must run before anything else and is idempotent.
	Init(ctx context.Context) error
	// CurrentUser returns the session account or nil. A missing balance is
	// backfilled and the backfilled copy persisted.
	CurrentUser(ctx context.Context) (*models.Account, error)
	Logout(ctx context.Context) error
}

type sessionHolder struct {
	db        *sql.DB
	m         repomanager.RepositoryManager
	directory AccountDirectory
}

func NewSessionHolder(db *sql.DB, m repomanager.RepositoryManager, directory AccountDirectory) SessionHolder {
	return &sessionHolder{db: db, m: m, directory: directory}
}

func (s *sessionHolder) Init(ctx context.Context) error {
	if err := s.directory.BootstrapAdmins(ctx); err != nil {
		return fmt.Errorf("error bootstrapping admins: %w", err)
	}

	repo := s.m.Licenses(s.db)
	ok, err := repo.Exists(ctx)
	if err != nil {
		return fmt.Errorf("error reading licenses: %w", err)
	}
	if ok {
		return nil
	}
	if err := repo.ReplaceAll(ctx, nil); err != nil {
		return fmt.Errorf("error storing licenses: %w", err)
	}
	return nil
}

func (s *sessionHolder) CurrentUser(ctx context.Context) (*models.Account, error) {
	repo := s.m.Sessions(s.db)

	acc, err := repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading session: %w", err)
	}
	if acc == nil {
		return nil, nil
	}
	if acc.BackfillCredits() {
		if err := repo.Set(ctx, *acc); err != nil {
			return nil, fmt.Errorf("error storing session: %w", err)
		}
	}
	return acc, nil
}

func (s *sessionHolder) Logout(ctx context.Context) error {
	return s.directory.Logout(ctx)
}
