package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/dbx"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/accounts"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/licenses"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/repomanager"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/resumes"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/sessions"
	"github.com/google/uuid"
)

// collectionKeys are the read-modify-write keys a restore must not race with.
var collectionKeys = []string{accounts.Key, licenses.Key, resumes.Key, sessions.Key}

// ObjectStore is the remote storage backups are written to.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// Snapshot is the backup format: every key of the partition with its raw value.
type Snapshot struct {
	CreatedAt time.Time         `json:"createdAt"`
	Blobs     map[string][]byte `json:"blobs"`
}

// BackupService copies the whole partition to an ObjectStore and back.
type BackupService interface {
	// Backup uploads a snapshot and returns its object key.
	Backup(ctx context.Context) (string, error)
	// Restore replaces the partition with the snapshot stored under key,
	// in one transaction.
	Restore(ctx context.Context, key string) error
}

type backupService struct {
	db    *sql.DB
	m     repomanager.RepositoryManager
	store ObjectStore
	now   func() time.Time
}

// NewBackupService returns a BackupService; with a nil store every call
// fails with common.ErrBackupNotConfigured.
func NewBackupService(db *sql.DB, m repomanager.RepositoryManager, store ObjectStore) BackupService {
	return &backupService{db: db, m: m, store: store, now: time.Now}
}

func (s *backupService) Backup(ctx context.Context) (string, error) {
	if s.store == nil {
		return "", common.ErrBackupNotConfigured
	}

	all, err := s.m.Blobs(s.db).List(ctx)
	if err != nil {
		return "", fmt.Errorf("error reading store: %w", err)
	}

	now := s.now().UTC()
	body, err := json.Marshal(Snapshot{CreatedAt: now, Blobs: all})
	if err != nil {
		return "", fmt.Errorf("error encoding snapshot: %w", err)
	}

	key := fmt.Sprintf("backups/%s/%s.json", now.Format("2006/01/02"), uuid.NewString())
	if err := s.store.Put(ctx, key, body); err != nil {
		return "", fmt.Errorf("error uploading snapshot: %w", err)
	}
	return key, nil
}

func (s *backupService) Restore(ctx context.Context, key string) error {
	if s.store == nil {
		return common.ErrBackupNotConfigured
	}

	body, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("error downloading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return fmt.Errorf("error decoding snapshot: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockKeys(ctx, s.m, tx, collectionKeys...); err != nil {
			return err
		}
		repo := s.m.Blobs(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		for k, v := range snap.Blobs {
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}
