package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	objects map[string][]byte
	putErr  error
}

func (s *memoryStore) Put(ctx context.Context, key string, body []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = body
	return nil
}

func (s *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, ok := s.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return b, nil
}

func TestBackupService_NotConfigured(t *testing.T) {
	e := newEnv(t)
	svc := NewBackupService(e.db, e.m, nil)

	_, err := svc.Backup(e.ctx)
	require.ErrorIs(t, err, common.ErrBackupNotConfigured)
	require.ErrorIs(t, svc.Restore(e.ctx, "k"), common.ErrBackupNotConfigured)
}

func TestBackupService_RoundTrip(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.sessions.Init(e.ctx))
	e.issue(t, "CV-ABC12345")
	ana, err := e.dir.Register(e.ctx, "Ana", "ana@x.com", "pw", "CV-ABC12345")
	require.NoError(t, err)
	_, err = e.resumes.Save(e.ctx, ana.Ref(), resumeDoc("Engineer"))
	require.NoError(t, err)

	store := &memoryStore{}
	svc := NewBackupService(e.db, e.m, store)
	svc.(*backupService).now = fixedClock()

	key, err := svc.Backup(e.ctx)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^backups/2024/03/09/[0-9a-f-]{36}\.json$`), key)

	// diverge after the snapshot
	_, err = e.resumes.Save(e.ctx, ana.Ref(), resumeDoc("Later"))
	require.NoError(t, err)
	require.NoError(t, e.m.Blobs(e.db).Set(e.ctx, "stray", []byte("x")))

	require.NoError(t, svc.Restore(e.ctx, key))

	list, err := e.resumes.ListForAccount(e.ctx, models.AccountRef{ID: ana.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Engineer", list[0].Title)

	stray, err := e.m.Blobs(e.db).Get(e.ctx, "stray")
	require.NoError(t, err)
	assert.Nil(t, stray)

	_, err = e.dir.Login(e.ctx, "ana@x.com", "pw")
	require.NoError(t, err)
}

func TestBackupService_Errors(t *testing.T) {
	e := newEnv(t)
	store := &memoryStore{putErr: errors.New("bucket gone")}
	svc := NewBackupService(e.db, e.m, store)

	_, err := svc.Backup(e.ctx)
	require.ErrorContains(t, err, "bucket gone")

	require.ErrorContains(t, svc.Restore(e.ctx, "missing"), "no such key")

	store.putErr = nil
	store.objects = map[string][]byte{"bad": []byte("{")}
	require.ErrorContains(t, svc.Restore(e.ctx, "bad"), "error decoding snapshot")
}
