// Package services contains the business logic of cvmaster. Every service
// reads and writes whole collections through a repomanager.RepositoryManager;
// operations that touch several collections at once run in one transaction.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/cryptox"
	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/credentials"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/repomanager"
)

// CredentialStore keeps one salted argon2id verifier per normalised email.
// Secrets are never stored or returned.
type CredentialStore interface {
	// SetSecret overwrites the credential of email unconditionally.
	SetSecret(ctx context.Context, email, secret string) error
	HasSecret(ctx context.Context, email string) (bool, error)
	// Verify returns common.ErrInvalidCredential when no credential exists
	// or the secret does not match.
	Verify(ctx context.Context, email, secret string) error
}

type credentialStore struct {
	db *sql.DB
	m  repomanager.RepositoryManager
}

func NewCredentialStore(db *sql.DB, m repomanager.RepositoryManager) CredentialStore {
	return &credentialStore{db: db, m: m}
}

func (s *credentialStore) SetSecret(ctx context.Context, email, secret string) error {
	return setSecret(ctx, s.m.Credentials(s.db), email, secret)
}

func (s *credentialStore) HasSecret(ctx context.Context, email string) (bool, error) {
	return hasSecret(ctx, s.m.Credentials(s.db), email)
}

func (s *credentialStore) Verify(ctx context.Context, email, secret string) error {
	cred, err := s.m.Credentials(s.db).Get(ctx, models.NormalizeEmail(email))
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrInvalidCredential
	}
	if err != nil {
		return fmt.Errorf("error reading credential: %w", err)
	}
	if cred.Algorithm != cryptox.AlgorithmArgon2id || !cryptox.VerifySecret([]byte(secret), cred.Salt, cred.Hash) {
		return common.ErrInvalidCredential
	}
	return nil
}

// setSecret and hasSecret take the repository so callers can bind it to a
// transaction.
func setSecret(ctx context.Context, repo credentials.Repository, email, secret string) error {
	salt, hash := cryptox.HashSecret([]byte(secret))
	cred := models.Credential{Algorithm: cryptox.AlgorithmArgon2id, Salt: salt, Hash: hash}
	if err := repo.Set(ctx, models.NormalizeEmail(email), cred); err != nil {
		return fmt.Errorf("error storing credential: %w", err)
	}
	return nil
}

func hasSecret(ctx context.Context, repo credentials.Repository, email string) (bool, error) {
	_, err := repo.Get(ctx, models.NormalizeEmail(email))
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error reading credential: %w", err)
	}
	return true, nil
}
