package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/cvmaster/internal/auth"
	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/accounts"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/repomanager"
)

// TokenService issues operator access tokens. Unlike AccountDirectory.Login
// it leaves the session alone.
type TokenService interface {
	// Issue checks the credentials of an admin account and returns a signed
	// token. Unknown accounts and wrong secrets both yield
	// common.ErrorUnauthorized; non-admins get common.ErrorForbidden.
	Issue(ctx context.Context, email, secret string) (string, error)
}

type tokenService struct {
	db        *sql.DB
	m         repomanager.RepositoryManager
	creds     CredentialStore
	jwtSecret []byte
	validity  time.Duration
}

func NewTokenService(db *sql.DB, m repomanager.RepositoryManager, secretKey string, validity time.Duration) TokenService {
	return &tokenService{
		db:        db,
		m:         m,
		creds:     NewCredentialStore(db, m),
		jwtSecret: []byte(secretKey),
		validity:  validity,
	}
}

func (s *tokenService) Issue(ctx context.Context, email, secret string) (string, error) {
	email = models.NormalizeEmail(email)

	items, err := s.m.Accounts(s.db).All(ctx)
	if err != nil {
		return "", common.ErrorInternal
	}
	i := accounts.FindByEmail(items, email)
	if i == -1 {
		return "", common.ErrorUnauthorized
	}

	if err := s.creds.Verify(ctx, email, secret); err != nil {
		if errors.Is(err, common.ErrInvalidCredential) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !items[i].IsAdmin() {
		return "", common.ErrorForbidden
	}

	token, err := auth.GenerateToken(email, string(models.RoleAdmin), s.jwtSecret, s.validity)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
