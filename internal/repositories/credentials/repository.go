// Package credentials stores one credential per normalised email, each under
// its own key.
package credentials

import (
	"context"

	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/blobs"
)

// KeyPrefix is followed by the normalised email.
const KeyPrefix = "cv_master_pwd_"

func Key(email string) string {
	return KeyPrefix + email
}

type Repository interface {
	// Get returns common.ErrorNotFound when no credential is stored.
	Get(ctx context.Context, email string) (*models.Credential, error)
	Set(ctx context.Context, email string, cred models.Credential) error
}

type BlobRepository struct {
	blobs blobs.Repository
}

func NewRepository(b blobs.Repository) *BlobRepository {
	return &BlobRepository{blobs: b}
}

func (r *BlobRepository) Get(ctx context.Context, email string) (*models.Credential, error) {
	cred, found, err := blobs.LoadJSON[models.Credential](ctx, r.blobs, Key(email))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, common.ErrorNotFound
	}
	return &cred, nil
}

func (r *BlobRepository) Set(ctx context.Context, email string, cred models.Credential) error {
	return blobs.SaveJSON(ctx, r.blobs, Key(email), cred)
}
