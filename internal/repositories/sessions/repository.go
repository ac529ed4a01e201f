// Package sessions stores the single authenticated account of the partition.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/blobs"
)

const Key = "cv_master_current_user"

type Repository interface {
	// Get returns the session account, or nil when nobody is logged in.
	Get(ctx context.Context) (*models.Account, error)
	Set(ctx context.Context, acc models.Account) error
	Clear(ctx context.Context) error
}

type BlobRepository struct {
	blobs blobs.Repository
}

func NewRepository(b blobs.Repository) *BlobRepository {
	return &BlobRepository{blobs: b}
}

func (r *BlobRepository) Get(ctx context.Context) (*models.Account, error) {
	acc, found, err := blobs.LoadJSON[models.Account](ctx, r.blobs, Key)
	if err != nil || !found {
		return nil, err
	}
	return &acc, nil
}

func (r *BlobRepository) Set(ctx context.Context, acc models.Account) error {
	return blobs.SaveJSON(ctx, r.blobs, Key, acc)
}

func (r *BlobRepository) Clear(ctx context.Context) error {
	return r.blobs.Delete(ctx, Key)
}
