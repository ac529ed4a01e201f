// Package accounts stores the account directory as a single collection.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/blobs"
)

// Key of the collection in the partition.
const Key = "cv_master_users"

type Repository interface {
	// All returns every account in stored order; an absent collection is empty.
	All(ctx context.Context) ([]models.Account, error)
	// ReplaceAll writes the whole collection.
	ReplaceAll(ctx context.Context, items []models.Account) error
}

type BlobRepository struct {
	blobs blobs.Repository
}

func NewRepository(b blobs.Repository) *BlobRepository {
	return &BlobRepository{blobs: b}
}

func (r *BlobRepository) All(ctx context.Context) ([]models.Account, error) {
	items, _, err := blobs.LoadJSON[[]models.Account](ctx, r.blobs, Key)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Account{}
	}
	return items, nil
}

func (r *BlobRepository) ReplaceAll(ctx context.Context, items []models.Account) error {
	if items == nil {
		items = []models.Account{}
	}
	return blobs.SaveJSON(ctx, r.blobs, Key, items)
}

// FindByEmail returns the index of the account with the normalised email,
// or -1.
func FindByEmail(items []models.Account, email string) int {
	for i := range items {
		if items[i].Email == email {
			return i
		}
	}
	return -1
}

// FindByID returns the index of the account with id, or -1.
func FindByID(items []models.Account, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
