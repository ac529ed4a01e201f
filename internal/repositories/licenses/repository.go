// Package licenses stores the license registry, most recent first.
package licenses

import (
	"context"

	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/blobs"
)

const Key = "cv_master_licenses"

type Repository interface {
	All(ctx context.Context) ([]models.License, error)
	ReplaceAll(ctx context.Context, items []models.License) error
	// Exists reports whether the collection was ever written, even empty.
	Exists(ctx context.Context) (bool, error)
}

type BlobRepository struct {
	blobs blobs.Repository
}

func NewRepository(b blobs.Repository) *BlobRepository {
	return &BlobRepository{blobs: b}
}

func (r *BlobRepository) All(ctx context.Context) ([]models.License, error) {
	items, _, err := blobs.LoadJSON[[]models.License](ctx, r.blobs, Key)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.License{}
	}
	return items, nil
}

func (r *BlobRepository) ReplaceAll(ctx context.Context, items []models.License) error {
	if items == nil {
		items = []models.License{}
	}
	return blobs.SaveJSON(ctx, r.blobs, Key, items)
}

func (r *BlobRepository) Exists(ctx context.Context) (bool, error) {
	raw, err := r.blobs.Get(ctx, Key)
	if err != nil {
		return false, err
	}
	return raw != nil, nil
}

// FindByCode returns the index of the license with exactly this code, or -1.
func FindByCode(items []models.License, code string) int {
	for i := range items {
		if items[i].Code == code {
			return i
		}
	}
	return -1
}
