// Package resumes stores the résumé archive, most recent first.
package resumes

import (
	"context"

	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/blobs"
)

const Key = "cv_master_resumes"

type Repository interface {
	All(ctx context.Context) ([]models.SavedResume, error)
	ReplaceAll(ctx context.Context, items []models.SavedResume) error
}

type BlobRepository struct {
	blobs blobs.Repository
}

func NewRepository(b blobs.Repository) *BlobRepository {
	return &BlobRepository{blobs: b}
}

func (r *BlobRepository) All(ctx context.Context) ([]models.SavedResume, error) {
	items, _, err := blobs.LoadJSON[[]models.SavedResume](ctx, r.blobs, Key)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.SavedResume{}
	}
	return items, nil
}

func (r *BlobRepository) ReplaceAll(ctx context.Context, items []models.SavedResume) error {
	if items == nil {
		items = []models.SavedResume{}
	}
	return blobs.SaveJSON(ctx, r.blobs, Key, items)
}
