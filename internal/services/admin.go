package services

import (
	"context"

	"github.com/dmitrijs2005/cvmaster/internal/models"
)

// AdminQueries is the read-only operator view over accounts and licenses.
// Results are full, unfiltered and unpaginated.
type AdminQueries interface {
	ListLicenses(ctx context.Context) ([]models.License, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

type adminQueries struct {
	licenses LicenseRegistry
	accounts AccountDirectory
}

func NewAdminQueries(licenses LicenseRegistry, accounts AccountDirectory) AdminQueries {
	return &adminQueries{licenses: licenses, accounts: accounts}
}

func (q *adminQueries) ListLicenses(ctx context.Context) ([]models.License, error) {
	return q.licenses.List(ctx)
}

func (q *adminQueries) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return q.accounts.List(ctx)
}

func (q *adminQueries) Stats(ctx context.Context) (*models.Stats, error) {
	accs, err := q.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	lics, err := q.licenses.List(ctx)
	if err != nil {
		return nil, err
	}

	st := &models.Stats{Accounts: len(accs)}
	for i := range accs {
		if accs[i].IsAdmin() {
			st.Admins++
		}
	}
	for i := range lics {
		if lics[i].IsUsed() {
			st.UsedLicenses++
		} else {
			st.ActiveLicenses++
		}
	}
	return st, nil
}
