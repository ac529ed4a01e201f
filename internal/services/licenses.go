package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/dbx"
	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/licenses"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/repomanager"
)

const (
	licenseCodeLength   = 8
	licenseCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// attempts to find an unused code before giving up
	licenseCodeAttempts = 16
)

var errLicenseCodeExhausted = errors.New("could not generate a unique license code")

// LicenseRegistry issues license codes. Redemption happens only as part of
// AccountDirectory.Register.
type LicenseRegistry interface {
	// Generate issues a new active code created by issuerEmail and puts it
	// first in the listing.
	Generate(ctx context.Context, issuerEmail string) (*models.License, error)
	// List returns every license, most recent first.
	List(ctx context.Context) ([]models.License, error)
}

type licenseRegistry struct {
	db      *sql.DB
	m       repomanager.RepositoryManager
	now     func() time.Time
	newCode func() (string, error)
}

func NewLicenseRegistry(db *sql.DB, m repomanager.RepositoryManager) LicenseRegistry {
	return &licenseRegistry{db: db, m: m, now: time.Now, newCode: newLicenseCode}
}

func newLicenseCode() (string, error) {
	suffix, err := common.RandString(licenseCodeLength, licenseCodeAlphabet)
	if err != nil {
		return "", err
	}
	return models.LicensePrefix + suffix, nil
}

func (r *licenseRegistry) Generate(ctx context.Context, issuerEmail string) (*models.License, error) {
	var lic models.License
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockKeys(ctx, r.m, tx, licenses.Key); err != nil {
			return err
		}
		repo := r.m.Licenses(tx)

		items, err := repo.All(ctx)
		if err != nil {
			return fmt.Errorf("error reading licenses: %w", err)
		}

		code, err := r.uniqueCode(items)
		if err != nil {
			return err
		}

		lic = models.License{
			Code:      code,
			Status:    models.LicenseActive,
			CreatedAt: r.now().UTC(),
			CreatedBy: models.NormalizeEmail(issuerEmail),
		}

		items = append([]models.License{lic}, items...)
		if err := repo.ReplaceAll(ctx, items); err != nil {
			return fmt.Errorf("error storing licenses: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &lic, nil
}

func (r *licenseRegistry) uniqueCode(items []models.License) (string, error) {
	for range licenseCodeAttempts {
		code, err := r.newCode()
		if err != nil {
			return "", fmt.Errorf("error generating license code: %w", err)
		}
		if licenses.FindByCode(items, code) == -1 {
			return code, nil
		}
	}
	return "", errLicenseCodeExhausted
}

func (r *licenseRegistry) List(ctx context.Context) ([]models.License, error) {
	items, err := r.m.Licenses(r.db).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading licenses: %w", err)
	}
	return items, nil
}

// redeem marks code used by email. The code must match exactly; only the
// emptiness check ignores surrounding blanks. Errors come in this order:
// ErrLicenseRequired, ErrLicenseInvalid, ErrLicenseAlreadyUsed.
func redeem(ctx context.Context, repo licenses.Repository, code, email string, at time.Time) error {
	if strings.TrimSpace(code) == "" {
		return common.ErrLicenseRequired
	}

	items, err := repo.All(ctx)
	if err != nil {
		return fmt.Errorf("error reading licenses: %w", err)
	}

	i := licenses.FindByCode(items, code)
	if i == -1 {
		return common.ErrLicenseInvalid
	}
	if items[i].IsUsed() {
		return common.ErrLicenseAlreadyUsed
	}

	items[i].Redeem(email, at)
	if err := repo.ReplaceAll(ctx, items); err != nil {
		return fmt.Errorf("error storing licenses: %w", err)
	}
	return nil
}
