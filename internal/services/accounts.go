package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cvmaster/internal/allowlist"
	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/dbx"
	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/accounts"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/licenses"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/repomanager"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/sessions"
	"github.com/google/uuid"
)

// AccountDirectory manages accounts and their login state.
//
// Contract:
//   - BootstrapAdmins: make sure every allow-listed admin exists with role
//     admin and a full balance; seed default secrets only where none exist.
//   - Register: create an account, redeeming a license unless the email is
//     allow-listed, and log it in. All writes land together or not at all.
//   - Login / Logout: open or close the session.
//   - ResetPassword: overwrite the secret of an existing account.
//   - List / UpdateCredits: operator views and balance changes.
type AccountDirectory interface {
	BootstrapAdmins(ctx context.Context) error
	Register(ctx context.Context, name, email, secret, licenseCode string) (*models.Account, error)
	Login(ctx context.Context, email, secret string) (*models.Account, error)
	ResetPassword(ctx context.Context, email, licenseCode, newSecret string) error
	Logout(ctx context.Context) error
	List(ctx context.Context) ([]models.Account, error)
	// UpdateCredits sets the balance of accountID and reports whether the
	// account exists. The session copy follows when it is the same account.
	UpdateCredits(ctx context.Context, accountID string, credits int) (bool, error)
}

type accountDirectory struct {
	db     *sql.DB
	m      repomanager.RepositoryManager
	admins *allowlist.List
	creds  CredentialStore
	now    func() time.Time
	newID  func() string
}

func NewAccountDirectory(db *sql.DB, m repomanager.RepositoryManager, admins *allowlist.List) AccountDirectory {
	return &accountDirectory{
		db:     db,
		m:      m,
		admins: admins,
		creds:  NewCredentialStore(db, m),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func adminAccountID(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return "admin-" + local
}

func (d *accountDirectory) BootstrapAdmins(ctx context.Context) error {
	return dbx.WithTx(ctx, d.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockKeys(ctx, d.m, tx, accounts.Key); err != nil {
			return err
		}
		repo := d.m.Accounts(tx)
		credRepo := d.m.Credentials(tx)

		items, err := repo.All(ctx)
		if err != nil {
			return fmt.Errorf("error reading accounts: %w", err)
		}

		changed := false
		for i := range items {
			if items[i].BackfillCredits() {
				changed = true
			}
		}

		for _, admin := range d.admins.Admins() {
			i := accounts.FindByEmail(items, admin.Email)
			if i == -1 {
				acc := models.Account{
					ID:          adminAccountID(admin.Email),
					Name:        admin.Name,
					Email:       admin.Email,
					Role:        models.RoleAdmin,
					CreatedAt:   d.now().UTC(),
					LicenseCode: models.AdminLicenseCode,
				}
				acc.SetCredits(models.AdminCredits)
				items = append(items, acc)
				changed = true
			} else if !items[i].IsAdmin() || items[i].Credits == nil {
				items[i].Role = models.RoleAdmin
				items[i].SetCredits(models.AdminCredits)
				changed = true
			}

			ok, err := hasSecret(ctx, credRepo, admin.Email)
			if err != nil {
				return err
			}
			if !ok {
				if err := setSecret(ctx, credRepo, admin.Email, admin.DefaultSecret); err != nil {
					return err
				}
			}
		}

		if !changed {
			return nil
		}
		if err := repo.ReplaceAll(ctx, items); err != nil {
			return fmt.Errorf("error storing accounts: %w", err)
		}
		return nil
	})
}

func (d *accountDirectory) Register(ctx context.Context, name, email, secret, licenseCode string) (*models.Account, error) {
	email = models.NormalizeEmail(email)
	isAdmin := d.admins.Contains(email)

	var created models.Account
	err := dbx.WithTx(ctx, d.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockKeys(ctx, d.m, tx, accounts.Key, licenses.Key); err != nil {
			return err
		}
		repo := d.m.Accounts(tx)

		items, err := repo.All(ctx)
		if err != nil {
			return fmt.Errorf("error reading accounts: %w", err)
		}
		if accounts.FindByEmail(items, email) != -1 {
			return common.ErrDuplicateAccount
		}

		now := d.now().UTC()
		acc := models.Account{
			ID:        d.newID(),
			Name:      name,
			Email:     email,
			CreatedAt: now,
		}
		if isAdmin {
			acc.Role = models.RoleAdmin
			acc.LicenseCode = models.AdminLicenseCode
			acc.SetCredits(models.AdminCredits)
		} else {
			if err := redeem(ctx, d.m.Licenses(tx), licenseCode, email, now); err != nil {
				return err
			}
			acc.Role = models.RoleUser
			acc.LicenseCode = licenseCode
			acc.SetCredits(models.UserCredits)
		}

		if err := repo.ReplaceAll(ctx, append(items, acc)); err != nil {
			return fmt.Errorf("error storing accounts: %w", err)
		}
		if err := setSecret(ctx, d.m.Credentials(tx), email, secret); err != nil {
			return err
		}
		if err := d.m.Sessions(tx).Set(ctx, acc); err != nil {
			return fmt.Errorf("error storing session: %w", err)
		}

		created = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (d *accountDirectory) Login(ctx context.Context, email, secret string) (*models.Account, error) {
	email = models.NormalizeEmail(email)

	acc, err := d.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := d.creds.Verify(ctx, email, secret); err != nil {
		return nil, err
	}
	if err := d.m.Sessions(d.db).Set(ctx, *acc); err != nil {
		return nil, fmt.Errorf("error storing session: %w", err)
	}
	return acc, nil
}

// ResetPassword does not check licenseCode against the registry.
func (d *accountDirectory) ResetPassword(ctx context.Context, email, licenseCode, newSecret string) error {
	email = models.NormalizeEmail(email)

	if _, err := d.findByEmail(ctx, email); err != nil {
		return err
	}
	return d.creds.SetSecret(ctx, email, newSecret)
}

func (d *accountDirectory) Logout(ctx context.Context) error {
	if err := d.m.Sessions(d.db).Clear(ctx); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}

func (d *accountDirectory) List(ctx context.Context) ([]models.Account, error) {
	items, err := d.m.Accounts(d.db).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading accounts: %w", err)
	}
	return items, nil
}

func (d *accountDirectory) UpdateCredits(ctx context.Context, accountID string, credits int) (bool, error) {
	found := false
	err := dbx.WithTx(ctx, d.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockKeys(ctx, d.m, tx, accounts.Key, sessions.Key); err != nil {
			return err
		}
		repo := d.m.Accounts(tx)
		items, err := repo.All(ctx)
		if err != nil {
			return fmt.Errorf("error reading accounts: %w", err)
		}

		i := accounts.FindByID(items, accountID)
		if i == -1 {
			return nil
		}
		found = true

		items[i].SetCredits(credits)
		if err := repo.ReplaceAll(ctx, items); err != nil {
			return fmt.Errorf("error storing accounts: %w", err)
		}

		sess := d.m.Sessions(tx)
		current, err := sess.Get(ctx)
		if err != nil {
			return fmt.Errorf("error reading session: %w", err)
		}
		if current == nil || current.ID != accountID {
			return nil
		}
		current.SetCredits(credits)
		if err := sess.Set(ctx, *current); err != nil {
			return fmt.Errorf("error storing session: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (d *accountDirectory) findByEmail(ctx context.Context, email string) (*models.Account, error) {
	items, err := d.m.Accounts(d.db).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading accounts: %w", err)
	}
	i := accounts.FindByEmail(items, email)
	if i == -1 {
		return nil, common.ErrAccountNotFound
	}
	return &items[i], nil
}


// lockKeys serialises concurrent writers of keys until tx ends.
func lockKeys(ctx context.Context, m repomanager.RepositoryManager, tx dbx.DBTX, keys ...string) error {
	if err := m.Blobs(tx).Lock(ctx, keys...); err != nil {
		return fmt.Errorf("error locking %s: %w", strings.Join(keys, ", "), err)
	}
	return nil
}
