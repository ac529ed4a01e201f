// Package models defines the records persisted by cvmaster: accounts,
// credentials, license codes and saved résumés.
package models

import "time"

// Role is the privilege level of an Account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Starting balances by role, also used to backfill records written before
// credits existed.
const (
	AdminCredits = 999
	UserCredits  = 5
)

// AdminLicenseCode is recorded as the license of privileged accounts, which
// never redeem a real code.
const AdminLicenseCode = "ADMIN-ACCESS"

// Account is an identity record. Email is normalised and unique.
// Credits is a pointer so records stored without a balance can be told
// apart from a zero balance.
type Account struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	LicenseCode string    `json:"licenseCode,omitempty"`
	Credits     *int      `json:"credits,omitempty"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Balance returns the credit balance, or 0 when it was never set.
func (a *Account) Balance() int {
	if a.Credits == nil {
		return 0
	}
	return *a.Credits
}

// SetCredits stores n as the balance.
func (a *Account) SetCredits(n int) {
	a.Credits = &n
}

// BackfillCredits sets the role's default balance when Credits is missing
// and reports whether the record changed.
func (a *Account) BackfillCredits() bool {
	if a.Credits != nil {
		return false
	}
	if a.IsAdmin() {
		a.SetCredits(AdminCredits)
	} else {
		a.SetCredits(UserCredits)
	}
	return true
}

// AccountRef is the ownership key of a saved résumé: the account id plus
// its email, either of which identifies the owner.
type AccountRef struct {
	ID    string
	Email string
}

// Ref returns the AccountRef of a.
func (a *Account) Ref() AccountRef {
	return AccountRef{ID: a.ID, Email: a.Email}
}
