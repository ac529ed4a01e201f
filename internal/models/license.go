package models

import "time"

// LicenseStatus is the redemption state of a License.
type LicenseStatus string

const (
	LicenseActive LicenseStatus = "active"
	LicenseUsed   LicenseStatus = "used"
)

// LicensePrefix starts every generated license code.
const LicensePrefix = "CV-"

// License is a single-use registration code. UsedBy and UsedAt are set
// exactly once, when the code is redeemed.
type License struct {
	Code      string        `json:"code"`
	Status    LicenseStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	CreatedBy string        `json:"createdBy"`
	UsedBy    string        `json:"usedBy,omitempty"`
	UsedAt    *time.Time    `json:"usedAt,omitempty"`
}

func (l *License) IsUsed() bool {
	return l.Status == LicenseUsed
}

// Redeem marks the license used by email at t.
func (l *License) Redeem(email string, t time.Time) {
	l.Status = LicenseUsed
	l.UsedBy = email
	l.UsedAt = &t
}
