package models

// Stats are the counters shown on the operator dashboard.
type Stats struct {
	Accounts       int `json:"accounts"`
	Admins         int `json:"admins"`
	ActiveLicenses int `json:"activeLicenses"`
	UsedLicenses   int `json:"usedLicenses"`
}
