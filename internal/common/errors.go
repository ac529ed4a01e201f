// Package common defines shared constants and sentinel errors used across
// cvmaster layers. Callers should use errors.Is to match these values.
//
// Messages are meant to be shown to the user as is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("administrator access required")

	// Account directory errors.
	ErrDuplicateAccount  = errors.New("this email is already registered")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidCredential = errors.New("incorrect password")

	// License registry errors.
	ErrLicenseRequired    = errors.New("a license code is required")
	ErrLicenseInvalid     = errors.New("invalid license code")
	ErrLicenseAlreadyUsed = errors.New("license already used")

	// Resume archive errors.
	ErrResumeNotFound = errors.New("resume not found")

	// Operator token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Transport errors.
	ErrTooManyRequests = errors.New("too many login attempts, try again later")
	ErrUnavailable     = errors.New("server unavailable")

	// Backup errors.
	ErrBackupNotConfigured = errors.New("backup storage is not configured")
)
