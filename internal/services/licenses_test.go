package services

import (
	"errors"
	"regexp"
	"testing"

	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var licenseCodeRe = regexp.MustCompile(`^CV-[A-Z0-9]{8}$`)

func TestLicenseRegistry_GeneratePrependsActiveCodes(t *testing.T) {
	e := newEnv(t)

	first, err := e.licenses.Generate(e.ctx, "Admin@CVMaster.com")
	require.NoError(t, err)
	second, err := e.licenses.Generate(e.ctx, "admin@cvmaster.com")
	require.NoError(t, err)

	assert.Regexp(t, licenseCodeRe, first.Code)
	assert.Regexp(t, licenseCodeRe, second.Code)
	assert.NotEqual(t, first.Code, second.Code)
	assert.Equal(t, models.LicenseActive, first.Status)
	assert.Equal(t, "admin@cvmaster.com", first.CreatedBy)
	assert.Equal(t, testNow, first.CreatedAt)
	assert.Empty(t, first.UsedBy)
	assert.Nil(t, first.UsedAt)

	items, err := e.licenses.List(e.ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.Code, items[0].Code)
	assert.Equal(t, first.Code, items[1].Code)
}

func TestLicenseRegistry_GenerateSkipsTakenCodes(t *testing.T) {
	e := newEnv(t)
	e.issue(t, "CV-TAKEN000")

	r := e.licenses.(*licenseRegistry)
	codes := []string{"CV-TAKEN000", "CV-TAKEN000", "CV-FRESH111"}
	r.newCode = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}

	lic, err := e.licenses.Generate(e.ctx, "admin@cvmaster.com")
	require.NoError(t, err)
	assert.Equal(t, "CV-FRESH111", lic.Code)
}

func TestLicenseRegistry_GenerateGivesUp(t *testing.T) {
	e := newEnv(t)
	e.issue(t, "CV-TAKEN000")

	e.licenses.(*licenseRegistry).newCode = func() (string, error) { return "CV-TAKEN000", nil }

	_, err := e.licenses.Generate(e.ctx, "admin@cvmaster.com")
	require.ErrorIs(t, err, errLicenseCodeExhausted)

	items, err := e.licenses.List(e.ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestLicenseRegistry_GenerateCodeError(t *testing.T) {
	e := newEnv(t)
	e.licenses.(*licenseRegistry).newCode = func() (string, error) { return "", errors.New("entropy") }

	_, err := e.licenses.Generate(e.ctx, "admin@cvmaster.com")
	require.ErrorContains(t, err, "entropy")
}

func TestRedeem_ErrorOrderAndStamp(t *testing.T) {
	e := newEnv(t)
	e.issue(t, "CV-ABC12345")
	repo := e.m.Licenses(e.db)

	require.ErrorIs(t, redeem(e.ctx, repo, "  ", "ana@x.com", testNow), common.ErrLicenseRequired)
	require.ErrorIs(t, redeem(e.ctx, repo, "CV-NOPE0000", "ana@x.com", testNow), common.ErrLicenseInvalid)
	require.ErrorIs(t, redeem(e.ctx, repo, "cv-abc12345", "ana@x.com", testNow), common.ErrLicenseInvalid)

	require.NoError(t, redeem(e.ctx, repo, "CV-ABC12345", "ana@x.com", testNow))
	require.ErrorIs(t, redeem(e.ctx, repo, "CV-ABC12345", "bob@x.com", testNow), common.ErrLicenseAlreadyUsed)

	lic := e.licenseByCode(t, "CV-ABC12345")
	assert.Equal(t, models.LicenseUsed, lic.Status)
	assert.Equal(t, "ana@x.com", lic.UsedBy)
	require.NotNil(t, lic.UsedAt)
	assert.Equal(t, testNow, *lic.UsedAt)
}

func TestNewLicenseCode_Format(t *testing.T) {
	for range 50 {
		code, err := newLicenseCode()
		require.NoError(t, err)
		assert.Regexp(t, licenseCodeRe, code)
	}
}
