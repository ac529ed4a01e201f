package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminQueries(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.sessions.Init(e.ctx))
	e.issue(t, "CV-AAAA0001")
	e.issue(t, "CV-AAAA0002")
	e.issue(t, "CV-AAAA0003")
	_, err := e.dir.Register(e.ctx, "Ana", "ana@x.com", "pw", "CV-AAAA0002")
	require.NoError(t, err)

	lics, err := e.queries.ListLicenses(e.ctx)
	require.NoError(t, err)
	require.Len(t, lics, 3)
	assert.Equal(t, "CV-AAAA0003", lics[0].Code)

	accs, err := e.queries.ListAccounts(e.ctx)
	require.NoError(t, err)
	assert.Len(t, accs, 3)

	st, err := e.queries.Stats(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Accounts)
	assert.Equal(t, 2, st.Admins)
	assert.Equal(t, 2, st.ActiveLicenses)
	assert.Equal(t, 1, st.UsedLicenses)
}
