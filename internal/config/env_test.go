package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useDotEnv(t *testing.T, content string) {
	t.Helper()
	orig := DotEnvFile
	t.Cleanup(func() { DotEnvFile = orig })

	DotEnvFile = filepath.Join(t.TempDir(), ".env")
	if content != "" {
		require.NoError(t, os.WriteFile(DotEnvFile, []byte(content), 0o600))
	}
}

func Test_parseEnv(t *testing.T) {
	t.Run("environment overrides", func(t *testing.T) {
		useDotEnv(t, "")
		t.Setenv("CVMASTER_STORE_DRIVER", "postgres")
		t.Setenv("CVMASTER_ACCESS_TOKEN_TTL", "2h")
		t.Setenv("CVMASTER_LOGIN_BURST", "9")

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseEnv(cfg))

		assert.Equal(t, "postgres", cfg.StoreDriver)
		assert.Equal(t, 2*time.Hour, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 9, cfg.LoginBurst)
		assert.Equal(t, "cvmaster.db", cfg.DatabaseDSN)
	})

	t.Run("dot env file is loaded but does not override the process", func(t *testing.T) {
		useDotEnv(t, "CVMASTER_ADMINS_FILE=from-file.yaml\nCVMASTER_S3_REGION=eu-west-1\n")
		t.Setenv("CVMASTER_S3_REGION", "us-west-2")
		t.Cleanup(func() { _ = os.Unsetenv("CVMASTER_ADMINS_FILE") })

		cfg := &Config{}
		require.NoError(t, parseEnv(cfg))

		assert.Equal(t, "from-file.yaml", cfg.AdminsFile)
		assert.Equal(t, "us-west-2", cfg.S3Region)
	})

	t.Run("bad value returns error", func(t *testing.T) {
		useDotEnv(t, "")
		t.Setenv("CVMASTER_LOGIN_BURST", "many")

		err := parseEnv(&Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env:")
	})
}
