package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearDatabaseURL unsets DATABASE_URL for the test and restores it after.
func clearDatabaseURL(t *testing.T) {
	t.Helper()
	t.Setenv(EnvDatabaseURL, "")
	os.Unsetenv(EnvDatabaseURL)
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	clearDatabaseURL(t)

	_, err := Load("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvDatabaseURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "./journal.db")

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "./journal.db", cfg.DatabaseURL)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearDatabaseURL(t)

	envFile := filepath.Join(t.TempDir(), "journal.env")
	require.NoError(t, os.WriteFile(envFile, []byte("DATABASE_URL=postgres://localhost/journal\n"), 0o644))

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/journal", cfg.DatabaseURL)
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearDatabaseURL(t)

	_, err := Load("", filepath.Join(t.TempDir(), "no-such.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such.env")
}

func TestLoadFromConfigFile(t *testing.T) {
	clearDatabaseURL(t)

	cfgFile := filepath.Join(t.TempDir(), "journal.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("database_url: ./trades.db\n"), 0o644))

	cfg, err := Load(cfgFile, "")
	require.NoError(t, err)
	assert.Equal(t, "./trades.db", cfg.DatabaseURL)
}

func TestConfigFileTakesPrecedenceOverEnvironment(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "./from-env.db")

	cfgFile := filepath.Join(t.TempDir(), "journal.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("database_url: ./from-file.db\n"), 0o644))

	cfg, err := Load(cfgFile, "")
	require.NoError(t, err)
	assert.Equal(t, "./from-file.db", cfg.DatabaseURL)
}

func TestLoadBadConfigFile(t *testing.T) {
	clearDatabaseURL(t)

	cfgFile := filepath.Join(t.TempDir(), "journal.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("database_url: [not, a, string\n"), 0o644))

	_, err := Load(cfgFile, "")
	assert.Error(t, err)
}
