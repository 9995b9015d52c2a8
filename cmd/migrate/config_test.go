package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DSN", "")
	t.Setenv("MIGRATIONS_DIR", "")
	os.Unsetenv("DB_DSN")
	os.Unsetenv("MIGRATIONS_DIR")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "db/migrations", cfg.MigrationsDir)
	assert.Contains(t, cfg.DatabaseDSN, "/bookcatalog")
}

func TestLoadConfig_EnvWinsOverDotEnv(t *testing.T) {
	tmp := t.TempDir()
	dotenv := "DB_DSN=postgres://file/db\nMIGRATIONS_DIR=from_file_dir\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte(dotenv), 0o644))

	t.Setenv("DB_DSN", "postgres://env/db")
	t.Setenv("MIGRATIONS_DIR", "")
	os.Unsetenv("MIGRATIONS_DIR")
	t.Chdir(tmp)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseDSN)
	assert.Equal(t, "from_file_dir", cfg.MigrationsDir)
}
