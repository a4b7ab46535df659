package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitlang/bit/internal/config"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "bit.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadValidFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "schema_version: \"1.0.0\"\ntab_size: 8\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.TabSize)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := writeConfig(t, "not_a_real_field: true\n")
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadRejectsStaleSchemaVersion(t *testing.T) {
	path := writeConfig(t, "schema_version: \"0.1.0\"\n")
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadKeepsExplicitTabAndArenaSize(t *testing.T) {
	path := writeConfig(t, "schema_version: \"1.0.0\"\ntab_size: 4\narena_size: 1024\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.TabSize)
	require.Equal(t, int64(1024), cfg.ArenaSize)
}
