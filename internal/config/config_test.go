package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir, "", nil)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.VaultPath)
	assert.Equal(t, "README", cfg.RootIndex)
	assert.Equal(t, "Untitled", cfg.UntitledName)
	assert.Equal(t, "md", cfg.Extension)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.Ignore)
	assert.False(t, cfg.Watch)
}

func TestLoad_VaultFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "root_index: Home\nextension: .md\nignore:\n  - Templates/**\n  - Archive/**\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(DefaultConfigPath(dir), []byte(yaml), 0o644))

	cfg, err := Load(dir, "", nil)
	require.NoError(t, err)

	assert.Equal(t, "Home", cfg.RootIndex)
	assert.Equal(t, "md", cfg.Extension)
	assert.Equal(t, []string{"Templates/**", "Archive/**"}, cfg.Ignore)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MalformedVaultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pagenav.yaml"), []byte("root_index: [unclosed\n"), 0o644))

	_, err := Load(dir, "", nil)
	assert.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("root_index: FromFile\nuntitled_name: Neu\n"), 0o644))
	t.Setenv("PAGENAV_UNTITLED_NAME", "FromEnv")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("root-index", "", "")
	flags.String("untitled-name", "", "")
	require.NoError(t, flags.Parse([]string{"--root-index", "FromFlag"}))

	cfg, err := Load(dir, file, flags)
	require.NoError(t, err)

	assert.Equal(t, "FromFlag", cfg.RootIndex)
	assert.Equal(t, "FromEnv", cfg.UntitledName)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(t.TempDir(), "/nonexistent/pagenav.yaml", nil)
	assert.Error(t, err)
}

func TestConfig_Logger(t *testing.T) {
	cfg := &Config{LogLevel: "info"}
	logger, err := cfg.Logger()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	cfg.LogLevel = "loud"
	_, err = cfg.Logger()
	assert.Error(t, err)
}
