package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdb-io/askdb/internal/kvstore"
	"github.com/askdb-io/askdb/internal/output"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "askdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""), nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
server_url: http://db.example.com:8080/
theme: light
serve:
  port: 9999
  max_rows: 100
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	// Trailing slash is trimmed.
	assert.Equal(t, "http://db.example.com:8080", cfg.ServerURL)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 9999, cfg.GetServeConfig().Port)
	assert.Equal(t, 100, cfg.GetServeConfig().MaxRows)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server_url: http://from-file:1\n")
	t.Setenv("ASKDB_SERVER_URL", "http://from-env:2")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:2", cfg.ServerURL)
}

func TestFlagsOverrideEnv(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("ASKDB_SERVER_URL", "http://from-env:2")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("server", "", "")
	flags.String("theme", "", "")
	require.NoError(t, flags.Parse([]string{"--server", "http://from-flag:3", "--theme", "light"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:3", cfg.ServerURL)
	assert.Equal(t, "light", cfg.Theme)
}

func TestLoadRejectsInvalidTheme(t *testing.T) {
	_, err := Load(writeConfig(t, "theme: solarized\n"), nil)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidOutput(t *testing.T) {
	_, err := Load(writeConfig(t, "output: xml\n"), nil)
	assert.Error(t, err)
}

func TestGetServeConfigDefaults(t *testing.T) {
	cfg := &Config{}
	s := cfg.GetServeConfig()
	assert.Equal(t, DefaultPort, s.Port)
}

func TestResolveTheme(t *testing.T) {
	kv := kvstore.New(filepath.Join(t.TempDir(), "store.json"))

	// Persisted flag wins over config.
	require.NoError(t, kv.Set("theme", "light"))
	cfg := &Config{Theme: "dark"}
	assert.Equal(t, output.ThemeLight, cfg.ResolveTheme(kv))

	// Config value used when nothing persisted.
	empty := kvstore.New(filepath.Join(t.TempDir(), "store.json"))
	assert.Equal(t, output.ThemeDark, cfg.ResolveTheme(empty))
}
