package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 30, cfg.HTTP.TimeoutSeconds)
	assert.Equal(t, "reports", cfg.Reports.OutputDir)
	assert.Equal(t, "httpchain", cfg.Server.Name)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeTempConfig(t, `
logging:
  level: debug
http:
  timeout_seconds: 10
  tls_skip_verify: true
reports:
  output_dir: /tmp/reports
server:
  name: my-server
  version: 1.2.3
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.HTTP.TimeoutSeconds)
	assert.True(t, cfg.HTTP.TlsSkipVerify)
	assert.Equal(t, "/tmp/reports", cfg.Reports.OutputDir)
	assert.Equal(t, "my-server", cfg.Server.Name)
	assert.Equal(t, "1.2.3", cfg.Server.Version)
}

func TestLoadConfigPartialFallsBackToDefaults(t *testing.T) {
	path := writeTempConfig(t, `
logging:
  level: warn
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 30, cfg.HTTP.TimeoutSeconds)
	assert.Equal(t, "reports", cfg.Reports.OutputDir)
}

func TestLoadConfigInvalidLevel(t *testing.T) {
	path := writeTempConfig(t, `
logging:
  level: chatty
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeTempConfig(t, "logging: [unclosed")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}
