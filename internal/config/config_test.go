package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daemonsend.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DAEMONSEND_CONFIG", "")
	t.Setenv("DAEMON_URL", "")
	t.Setenv("DAEMONSEND_LOG_FILE", "")
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "http://localhost:8080/upload", cfg.Endpoint)
	assert.Zero(t, cfg.Timeout)
	assert.False(t, cfg.Exclusive)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
endpoint: http://daemon.lan:9000/upload
timeout: 45s
exclusive: true
log_file: /tmp/daemonsend.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://daemon.lan:9000/upload", cfg.Endpoint)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.True(t, cfg.Exclusive)
	assert.Equal(t, "/tmp/daemonsend.log", cfg.LogFile)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "exclusive: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.True(t, cfg.Exclusive)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "endpoint: http://from-file/upload\n")
	t.Setenv("DAEMON_URL", "http://from-env:8080/upload")
	t.Setenv("DAEMONSEND_LOG_FILE", "env.log")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:8080/upload", cfg.Endpoint)
	assert.Equal(t, "env.log", cfg.LogFile)
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "endpoint: http://env-path/upload\n")
	t.Setenv("DAEMONSEND_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://env-path/upload", cfg.Endpoint)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "endpoint: [unterminated\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", *Default(), false},
		{"https", Config{Endpoint: "https://daemon.example.com/upload"}, false},
		{"relative", Config{Endpoint: "/upload"}, true},
		{"other scheme", Config{Endpoint: "ftp://daemon/upload"}, true},
		{"empty", Config{}, true},
		{"negative timeout", Config{Endpoint: DefaultEndpoint, Timeout: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
