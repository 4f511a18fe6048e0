package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":3000", cfg.Address)
	assert.Equal(t, 4*time.Second, cfg.Timeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, []string{"*"}, cfg.Cors)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("HTTP_ADDRESS", "127.0.0.1:9000")
	t.Setenv("HTTP_CORS", "http://a.example,http://b.example")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "127.0.0.1:9000", cfg.Address)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Cors)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `env: dev
http_server:
  address: "localhost:8081"
  timeout: 2s
  cors:
    - "http://localhost:5173"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "localhost:8081", cfg.Address)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Cors)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
