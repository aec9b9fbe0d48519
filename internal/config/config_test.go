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

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownGrace)
	assert.Equal(t, "http://localhost:9009", cfg.Order.Endpoint)
	assert.Equal(t, "/api/order", cfg.Order.Path)
	assert.Zero(t, cfg.Order.Timeout)
	assert.Equal(t, "orderform_session", cfg.Session.Cookie)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "pizza", cfg.Theme.Name)
	assert.Equal(t, "light", cfg.Theme.Variant)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orderform.yaml")
	content := []byte(`
server:
  addr: ":9090"
order:
  endpoint: http://orders.internal
  timeout: 3s
theme:
  variant: dark
landing:
  intro: "<p>Hi</p>"
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("ORDERFORM_ORDER_ENDPOINT", "http://override:9009")
	t.Setenv("ORDERFORM_SESSION_TTL", "10m")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "http://override:9009", cfg.Order.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.Order.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "dark", cfg.Theme.Variant)
	assert.Equal(t, "<p>Hi</p>", cfg.Landing.Intro)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Order.Endpoint = " "
	cfg.Order.Timeout = -time.Second
	cfg.Session.TTL = 0

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order.endpoint is required")
	assert.Contains(t, err.Error(), "order.timeout must not be negative")
	assert.Contains(t, err.Error(), "session.ttl must be positive")
}
