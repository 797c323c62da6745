package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := NewManager(path)
	require.NoError(t, err)

	cfg := m.Get()
	assert.Equal(t, "ws://localhost:6123", cfg.Endpoint)
	assert.Equal(t, 2*time.Second, cfg.RetryInterval.Std())
	assert.Equal(t, 60*time.Second, cfg.BatteryInterval.Std())
	assert.Equal(t, 100*time.Millisecond, cfg.RepaintInterval.Std())
	assert.Equal(t, 0, cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestManagerLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
endpoint: ws://localhost:9999
retry_interval: 5s
battery_interval: 2m
repaint_interval: 50ms
server_port: 8080
log_level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	m, err := NewManager(path)
	require.NoError(t, err)

	cfg := m.Get()
	assert.Equal(t, "ws://localhost:9999", cfg.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.RetryInterval.Std())
	assert.Equal(t, 2*time.Minute, cfg.BatteryInterval.Std())
	assert.Equal(t, 50*time.Millisecond, cfg.RepaintInterval.Std())
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestManagerPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: ws://other:6123\n"), 0644))

	m, err := NewManager(path)
	require.NoError(t, err)

	cfg := m.Get()
	assert.Equal(t, "ws://other:6123", cfg.Endpoint)
	assert.Equal(t, 2*time.Second, cfg.RetryInterval.Std(), "unset fields keep defaults")
}

func TestManagerRejectsInvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retry_interval: banana\n"), 0644))

	_, err := NewManager(path)
	require.Error(t, err)
}

func TestManagerSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := NewManager(path)
	require.NoError(t, err)

	m.SetEndpoint("ws://saved:1234")
	m.SetServerPort(9090)
	m.SetLogLevel("warn")
	require.NoError(t, m.Save())

	reloaded, err := NewManager(path)
	require.NoError(t, err)
	cfg := reloaded.Get()
	assert.Equal(t, "ws://saved:1234", cfg.Endpoint)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.RetryInterval.Std(), "durations survive the round trip")
}
