// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: "airline-bot"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", ServerConfig{Host: "0.0.0.0", Port: 8080}.Addr())
	assert.Equal(t, 500, cfg.Server.MaxQueryLength)
	assert.Equal(t, "https://opensky-network.org/api", cfg.OpenSky.BaseURL)
	assert.Equal(t, 1.5, cfg.OpenSky.DegPad)
	assert.Equal(t, 5, cfg.OpenSky.MaxExamples)
	assert.Equal(t, "configs/intent-registry.json", cfg.Registry.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile_Overrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9091
  max_query_length: 280
opensky:
  deg_pad: 2.0
  max_examples: 3
redis:
  enabled: true
  address: "localhost:6379"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9091, cfg.Server.Port)
	assert.Equal(t, 280, cfg.Server.MaxQueryLength)
	assert.Equal(t, 2.0, cfg.OpenSky.DegPad)
	assert.Equal(t, 3, cfg.OpenSky.MaxExamples)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "port out of range",
			body: "server:\n  port: 70000\n",
		},
		{
			name: "redis enabled without address",
			body: "redis:\n  enabled: true\n",
		},
		{
			name: "negative deg_pad",
			body: "opensky:\n  deg_pad: -1.0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_REDIS_ADDRESS", "redis.internal:6379")

	path := writeConfig(t, `
redis:
  enabled: true
  address: "${TEST_REDIS_ADDRESS}"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Address)
}
