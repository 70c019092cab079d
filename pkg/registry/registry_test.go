// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry("../../configs/intent-registry.json")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", reg.Version)
	assert.Len(t, reg.Intents, 5)

	def, ok := reg.Find("live_flights")
	require.True(t, ok)
	assert.Equal(t, "Live Flights", def.DisplayName)
	assert.Contains(t, def.ErrorCodes, "UPSTREAM_UNAVAILABLE")

	_, ok = reg.Find("time_travel")
	assert.False(t, ok)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry("no-such-registry.json")
	assert.Error(t, err)
}

func TestLoadRegistry_RejectsInvalidDocument(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing intents", body: `{"version": "1.0.0"}`},
		{name: "empty intents", body: `{"version": "1.0.0", "intents": []}`},
		{name: "intent without id", body: `{"version": "1.0.0", "intents": [{"displayName": "X", "intent": "x"}]}`},
		{name: "not json", body: `version: 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "registry.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := LoadRegistry(path)
			assert.Error(t, err)
		})
	}
}
