package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/pipekit/config"
	"github.com/c360/pipekit/docstore"
	pkgerrors "github.com/c360/pipekit/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"locations": {
			"config": "/etc/pipekit/tap.json",
			"state": "s3://pipeline/state.json",
			"catalog": "nats://docs/catalog.json"
		},
		"tap": "postgres"
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Tap)
	assert.Equal(t, "/etc/pipekit/tap.json", cfg.Locations.Config)
	assert.Equal(t, "s3://pipeline/state.json", cfg.Locations.State)
	assert.Equal(t, "nats://docs/catalog.json", cfg.Locations.Catalog)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrMissingConfig))
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeConfig(t, `{"tap":`)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrInvalidConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{
			"tap with config location",
			config.Config{
				Tap:       "postgres",
				Locations: docstore.Locations{Config: "/etc/tap.json"},
			},
			false,
		},
		{
			"sink only",
			config.Config{Sink: "warehouse"},
			false,
		},
		{
			"no plugin tag",
			config.Config{Locations: docstore.Locations{Config: "/etc/tap.json"}},
			true,
		},
		{
			"tap without config location",
			config.Config{Tap: "postgres"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, pkgerrors.Is(err, pkgerrors.ErrMissingConfig))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDiscovererTag(t *testing.T) {
	cfg := config.Config{Tap: "postgres"}
	assert.Equal(t, "postgres", cfg.DiscovererTag())

	cfg.Discoverer = "postgres-discovery"
	assert.Equal(t, "postgres-discovery", cfg.DiscovererTag())
}
