// Package config defines the host configuration document for a
// pipeline run: where the config, state, and catalog documents live,
// and which plugin type tags to dispatch.
package config

import (
	"encoding/json"
	"os"

	"github.com/c360/pipekit/docstore"
	"github.com/c360/pipekit/errors"
)

// Config represents the complete pipeline configuration.
type Config struct {
	// Locations holds the three document location strings. Each is
	// either "scheme://bucket/path" or a bare local path.
	Locations docstore.Locations `json:"locations"`

	// Plugin type tags. Tap or Sink selects what the driver runs;
	// Discoverer selects discovery (defaults to the Tap tag);
	// Transformer optionally rewrites the stream inline.
	Tap         string `json:"tap,omitempty"`
	Sink        string `json:"sink,omitempty"`
	Discoverer  string `json:"discoverer,omitempty"`
	Transformer string `json:"transformer,omitempty"`
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFatal(errors.ErrMissingConfig, "Config", "Load", path)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapFatal(errors.ErrInvalidConfig, "Config", "Load", err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration names something runnable.
func (c *Config) Validate() error {
	if c.Tap == "" && c.Sink == "" && c.Discoverer == "" {
		return errors.WrapFatal(errors.ErrMissingConfig, "Config", "Validate",
			"at least one of tap, sink, discoverer")
	}
	if c.Tap != "" && c.Locations.Config == "" {
		return errors.WrapFatal(errors.ErrMissingConfig, "Config", "Validate", "config location")
	}
	return nil
}

// DiscovererTag returns the discovery type tag, defaulting to the tap
// tag when not set separately.
func (c *Config) DiscovererTag() string {
	if c.Discoverer != "" {
		return c.Discoverer
	}
	return c.Tap
}
