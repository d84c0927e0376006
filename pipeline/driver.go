// Package pipeline provides the driver that ties the core together:
// it loads configuration and state through the document store,
// dispatches the configured plugin, and persists checkpoints and
// catalogs back through the store.
package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/c360/pipekit/catalog"
	"github.com/c360/pipekit/config"
	"github.com/c360/pipekit/docstore"
	"github.com/c360/pipekit/errors"
	"github.com/c360/pipekit/message"
	"github.com/c360/pipekit/plugin"
)

// Driver orchestrates pipeline runs. It owns no business logic; taps,
// sinks, and discoverers come from the plugin registry.
type Driver struct {
	plugins *plugin.Registry
	store   *docstore.Store
	logger  *slog.Logger
	out     io.Writer
}

// NewDriver creates a driver. out is the process data-output channel
// the tap's protocol messages are emitted on.
func NewDriver(plugins *plugin.Registry, store *docstore.Store, logger *slog.Logger, out io.Writer) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		plugins: plugins,
		store:   store,
		logger:  logger,
		out:     out,
	}
}

// Run executes the configured tap: load config and state, extract with
// protocol messages flowing to the output channel, then persist the
// final checkpoint if the tap emitted one.
func (d *Driver) Run(ctx context.Context, cfg *config.Config) error {
	runID := uuid.NewString()
	logger := d.logger.With("run_id", runID, "tap", cfg.Tap)

	tap, err := d.plugins.Tap(cfg.Tap)
	if err != nil {
		return err
	}

	tapCfg, err := d.loadPluginConfig(ctx, cfg.Locations)
	if err != nil {
		return err
	}

	state, err := d.loadState(ctx, cfg.Locations, logger)
	if err != nil {
		return err
	}

	var transformer plugin.Transformer
	if cfg.Transformer != "" {
		transformer, err = d.plugins.Transformer(cfg.Transformer)
		if err != nil {
			return err
		}
	}

	interceptor := &streamInterceptor{ctx: ctx, out: d.out, transformer: transformer}
	logger.Info("Starting extraction")

	if err := tap.Extract(ctx, tapCfg, state, message.NewWriter(interceptor)); err != nil {
		return errors.Wrap(err, "Driver", "Run", "extraction")
	}

	if interceptor.hasState && cfg.Locations.State != "" {
		if err := d.store.SaveState(ctx, cfg.Locations, interceptor.lastState); err != nil {
			return err
		}
		logger.Info("Checkpoint persisted", "location", cfg.Locations.State)
	}

	logger.Info("Extraction complete")
	return nil
}

// RunSink executes the configured sink against a protocol stream read
// from in, typically the process standard input.
func (d *Driver) RunSink(ctx context.Context, cfg *config.Config, in io.Reader) error {
	runID := uuid.NewString()
	logger := d.logger.With("run_id", runID, "sink", cfg.Sink)

	sink, err := d.plugins.Sink(cfg.Sink)
	if err != nil {
		return err
	}

	sinkCfg, err := d.loadPluginConfig(ctx, cfg.Locations)
	if err != nil {
		return err
	}

	logger.Info("Starting load")
	if err := sink.Load(ctx, sinkCfg, in); err != nil {
		return errors.Wrap(err, "Driver", "RunSink", "load")
	}
	logger.Info("Load complete")
	return nil
}

// Discover runs the configured discoverer and persists the resulting
// catalog document. When no catalog location is configured the catalog
// is written to the output channel instead.
func (d *Driver) Discover(ctx context.Context, cfg *config.Config) error {
	tag := cfg.DiscovererTag()
	logger := d.logger.With("discoverer", tag)

	discoverer, err := d.plugins.Discoverer(tag)
	if err != nil {
		return err
	}

	discoveryCfg, err := d.loadPluginConfig(ctx, cfg.Locations)
	if err != nil {
		return err
	}

	entries, err := discoverer.Discover(ctx, discoveryCfg)
	if err != nil {
		return errors.Wrap(err, "Driver", "Discover", "stream discovery")
	}
	logger.Info("Discovery complete", "streams", len(entries))

	if cfg.Locations.Catalog == "" {
		return catalog.WriteCatalog(d.out, entries)
	}
	return d.store.SaveCatalog(ctx, cfg.Locations, catalog.NewCatalog(entries))
}

// loadPluginConfig reads the plugin configuration document. An absent
// remote document is a valid empty configuration.
func (d *Driver) loadPluginConfig(ctx context.Context, locations docstore.Locations) (map[string]any, error) {
	if locations.Config == "" {
		return map[string]any{}, nil
	}

	doc, found, err := d.store.LoadConfig(ctx, locations)
	if err != nil {
		return nil, err
	}
	if !found {
		return map[string]any{}, nil
	}

	cfg, ok := doc.(map[string]any)
	if !ok {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig,
			"Driver", "loadPluginConfig", "config document is not an object")
	}
	return cfg, nil
}

// loadState reads the previous checkpoint. Absence, local or remote,
// means a first run and yields nil state.
func (d *Driver) loadState(ctx context.Context, locations docstore.Locations, logger *slog.Logger) (any, error) {
	if locations.State == "" {
		return nil, nil
	}

	state, found, err := d.store.LoadState(ctx, locations)
	if err != nil {
		if errors.Is(err, errors.ErrDocumentNotFound) {
			logger.Debug("No previous state, starting fresh")
			return nil, nil
		}
		return nil, err
	}
	if !found {
		logger.Debug("No previous state, starting fresh")
		return nil, nil
	}
	return state, nil
}
