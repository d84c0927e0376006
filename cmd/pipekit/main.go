// Package main implements the entry point for the pipekit CLI.
// Pipekit is a data-interchange pipeline core: taps extract records
// from sources, sinks load them into destinations, and a line-oriented
// JSON message protocol connects the two over standard streams.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360/pipekit/config"
	"github.com/c360/pipekit/docstore"
	"github.com/c360/pipekit/metric"
	"github.com/c360/pipekit/pipeline"
	"github.com/c360/pipekit/plugin"
	"github.com/c360/pipekit/storage"
	"github.com/c360/pipekit/storage/blobstore"
	"github.com/c360/pipekit/storage/localfs"
	"github.com/c360/pipekit/storage/objectstore"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "pipekit"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	// Run application with proper error handling
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	// Parse and validate CLI flags
	cliCfg, logger, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	// Load and validate configuration
	cfg, err := config.Load(cliCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	signalCtx, signalCancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	// Setup storage backends and document store
	metricsRegistry := metric.NewMetricsRegistry()
	registry, closeBackends, err := setupStorage(metricsRegistry)
	if err != nil {
		return err
	}
	defer closeBackends()

	if cliCfg.MetricsPort > 0 {
		serveMetrics(cliCfg.MetricsPort, metricsRegistry)
	}

	store := docstore.New(registry)
	driver := pipeline.NewDriver(plugin.Default, store, logger, os.Stdout)

	switch {
	case cliCfg.Discover:
		return driver.Discover(signalCtx, cfg)
	case cliCfg.Sink:
		return driver.RunSink(signalCtx, cfg, os.Stdin)
	default:
		return driver.Run(signalCtx, cfg)
	}
}

// initializeCLI parses flags and sets up logging
func initializeCLI() (*CLIConfig, *slog.Logger, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, nil, true, nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil, nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting pipekit",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	return cliCfg, logger, false, nil
}

// setupStorage builds the scheme registry: local files are always
// available; s3 and nats backends are registered when their
// environment variables are set.
func setupStorage(metrics *metric.MetricsRegistry) (*storage.Registry, func(), error) {
	registry := storage.NewRegistry(localfs.New())
	cleanup := func() {}

	if endpoint := os.Getenv("PIPEKIT_S3_ENDPOINT"); endpoint != "" {
		backend, err := setupS3Backend(endpoint, metrics)
		if err != nil {
			return nil, nil, fmt.Errorf("setup s3 backend: %w", err)
		}
		if err := registry.Register("s3", backend); err != nil {
			return nil, nil, err
		}
		slog.Info("Registered s3 storage backend", "endpoint", endpoint)
	}

	if natsURL := os.Getenv("PIPEKIT_NATS_URL"); natsURL != "" {
		backend, closeNATS, err := setupNATSBackend(natsURL, metrics)
		if err != nil {
			return nil, nil, fmt.Errorf("setup nats backend: %w", err)
		}
		if err := registry.Register("nats", backend); err != nil {
			closeNATS()
			return nil, nil, err
		}
		cleanup = closeNATS
		slog.Info("Registered nats storage backend", "url", natsURL)
	}

	return registry, cleanup, nil
}

// setupS3Backend creates a MinIO-backed blob store from environment
// credentials.
func setupS3Backend(endpoint string, metrics *metric.MetricsRegistry) (*blobstore.Backend, error) {
	accessKey := os.Getenv("PIPEKIT_S3_ACCESS_KEY")
	secretKey := os.Getenv("PIPEKIT_S3_SECRET_KEY")
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("PIPEKIT_S3_ACCESS_KEY and PIPEKIT_S3_SECRET_KEY are required")
	}

	// Accept both bare hosts and full URLs for the endpoint.
	useSSL := getEnvBool("PIPEKIT_S3_USE_SSL", true)
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: os.Getenv("PIPEKIT_S3_REGION"),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	opMetrics, err := metric.NewOpMetrics(metrics, "s3", endpoint)
	if err != nil {
		return nil, err
	}
	return blobstore.New(blobstore.NewMinioClient(client), opMetrics), nil
}

// setupNATSBackend connects to NATS and creates a JetStream object
// store backend. The returned func closes the connection.
func setupNATSBackend(natsURL string, metrics *metric.MetricsRegistry) (*objectstore.Backend, func(), error) {
	nc, err := nats.Connect(natsURL,
		nats.Timeout(10*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("create JetStream context: %w", err)
	}

	opMetrics, err := metric.NewOpMetrics(metrics, "nats", natsURL)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}
	return objectstore.New(js, opMetrics), nc.Close, nil
}

// serveMetrics exposes the Prometheus endpoint on its own listener.
// Failures are logged, not fatal: a pipeline run should not die
// because the metrics port is taken.
func serveMetrics(port int, metrics *metric.MetricsRegistry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Serving metrics", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
}
