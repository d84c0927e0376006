package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	Debug       bool
	MetricsPort int
	Discover    bool
	Sink        bool
	Validate    bool
	ShowVersion bool
	ShowHelp    bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("PIPEKIT_CONFIG", "config.json"),
		"Path to configuration file (env: PIPEKIT_CONFIG)")

	flag.StringVar(&cfg.ConfigPath, "c",
		getEnv("PIPEKIT_CONFIG", "config.json"),
		"Path to configuration file (env: PIPEKIT_CONFIG)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("PIPEKIT_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: PIPEKIT_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("PIPEKIT_LOG_FORMAT", "json"),
		"Log format: json, text (env: PIPEKIT_LOG_FORMAT)")

	flag.BoolVar(&cfg.Debug, "debug",
		getEnvBool("PIPEKIT_DEBUG", false),
		"Enable debug mode (env: PIPEKIT_DEBUG)")

	flag.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("PIPEKIT_METRICS_PORT", 0),
		"Prometheus metrics port, 0 to disable (env: PIPEKIT_METRICS_PORT)")

	flag.BoolVar(&cfg.Discover, "discover", false, "Run stream discovery and write the catalog")
	flag.BoolVar(&cfg.Sink, "sink", false, "Run the configured sink against stdin")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	// Override log level if debug is set
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	// Validate config file exists
	if _, err := os.Stat(cfg.ConfigPath); err != nil {
		return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	// Validate log format
	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	// Validate metrics port
	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	if cfg.Discover && cfg.Sink {
		return fmt.Errorf("-discover and -sink are mutually exclusive")
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Data Interchange Pipeline Core

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Run the configured tap, messages on stdout
  %s --config=/path/to/config.json

  # Run discovery and persist the catalog
  %s --config=/path/to/config.json --discover

  # Run the configured sink against a tap's output
  some-tap | %s --config=/path/to/config.json --sink

  # Run with environment variables
  export PIPEKIT_CONFIG=/etc/pipekit/config.json
  export PIPEKIT_LOG_LEVEL=debug
  %s

  # Validate configuration only
  %s --validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
