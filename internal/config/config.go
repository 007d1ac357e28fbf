package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig
	Graph   GraphConfig
	Logging LoggingConfig
	Paths   PathsConfig
	Tracing TracingConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MetricsEnabled    bool
	AllowedOriginsCSV string
}

// GraphConfig describes connectivity to the Neo4j relationship store.
type GraphConfig struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	Colored       bool
	IncludeCaller bool
}

// PathsConfig bounds graph construction and path search.
type PathsConfig struct {
	MaxHops          int
	TopK             int
	CandidateFactor  int
	FetchConcurrency int
	HopLimit         int
	ResultLimit      int
}

// TracingConfig selects the OpenTelemetry trace exporter.
type TracingConfig struct {
	Exporter     string // none|stdout|otlp
	OTLPEndpoint string
	ServiceName  string
}

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 15 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10

	defaultMaxHops          = 4
	defaultTopK             = 5
	defaultCandidateFactor  = 2
	defaultFetchConcurrency = 4
	defaultHopLimit         = 6
	defaultResultLimit      = 25

	defaultTraceExporter = "none"
	defaultOTLPEndpoint  = "localhost:4317"
	defaultServiceName   = "trustpath"
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Host:            valueOrDefault("SERVER_HOST", defaultHost),
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			Colored:       parseBoolWithDefault("LOG_COLOR", false),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
		Graph: GraphConfig{
			URI:            os.Getenv("GRAPH_URI"),
			Database:       valueOrDefault("GRAPH_DATABASE", ""),
			Username:       os.Getenv("GRAPH_USERNAME"),
			Password:       os.Getenv("GRAPH_PASSWORD"),
			MaxConnections: parseIntWithDefault("GRAPH_MAX_CONNECTIONS", defaultGraphMaxSessions),
		},
		Paths: PathsConfig{
			MaxHops:          parsePositiveWithDefault("PATHS_MAX_HOPS", defaultMaxHops),
			TopK:             parsePositiveWithDefault("PATHS_TOP_K", defaultTopK),
			CandidateFactor:  parsePositiveWithDefault("PATHS_CANDIDATE_FACTOR", defaultCandidateFactor),
			FetchConcurrency: parsePositiveWithDefault("PATHS_FETCH_CONCURRENCY", defaultFetchConcurrency),
			HopLimit:         parsePositiveWithDefault("PATHS_HOP_LIMIT", defaultHopLimit),
			ResultLimit:      parsePositiveWithDefault("PATHS_RESULT_LIMIT", defaultResultLimit),
		},
		Tracing: TracingConfig{
			Exporter:     strings.ToLower(valueOrDefault("TRACE_EXPORTER", defaultTraceExporter)),
			OTLPEndpoint: valueOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", defaultOTLPEndpoint),
			ServiceName:  valueOrDefault("TRACE_SERVICE_NAME", defaultServiceName),
		},
	}

	if cfg.Paths.MaxHops > cfg.Paths.HopLimit {
		cfg.Paths.MaxHops = cfg.Paths.HopLimit
	}
	if cfg.Paths.TopK > cfg.Paths.ResultLimit {
		cfg.Paths.TopK = cfg.Paths.ResultLimit
	}

	switch cfg.Tracing.Exporter {
	case "none", "stdout", "otlp":
	default:
		return Config{}, fmt.Errorf("invalid TRACE_EXPORTER %q", cfg.Tracing.Exporter)
	}

	port, err := parsePort("SERVER_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
	}
	for _, d := range durations {
		if err := parseDurationInto(d.key, d.dst); err != nil {
			return Config{}, err
		}
	}

	cfg.HTTP.MetricsEnabled = parseBoolWithDefault("SERVER_METRICS_ENABLED", false)
	cfg.HTTP.AllowedOriginsCSV = os.Getenv("SERVER_ALLOWED_ORIGINS")

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePositiveWithDefault(key string, fallback int) int {
	if v := parseIntWithDefault(key, fallback); v > 0 {
		return v
	}
	return fallback
}

// parseDurationInto overwrites dst when key is set; a malformed value is an error.
func parseDurationInto(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid %s: must be positive", key)
	}
	*dst = d
	return nil
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
