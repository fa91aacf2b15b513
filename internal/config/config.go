package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/league-engine/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	HTTPAddr                    string
	DBURL                       string
	DBDisablePreparedBinary     bool
	CacheEnabled                bool
	CacheTTL                    time.Duration
	CORSAllowedOrigins          []string
	ReadTimeout                 time.Duration
	WriteTimeout                time.Duration
	PprofEnabled                bool
	PprofAddr                   string
	UptraceEnabled              bool
	UptraceDSN                  string
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeBasicAuthUser      string
	PyroscopeBasicAuthPassword  string
	PyroscopeUploadRate         time.Duration
	InternalJobToken            string
	QStashEnabled               bool
	QStashBaseURL               string
	QStashToken                 string
	QStashTargetBaseURL         string
	QStashRetries               int
	QStashCircuitEnabled        bool
	QStashCircuitFailureCount   int
	QStashCircuitOpenTimeout    time.Duration
	QStashCircuitHalfOpenMaxReq int
	Engine                      EngineConfig
	LogLevel                    logging.Level
}

// EngineConfig tunes standings and season-transition processing.
type EngineConfig struct {
	TiebreakFallback   string
	PlayoffStartOffset time.Duration
	PlayoffRoundGap    time.Duration
	DivisionWorkers    int
	TriggerEnabled     bool
	TriggerInterval    time.Duration
}

const (
	TiebreakFallbackRandom = "random"
	TiebreakFallbackStable = "stable"
)

// UsesMemoryStore reports whether repositories should be served from process memory.
func (c Config) UsesMemoryStore() bool {
	value := strings.ToLower(strings.TrimSpace(c.DBURL))
	return value == "" || value == "memory"
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	env := &envReader{}
	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "league-engine-api"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:             env.duration("APP_READ_TIMEOUT", "10s"),
		WriteTimeout:            env.duration("APP_WRITE_TIMEOUT", "15s"),
		LogLevel:                logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:                   getEnv("DB_URL", "memory"),
		DBDisablePreparedBinary: env.bool("DB_DISABLE_PREPARED_BINARY_RESULT", true),
		CacheEnabled:            env.bool("CACHE_ENABLED", true),
		CacheTTL:                env.positiveDuration("CACHE_TTL", "60s"),
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		InternalJobToken:        strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		env.fail(fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty"))
	}

	cfg.loadTelemetry(env)
	cfg.loadQStash(env)
	cfg.Engine = loadEngine(env)

	if env.err != nil {
		return Config{}, env.err
	}
	return cfg, nil
}

func (c *Config) loadTelemetry(env *envReader) {
	c.UptraceEnabled = env.bool("UPTRACE_ENABLED", false)
	c.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if c.UptraceDSN == "" {
		c.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	env.require("UPTRACE_DSN", c.UptraceDSN, "UPTRACE_ENABLED", c.UptraceEnabled)

	c.PprofEnabled = env.bool("PPROF_ENABLED", false)
	c.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	c.PyroscopeEnabled = env.bool("PYROSCOPE_ENABLED", false)
	c.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	c.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", c.ServiceName))
	c.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	c.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	c.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	c.PyroscopeUploadRate = env.positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	env.require("PYROSCOPE_SERVER_ADDRESS", c.PyroscopeServerAddress, "PYROSCOPE_ENABLED", c.PyroscopeEnabled)
	env.require("PYROSCOPE_APP_NAME", c.PyroscopeAppName, "PYROSCOPE_ENABLED", c.PyroscopeEnabled)
}

func (c *Config) loadQStash(env *envReader) {
	c.QStashEnabled = env.bool("QSTASH_ENABLED", false)
	c.QStashBaseURL = strings.TrimSpace(getEnv("QSTASH_BASE_URL", "https://qstash.upstash.io"))
	c.QStashToken = strings.TrimSpace(getEnv("QSTASH_TOKEN", ""))
	c.QStashTargetBaseURL = strings.TrimSpace(getEnv("QSTASH_TARGET_BASE_URL", ""))
	c.QStashRetries = env.intAtLeast("QSTASH_RETRIES", 3, 0)
	c.QStashCircuitEnabled = env.bool("QSTASH_CIRCUIT_ENABLED", true)
	c.QStashCircuitFailureCount = env.intAtLeast("QSTASH_CIRCUIT_FAILURE_COUNT", 5, 1)
	c.QStashCircuitOpenTimeout = env.positiveDuration("QSTASH_CIRCUIT_OPEN_TIMEOUT", "15s")
	c.QStashCircuitHalfOpenMaxReq = env.intAtLeast("QSTASH_CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1)

	env.require("QSTASH_TOKEN", c.QStashToken, "QSTASH_ENABLED", c.QStashEnabled)
	env.require("QSTASH_TARGET_BASE_URL", c.QStashTargetBaseURL, "QSTASH_ENABLED", c.QStashEnabled)
	env.require("INTERNAL_JOB_TOKEN", c.InternalJobToken, "QSTASH_ENABLED", c.QStashEnabled)
}

func loadEngine(env *envReader) EngineConfig {
	fallback := strings.ToLower(strings.TrimSpace(getEnv("ENGINE_TIEBREAK_FALLBACK", TiebreakFallbackRandom)))
	switch fallback {
	case TiebreakFallbackRandom, TiebreakFallbackStable:
	default:
		env.fail(fmt.Errorf("invalid ENGINE_TIEBREAK_FALLBACK %q: valid values are %s, %s", fallback, TiebreakFallbackRandom, TiebreakFallbackStable))
	}

	return EngineConfig{
		TiebreakFallback:   fallback,
		PlayoffStartOffset: env.positiveDuration("ENGINE_PLAYOFF_START_OFFSET", "168h"),
		PlayoffRoundGap:    env.positiveDuration("ENGINE_PLAYOFF_ROUND_GAP", "168h"),
		DivisionWorkers:    env.intAtLeast("ENGINE_DIVISION_WORKERS", 1, 1),
		TriggerEnabled:     env.bool("ENGINE_TRIGGER_ENABLED", true),
		TriggerInterval:    env.positiveDuration("ENGINE_TRIGGER_INTERVAL", "24h"),
	}
}

// envReader parses typed values and keeps the first error; later reads
// still return their defaults so Load can finish building.
type envReader struct {
	err error
}

func (r *envReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *envReader) bool(key string, fallback bool) bool {
	out, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		r.fail(fmt.Errorf("parse %s: %w", key, err))
		return fallback
	}
	return out
}

func (r *envReader) duration(key, fallback string) time.Duration {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		r.fail(fmt.Errorf("parse %s: %w", key, err))
		return 0
	}
	return out
}

func (r *envReader) positiveDuration(key, fallback string) time.Duration {
	out := r.duration(key, fallback)
	if out <= 0 {
		r.fail(fmt.Errorf("%s must be > 0", key))
	}
	return out
}

func (r *envReader) intAtLeast(key string, fallback, lower int) int {
	out, err := getEnvAsInt(key, fallback)
	if err != nil {
		r.fail(fmt.Errorf("parse %s: %w", key, err))
		return fallback
	}
	if out < lower {
		r.fail(fmt.Errorf("%s must be >= %d", key, lower))
	}
	return out
}

func (r *envReader) require(key, value, flag string, enabled bool) {
	if enabled && value == "" {
		r.fail(fmt.Errorf("%s is required when %s=true", key, flag))
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
