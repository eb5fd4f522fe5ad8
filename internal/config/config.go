package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/mlb-fantasy/internal/platform/logging"
)

// Config stores runtime configuration for the CLI.
type Config struct {
	AppEnv                        string
	ServiceName                   string
	ServiceVersion                string
	LogLevel                      logging.Level
	LogFile                       string
	RosterDataDir                 string
	RosterFilename                string
	MLBStatsBaseURL               string
	MLBStatsTimeout               time.Duration
	MLBStatsMaxRetries            int
	MLBStatsSportID               int
	MLBStatsSeason                int
	MLBStatsCircuitEnabled        bool
	MLBStatsCircuitFailureCount   int
	MLBStatsCircuitOpenTimeout    time.Duration
	MLBStatsCircuitHalfOpenMaxReq int
	CacheEnabled                  bool
	CacheTTL                      time.Duration
	ScoringMaxWorkers             int
	ClearScreen                   bool
	UptraceEnabled                bool
	UptraceDSN                    string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	rosterDataDir := strings.TrimSpace(getEnv("ROSTER_DATA_DIR", "__jsondata__"))
	rosterFilename := strings.TrimSpace(getEnv("ROSTER_FILENAME", "mlbfantasy.json"))
	if err := validateFilename(rosterFilename); err != nil {
		return Config{}, fmt.Errorf("ROSTER_FILENAME: %w", err)
	}

	statsBaseURL := strings.TrimRight(strings.TrimSpace(getEnv("MLB_STATS_BASE_URL", "https://statsapi.mlb.com/api")), "/")
	if !strings.HasPrefix(statsBaseURL, "http://") && !strings.HasPrefix(statsBaseURL, "https://") {
		return Config{}, fmt.Errorf("MLB_STATS_BASE_URL must be an http(s) url, got %q", statsBaseURL)
	}
	statsTimeout, err := time.ParseDuration(getEnv("MLB_STATS_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_STATS_TIMEOUT: %w", err)
	}
	if statsTimeout <= 0 {
		return Config{}, fmt.Errorf("MLB_STATS_TIMEOUT must be > 0")
	}
	statsMaxRetries, err := getEnvAsInt("MLB_STATS_MAX_RETRIES", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_STATS_MAX_RETRIES: %w", err)
	}
	if statsMaxRetries < 0 {
		return Config{}, fmt.Errorf("MLB_STATS_MAX_RETRIES must be >= 0")
	}
	statsSportID, err := getEnvAsInt("MLB_STATS_SPORT_ID", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_STATS_SPORT_ID: %w", err)
	}
	if statsSportID < 1 {
		return Config{}, fmt.Errorf("MLB_STATS_SPORT_ID must be >= 1")
	}
	statsSeason, err := getEnvAsInt("MLB_STATS_SEASON", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_STATS_SEASON: %w", err)
	}
	if statsSeason < 0 {
		return Config{}, fmt.Errorf("MLB_STATS_SEASON must be >= 0")
	}

	statsCircuitEnabled, err := strconv.ParseBool(getEnv("MLB_STATS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_STATS_CIRCUIT_ENABLED: %w", err)
	}
	statsCircuitFailureCount, err := getEnvAsInt("MLB_STATS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_STATS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if statsCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("MLB_STATS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	statsCircuitOpenTimeout, err := time.ParseDuration(getEnv("MLB_STATS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_STATS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if statsCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("MLB_STATS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	statsCircuitHalfOpenMaxReq, err := getEnvAsInt("MLB_STATS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_STATS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if statsCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("MLB_STATS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	scoringMaxWorkers, err := getEnvAsInt("SCORING_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_MAX_WORKERS: %w", err)
	}
	if scoringMaxWorkers < 1 {
		return Config{}, fmt.Errorf("SCORING_MAX_WORKERS must be >= 1")
	}

	clearScreen, err := strconv.ParseBool(getEnv("CLI_CLEAR_SCREEN", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CLI_CLEAR_SCREEN: %w", err)
	}

	return Config{
		AppEnv:                        appEnv,
		ServiceName:                   getEnv("APP_SERVICE_NAME", "mlb-fantasy"),
		ServiceVersion:                getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                      parseLogLevel(getEnv("APP_LOG_LEVEL", "warn")),
		LogFile:                       strings.TrimSpace(getEnv("APP_LOG_FILE", "")),
		RosterDataDir:                 rosterDataDir,
		RosterFilename:                rosterFilename,
		MLBStatsBaseURL:               statsBaseURL,
		MLBStatsTimeout:               statsTimeout,
		MLBStatsMaxRetries:            statsMaxRetries,
		MLBStatsSportID:               statsSportID,
		MLBStatsSeason:                statsSeason,
		MLBStatsCircuitEnabled:        statsCircuitEnabled,
		MLBStatsCircuitFailureCount:   statsCircuitFailureCount,
		MLBStatsCircuitOpenTimeout:    statsCircuitOpenTimeout,
		MLBStatsCircuitHalfOpenMaxReq: statsCircuitHalfOpenMaxReq,
		CacheEnabled:                  cacheEnabled,
		CacheTTL:                      cacheTTL,
		ScoringMaxWorkers:             scoringMaxWorkers,
		ClearScreen:                   clearScreen,
		UptraceEnabled:                uptraceEnabled,
		UptraceDSN:                    uptraceDSN,
	}, nil
}

// validateFilename rejects names that would escape the roster directory.
func validateFilename(name string) error {
	if name == "" {
		return fmt.Errorf("cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("must be a bare file name, got %q", name)
	}
	return nil
}

// ValidateFilename is used by the CLI to check a --file override.
func ValidateFilename(name string) error {
	return validateFilename(strings.TrimSpace(name))
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "info":
		return logging.LevelInfo
	case "error":
		return logging.LevelError
	default:
		return logging.LevelWarn
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
