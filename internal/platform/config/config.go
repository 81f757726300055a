package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"hrpay/internal/domain/taxtable"
)

type Config struct {
	DatabaseURL       string
	SQLitePath        string
	RedisAddr         string
	RedisPassword     string
	DataEncryptionKey string
	Environment       string
	LogLevel          string
	TaxYear           int
	PayrollCron       string
	GenerationLockTTL time.Duration
	PayslipDir        string
}

// Load reads an optional .env file, then the environment. Variables already
// set in the environment win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env", "err", err)
	}
	return Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SQLitePath:        getEnv("SQLITE_PATH", "hrpay.db"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		DataEncryptionKey: getEnv("DATA_ENCRYPTION_KEY", ""),
		Environment:       getEnv("APP_ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		TaxYear:           getEnvInt("TAX_YEAR", 2024),
		PayrollCron:       getEnv("PAYROLL_CRON", "0 3 1 * *"),
		GenerationLockTTL: getEnvDuration("GENERATION_LOCK_TTL", 2*time.Minute),
		PayslipDir:        getEnv("PAYSLIP_DIR", "storage/payslips"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// UsePostgres reports whether stores should be backed by DATABASE_URL rather
// than the local SQLite file.
func (c Config) UsePostgres() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if !c.UsePostgres() && strings.TrimSpace(c.SQLitePath) == "" {
		return fmt.Errorf("either DATABASE_URL or SQLITE_PATH is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.DataEncryptionKey) == "" {
		return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
	}
	if !knownTaxYear(c.TaxYear) {
		return fmt.Errorf("TAX_YEAR %d has no withholding table (have %v)", c.TaxYear, taxtable.Years())
	}
	if _, err := cron.ParseStandard(c.PayrollCron); err != nil {
		return fmt.Errorf("PAYROLL_CRON is invalid: %w", err)
	}
	if c.GenerationLockTTL <= 0 {
		return fmt.Errorf("GENERATION_LOCK_TTL must be positive")
	}
	return nil
}

func knownTaxYear(year int) bool {
	for _, y := range taxtable.Years() {
		if y == year {
			return true
		}
	}
	return false
}
