package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Policy   PolicyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// PolicyConfig holds the attendance rules shared by the day status engine
type PolicyConfig struct {
	Holidays              calendar.HolidayPolicy
	CountAbsentWhenNoData bool
	// BackfillInterval of zero disables the backfill job
	BackfillInterval time.Duration
	MaxRangeDays     int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "cmlabs-daystatus"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance policy
	holidayWeekdays := getEnv("HOLIDAY_WEEKDAYS", "sunday")
	if strings.EqualFold(holidayWeekdays, "none") {
		holidayWeekdays = ""
	}
	holidays, err := calendar.ParseHolidayPolicy(holidayWeekdays)
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_WEEKDAYS: %w", err)
	}

	countAbsent, err := strconv.ParseBool(getEnv("DASHBOARD_COUNT_ABSENT_WHEN_NO_DATA", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_COUNT_ABSENT_WHEN_NO_DATA: %w", err)
	}

	backfillInterval, err := time.ParseDuration(getEnv("DAY_STATUS_BACKFILL_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid DAY_STATUS_BACKFILL_INTERVAL: %w", err)
	}

	maxRangeDays, err := strconv.Atoi(getEnv("MAX_RANGE_DAYS", "366"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_RANGE_DAYS: %w", err)
	}

	config.Policy = PolicyConfig{
		Holidays:              holidays,
		CountAbsentWhenNoData: countAbsent,
		BackfillInterval:      backfillInterval,
		MaxRangeDays:          maxRangeDays,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Policy.BackfillInterval < 0 {
		return fmt.Errorf("DAY_STATUS_BACKFILL_INTERVAL must not be negative")
	}
	if c.Policy.MaxRangeDays < 1 {
		return fmt.Errorf("MAX_RANGE_DAYS must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto slog levels, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
