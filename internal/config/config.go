package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database      DatabaseConfig
	JWT           JWTConfig
	App           AppConfig
	Workday       WorkdayConfig
	Recalculation RecalculationConfig
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
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// WorkdayConfig controls how timestamps are attributed to a work-date.
// StartTime is the clock time a new work-day opens; RolloverTime is the
// next-day clock time up to which activity still belongs to the previous
// work-date, so overnight shifts land on the date they started.
type WorkdayConfig struct {
	StartTime          string
	RolloverTime       string
	CheckInEarlyWindow time.Duration
}

// RecalculationConfig controls the periodic attendance recalculation job and
// the monthly performance rollup refresh.
type RecalculationConfig struct {
	Interval            time.Duration
	WindowDays          int
	PerformanceInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

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
		Name:     getEnv("DB_NAME", "worktime"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Workday boundary configuration
	earlyWindow, err := time.ParseDuration(getEnv("CHECKIN_EARLY_WINDOW", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKIN_EARLY_WINDOW: %w", err)
	}

	config.Workday = WorkdayConfig{
		StartTime:          getEnv("WORKDAY_START_TIME", "09:00"),
		RolloverTime:       getEnv("WORKDAY_ROLLOVER_TIME", "04:30"),
		CheckInEarlyWindow: earlyWindow,
	}

	// Recalculation job configuration
	recalcInterval, err := time.ParseDuration(getEnv("RECALC_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECALC_INTERVAL: %w", err)
	}

	recalcWindow, err := strconv.Atoi(getEnv("RECALC_WINDOW_DAYS", "35"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECALC_WINDOW_DAYS: %w", err)
	}

	perfInterval, err := time.ParseDuration(getEnv("PERFORMANCE_REFRESH_INTERVAL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid PERFORMANCE_REFRESH_INTERVAL: %w", err)
	}

	config.Recalculation = RecalculationConfig{
		Interval:            recalcInterval,
		WindowDays:          recalcWindow,
		PerformanceInterval: perfInterval,
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
	if _, err := time.Parse("15:04", c.Workday.StartTime); err != nil {
		return fmt.Errorf("WORKDAY_START_TIME must be HH:MM: %w", err)
	}
	if _, err := time.Parse("15:04", c.Workday.RolloverTime); err != nil {
		return fmt.Errorf("WORKDAY_ROLLOVER_TIME must be HH:MM: %w", err)
	}
	if c.Recalculation.WindowDays <= 0 {
		return fmt.Errorf("RECALC_WINDOW_DAYS must be positive")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
