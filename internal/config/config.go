package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName  string
	HTTPPort string
	Database DatabaseConfig
	Logger   LoggerConfig
	Stock    StockConfig

	// EnvFileLoaded is false when no .env file was found
	EnvFileLoaded bool
}

type DatabaseConfig struct {
	Driver     string // sqlite or postgres
	DSN        string // postgres DSN, overrides the DB_* parts
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	TimeZone   string
	LogQueries bool
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type StockConfig struct {
	LowStockInterval   time.Duration
	AllowNegativeStock bool
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Load reads .env when present and then the process environment
func Load() (*Config, error) {
	envLoaded := godotenv.Load() == nil

	interval, err := time.ParseDuration(getEnv("LOW_STOCK_INTERVAL", "5m"))
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, fmt.Errorf("LOW_STOCK_INTERVAL must be positive, got %s", interval)
	}

	cfg := &Config{
		AppName:  getEnv("APP_NAME", "Inventory Ledger"),
		HTTPPort: getEnv("HTTP_PORT", "3000"),
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			DSN:        os.Getenv("DATABASE_URL"),
			SQLitePath: getEnv("SQLITE_PATH", "database/stock.db"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       getEnv("DB_NAME", "inventory"),
			TimeZone:   getEnv("DB_TIMEZONE", "UTC"),
			LogQueries: getEnvBool("DB_LOG_QUERIES", false),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOGGER_LEVEL", "info"),
			Encoding: getEnv("LOGGER_ENCODING", "console"),
		},
		Stock: StockConfig{
			LowStockInterval:   interval,
			AllowNegativeStock: getEnvBool("ALLOW_NEGATIVE_STOCK", false),
		},
	}
	cfg.EnvFileLoaded = envLoaded
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
