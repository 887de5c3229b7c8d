package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the dashboard service
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

// DatabaseConfig holds the Postgres connection and the table layout
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	EventsTable     string        `mapstructure:"events_table"`
	SitesTable      string        `mapstructure:"sites_table"`
	LegacyFlag      string        `mapstructure:"legacy_flag_column"`
}

// RedisConfig holds the session store configuration. An empty Addr keeps
// sessions in process memory.
type RedisConfig struct {
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// DashboardConfig holds cache and query settings
type DashboardConfig struct {
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
	Timezone     string        `mapstructure:"timezone"`
}

// Load loads configuration from environment variables. Outside production a
// .env file in the working directory is read first; real env vars win.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	v := viper.New()

	v.AutomaticEnv()

	_ = v.BindEnv("app.name", "APP_NAME")
	_ = v.BindEnv("app.env", "APP_ENV")
	_ = v.BindEnv("app.port", "APP_PORT")

	_ = v.BindEnv("database.dsn", "POSTGRES_DSN")
	_ = v.BindEnv("database.max_open_conns", "DB_MAX_OPEN_CONNS")
	_ = v.BindEnv("database.max_idle_conns", "DB_MAX_IDLE_CONNS")
	_ = v.BindEnv("database.conn_max_lifetime", "DB_CONN_MAX_LIFETIME")
	_ = v.BindEnv("database.events_table", "EVENTS_TABLE")
	_ = v.BindEnv("database.sites_table", "SITES_TABLE")
	_ = v.BindEnv("database.legacy_flag_column", "SITES_LEGACY_FLAG_COLUMN")

	// Redis
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")
	_ = v.BindEnv("redis.session_ttl", "SESSION_TTL")

	// Dashboard
	_ = v.BindEnv("dashboard.cache_ttl", "DASHBOARD_CACHE_TTL")
	_ = v.BindEnv("dashboard.query_timeout", "DASHBOARD_QUERY_TIMEOUT")
	_ = v.BindEnv("dashboard.timezone", "DASHBOARD_TIMEZONE")

	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "ga-dashboard-service")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	// Database
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.events_table", "ga_daily_events")
	v.SetDefault("database.sites_table", "sites")
	v.SetDefault("database.legacy_flag_column", "is_enable")

	// Redis
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.session_ttl", "24h")

	// Dashboard
	v.SetDefault("dashboard.cache_ttl", "1h")
	v.SetDefault("dashboard.query_timeout", "30s")
	v.SetDefault("dashboard.timezone", "UTC")
}

// Validate reports the first setting the service cannot start with.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("POSTGRES_DSN is not set")
	}
	if c.Dashboard.CacheTTL <= 0 {
		return fmt.Errorf("DASHBOARD_CACHE_TTL must be positive, got %s", c.Dashboard.CacheTTL)
	}
	if c.Dashboard.QueryTimeout <= 0 {
		return fmt.Errorf("DASHBOARD_QUERY_TIMEOUT must be positive, got %s", c.Dashboard.QueryTimeout)
	}
	if c.Redis.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Redis.SessionTTL)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves DASHBOARD_TIMEZONE. Day boundaries of every panel use it.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Dashboard.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_TIMEZONE %q: %w", c.Dashboard.Timezone, err)
	}
	return loc, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
