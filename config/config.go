// Package config handles loading and validation of application configuration
// from environment variables (and an optional .env file loaded by main).
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/devfolio/portfolio-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment            Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port                   string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins         []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version                string      `mapstructure:"VERSION" yaml:"version"`
	StaticDir              string      `mapstructure:"STATIC_DIR" yaml:"static_dir"`
	ShutdownTimeoutSeconds int         `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" yaml:"shutdown_timeout_seconds"`
}

// StoreConfig selects the contact store backend.
type StoreConfig struct {
	Driver   string `mapstructure:"DRIVER" yaml:"driver"`
	FilePath string `mapstructure:"FILE_PATH" yaml:"file_path"`
}

// DatabaseConfig holds PostgreSQL connection details.
type DatabaseConfig struct {
	Host           string `mapstructure:"HOST" yaml:"host"`
	Port           int    `mapstructure:"PORT" yaml:"port"`
	User           string `mapstructure:"USER" yaml:"user"`
	Password       string `mapstructure:"PASSWORD" yaml:"password"`
	Name           string `mapstructure:"NAME" yaml:"name"`
	SSLMode        string `mapstructure:"SSL_MODE" yaml:"ssl_mode"`
	MaxConnections int    `mapstructure:"MAX_CONNECTIONS" yaml:"max_connections"`
	ConnMaxLife    string `mapstructure:"CONN_MAX_LIFE" yaml:"conn_max_life"`
}

// URL returns a postgres:// connection URL suitable for golang-migrate and pgxpool.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
	}
	return u.String()
}

// SQLiteConfig holds the path of the SQLite database file.
type SQLiteConfig struct {
	Path string `mapstructure:"PATH" yaml:"path"`
}

// RedisConfig holds Redis connection details.
type RedisConfig struct {
	Address   string `mapstructure:"ADDRESS" yaml:"address"`
	Password  string `mapstructure:"PASSWORD" yaml:"password"`
	DB        int    `mapstructure:"DB" yaml:"db"`
	UseTLS    bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
	KeyPrefix string `mapstructure:"KEY_PREFIX" yaml:"key_prefix"`
}

// EmailConfig holds the contact notification settings. Every field except
// FromName may be empty, in which case notifications are disabled.
type EmailConfig struct {
	FromAddress        string `mapstructure:"FROM_ADDRESS" yaml:"from_address"`
	FromName           string `mapstructure:"FROM_NAME" yaml:"from_name"`
	ResendAPIKey       string `mapstructure:"RESEND_API_KEY" yaml:"resend_api_key"`
	NotifyTo           string `mapstructure:"NOTIFY_TO" yaml:"notify_to"`
	SendTimeoutSeconds int    `mapstructure:"SEND_TIMEOUT_SECONDS" yaml:"send_timeout_seconds"`
}

// Configured reports whether enough is set to actually send mail.
func (c *EmailConfig) Configured() bool {
	return c.ResendAPIKey != "" && c.FromAddress != "" && c.NotifyTo != ""
}

// Config aggregates all application configuration sections.
type Config struct {
	Server   ServerConfig   `mapstructure:"SERVER" yaml:"server"`
	Store    StoreConfig    `mapstructure:"STORE" yaml:"store"`
	Database DatabaseConfig `mapstructure:"DATABASE" yaml:"database"`
	SQLite   SQLiteConfig   `mapstructure:"SQLITE" yaml:"sqlite"`
	Redis    RedisConfig    `mapstructure:"REDIS" yaml:"redis"`
	Email    EmailConfig    `mapstructure:"EMAIL" yaml:"email"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig reads configuration from the environment using Viper, applies
// defaults, unmarshals into Config and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "5000")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("SERVER.STATIC_DIR", "dist")
	v.SetDefault("SERVER.SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("STORE.DRIVER", DriverFile)
	v.SetDefault("STORE.FILE_PATH", "contacts.json")
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "portfolio")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_CONNECTIONS", 5)
	v.SetDefault("DATABASE.CONN_MAX_LIFE", "1h")
	v.SetDefault("SQLITE.PATH", "contacts.db")
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("REDIS.KEY_PREFIX", "portfolio")
	v.SetDefault("EMAIL.FROM_ADDRESS", "")
	v.SetDefault("EMAIL.FROM_NAME", "Portfolio")
	v.SetDefault("EMAIL.RESEND_API_KEY", "")
	v.SetDefault("EMAIL.NOTIFY_TO", "")
	v.SetDefault("EMAIL.SEND_TIMEOUT_SECONDS", 10)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		{"SERVER.STATIC_DIR", "STATIC_DIR"},
		{"SERVER.SHUTDOWN_TIMEOUT_SECONDS", "SERVER_SHUTDOWN_TIMEOUT_SECONDS"},
		// Store selection
		{"STORE.DRIVER", "STORE_DRIVER"},
		{"STORE.FILE_PATH", "CONTACTS_FILE"},
		// Database config
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"DATABASE.MAX_CONNECTIONS", "DB_MAX_CONNECTIONS"},
		{"DATABASE.CONN_MAX_LIFE", "DB_CONN_MAX_LIFE"},
		// SQLite config
		{"SQLITE.PATH", "SQLITE_PATH"},
		// Redis config
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		{"REDIS.KEY_PREFIX", "REDIS_KEY_PREFIX"},
		// Email config
		{"EMAIL.FROM_ADDRESS", "EMAIL_FROM_ADDRESS"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
		{"EMAIL.NOTIFY_TO", "CONTACT_NOTIFY_TO"},
		{"EMAIL.SEND_TIMEOUT_SECONDS", "EMAIL_SEND_TIMEOUT_SECONDS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"store_driver", cfg.Store.Driver,
		"static_dir", cfg.Server.StaticDir,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"email_notifications", cfg.Email.Configured(),
	)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.Server.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("server shutdown timeout must be positive")
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	if err := validateStoreConfig(cfg); err != nil {
		return err
	}

	if cfg.Email.SendTimeoutSeconds <= 0 {
		return fmt.Errorf("email send timeout must be positive")
	}
	if !cfg.Email.Configured() {
		// Not an error: the notifier stays inert.
		log.Warn("Email notification settings incomplete, contact notifications disabled")
	}

	return nil
}

func validateStoreConfig(cfg *Config) error {
	switch cfg.Store.Driver {
	case DriverFile:
		if cfg.Store.FilePath == "" {
			return fmt.Errorf("contacts file path is required for the file store")
		}
	case DriverPostgres:
		if cfg.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if cfg.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if cfg.Database.Name == "" {
			return fmt.Errorf("database name is required")
		}
		if cfg.Database.MaxConnections <= 0 {
			return fmt.Errorf("database max connections must be positive")
		}
		if cfg.Database.Password == "" {
			logger.GetLogger().Warn("Database password is not set. Ensure this is intended (e.g., using trusted auth).")
		}
	case DriverSQLite:
		if cfg.SQLite.Path == "" {
			return fmt.Errorf("sqlite path is required for the sqlite store")
		}
	case DriverRedis:
		if cfg.Redis.Address == "" {
			return fmt.Errorf("redis address is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store driver %q (want %s, %s, %s or %s)",
			cfg.Store.Driver, DriverFile, DriverPostgres, DriverSQLite, DriverRedis)
	}
	return nil
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
