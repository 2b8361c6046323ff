package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Security     SecurityConfig     `yaml:"security"`
	Logging      LoggingConfig      `yaml:"logging"`
	Workflow     WorkflowConfig     `yaml:"workflow"`
	Notification NotificationConfig `yaml:"notification"`
}

type ServerConfig struct {
	APIPort int    `yaml:"api_port"`
	Mode    string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Driver          string `yaml:"driver"` // mysql, postgres (default: mysql)
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

type RedisConfig struct {
	// Enabled toggles the Redis-backed approval config cache and casbin
	// policy sync. When false the service runs in database-only mode.
	Enabled        bool   `yaml:"enabled"`
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Password       string `yaml:"password"`
	DB             int    `yaml:"db"`
	ConnectTimeout int    `yaml:"connect_timeout"` // seconds
	ReadTimeout    int    `yaml:"read_timeout"`    // seconds
	WriteTimeout   int    `yaml:"write_timeout"`   // seconds
	PoolSize       int    `yaml:"pool_size"`
	MinIdleConns   int    `yaml:"min_idle_conns"`
}

type SecurityConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpiryHours int    `yaml:"token_expiry_hours"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Output string `yaml:"output"` // console, file, both
	File   string `yaml:"file"`
}

type WorkflowConfig struct {
	// UnfilledAlertDays is the staleness threshold after which a
	// still-unfilled requisition gets flagged for dashboards.
	UnfilledAlertDays int `yaml:"unfilled_alert_days"`
	// SweepIntervalMinutes controls how often the staleness sweep runs.
	SweepIntervalMinutes int `yaml:"sweep_interval_minutes"`
}

type NotificationConfig struct {
	Enabled        bool   `yaml:"enabled"`
	WebhookURL     string `yaml:"webhook_url"`
	Secret         string `yaml:"secret"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// DSN builds the MySQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

// PostgresDSN builds the PostgreSQL connection string
func (c *DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DBName)
}

func (c *RedisConfig) SetDefaults() {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 5
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 3
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 3
	}
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.MinIdleConns <= 0 {
		c.MinIdleConns = 5
	}
}

func (c *WorkflowConfig) SetDefaults() {
	if c.UnfilledAlertDays <= 0 {
		c.UnfilledAlertDays = 30
	}
	if c.SweepIntervalMinutes <= 0 {
		c.SweepIntervalMinutes = 60
	}
}

// Load reads the YAML config file. Secrets can be overridden through
// environment variables for container deployments.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.yaml"
		if env := os.Getenv("LIAH_CONFIG"); env != "" {
			path = env
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	cfg.Redis.SetDefaults()
	cfg.Workflow.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LIAH_DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("LIAH_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Database.Port = port
		}
	}
	if v := os.Getenv("LIAH_DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("LIAH_DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("LIAH_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("LIAH_JWT_SECRET"); v != "" {
		c.Security.JWTSecret = v
	}
	if v := os.Getenv("LIAH_WEBHOOK_SECRET"); v != "" {
		c.Notification.Secret = v
	}
}

func (c *Config) Validate() error {
	if c.Server.APIPort <= 0 || c.Server.APIPort > 65535 {
		return fmt.Errorf("invalid server.api_port: %d", c.Server.APIPort)
	}
	switch c.Database.Driver {
	case "", "mysql", "postgres", "postgresql":
	default:
		return fmt.Errorf("unsupported database driver: %s (supported: mysql, postgres)", c.Database.Driver)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	return nil
}
