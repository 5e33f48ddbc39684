package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ruslano69/rowsync/pkg/gateway"
	"github.com/ruslano69/rowsync/pkg/resultlog"
	"github.com/ruslano69/rowsync/pkg/retry"
)

// Config represents the main configuration structure
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Sync      SyncConfig      `yaml:"sync,omitempty"`
	Snapshot  SnapshotConfig  `yaml:"snapshot,omitempty"`
	ResultLog ResultLogConfig `yaml:"resultlog,omitempty"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Type     string `yaml:"type"`               // mariadb, postgres, sqlite
	Host     string `yaml:"host,omitempty"`     // For network databases
	Port     int    `yaml:"port,omitempty"`     // Database port
	Database string `yaml:"database"`           // Database name or file path
	User     string `yaml:"user,omitempty"`     // Username
	Password string `yaml:"password,omitempty"` // Password
	DSN      string `yaml:"dsn,omitempty"`      // Ready-made DSN, overrides the fields above
	Timeout  int    `yaml:"timeout_ms,omitempty"`
	MaxConns int    `yaml:"max_conns,omitempty"`
}

// SyncConfig contains synchronizer defaults (overridable by flags)
type SyncConfig struct {
	Retry RetryConfig `yaml:"retry,omitempty"`
}

// RetryConfig for probe retry settings
type RetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	MaxAttempts int     `yaml:"max_attempts"`
	Strategy    string  `yaml:"strategy"` // constant, linear, exponential
	InitialWait int     `yaml:"initial_wait_ms"`
	MaxWait     int     `yaml:"max_wait_ms"`
	Jitter      float64 `yaml:"jitter"`
}

// SnapshotConfig controls pre-sync table snapshots
type SnapshotConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir,omitempty"` // Directory for snapshot files (default: current)
}

// ResultLogConfig controls publishing sync results to Redis
type ResultLogConfig struct {
	Enabled bool             `yaml:"enabled"`
	Redis   resultlog.Config `yaml:"redis,omitempty"`
}

// LoadConfig loads configuration from YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to YAML file
func SaveConfig(filename string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateSampleConfig creates sample configuration for different database types
func CreateSampleConfig(dbType string) *Config {
	config := &Config{
		Database: DatabaseConfig{
			Type: dbType,
		},
		Sync: SyncConfig{
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				Strategy:    "exponential",
				InitialWait: 100,
				MaxWait:     2000,
				Jitter:      0.1,
			},
		},
		Snapshot: SnapshotConfig{
			Enabled: false,
			Dir:     "snapshots",
		},
		ResultLog: ResultLogConfig{
			Enabled: false,
			Redis: resultlog.Config{
				Address: "localhost:6379",
				TTL:     86400,
			},
		},
	}

	switch dbType {
	case "mariadb", "mysql":
		config.Database.Type = "mariadb"
		config.Database.Host = "localhost"
		config.Database.Port = 3306
		config.Database.Database = "mydb"
		config.Database.User = "root"
		config.Database.Password = "password"

	case "postgres", "postgresql":
		config.Database.Type = "postgres"
		config.Database.Host = "localhost"
		config.Database.Port = 5432
		config.Database.Database = "mydb"
		config.Database.User = "postgres"
		config.Database.Password = "password"

	case "sqlite":
		config.Database.Database = "database.db"
	}

	return config
}

// GatewayConfig builds a gateway connection config from the loaded file
func (c *Config) GatewayConfig() gateway.Config {
	return gateway.Config{
		Type:     c.Database.Type,
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		User:     c.Database.User,
		Password: c.Database.Password,
		Database: c.Database.Database,
		DSN:      c.Database.DSN,
		Timeout:  time.Duration(c.Database.Timeout) * time.Millisecond,
		MaxConns: c.Database.MaxConns,
	}
}

// RetryConfig converts the YAML retry section to the retry package config
func (c *Config) RetryConfig() retry.Config {
	r := c.Sync.Retry
	return retry.Config{
		Enabled:           r.Enabled,
		MaxAttempts:       r.MaxAttempts,
		InitialDelay:      time.Duration(r.InitialWait) * time.Millisecond,
		MaxDelay:          time.Duration(r.MaxWait) * time.Millisecond,
		BackoffStrategy:   retry.BackoffStrategy(r.Strategy),
		BackoffMultiplier: 2.0,
		Jitter:            r.Jitter,
	}
}
