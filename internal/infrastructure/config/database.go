package config

import (
	"fmt"
	"time"
)

// DatabaseConfig selects and parameterizes the storage driver. Postgres is the
// production target; sqlite (including ":memory:") serves development and tests.
type DatabaseConfig struct {
	// "postgres" or "sqlite"
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// URL, when set, wins over the individual postgres fields.
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// Path is the sqlite database file, or ":memory:".
	Path string `mapstructure:"path"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig tunes the sql.DB connection pool. Only consulted for postgres.
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// PostgresDSN assembles the connection string for the postgres driver.
func (c *DatabaseConfig) PostgresDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// SQLitePath returns the sqlite location, defaulting to an in-memory database.
func (c *DatabaseConfig) SQLitePath() string {
	if c.Path == "" {
		return ":memory:"
	}
	return c.Path
}
