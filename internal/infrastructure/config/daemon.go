package config

import "time"

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	// Path of the PID file enforcing a single daemon instance
	PIDFile string `mapstructure:"pid_file" validate:"required"`

	// Grace period for in-flight work during shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// JobsConfig holds the periodic job intervals
type JobsConfig struct {
	// Interval of the risk saga periodic check (weekly in production)
	RiskCheckInterval time.Duration `mapstructure:"risk_check_interval" validate:"required"`

	// Interval of the missing-demands summary publication
	MissingDemandsInterval time.Duration `mapstructure:"missing_demands_interval" validate:"required"`
}
