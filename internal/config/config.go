package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	EnvKeepContainers = "KEEP_CONTAINERS"
	EnvEngine         = "EPHEMERA_ENGINE"
	EnvLogGrace       = "EPHEMERA_LOG_GRACE"
	EnvReadyTimeout   = "EPHEMERA_READY_TIMEOUT"
)

const (
	DefaultEngine          = "docker"
	DefaultLogGracePeriod  = time.Second
	DefaultReadyTimeout    = 60 * time.Second
	DefaultTeardownTimeout = 30 * time.Second
)

// Config holds the settings shared by every container a client manages.
type Config struct {
	// Engine is the engine CLI binary.
	Engine string `yaml:"engine"`
	// KeepContainers stops containers on teardown instead of removing them.
	KeepContainers bool `yaml:"keepContainers"`
	// LogGracePeriod is the minimum container age before its logs are
	// followed. It mitigates engines that lose the earliest log lines when a
	// follower attaches right after start.
	LogGracePeriod time.Duration `yaml:"logGracePeriod"`
	// ReadyTimeout is used for log readiness checks that set no deadline.
	ReadyTimeout time.Duration `yaml:"readyTimeout"`
	// TeardownTimeout bounds the stop or rm invocation.
	TeardownTimeout time.Duration `yaml:"teardownTimeout"`
}

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() Config {
	return Config{
		Engine:          DefaultEngine,
		KeepContainers:  false,
		LogGracePeriod:  DefaultLogGracePeriod,
		ReadyTimeout:    DefaultReadyTimeout,
		TeardownTimeout: DefaultTeardownTimeout,
	}
}

// Normalize fills unset fields with defaults. A negative grace period
// disables the grace wait and is kept.
func (c Config) Normalize() Config {
	d := GetDefaultConfig()
	if c.Engine == "" {
		c.Engine = d.Engine
	}
	if c.LogGracePeriod == 0 {
		c.LogGracePeriod = d.LogGracePeriod
	}
	if c.ReadyTimeout <= 0 {
		c.ReadyTimeout = d.ReadyTimeout
	}
	if c.TeardownTimeout <= 0 {
		c.TeardownTimeout = d.TeardownTimeout
	}
	return c
}

// ApplyEnv overrides fields from the environment.
func (c Config) ApplyEnv() (Config, error) {
	if v, ok := os.LookupEnv(EnvEngine); ok && v != "" {
		c.Engine = v
	}
	if v, ok := os.LookupEnv(EnvKeepContainers); ok {
		c.KeepContainers = parseKeep(v)
	}
	if v, ok := os.LookupEnv(EnvLogGrace); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("invalid %s %q: %w", EnvLogGrace, v, err)
		}
		c.LogGracePeriod = d
	}
	if v, ok := os.LookupEnv(EnvReadyTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("invalid %s %q: %w", EnvReadyTimeout, v, err)
		}
		c.ReadyTimeout = d
	}
	return c, nil
}

// KeepContainers reports the teardown policy at the time of the call:
// KEEP_CONTAINERS when set, fallback otherwise. Only the exact value "true"
// keeps; anything else, including "1" or "TRUE", means remove.
func KeepContainers(fallback bool) bool {
	v, ok := os.LookupEnv(EnvKeepContainers)
	if !ok {
		return fallback
	}
	return parseKeep(v)
}

func parseKeep(v string) bool {
	return v == "true"
}

// GetUserConfigDir returns the default configuration directory.
func GetUserConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user home directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
