// Package wrapperconfig holds the wrapper's own settings. The wrapper cannot
// define CLI flags: its entire argument vector belongs to the container
// runtime. Settings come from DOCKER_WRAPPER_* environment variables, with
// an optional config file for host-wide overrides.
package wrapperconfig

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultRuntimePath = "docker"
	DefaultLedgerURL   = "file:///var/lib/paasta/numa_ledger.json"
	DefaultLockPath    = "/var/lib/paasta/numa_ledger.lock"
	DefaultLockWait    = 2 * time.Second

	configName = "docker_wrapper"
	configDir  = "/etc/paasta"
	envPrefix  = "DOCKER_WRAPPER"
)

type Config struct {
	// RuntimePath is the real container runtime binary, resolved via PATH
	// unless absolute.
	RuntimePath string
	// LedgerURL locates the persisted placement ledger.
	LedgerURL string
	// LockPath is the flock sidecar guarding the ledger critical section.
	LockPath string
	// LockWait bounds how long a launch may wait on the ledger lock before
	// giving up and launching unpinned.
	LockWait time.Duration
	// LogLevel is a logrus level name.
	LogLevel string
}

// Load never fails: a missing or unreadable config file just means defaults.
// Availability of the container launch outranks configuration fidelity.
func Load() *Config {
	v := viper.New()
	v.SetDefault("runtime_path", DefaultRuntimePath)
	v.SetDefault("ledger_url", DefaultLedgerURL)
	v.SetDefault("lock_path", DefaultLockPath)
	v.SetDefault("lock_wait", DefaultLockWait)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	_ = v.ReadInConfig()

	return &Config{
		RuntimePath: v.GetString("runtime_path"),
		LedgerURL:   v.GetString("ledger_url"),
		LockPath:    v.GetString("lock_path"),
		LockWait:    v.GetDuration("lock_wait"),
		LogLevel:    v.GetString("log_level"),
	}
}
