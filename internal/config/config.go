// Package config holds the process-wide configuration for webdriverd,
// populated from defaults and then overridden by environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/mstoykov/envconfig"
)

// Config is the full set of values needed to start the HTTP API server and
// bind it to a host window manager.
type Config struct {
	// Address is the host:port the WebDriver HTTP API listens on.
	Address string `envconfig:"WEBDRIVERD_ADDRESS"`

	// LogLevel is one of: panic, fatal, error, warn, info, debug, trace.
	LogLevel string `envconfig:"WEBDRIVERD_LOG_LEVEL"`

	// LogFormat is one of: text, json, raw.
	LogFormat string `envconfig:"WEBDRIVERD_LOG_FORMAT"`

	NoColor bool `envconfig:"WEBDRIVERD_NO_COLOR"`

	// ArtifactDir is where a copy of every screenshot and printed PDF is
	// persisted; the response still carries the artifact inline.
	ArtifactDir string `envconfig:"WEBDRIVERD_ARTIFACT_DIR"`

	// ImplicitTimeout, PageLoadTimeout and ScriptTimeout seed the default
	// timeouts handed to every new session.
	ImplicitTimeout time.Duration `envconfig:"WEBDRIVERD_IMPLICIT_TIMEOUT"`
	PageLoadTimeout time.Duration `envconfig:"WEBDRIVERD_PAGE_LOAD_TIMEOUT"`
	ScriptTimeout   time.Duration `envconfig:"WEBDRIVERD_SCRIPT_TIMEOUT"`

	// SessionReadyPollInterval controls how often session creation polls
	// for an open window while none is available.
	SessionReadyPollInterval time.Duration `envconfig:"WEBDRIVERD_SESSION_POLL_INTERVAL"`
}

// Default returns the configuration used when nothing else overrides it.
func Default() Config {
	return Config{
		Address:                  "127.0.0.1:4445",
		LogLevel:                 "info",
		LogFormat:                "text",
		ArtifactDir:              "./artifacts",
		ImplicitTimeout:          0,
		PageLoadTimeout:          5 * time.Minute,
		ScriptTimeout:            30 * time.Second,
		SessionReadyPollInterval: 100 * time.Millisecond,
	}
}

// Apply layers non-zero-valued fields from override on top of the receiver
// and returns the merged result.
func (c Config) Apply(override Config) Config {
	if override.Address != "" {
		c.Address = override.Address
	}
	if override.LogLevel != "" {
		c.LogLevel = override.LogLevel
	}
	if override.LogFormat != "" {
		c.LogFormat = override.LogFormat
	}
	if override.NoColor {
		c.NoColor = true
	}
	if override.ArtifactDir != "" {
		c.ArtifactDir = override.ArtifactDir
	}
	if override.ImplicitTimeout != 0 {
		c.ImplicitTimeout = override.ImplicitTimeout
	}
	if override.PageLoadTimeout != 0 {
		c.PageLoadTimeout = override.PageLoadTimeout
	}
	if override.ScriptTimeout != 0 {
		c.ScriptTimeout = override.ScriptTimeout
	}
	if override.SessionReadyPollInterval != 0 {
		c.SessionReadyPollInterval = override.SessionReadyPollInterval
	}
	return c
}

// FromEnv reads environment variable overrides from env (variable name to
// value) and merges them on top of Default().
func FromEnv(env map[string]string) (Config, error) {
	result := Default()

	var envCfg Config
	if err := envconfig.Process("", &envCfg, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}); err != nil {
		return result, fmt.Errorf("parsing environment config: %w", err)
	}

	return result.Apply(envCfg), nil
}
