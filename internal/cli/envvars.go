package cli

import (
	envparse "github.com/caarlos0/env/v11"

	"github.com/terrafirm-io/terrafirm/internal/logging"
)

// baseEnv defines root CLI defaults sourced from TERRAFIRM_* env vars.
type baseEnv struct {
	// ConfigPath is the project configuration path from TERRAFIRM_CONFIG.
	ConfigPath string `env:"TERRAFIRM_CONFIG"`
	// Binary is the external tool binary from TERRAFIRM_BINARY.
	Binary string `env:"TERRAFIRM_BINARY"`
	// LogLevel is the logging level from TERRAFIRM_LOG_LEVEL.
	LogLevel string `env:"TERRAFIRM_LOG_LEVEL"`
}

// applyEnvDefaults overlays TERRAFIRM_* env vars onto opts before flag parsing,
// so flags still win over the environment.
func applyEnvDefaults(opts *Options) {
	var base baseEnv
	if err := envparse.Parse(&base); err != nil {
		return
	}
	if base.ConfigPath != "" {
		opts.ConfigPath = base.ConfigPath
	}
	if base.Binary != "" {
		opts.Binary = base.Binary
	}
	if base.LogLevel != "" {
		opts.LogLevel = logging.ParseLevel(base.LogLevel)
	}
}
