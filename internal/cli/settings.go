package cli

import (
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Settings are the process-level knobs. Each can come from the environment;
// command-line flags take precedence.
type Settings struct {
	// Config is the catalog file. ENV: MYCOMMANDMCP_CONFIG
	Config string `env:"MYCOMMANDMCP_CONFIG"`
	// LogFile receives a copy of every log record. ENV: MYCOMMANDMCP_LOG_FILE
	LogFile string `env:"MYCOMMANDMCP_LOG_FILE"`
	// LogLevel is debug, info, warn or error. ENV: MYCOMMANDMCP_LOG_LEVEL
	LogLevel string `env:"MYCOMMANDMCP_LOG_LEVEL,default=info"`
	// MetricsAddr enables the ops listener. ENV: MYCOMMANDMCP_METRICS_ADDR
	MetricsAddr string `env:"MYCOMMANDMCP_METRICS_ADDR"`
}

// SettingsFromEnv decodes Settings from the environment.
func SettingsFromEnv() (Settings, error) {
	var s Settings
	if err := envdecode.Decode(&s); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Settings{}, fmt.Errorf("failed to read environment: %w", err)
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	return s, nil
}
