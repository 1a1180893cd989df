package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
)

// envOverrides lists the environment variables that take precedence over
// the configuration file.
type envOverrides struct {
	DataDir   string `env:"FLUPP_DATA_DIR"`
	LogDir    string `env:"FLUPP_LOG_DIR"`
	WatchDir  string `env:"FLUPP_WATCH_DIR"`
	LogLevel  string `env:"FLUPP_LOG_LEVEL"`
	LogFormat string `env:"FLUPP_LOG_FORMAT"`
	APIBind   string `env:"FLUPP_API_BIND"`
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envdecode.Decode(&env); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return nil
		}
		return fmt.Errorf("read environment overrides: %w", err)
	}
	overrides := []struct {
		value  string
		target *string
	}{
		{env.DataDir, &c.Paths.DataDir},
		{env.LogDir, &c.Paths.LogDir},
		{env.WatchDir, &c.Paths.WatchDir},
		{env.LogLevel, &c.Logging.Level},
		{env.LogFormat, &c.Logging.Format},
		{env.APIBind, &c.API.Bind},
	}
	for _, o := range overrides {
		if value := strings.TrimSpace(o.value); value != "" {
			*o.target = value
		}
	}
	return nil
}
