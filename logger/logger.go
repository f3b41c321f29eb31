// Package logger builds the zap logger used by callers of the assembly.
// Defaults come from the environment so library code stays configuration
// free.
package logger

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultLevel  = "info"
	defaultFormat = "console"
)

// New constructs a zap logger configured from AE_LOG_LEVEL (zap level names)
// and AE_LOG_FORMAT ("console" or "json").
func New() (*zap.Logger, error) {
	v := viper.New()
	v.SetEnvPrefix("ae")
	v.AutomaticEnv()
	v.SetDefault("log_level", defaultLevel)
	v.SetDefault("log_format", defaultFormat)

	var lvl zapcore.Level
	if err := lvl.Set(v.GetString("log_level")); err != nil {
		return nil, fmt.Errorf("logger: bad log level %q: %w", v.GetString("log_level"), err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = v.GetString("log_format")
	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return log, nil
}
